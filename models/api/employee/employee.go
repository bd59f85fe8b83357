package employeeapimodels

import (
	"booking-backend/models"
	apimodels "booking-backend/models/api"
	dbmodels "booking-backend/models/db"
	"regexp"
	"time"

	"github.com/pkg/errors"
)

var emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type EmployeeData struct {
	Name            string              `json:"name"`             // ФИО
	Email           string              `json:"email"`            // почта, уникальна
	Role            models.EmployeeRole `json:"role"`             // EMPLOYEE/HR
	VacationBalance int                 `json:"vacation_balance"` // остаток дней отпуска
}

func (e EmployeeData) Validate() error {
	if e.Name == "" {
		return errors.New("не указано имя сотрудника")
	}
	if len([]rune(e.Name)) > 100 {
		return errors.New("имя сотрудника длиннее 100 символов")
	}
	if len(e.Email) > 254 || !emailRegexp.MatchString(e.Email) {
		return errors.New("некорректный email сотрудника")
	}
	if err := e.Role.Validate(); err != nil {
		return err
	}
	if e.VacationBalance < 0 {
		return errors.New("остаток отпуска не может быть отрицательным")
	}
	return nil
}

type EmployeeView struct {
	EmployeeData
	ID        string    `json:"id"`
	Login     string    `json:"login"`
	RoleName  string    `json:"role_name"`
	CreatedAt time.Time `json:"created_at"`
}

type EmployeeShortView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type EmployeeFilter struct {
	apimodels.Pagination
	Search string              `json:"search"` // поиск по имени/почте
	Role   models.EmployeeRole `json:"role"`
}

func (f EmployeeFilter) Validate() error {
	if f.Role != "" {
		return f.Role.Validate()
	}
	return nil
}

func EmployeeConvert(rec dbmodels.Employee) EmployeeView {
	return EmployeeView{
		EmployeeData: EmployeeData{
			Name:            rec.Name,
			Email:           rec.Email,
			Role:            rec.Role,
			VacationBalance: rec.VacationBalance,
		},
		ID:        rec.ID,
		Login:     rec.Login,
		RoleName:  rec.Role.ToHuman(),
		CreatedAt: rec.CreatedAt,
	}
}

func EmployeeShortConvert(rec dbmodels.Employee) EmployeeShortView {
	return EmployeeShortView{
		ID:    rec.ID,
		Name:  rec.Name,
		Email: rec.Email,
	}
}
