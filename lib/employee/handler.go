package employeehandler

import (
	"booking-backend/config"
	resourcestore "booking-backend/lib/resource-store"
	"booking-backend/lib/utils/apperr"
	authutils "booking-backend/lib/utils/auth-utils"
	initchecker "booking-backend/lib/utils/init-checker"
	employeeapimodels "booking-backend/models/api/employee"
	dbmodels "booking-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(data employeeapimodels.EmployeeData) (item employeeapimodels.EmployeeView, err error)
	Update(id string, data employeeapimodels.EmployeeData) (item employeeapimodels.EmployeeView, err error)
	GetByID(id string) (item employeeapimodels.EmployeeView, err error)
	FindByEmail(email string) (item *employeeapimodels.EmployeeView, err error)
	List(filter employeeapimodels.EmployeeFilter) (list []employeeapimodels.EmployeeView, rowCount int64, err error)
	Delete(id string) error
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(resourcestore.Instance, config.Conf.Auth.DefaultPassword)
}

func NewInstance(store resourcestore.Provider, defaultPassword string) Provider {
	instance := impl{
		store:           store,
		defaultPassword: defaultPassword,
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	return instance
}

type impl struct {
	store           resourcestore.Provider
	defaultPassword string
}

func (i impl) Create(data employeeapimodels.EmployeeData) (item employeeapimodels.EmployeeView, err error) {
	email := strings.ToLower(strings.TrimSpace(data.Email))
	logger := log.WithField("email", email)
	passwordHash, err := authutils.HashPassword(i.defaultPassword)
	if err != nil {
		return item, errors.Wrap(err, "ошибка формирования пароля")
	}
	var rec *dbmodels.Employee
	err = i.store.Transaction(func(stores resourcestore.Stores) error {
		exist, err := stores.Employee.FindByEmail(email)
		if err != nil {
			return err
		}
		if exist != nil {
			return apperr.Conflict(apperr.EntityEmployee, apperr.KeyDuplicate, "сотрудник с такой почтой уже существует")
		}
		recID, err := stores.Employee.Create(dbmodels.Employee{
			Name:            strings.TrimSpace(data.Name),
			Email:           email,
			Role:            data.Role,
			VacationBalance: data.VacationBalance,
			Login:           authutils.LoginFromName(data.Name),
			PasswordHash:    passwordHash,
		})
		if err != nil {
			return err
		}
		rec, err = stores.Employee.GetByID(recID)
		return err
	})
	if err != nil {
		return item, err
	}
	logger.
		WithField("rec_id", rec.ID).
		Info("Создан сотрудник")
	return employeeapimodels.EmployeeConvert(*rec), nil
}

func (i impl) Update(id string, data employeeapimodels.EmployeeData) (item employeeapimodels.EmployeeView, err error) {
	logger := log.WithField("rec_id", id)
	email := strings.ToLower(strings.TrimSpace(data.Email))
	var rec *dbmodels.Employee
	err = i.store.Transaction(func(stores resourcestore.Stores) error {
		rec, err = stores.Employee.GetForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return apperr.NotFound(apperr.EntityEmployee, "сотрудник не найден")
		}
		exist, err := stores.Employee.FindByEmail(email)
		if err != nil {
			return err
		}
		if exist != nil && exist.ID != id {
			return apperr.Conflict(apperr.EntityEmployee, apperr.KeyDuplicate, "сотрудник с такой почтой уже существует")
		}
		rec.Name = strings.TrimSpace(data.Name)
		rec.Email = email
		rec.Role = data.Role
		rec.VacationBalance = data.VacationBalance
		return stores.Employee.Save(*rec)
	})
	if err != nil {
		return item, err
	}
	logger.Info("Сотрудник обновлен")
	return i.GetByID(id)
}

func (i impl) GetByID(id string) (item employeeapimodels.EmployeeView, err error) {
	rec, err := i.store.Stores().Employee.GetByID(id)
	if err != nil {
		return item, err
	}
	if rec == nil {
		return item, apperr.NotFound(apperr.EntityEmployee, "сотрудник не найден")
	}
	return employeeapimodels.EmployeeConvert(*rec), nil
}

func (i impl) FindByEmail(email string) (*employeeapimodels.EmployeeView, error) {
	rec, err := i.store.Stores().Employee.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	item := employeeapimodels.EmployeeConvert(*rec)
	return &item, nil
}

func (i impl) List(filter employeeapimodels.EmployeeFilter) (list []employeeapimodels.EmployeeView, rowCount int64, err error) {
	store := i.store.Stores().Employee
	rowCount, err = store.ListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	list = make([]employeeapimodels.EmployeeView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, employeeapimodels.EmployeeConvert(rec))
	}
	return list, rowCount, nil
}

// Delete сотрудника с бронями или заявками на отпуск удалить нельзя
func (i impl) Delete(id string) error {
	err := i.store.Transaction(func(stores resourcestore.Stores) error {
		bookingCount, err := stores.Booking.CountByEmployee(id)
		if err != nil {
			return err
		}
		vacationCount, err := stores.Vacation.CountByEmployee(id)
		if err != nil {
			return err
		}
		if bookingCount+vacationCount > 0 {
			return apperr.Conflict(apperr.EntityEmployee, apperr.KeyReferenced,
				"у сотрудника есть брони или заявки на отпуск, удаление невозможно")
		}
		return stores.Employee.Delete(id)
	})
	if err != nil {
		return err
	}
	log.WithField("rec_id", id).Info("Сотрудник удален")
	return nil
}
