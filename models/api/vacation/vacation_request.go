package vacationapimodels

import (
	"booking-backend/models"
	apimodels "booking-backend/models/api"
	employeeapimodels "booking-backend/models/api/employee"
	dbmodels "booking-backend/models/db"
	"time"

	"github.com/pkg/errors"
)

const DateFormat = "2006-01-02"

type VacationRequestData struct {
	StartDate   string               `json:"start_date"` // дата начала, ГГГГ-ММ-ДД
	EndDate     string               `json:"end_date"`   // дата окончания включительно
	Type        models.VacationType  `json:"type"`
	Reason      string               `json:"reason"`
	Status      models.RequestStatus `json:"status"` // при создании игнорируется
	Attachments []AttachmentData     `json:"attachments"`
}

func (v VacationRequestData) Validate() error {
	if _, _, err := v.GetDates(); err != nil {
		return err
	}
	if err := v.Type.Validate(); err != nil {
		return err
	}
	for _, item := range v.Attachments {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (v VacationRequestData) GetDates() (start, end time.Time, err error) {
	start, err = ParseDate(v.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(err, "некорректная дата начала")
	}
	end, err = ParseDate(v.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(err, "некорректная дата окончания")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("дата окончания раньше даты начала")
	}
	return start, end, nil
}

// VacationRequestEditData изменяются только переданные поля, вложения добавляются
type VacationRequestEditData struct {
	StartDate   *string              `json:"start_date"`
	EndDate     *string              `json:"end_date"`
	Type        *models.VacationType `json:"type"`
	Reason      *string              `json:"reason"`
	Status      *string              `json:"status"`
	Attachments []AttachmentData     `json:"attachments"`
}

func (v VacationRequestEditData) Validate() error {
	if v.StartDate != nil {
		if _, err := ParseDate(*v.StartDate); err != nil {
			return errors.Wrap(err, "некорректная дата начала")
		}
	}
	if v.EndDate != nil {
		if _, err := ParseDate(*v.EndDate); err != nil {
			return errors.Wrap(err, "некорректная дата окончания")
		}
	}
	if v.Type != nil {
		if err := v.Type.Validate(); err != nil {
			return err
		}
	}
	if v.Status != nil {
		if _, err := models.ParseRequestStatus(*v.Status); err != nil {
			return err
		}
	}
	for _, item := range v.Attachments {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type AttachmentData struct {
	Name        string     `json:"name"`
	URL         string     `json:"url"`
	FileSize    int64      `json:"file_size"`
	ContentType string     `json:"content_type"`
	UploadedAt  *time.Time `json:"uploaded_at"`
}

func (a AttachmentData) Validate() error {
	if a.Name == "" || len([]rune(a.Name)) > 255 {
		return errors.New("некорректное имя вложения")
	}
	if a.URL == "" || len(a.URL) > 2048 {
		return errors.New("некорректная ссылка на вложение")
	}
	if a.FileSize < 0 {
		return errors.New("некорректный размер вложения")
	}
	if len(a.ContentType) > 100 {
		return errors.New("некорректный тип вложения")
	}
	return nil
}

type AttachmentView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	FileSize    int64     `json:"file_size"`
	ContentType string    `json:"content_type"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type VacationRequestView struct {
	ID          string                               `json:"id"`
	StartDate   string                               `json:"start_date"`
	EndDate     string                               `json:"end_date"`
	Days        int                                  `json:"days"`
	Type        models.VacationType                  `json:"type"`
	TypeName    string                               `json:"type_name"`
	Reason      string                               `json:"reason"`
	Status      models.RequestStatus                 `json:"status"`
	StatusName  string                               `json:"status_name"`
	CreatedAt   time.Time                            `json:"created_at"`
	UpdatedAt   time.Time                            `json:"updated_at"`
	Employee    *employeeapimodels.EmployeeShortView `json:"employee"`
	Attachments []AttachmentView                     `json:"attachments"`
}

type VacationFilter struct {
	apimodels.Pagination
	EmployeeID string                 `json:"employee_id"`
	Statuses   []models.RequestStatus `json:"statuses"`
	Type       models.VacationType    `json:"type"`
}

func (f VacationFilter) Validate() error {
	for _, status := range f.Statuses {
		if err := status.Validate(); err != nil {
			return err
		}
	}
	if f.Type != "" {
		return f.Type.Validate()
	}
	return nil
}

func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateFormat, value)
}

func AttachmentConvert(rec dbmodels.Attachment) AttachmentView {
	return AttachmentView{
		ID:          rec.ID,
		Name:        rec.Name,
		URL:         rec.URL,
		FileSize:    rec.FileSize,
		ContentType: rec.ContentType,
		UploadedAt:  rec.UploadedAt,
	}
}

func VacationRequestConvert(rec dbmodels.VacationRequest) VacationRequestView {
	result := VacationRequestView{
		ID:          rec.ID,
		StartDate:   rec.StartDate.Format(DateFormat),
		EndDate:     rec.EndDate.Format(DateFormat),
		Days:        rec.Days(),
		Type:        rec.Type,
		TypeName:    rec.Type.ToHuman(),
		Reason:      rec.Reason,
		Status:      rec.Status,
		StatusName:  rec.Status.ToHuman(),
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
		Attachments: make([]AttachmentView, 0, len(rec.Attachments)),
	}
	if rec.Employee != nil {
		employee := employeeapimodels.EmployeeShortConvert(*rec.Employee)
		result.Employee = &employee
	}
	for _, item := range rec.Attachments {
		result.Attachments = append(result.Attachments, AttachmentConvert(item))
	}
	return result
}
