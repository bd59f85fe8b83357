package dbmodels

import (
	"booking-backend/models"
	"time"
)

type VacationRequest struct {
	BaseModel
	StartDate   time.Time            `gorm:"type:date"`
	EndDate     time.Time            `gorm:"type:date"`
	Type        models.VacationType  `gorm:"type:varchar(20)"`
	Reason      string
	Status      models.RequestStatus `gorm:"type:varchar(20)"`
	EmployeeID  *string              `gorm:"index"`
	Employee    *Employee
	Attachments []Attachment `gorm:"foreignKey:VacationRequestID;constraint:OnDelete:CASCADE"`
}

// Days количество дней отпуска, обе даты включительно
func (v VacationRequest) Days() int {
	start := DateOnly(v.StartDate)
	end := DateOnly(v.EndDate)
	return int(end.Sub(start).Hours()/24) + 1
}

func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type Attachment struct {
	BaseModel
	Name              string `gorm:"type:varchar(255)"`
	URL               string `gorm:"type:varchar(2048)"`
	FileSize          int64
	ContentType       string `gorm:"type:varchar(100)"`
	UploadedAt        time.Time
	VacationRequestID string `gorm:"index"`
}
