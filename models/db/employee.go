package dbmodels

import (
	"booking-backend/models"
)

type Employee struct {
	BaseModel
	Name            string              `gorm:"type:varchar(100)"`
	Email           string              `gorm:"type:varchar(254);uniqueIndex"`
	Role            models.EmployeeRole `gorm:"type:varchar(50)"`
	VacationBalance int                 `gorm:"check:vacation_balance >= 0"`
	Login           string              `gorm:"type:varchar(150)"`
	PasswordHash    string              `gorm:"type:varchar(128)"`
}
