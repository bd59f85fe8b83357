package dbmodels

import (
	"booking-backend/models"
	"time"
)

type BookingRequest struct {
	BaseModel
	StartTime     time.Time
	EndTime       time.Time
	Status        models.RequestStatus `gorm:"type:varchar(20)"`
	Purpose       string               `gorm:"type:varchar(500)"`
	EmployeeID    string               `gorm:"index"`
	Employee      *Employee
	MeetingRoomID string `gorm:"index"`
	MeetingRoom   *MeetingRoom
	InvitedUsers  []Employee `gorm:"many2many:booking_request_invites;"`
}

// Overlaps пересечение полуинтервалов [start, end): касание границ пересечением не считается
func (b BookingRequest) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

// BlocksRoom отклоненная бронь переговорную не занимает
func (b BookingRequest) BlocksRoom() bool {
	return b.Status != models.RequestStatusRejected
}

func (b BookingRequest) InvitedUserIDs() []string {
	result := make([]string, 0, len(b.InvitedUsers))
	for _, user := range b.InvitedUsers {
		result = append(result, user.ID)
	}
	return result
}

// BookingInvite строка таблицы приглашенных, изменяется только явно
type BookingInvite struct {
	BookingRequestID string `gorm:"primaryKey"`
	EmployeeID       string `gorm:"primaryKey"`
}

func (BookingInvite) TableName() string {
	return "booking_request_invites"
}
