package bookingapimodels

import (
	"booking-backend/models"
	apimodels "booking-backend/models/api"
	employeeapimodels "booking-backend/models/api/employee"
	roomapimodels "booking-backend/models/api/room"
	dbmodels "booking-backend/models/db"
	"time"

	"github.com/pkg/errors"
)

const maxPurposeLen = 500

type BookingRequestData struct {
	StartTime      time.Time `json:"start_time"`       // начало, включительно
	EndTime        time.Time `json:"end_time"`         // окончание, не включительно
	Purpose        string    `json:"purpose"`          // цель встречи
	MeetingRoomID  string    `json:"meeting_room_id"`  // переговорная
	InvitedUserIDs []string  `json:"invited_user_ids"` // приглашенные сотрудники
}

func (b BookingRequestData) Validate() error {
	if b.StartTime.IsZero() || b.EndTime.IsZero() {
		return errors.New("не указано время бронирования")
	}
	if !b.StartTime.Before(b.EndTime) {
		return errors.New("время начала должно быть раньше времени окончания")
	}
	if len([]rune(b.Purpose)) > maxPurposeLen {
		return errors.New("цель встречи длиннее 500 символов")
	}
	return nil
}

// BookingRequestEditData изменяются только переданные поля
type BookingRequestEditData struct {
	StartTime      *time.Time `json:"start_time"`
	EndTime        *time.Time `json:"end_time"`
	Purpose        *string    `json:"purpose"`
	Status         *string    `json:"status"`
	EmployeeID     *string    `json:"employee_id"`
	MeetingRoomID  *string    `json:"meeting_room_id"`
	InvitedUserIDs *[]string  `json:"invited_user_ids"`
}

func (b BookingRequestEditData) Validate() error {
	if b.StartTime != nil && b.EndTime != nil && !b.StartTime.Before(*b.EndTime) {
		return errors.New("время начала должно быть раньше времени окончания")
	}
	if b.Purpose != nil && len([]rune(*b.Purpose)) > maxPurposeLen {
		return errors.New("цель встречи длиннее 500 символов")
	}
	if b.Status != nil {
		if _, err := models.ParseRequestStatus(*b.Status); err != nil {
			return err
		}
	}
	return nil
}

type BookingRequestView struct {
	ID           string                                `json:"id"`
	StartTime    time.Time                             `json:"start_time"`
	EndTime      time.Time                             `json:"end_time"`
	Status       models.RequestStatus                  `json:"status"`
	StatusName   string                                `json:"status_name"`
	CreatedAt    time.Time                             `json:"created_at"`
	UpdatedAt    time.Time                             `json:"updated_at"`
	Purpose      string                                `json:"purpose"`
	Employee     *employeeapimodels.EmployeeShortView  `json:"employee"`
	MeetingRoom  *roomapimodels.MeetingRoomShortView   `json:"meeting_room"`
	InvitedUsers []employeeapimodels.EmployeeShortView `json:"invited_users"`
}

type BookingFilter struct {
	apimodels.Pagination
	EmployeeID    string                 `json:"employee_id"`     // владелец брони
	MeetingRoomID string                 `json:"meeting_room_id"` // переговорная
	InvitedUserID string                 `json:"invited_user_id"` // приглашенный сотрудник
	Statuses      []models.RequestStatus `json:"statuses"`
	From          *time.Time             `json:"from"` // брони, пересекающие окно [from, to)
	To            *time.Time             `json:"to"`
}

func (f BookingFilter) Validate() error {
	for _, status := range f.Statuses {
		if err := status.Validate(); err != nil {
			return err
		}
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return errors.New("некорректный период фильтра")
	}
	return nil
}

func BookingRequestConvert(rec dbmodels.BookingRequest) BookingRequestView {
	result := BookingRequestView{
		ID:           rec.ID,
		StartTime:    rec.StartTime,
		EndTime:      rec.EndTime,
		Status:       rec.Status,
		StatusName:   rec.Status.ToHuman(),
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
		Purpose:      rec.Purpose,
		InvitedUsers: make([]employeeapimodels.EmployeeShortView, 0, len(rec.InvitedUsers)),
	}
	if rec.Employee != nil {
		employee := employeeapimodels.EmployeeShortConvert(*rec.Employee)
		result.Employee = &employee
	}
	if rec.MeetingRoom != nil {
		room := roomapimodels.MeetingRoomShortConvert(*rec.MeetingRoom)
		result.MeetingRoom = &room
	}
	for _, user := range rec.InvitedUsers {
		result.InvitedUsers = append(result.InvitedUsers, employeeapimodels.EmployeeShortConvert(user))
	}
	return result
}
