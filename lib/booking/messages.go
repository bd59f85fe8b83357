package bookinghandler

import (
	"booking-backend/lib/notification"
	"booking-backend/models"
	dbmodels "booking-backend/models/db"
	"fmt"
	"strings"
)

const timeFormat = "02.01.2006 15:04 MST"

const (
	subjectConfirmed = "Бронь подтверждена"
	subjectPending   = "Бронь ожидает согласования"
	subjectApproved  = "Бронь согласована"
	subjectRejected  = "Бронь отклонена"
)

func createdMessages(rec dbmodels.BookingRequest) []notification.Message {
	subject := subjectConfirmed
	header := "Бронирование переговорной подтверждено."
	if rec.Status == models.RequestStatusPending {
		subject = subjectPending
		header = "Заявка на бронирование переговорной отправлена и ожидает согласования."
	}
	return recipients(rec, subject, header+"\n"+describe(rec))
}

func decisionMessages(rec dbmodels.BookingRequest, prevStatus models.RequestStatus) []notification.Message {
	subject := subjectApproved
	if rec.Status == models.RequestStatusRejected {
		subject = subjectRejected
	}
	body := fmt.Sprintf("Статус брони изменен: %s -> %s.\n%s",
		prevStatus.ToHuman(), rec.Status.ToHuman(), describe(rec))
	return recipients(rec, subject, body)
}

// recipients организатор первым, затем приглашенные
func recipients(rec dbmodels.BookingRequest, subject, body string) []notification.Message {
	messages := make([]notification.Message, 0, len(rec.InvitedUsers)+1)
	if rec.Employee != nil {
		messages = append(messages, notification.Message{To: rec.Employee.Email, Subject: subject, Body: body})
	}
	for _, user := range rec.InvitedUsers {
		messages = append(messages, notification.Message{To: user.Email, Subject: subject, Body: body})
	}
	return messages
}

func describe(rec dbmodels.BookingRequest) string {
	lines := []string{}
	if rec.MeetingRoom != nil {
		lines = append(lines, "Переговорная: "+rec.MeetingRoom.Name)
	}
	lines = append(lines, fmt.Sprintf("Время: %s - %s", rec.StartTime.Format(timeFormat), rec.EndTime.Format(timeFormat)))
	if rec.Purpose != "" {
		lines = append(lines, "Цель: "+rec.Purpose)
	}
	if rec.Employee != nil {
		lines = append(lines, "Организатор: "+rec.Employee.Name)
	}
	return strings.Join(lines, "\n")
}
