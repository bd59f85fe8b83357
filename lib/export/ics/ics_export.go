package icsexport

import (
	"booking-backend/models"
	dbmodels "booking-backend/models/db"
	"fmt"

	ics "github.com/arran4/golang-ical"
)

const productID = "-//booking-backend//meeting room booking//RU"

// BookingEvent приглашение на встречу в формате iCalendar
func BookingEvent(rec dbmodels.BookingRequest) []byte {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)
	cal.SetProductId(productID)

	event := cal.AddEvent(rec.ID + "@booking-backend")
	event.SetDtStampTime(rec.UpdatedAt.UTC())
	event.SetCreatedTime(rec.CreatedAt.UTC())
	event.SetModifiedAt(rec.UpdatedAt.UTC())
	event.SetStartAt(rec.StartTime.UTC())
	event.SetEndAt(rec.EndTime.UTC())
	event.SetStatus(eventStatus(rec.Status))

	summary := "Встреча"
	if rec.Purpose != "" {
		summary = rec.Purpose
	}
	event.SetSummary(summary)
	if rec.MeetingRoom != nil {
		event.SetLocation(rec.MeetingRoom.Name)
		event.SetDescription(fmt.Sprintf("Переговорная: %s. Статус брони: %s", rec.MeetingRoom.Name, rec.Status.ToHuman()))
	}
	if rec.Employee != nil {
		event.SetOrganizer("mailto:"+rec.Employee.Email, ics.WithCN(rec.Employee.Name))
	}
	for _, user := range rec.InvitedUsers {
		event.AddAttendee("mailto:"+user.Email,
			ics.WithCN(user.Name),
			ics.CalendarUserTypeIndividual,
			ics.ParticipationStatusNeedsAction,
			ics.ParticipationRoleReqParticipant,
			ics.WithRSVP(true),
		)
	}
	return []byte(cal.Serialize())
}

func eventStatus(status models.RequestStatus) ics.ObjectStatus {
	switch status {
	case models.RequestStatusApproved:
		return ics.ObjectStatusConfirmed
	case models.RequestStatusRejected:
		return ics.ObjectStatusCancelled
	}
	return ics.ObjectStatusTentative
}
