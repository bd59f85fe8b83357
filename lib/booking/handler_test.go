package bookinghandler

import (
	"booking-backend/lib/notification"
	memorystore "booking-backend/lib/resource-store/memory"
	"booking-backend/lib/utils/apperr"
	"booking-backend/models"
	apimodels "booking-backend/models/api"
	bookingapimodels "booking-backend/models/api/booking"
	dbmodels "booking-backend/models/db"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type recordNotifier struct {
	mu   sync.Mutex
	sent []notification.Message
	fail bool
}

func (r *recordNotifier) Send(to, subject, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("smtp недоступен")
	}
	r.sent = append(r.sent, notification.Message{To: to, Subject: subject, Body: body})
	return nil
}

func (r *recordNotifier) messages() []notification.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notification.Message{}, r.sent...)
}

func (r *recordNotifier) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
}

type fixture struct {
	store    *memorystore.Store
	notifier *recordNotifier
	handler  Provider
	ownerID  string
	guestID  string
	freeRoom string
	hrRoom   string
}

func newFixture(t *testing.T) fixture {
	store := memorystore.NewInstance()
	stores := store.Stores()
	ownerID, err := stores.Employee.Create(dbmodels.Employee{Name: "Иван", Email: "ivan@example.com", Role: models.EmployeeRoleEmployee})
	require.NoError(t, err)
	guestID, err := stores.Employee.Create(dbmodels.Employee{Name: "Анна", Email: "anna@example.com", Role: models.EmployeeRoleEmployee})
	require.NoError(t, err)
	freeRoom, err := stores.MeetingRoom.Create(dbmodels.MeetingRoom{Name: "Альфа", Capacity: 6})
	require.NoError(t, err)
	hrRoom, err := stores.MeetingRoom.Create(dbmodels.MeetingRoom{Name: "Бета", Capacity: 20, RequiresApproval: true})
	require.NoError(t, err)
	notifier := &recordNotifier{}
	return fixture{
		store:    store,
		notifier: notifier,
		handler:  NewInstance(store, notifier, 5*time.Second),
		ownerID:  ownerID,
		guestID:  guestID,
		freeRoom: freeRoom,
		hrRoom:   hrRoom,
	}
}

var day = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func booking(roomID string, start, end time.Time) bookingapimodels.BookingRequestData {
	return bookingapimodels.BookingRequestData{
		StartTime:     start,
		EndTime:       end,
		Purpose:       "Встреча",
		MeetingRoomID: roomID,
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	t.Run(`пересечение отклоняется, касание допускается`, func(t *testing.T) {
		f := newFixture(t)
		a, err := f.handler.Create(ctx, f.ownerID, booking(f.freeRoom, at(10, 0), at(11, 0)))
		require.NoError(t, err)
		require.Equal(t, models.RequestStatusApproved, a.Status)

		_, err = f.handler.Create(ctx, f.ownerID, booking(f.freeRoom, at(10, 30), at(11, 30)))
		require.ErrorIs(t, err, apperr.ErrTimeOverlap)

		c, err := f.handler.Create(ctx, f.ownerID, booking(f.freeRoom, at(11, 0), at(12, 0)))
		require.NoError(t, err)
		require.Equal(t, models.RequestStatusApproved, c.Status)
	})
	t.Run(`статус зависит от политики переговорной`, func(t *testing.T) {
		f := newFixture(t)
		pending, err := f.handler.Create(ctx, f.ownerID, booking(f.hrRoom, at(10, 0), at(11, 0)))
		require.NoError(t, err)
		require.Equal(t, models.RequestStatusPending, pending.Status)
		sent := f.notifier.messages()
		require.Len(t, sent, 1)
		require.Equal(t, "ivan@example.com", sent[0].To)
		require.Equal(t, subjectPending, sent[0].Subject)

		f.notifier.reset()
		approved, err := f.handler.Create(ctx, f.ownerID, booking(f.freeRoom, at(10, 0), at(11, 0)))
		require.NoError(t, err)
		require.Equal(t, models.RequestStatusApproved, approved.Status)
		sent = f.notifier.messages()
		require.Len(t, sent, 1)
		require.Equal(t, subjectConfirmed, sent[0].Subject)
		require.Contains(t, sent[0].Body, "Альфа")
	})
	t.Run(`отклоненная бронь не занимает время`, func(t *testing.T) {
		f := newFixture(t)
		a, err := f.handler.Create(ctx, f.ownerID, booking(f.hrRoom, at(10, 0), at(11, 0)))
		require.NoError(t, err)
		status := string(models.RequestStatusRejected)
		_, err = f.handler.Update(ctx, a.ID, bookingapimodels.BookingRequestEditData{Status: &status})
		require.NoError(t, err)
		_, err = f.handler.Create(ctx, f.ownerID, booking(f.hrRoom, at(10, 0), at(11, 0)))
		require.NoError(t, err)
	})
	t.Run(`приглашенные получают уведомление`, func(t *testing.T) {
		f := newFixture(t)
		data := booking(f.freeRoom, at(10, 0), at(11, 0))
		data.InvitedUserIDs = []string{f.guestID, f.guestID, f.ownerID}
		item, err := f.handler.Create(ctx, f.ownerID, data)
		require.NoError(t, err)
		require.Len(t, item.InvitedUsers, 2)
		sent := f.notifier.messages()
		require.Len(t, sent, 2)
		require.Equal(t, "ivan@example.com", sent[0].To)
		require.Equal(t, "anna@example.com", sent[1].To)
	})
	t.Run(`ошибка уведомления не отменяет бронь`, func(t *testing.T) {
		f := newFixture(t)
		f.notifier.fail = true
		item, err := f.handler.Create(ctx, f.ownerID, booking(f.freeRoom, at(10, 0), at(11, 0)))
		require.NoError(t, err)
		_, err = f.handler.GetByID(item.ID)
		require.NoError(t, err)
	})
	t.Run(`ошибки входных данных`, func(t *testing.T) {
		f := newFixture(t)
		_, err := f.handler.Create(ctx, "unknown", booking(f.freeRoom, at(10, 0), at(11, 0)))
		require.ErrorIs(t, err, apperr.ErrNotFound)
		appErr, ok := apperr.As(err)
		require.True(t, ok)
		require.Equal(t, apperr.EntityEmployee, appErr.Entity)

		_, err = f.handler.Create(ctx, f.ownerID, booking("", at(10, 0), at(11, 0)))
		require.ErrorIs(t, err, apperr.ErrRoomRequired)
		require.ErrorIs(t, err, apperr.ErrInvalidRequest)

		_, err = f.handler.Create(ctx, f.ownerID, booking("unknown", at(10, 0), at(11, 0)))
		require.ErrorIs(t, err, &apperr.Error{Kind: apperr.KindNotFound, Entity: apperr.EntityMeetingRoom})

		data := booking(f.freeRoom, at(10, 0), at(11, 0))
		data.InvitedUserIDs = []string{"unknown"}
		_, err = f.handler.Create(ctx, f.ownerID, data)
		require.ErrorIs(t, err, &apperr.Error{Kind: apperr.KindNotFound, Entity: apperr.EntityEmployee})
		// неудачная попытка ничего не сохранила
		_, count, err := f.handler.List(bookingapimodels.BookingFilter{})
		require.NoError(t, err)
		require.Zero(t, count)
		require.Empty(t, f.notifier.messages())
	})
}

func TestConcurrentCreate(t *testing.T) {
	f := newFixture(t)
	const workers = 8
	wg := sync.WaitGroup{}
	results := make([]error, workers)
	start := make(chan struct{})
	for n := 0; n < workers; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			<-start
			_, results[n] = f.handler.Create(context.Background(), f.ownerID, booking(f.freeRoom, at(10, 0), at(11, 0)))
		}(n)
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, apperr.ErrTimeOverlap)
	}
	require.Equal(t, 1, succeeded)
	_, count, err := f.handler.List(bookingapimodels.BookingFilter{MeetingRoomID: f.freeRoom})
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	t.Run(`смена статуса с уведомлением о прежнем статусе`, func(t *testing.T) {
		f := newFixture(t)
		data := booking(f.hrRoom, at(10, 0), at(11, 0))
		data.InvitedUserIDs = []string{f.guestID}
		item, err := f.handler.Create(ctx, f.ownerID, data)
		require.NoError(t, err)
		f.notifier.reset()

		status := "approved"
		updated, err := f.handler.Update(ctx, item.ID, bookingapimodels.BookingRequestEditData{Status: &status})
		require.NoError(t, err)
		require.Equal(t, models.RequestStatusApproved, updated.Status)
		sent := f.notifier.messages()
		require.Len(t, sent, 2)
		require.Equal(t, subjectApproved, sent[0].Subject)
		require.Contains(t, sent[0].Body, models.RequestStatusPending.ToHuman())
		require.Contains(t, sent[0].Body, models.RequestStatusApproved.ToHuman())
	})
	t.Run(`без смены статуса уведомлений нет`, func(t *testing.T) {
		f := newFixture(t)
		item, err := f.handler.Create(ctx, f.ownerID, booking(f.freeRoom, at(10, 0), at(11, 0)))
		require.NoError(t, err)
		f.notifier.reset()
		purpose := "Ретроспектива"
		updated, err := f.handler.Update(ctx, item.ID, bookingapimodels.BookingRequestEditData{Purpose: &purpose})
		require.NoError(t, err)
		require.Equal(t, purpose, updated.Purpose)
		require.Empty(t, f.notifier.messages())
	})
	t.Run(`из итогового статуса переход запрещен`, func(t *testing.T) {
		f := newFixture(t)
		item, err := f.handler.Create(ctx, f.ownerID, booking(f.freeRoom, at(10, 0), at(11, 0)))
		require.NoError(t, err)
		status := string(models.RequestStatusPending)
		_, err = f.handler.Update(ctx, item.ID, bookingapimodels.BookingRequestEditData{Status: &status})
		require.ErrorIs(t, err, apperr.ErrStatusTransition)
	})
	t.Run(`перенос на занятое время отклоняется`, func(t *testing.T) {
		f := newFixture(t)
		_, err := f.handler.Create(ctx, f.ownerID, booking(f.freeRoom, at(10, 0), at(11, 0)))
		require.NoError(t, err)
		b, err := f.handler.Create(ctx, f.ownerID, booking(f.freeRoom, at(12, 0), at(13, 0)))
		require.NoError(t, err)

		start, end := at(10, 30), at(11, 30)
		_, err = f.handler.Update(ctx, b.ID, bookingapimodels.BookingRequestEditData{StartTime: &start, EndTime: &end})
		require.ErrorIs(t, err, apperr.ErrTimeOverlap)
		stored, err := f.handler.GetByID(b.ID)
		require.NoError(t, err)
		require.True(t, stored.StartTime.Equal(at(12, 0)))

		// сдвиг внутри своего же интервала допустим
		start, end = at(12, 30), at(13, 30)
		_, err = f.handler.Update(ctx, b.ID, bookingapimodels.BookingRequestEditData{StartTime: &start, EndTime: &end})
		require.NoError(t, err)
	})
	t.Run(`одна граница не может перевернуть интервал`, func(t *testing.T) {
		f := newFixture(t)
		item, err := f.handler.Create(ctx, f.ownerID, booking(f.freeRoom, at(10, 0), at(11, 0)))
		require.NoError(t, err)

		end := at(9, 0)
		_, err = f.handler.Update(ctx, item.ID, bookingapimodels.BookingRequestEditData{EndTime: &end})
		require.ErrorIs(t, err, apperr.ErrInvalidInterval)
		start := at(11, 0)
		_, err = f.handler.Update(ctx, item.ID, bookingapimodels.BookingRequestEditData{StartTime: &start})
		require.ErrorIs(t, err, apperr.ErrInvalidInterval)

		stored, err := f.handler.GetByID(item.ID)
		require.NoError(t, err)
		require.True(t, stored.StartTime.Equal(at(10, 0)))
		require.True(t, stored.EndTime.Equal(at(11, 0)))
		_, err = f.handler.Create(ctx, f.guestID, booking(f.freeRoom, at(9, 30), at(10, 30)))
		require.ErrorIs(t, err, apperr.ErrTimeOverlap)

		// сдвиг одной границы с сохранением порядка допустим
		end = at(11, 30)
		updated, err := f.handler.Update(ctx, item.ID, bookingapimodels.BookingRequestEditData{EndTime: &end})
		require.NoError(t, err)
		require.True(t, updated.EndTime.Equal(at(11, 30)))
	})
	t.Run(`перенос в занятую переговорную отклоняется`, func(t *testing.T) {
		f := newFixture(t)
		_, err := f.handler.Create(ctx, f.ownerID, booking(f.freeRoom, at(10, 0), at(11, 0)))
		require.NoError(t, err)
		b, err := f.handler.Create(ctx, f.ownerID, booking(f.hrRoom, at(10, 0), at(11, 0)))
		require.NoError(t, err)
		_, err = f.handler.Update(ctx, b.ID, bookingapimodels.BookingRequestEditData{MeetingRoomID: &f.freeRoom})
		require.ErrorIs(t, err, apperr.ErrTimeOverlap)
	})
	t.Run(`смена участников`, func(t *testing.T) {
		f := newFixture(t)
		item, err := f.handler.Create(ctx, f.ownerID, booking(f.freeRoom, at(10, 0), at(11, 0)))
		require.NoError(t, err)
		invited := []string{f.guestID}
		updated, err := f.handler.Update(ctx, item.ID, bookingapimodels.BookingRequestEditData{
			EmployeeID:     &f.guestID,
			InvitedUserIDs: &invited,
		})
		require.NoError(t, err)
		require.Equal(t, f.guestID, updated.Employee.ID)
		require.Len(t, updated.InvitedUsers, 1)

		unknown := "unknown"
		_, err = f.handler.Update(ctx, item.ID, bookingapimodels.BookingRequestEditData{EmployeeID: &unknown})
		require.ErrorIs(t, err, &apperr.Error{Kind: apperr.KindNotFound, Entity: apperr.EntityEmployee})
		_, err = f.handler.Update(ctx, item.ID, bookingapimodels.BookingRequestEditData{MeetingRoomID: &unknown})
		require.ErrorIs(t, err, &apperr.Error{Kind: apperr.KindNotFound, Entity: apperr.EntityMeetingRoom})
	})
	t.Run(`бронь не найдена`, func(t *testing.T) {
		f := newFixture(t)
		_, err := f.handler.Update(ctx, "unknown", bookingapimodels.BookingRequestEditData{})
		require.ErrorIs(t, err, &apperr.Error{Kind: apperr.KindNotFound, Entity: apperr.EntityBookingRequest})
	})
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	data := booking(f.freeRoom, at(10, 0), at(11, 0))
	data.InvitedUserIDs = []string{f.guestID}
	item, err := f.handler.Create(ctx, f.ownerID, data)
	require.NoError(t, err)
	_, err = f.handler.Create(ctx, f.guestID, booking(f.freeRoom, at(12, 0), at(13, 0)))
	require.NoError(t, err)

	t.Run(`мои брони`, func(t *testing.T) {
		list, count, err := f.handler.ListMy(f.ownerID, apimodels.Pagination{})
		require.NoError(t, err)
		require.EqualValues(t, 1, count)
		require.Equal(t, item.ID, list[0].ID)
	})
	t.Run(`мои приглашения`, func(t *testing.T) {
		list, count, err := f.handler.ListInvitations(f.guestID, apimodels.Pagination{})
		require.NoError(t, err)
		require.EqualValues(t, 1, count)
		require.Equal(t, item.ID, list[0].ID)
	})
	t.Run(`выгрузки`, func(t *testing.T) {
		buf, err := f.handler.ExportXls(bookingapimodels.BookingFilter{})
		require.NoError(t, err)
		require.NotZero(t, buf.Len())
		body, err := f.handler.GetIcs(item.ID)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(string(body), "BEGIN:VCALENDAR"))
		_, err = f.handler.GetIcs("unknown")
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})
	t.Run(`повторное удаление`, func(t *testing.T) {
		require.NoError(t, f.handler.Delete(item.ID))
		require.NoError(t, f.handler.Delete(item.ID))
		_, err := f.handler.GetByID(item.ID)
		require.ErrorIs(t, err, apperr.ErrNotFound)
		_, count, err := f.handler.ListInvitations(f.guestID, apimodels.Pagination{})
		require.NoError(t, err)
		require.Zero(t, count)
	})
}
