package memorystore

import (
	resourcestore "booking-backend/lib/resource-store"
	"booking-backend/lib/utils/apperr"
	"booking-backend/models"
	apimodels "booking-backend/models/api"
	bookingapimodels "booking-backend/models/api/booking"
	dbmodels "booking-backend/models/db"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestTransaction(t *testing.T) {
	t.Run(`фиксация`, func(t *testing.T) {
		store := NewInstance()
		var id string
		err := store.Transaction(func(stores resourcestore.Stores) (err error) {
			id, err = stores.Employee.Create(dbmodels.Employee{Name: "Иван", Email: "ivan@example.com", VacationBalance: 5})
			return err
		})
		require.NoError(t, err)
		rec, err := store.Stores().Employee.GetByID(id)
		require.NoError(t, err)
		require.NotNil(t, rec)
		require.Equal(t, 5, rec.VacationBalance)
		require.False(t, rec.CreatedAt.IsZero())
	})
	t.Run(`откат при ошибке`, func(t *testing.T) {
		store := NewInstance()
		id, err := store.Stores().Employee.Create(dbmodels.Employee{Name: "Иван", Email: "ivan@example.com", VacationBalance: 5})
		require.NoError(t, err)
		testErr := errors.New("test")
		err = store.Transaction(func(stores resourcestore.Stores) error {
			if err := stores.Employee.UpdateBalance(id, 1); err != nil {
				return err
			}
			return testErr
		})
		require.ErrorIs(t, err, testErr)
		rec, err := store.Stores().Employee.GetByID(id)
		require.NoError(t, err)
		require.Equal(t, 5, rec.VacationBalance)
	})
	t.Run(`отрицательный остаток запрещен`, func(t *testing.T) {
		store := NewInstance()
		id, err := store.Stores().Employee.Create(dbmodels.Employee{Name: "Иван", Email: "ivan@example.com"})
		require.NoError(t, err)
		require.Error(t, store.Stores().Employee.UpdateBalance(id, -1))
	})
	t.Run(`уникальная почта`, func(t *testing.T) {
		store := NewInstance()
		_, err := store.Stores().Employee.Create(dbmodels.Employee{Name: "Иван", Email: "ivan@example.com"})
		require.NoError(t, err)
		_, err = store.Stores().Employee.Create(dbmodels.Employee{Name: "Иван", Email: "IVAN@example.com"})
		require.Error(t, err)
	})
}

func TestBookingStore(t *testing.T) {
	store := NewInstance()
	stores := store.Stores()
	employeeID, err := stores.Employee.Create(dbmodels.Employee{Name: "Иван", Email: "ivan@example.com"})
	require.NoError(t, err)
	guestID, err := stores.Employee.Create(dbmodels.Employee{Name: "Петр", Email: "petr@example.com"})
	require.NoError(t, err)
	roomID, err := stores.MeetingRoom.Create(dbmodels.MeetingRoom{Name: "Альфа", Capacity: 4})
	require.NoError(t, err)

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	at := func(hour, minute int) time.Time {
		return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	}
	firstID, err := stores.Booking.Create(dbmodels.BookingRequest{
		StartTime:     at(10, 0),
		EndTime:       at(11, 0),
		Status:        models.RequestStatusApproved,
		EmployeeID:    employeeID,
		MeetingRoomID: roomID,
	})
	require.NoError(t, err)
	require.NoError(t, stores.Booking.ReplaceInvites(firstID, []string{guestID, guestID}))

	t.Run(`пересечение по полуинтервалу`, func(t *testing.T) {
		exist, err := stores.Booking.ExistsOverlap(roomID, at(10, 30), at(11, 30), "")
		require.NoError(t, err)
		require.True(t, exist)
		exist, err = stores.Booking.ExistsOverlap(roomID, at(11, 0), at(12, 0), "")
		require.NoError(t, err)
		require.False(t, exist)
		exist, err = stores.Booking.ExistsOverlap(roomID, at(10, 30), at(11, 30), firstID)
		require.NoError(t, err)
		require.False(t, exist)
	})
	t.Run(`ограничение на запись пересекающейся брони`, func(t *testing.T) {
		_, err := stores.Booking.Create(dbmodels.BookingRequest{
			StartTime:     at(10, 30),
			EndTime:       at(11, 30),
			Status:        models.RequestStatusPending,
			EmployeeID:    employeeID,
			MeetingRoomID: roomID,
		})
		require.ErrorIs(t, err, apperr.ErrTimeOverlap)
		_, err = stores.Booking.Create(dbmodels.BookingRequest{
			StartTime:     at(10, 30),
			EndTime:       at(11, 30),
			Status:        models.RequestStatusRejected,
			EmployeeID:    employeeID,
			MeetingRoomID: roomID,
		})
		require.NoError(t, err)
	})
	t.Run(`подгрузка связей`, func(t *testing.T) {
		rec, err := stores.Booking.GetByID(firstID)
		require.NoError(t, err)
		require.NotNil(t, rec.Employee)
		require.NotNil(t, rec.MeetingRoom)
		require.Equal(t, []string{guestID}, rec.InvitedUserIDs())
	})
	t.Run(`фильтр по приглашенному`, func(t *testing.T) {
		list, err := stores.Booking.List(bookingapimodels.BookingFilter{InvitedUserID: guestID})
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, firstID, list[0].ID)
		count, err := stores.Booking.CountByEmployee(guestID)
		require.NoError(t, err)
		require.EqualValues(t, 1, count)
	})
	t.Run(`постраничный вывод`, func(t *testing.T) {
		list, err := stores.Booking.List(bookingapimodels.BookingFilter{
			Pagination: apimodels.Pagination{Page: 2, Limit: 1},
		})
		require.NoError(t, err)
		require.Len(t, list, 1)
		count, err := stores.Booking.ListCount(bookingapimodels.BookingFilter{})
		require.NoError(t, err)
		require.EqualValues(t, 2, count)
	})
	t.Run(`удаление отсутствующей записи`, func(t *testing.T) {
		require.NoError(t, stores.Booking.Delete("unknown"))
	})
}
