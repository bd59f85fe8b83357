package meetingroomhandler

import (
	memorystore "booking-backend/lib/resource-store/memory"
	"booking-backend/lib/utils/apperr"
	"booking-backend/models"
	roomapimodels "booking-backend/models/api/room"
	dbmodels "booking-backend/models/db"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMeetingRoom(t *testing.T) {
	store := memorystore.NewInstance()
	handler := NewInstance(store, time.Minute)
	projectorID, err := store.Stores().Equipment.Create(dbmodels.Equipment{Name: "Проектор", IsAvailable: true})
	require.NoError(t, err)

	item, err := handler.Create(roomapimodels.MeetingRoomData{
		Name:         "Альфа",
		Capacity:     8,
		EquipmentIDs: []string{projectorID, projectorID},
	})
	require.NoError(t, err)
	require.Len(t, item.Equipment, 1)

	t.Run(`неизвестное оборудование`, func(t *testing.T) {
		_, err := handler.Create(roomapimodels.MeetingRoomData{
			Name:         "Бета",
			Capacity:     8,
			EquipmentIDs: []string{"unknown"},
		})
		require.ErrorIs(t, err, &apperr.Error{Kind: apperr.KindNotFound, Entity: apperr.EntityEquipment})
	})
	t.Run(`обновление сбрасывает кэш`, func(t *testing.T) {
		cached, err := handler.GetByID(item.ID)
		require.NoError(t, err)
		require.False(t, cached.RequiresApproval)

		updated, err := handler.Update(item.ID, roomapimodels.MeetingRoomData{
			Name:             "Альфа",
			Capacity:         10,
			RequiresApproval: true,
		})
		require.NoError(t, err)
		require.True(t, updated.RequiresApproval)
		require.Equal(t, 10, updated.Capacity)
		require.Empty(t, updated.Equipment)
	})
	t.Run(`фильтр`, func(t *testing.T) {
		approval := true
		list, count, err := handler.List(roomapimodels.MeetingRoomFilter{RequiresApproval: &approval, MinCapacity: 10})
		require.NoError(t, err)
		require.EqualValues(t, 1, count)
		require.Equal(t, item.ID, list[0].ID)
	})
	t.Run(`удаление при наличии броней`, func(t *testing.T) {
		bookingID, err := store.Stores().Booking.Create(dbmodels.BookingRequest{
			StartTime:     time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			EndTime:       time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC),
			Status:        models.RequestStatusApproved,
			MeetingRoomID: item.ID,
		})
		require.NoError(t, err)
		err = handler.Delete(item.ID)
		require.ErrorIs(t, err, &apperr.Error{Kind: apperr.KindConflict, Key: apperr.KeyReferenced})

		require.NoError(t, store.Stores().Booking.Delete(bookingID))
		require.NoError(t, handler.Delete(item.ID))
		_, err = handler.GetByID(item.ID)
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})
	t.Run(`переговорная не найдена`, func(t *testing.T) {
		_, err := handler.Update("unknown", roomapimodels.MeetingRoomData{Name: "X", Capacity: 1})
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
