package equipmentprovider

import (
	memorystore "booking-backend/lib/resource-store/memory"
	"booking-backend/lib/utils/apperr"
	dictapimodels "booking-backend/models/api/dict"
	dbmodels "booking-backend/models/db"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEquipment(t *testing.T) {
	store := memorystore.NewInstance()
	handler := NewInstance(store)

	id, err := handler.Create(dictapimodels.EquipmentData{Name: "Проектор", IsAvailable: true})
	require.NoError(t, err)
	_, err = handler.Create(dictapimodels.EquipmentData{Name: "проектор"})
	require.ErrorIs(t, err, &apperr.Error{Kind: apperr.KindConflict, Key: apperr.KeyDuplicate})

	roomID, err := store.Stores().MeetingRoom.Create(dbmodels.MeetingRoom{
		Name:      "Альфа",
		Capacity:  4,
		Equipment: []dbmodels.Equipment{{BaseModel: dbmodels.BaseModel{ID: id}}},
	})
	require.NoError(t, err)

	list, err := handler.List()
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, handler.Delete(id))
	require.NoError(t, handler.Delete(id))
	room, err := store.Stores().MeetingRoom.GetByID(roomID)
	require.NoError(t, err)
	require.Empty(t, room.Equipment)
}
