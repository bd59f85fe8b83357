package meetingroomhandler

import (
	"booking-backend/config"
	resourcestore "booking-backend/lib/resource-store"
	"booking-backend/lib/utils/apperr"
	initchecker "booking-backend/lib/utils/init-checker"
	roomapimodels "booking-backend/models/api/room"
	dbmodels "booking-backend/models/db"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(data roomapimodels.MeetingRoomData) (item roomapimodels.MeetingRoomView, err error)
	Update(id string, data roomapimodels.MeetingRoomData) (item roomapimodels.MeetingRoomView, err error)
	GetByID(id string) (item roomapimodels.MeetingRoomView, err error)
	List(filter roomapimodels.MeetingRoomFilter) (list []roomapimodels.MeetingRoomView, rowCount int64, err error)
	Delete(id string) error
}

var Instance Provider

const cacheKeyPattern string = "meeting-room:%v"

func NewHandler() {
	Instance = NewInstance(resourcestore.Instance, time.Duration(config.Conf.Booking.RoomCacheTTLSec)*time.Second)
}

func NewInstance(store resourcestore.Provider, cacheTTL time.Duration) Provider {
	instance := impl{
		store: store,
		cache: cache.New(cacheTTL, 2*cacheTTL),
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	return instance
}

type impl struct {
	store resourcestore.Provider
	cache *cache.Cache
}

func getCacheKey(id string) string {
	return fmt.Sprintf(cacheKeyPattern, id)
}

func (i impl) Create(data roomapimodels.MeetingRoomData) (item roomapimodels.MeetingRoomView, err error) {
	var recID string
	err = i.store.Transaction(func(stores resourcestore.Stores) error {
		equipment, err := resolveEquipment(stores, data.EquipmentIDs)
		if err != nil {
			return err
		}
		recID, err = stores.MeetingRoom.Create(dbmodels.MeetingRoom{
			Name:             strings.TrimSpace(data.Name),
			Capacity:         data.Capacity,
			RequiresApproval: data.RequiresApproval,
			Equipment:        equipment,
		})
		return err
	})
	if err != nil {
		return item, err
	}
	log.
		WithField("rec_id", recID).
		Info("Создана переговорная")
	return i.GetByID(recID)
}

func (i impl) Update(id string, data roomapimodels.MeetingRoomData) (item roomapimodels.MeetingRoomView, err error) {
	err = i.store.Transaction(func(stores resourcestore.Stores) error {
		rec, err := stores.MeetingRoom.GetForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return apperr.NotFound(apperr.EntityMeetingRoom, "переговорная не найдена")
		}
		equipment, err := resolveEquipment(stores, data.EquipmentIDs)
		if err != nil {
			return err
		}
		rec.Name = strings.TrimSpace(data.Name)
		rec.Capacity = data.Capacity
		rec.RequiresApproval = data.RequiresApproval
		rec.Equipment = equipment
		return stores.MeetingRoom.Save(*rec)
	})
	i.cache.Delete(getCacheKey(id))
	if err != nil {
		return item, err
	}
	log.WithField("rec_id", id).Info("Переговорная обновлена")
	return i.GetByID(id)
}

func (i impl) GetByID(id string) (item roomapimodels.MeetingRoomView, err error) {
	cacheKey := getCacheKey(id)
	if cacheValue, ok := i.cache.Get(cacheKey); ok {
		return cacheValue.(roomapimodels.MeetingRoomView), nil
	}
	rec, err := i.store.Stores().MeetingRoom.GetByID(id)
	if err != nil {
		return item, err
	}
	if rec == nil {
		return item, apperr.NotFound(apperr.EntityMeetingRoom, "переговорная не найдена")
	}
	item = roomapimodels.MeetingRoomConvert(*rec)
	i.cache.SetDefault(cacheKey, item)
	return item, nil
}

func (i impl) List(filter roomapimodels.MeetingRoomFilter) (list []roomapimodels.MeetingRoomView, rowCount int64, err error) {
	store := i.store.Stores().MeetingRoom
	rowCount, err = store.ListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	list = make([]roomapimodels.MeetingRoomView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, roomapimodels.MeetingRoomConvert(rec))
	}
	return list, rowCount, nil
}

// Delete переговорную с бронями удалить нельзя
func (i impl) Delete(id string) error {
	err := i.store.Transaction(func(stores resourcestore.Stores) error {
		count, err := stores.Booking.CountByRoom(id)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflict(apperr.EntityMeetingRoom, apperr.KeyReferenced,
				"у переговорной есть брони, удаление невозможно")
		}
		return stores.MeetingRoom.Delete(id)
	})
	i.cache.Delete(getCacheKey(id))
	if err != nil {
		return err
	}
	log.WithField("rec_id", id).Info("Переговорная удалена")
	return nil
}

func resolveEquipment(stores resourcestore.Stores, ids []string) ([]dbmodels.Equipment, error) {
	uniqIDs := []string{}
	seen := map[string]bool{}
	for _, id := range ids {
		if id != "" && !seen[id] {
			seen[id] = true
			uniqIDs = append(uniqIDs, id)
		}
	}
	list, err := stores.Equipment.GetByIDs(uniqIDs)
	if err != nil {
		return nil, err
	}
	if len(list) != len(uniqIDs) {
		return nil, apperr.NotFound(apperr.EntityEquipment, "оборудование не найдено")
	}
	return list, nil
}
