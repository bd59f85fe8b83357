package equipmentprovider

import (
	resourcestore "booking-backend/lib/resource-store"
	"booking-backend/lib/utils/apperr"
	initchecker "booking-backend/lib/utils/init-checker"
	dictapimodels "booking-backend/models/api/dict"
	dbmodels "booking-backend/models/db"
	"strings"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(request dictapimodels.EquipmentData) (id string, err error)
	List() (list []dictapimodels.EquipmentView, err error)
	Delete(id string) error
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(resourcestore.Instance)
}

func NewInstance(store resourcestore.Provider) Provider {
	instance := impl{
		store: store,
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	return instance
}

type impl struct {
	store resourcestore.Provider
}

func (i impl) Create(request dictapimodels.EquipmentData) (id string, err error) {
	name := strings.TrimSpace(request.Name)
	logger := log.WithField("name", name)
	err = i.store.Transaction(func(stores resourcestore.Stores) error {
		rec, err := stores.Equipment.FindByName(name)
		if err != nil {
			return err
		}
		if rec != nil {
			return apperr.Conflict(apperr.EntityEquipment, apperr.KeyDuplicate, "оборудование с таким названием уже существует")
		}
		id, err = stores.Equipment.Create(dbmodels.Equipment{
			Name:        name,
			Description: request.Description,
			IsAvailable: request.IsAvailable,
		})
		return err
	})
	if err != nil {
		return "", err
	}
	logger.
		WithField("rec_id", id).
		Info("Создано оборудование")
	return id, nil
}

func (i impl) List() (list []dictapimodels.EquipmentView, err error) {
	recList, err := i.store.Stores().Equipment.List()
	if err != nil {
		return nil, err
	}
	list = make([]dictapimodels.EquipmentView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.EquipmentConvert(rec))
	}
	return list, nil
}

func (i impl) Delete(id string) error {
	err := i.store.Transaction(func(stores resourcestore.Stores) error {
		return stores.Equipment.Delete(id)
	})
	if err != nil {
		return err
	}
	log.WithField("rec_id", id).Info("Оборудование удалено")
	return nil
}
