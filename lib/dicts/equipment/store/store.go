package equipmentstore

import (
	dbmodels "booking-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Equipment) (id string, err error)
	GetByIDs(ids []string) (list []dbmodels.Equipment, err error)
	FindByName(name string) (rec *dbmodels.Equipment, err error)
	Delete(id string) error
	List() (list []dbmodels.Equipment, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Equipment) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByIDs(ids []string) (list []dbmodels.Equipment, err error) {
	list = []dbmodels.Equipment{}
	if len(ids) == 0 {
		return list, nil
	}
	err = i.db.
		Where("id in (?)", ids).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) FindByName(name string) (*dbmodels.Equipment, error) {
	rec := dbmodels.Equipment{}
	err := i.db.
		Where("LOWER(name) = ?", strings.ToLower(name)).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Delete(id string) error {
	err := i.db.
		Exec("DELETE FROM meeting_room_equipments WHERE equipment_id = ?", id).
		Error
	if err != nil {
		return err
	}
	rec := dbmodels.Equipment{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Delete(&rec).
		Error
}

func (i impl) List() (list []dbmodels.Equipment, err error) {
	list = []dbmodels.Equipment{}
	err = i.db.
		Order("name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
