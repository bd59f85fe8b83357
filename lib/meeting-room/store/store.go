package meetingroomstore

import (
	roomapimodels "booking-backend/models/api/room"
	dbmodels "booking-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.MeetingRoom) (id string, err error)
	Save(rec dbmodels.MeetingRoom) error
	GetByID(id string) (rec *dbmodels.MeetingRoom, err error)
	GetForUpdate(id string) (rec *dbmodels.MeetingRoom, err error)
	Delete(id string) error
	List(filter roomapimodels.MeetingRoomFilter) (list []dbmodels.MeetingRoom, err error)
	ListCount(filter roomapimodels.MeetingRoomFilter) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.MeetingRoom) (id string, err error) {
	// оборудование только связываем, сами записи не трогаем
	err = i.db.Omit("Equipment.*").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Save(rec dbmodels.MeetingRoom) error {
	err := i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return err
	}
	return i.db.Model(&rec).
		Omit("Equipment.*").
		Association("Equipment").
		Replace(rec.Equipment)
}

func (i impl) GetByID(id string) (*dbmodels.MeetingRoom, error) {
	return i.first(i.db.Where("id = ?", id))
}

// GetForUpdate блокирует строку переговорной, сериализует бронирования по ней.
// Оборудование не подгружается
func (i impl) GetForUpdate(id string) (*dbmodels.MeetingRoom, error) {
	rec := dbmodels.MeetingRoom{}
	err := i.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
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
	rec := dbmodels.MeetingRoom{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	err := i.db.Model(&rec).Association("Equipment").Clear()
	if err != nil {
		return err
	}
	return i.db.
		Delete(&rec).
		Error
}

func (i impl) List(filter roomapimodels.MeetingRoomFilter) (list []dbmodels.MeetingRoom, err error) {
	list = []dbmodels.MeetingRoom{}
	tx := i.db.Model(dbmodels.MeetingRoom{})
	i.addFilter(tx, filter)
	page, limit := filter.GetPage()
	tx.Order("name").
		Limit(limit).
		Offset((page - 1) * limit)
	err = tx.Preload("Equipment").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(filter roomapimodels.MeetingRoomFilter) (count int64, err error) {
	tx := i.db.Model(dbmodels.MeetingRoom{})
	i.addFilter(tx, filter)
	err = tx.Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "ошибка получения общего количества переговорных")
	}
	return count, nil
}

func (i impl) addFilter(tx *gorm.DB, filter roomapimodels.MeetingRoomFilter) {
	if filter.Search != "" {
		tx.Where("LOWER(name) like ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.MinCapacity > 0 {
		tx.Where("capacity >= ?", filter.MinCapacity)
	}
	if filter.RequiresApproval != nil {
		tx.Where("requires_approval = ?", *filter.RequiresApproval)
	}
	if filter.EquipmentID != "" {
		subQuery := i.db.Select("meeting_room_id").
			Where("equipment_id = ?", filter.EquipmentID).
			Table("meeting_room_equipments")
		tx.Where("id in (?)", subQuery)
	}
}

func (i impl) first(tx *gorm.DB) (*dbmodels.MeetingRoom, error) {
	rec := dbmodels.MeetingRoom{}
	err := tx.Preload("Equipment").First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}
