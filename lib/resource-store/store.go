package resourcestore

import (
	bookingstore "booking-backend/lib/booking/store"
	equipmentstore "booking-backend/lib/dicts/equipment/store"
	employeestore "booking-backend/lib/employee/store"
	meetingroomstore "booking-backend/lib/meeting-room/store"
	attachmentstore "booking-backend/lib/vacation/attachment-store"
	vacationstore "booking-backend/lib/vacation/store"

	"gorm.io/gorm"
)

// Stores набор хранилищ, привязанных к одному соединению или транзакции
type Stores struct {
	Employee    employeestore.Provider
	MeetingRoom meetingroomstore.Provider
	Equipment   equipmentstore.Provider
	Booking     bookingstore.Provider
	Vacation    vacationstore.Provider
	Attachment  attachmentstore.Provider
}

type Provider interface {
	Stores() Stores
	// Transaction при ошибке fn изменения откатываются
	Transaction(fn func(stores Stores) error) error
}

var Instance Provider

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Stores() Stores {
	return newStores(i.db)
}

func (i impl) Transaction(fn func(stores Stores) error) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		return fn(newStores(tx))
	})
}

func newStores(DB *gorm.DB) Stores {
	return Stores{
		Employee:    employeestore.NewInstance(DB),
		MeetingRoom: meetingroomstore.NewInstance(DB),
		Equipment:   equipmentstore.NewInstance(DB),
		Booking:     bookingstore.NewInstance(DB),
		Vacation:    vacationstore.NewInstance(DB),
		Attachment:  attachmentstore.NewInstance(DB),
	}
}
