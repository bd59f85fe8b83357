package attachmentstore

import (
	dbmodels "booking-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Attachment) (id string, err error)
	ListByRequest(vacationRequestID string) (list []dbmodels.Attachment, err error)
	DeleteByRequest(vacationRequestID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Attachment) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByRequest(vacationRequestID string) (list []dbmodels.Attachment, err error) {
	list = []dbmodels.Attachment{}
	err = i.db.
		Where("vacation_request_id = ?", vacationRequestID).
		Order("uploaded_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) DeleteByRequest(vacationRequestID string) error {
	return i.db.
		Where("vacation_request_id = ?", vacationRequestID).
		Delete(&dbmodels.Attachment{}).
		Error
}
