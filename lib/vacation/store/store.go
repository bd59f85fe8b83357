package vacationstore

import (
	vacationapimodels "booking-backend/models/api/vacation"
	dbmodels "booking-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.VacationRequest) (id string, err error)
	Save(rec dbmodels.VacationRequest) error
	GetByID(id string) (rec *dbmodels.VacationRequest, err error)
	Delete(id string) error
	ListByEmployee(employeeID string) (list []dbmodels.VacationRequest, err error)
	List(filter vacationapimodels.VacationFilter) (list []dbmodels.VacationRequest, err error)
	ListCount(filter vacationapimodels.VacationFilter) (count int64, err error)
	CountByEmployee(employeeID string) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.VacationRequest) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Save(rec dbmodels.VacationRequest) error {
	return i.db.Omit(clause.Associations).
		Save(&rec).
		Error
}

func (i impl) GetByID(id string) (*dbmodels.VacationRequest, error) {
	rec := dbmodels.VacationRequest{}
	err := i.db.
		Preload("Employee").
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("uploaded_at")
		}).
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
	rec := dbmodels.VacationRequest{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Delete(&rec).
		Error
}

func (i impl) ListByEmployee(employeeID string) (list []dbmodels.VacationRequest, err error) {
	list = []dbmodels.VacationRequest{}
	err = i.db.
		Preload("Attachments").
		Where("employee_id = ?", employeeID).
		Order("start_date desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) List(filter vacationapimodels.VacationFilter) (list []dbmodels.VacationRequest, err error) {
	list = []dbmodels.VacationRequest{}
	tx := i.db.Model(dbmodels.VacationRequest{})
	i.addFilter(tx, filter)
	page, limit := filter.GetPage()
	tx.Order("start_date desc").
		Limit(limit).
		Offset((page - 1) * limit)
	err = tx.
		Preload("Employee").
		Preload("Attachments").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(filter vacationapimodels.VacationFilter) (count int64, err error) {
	tx := i.db.Model(dbmodels.VacationRequest{})
	i.addFilter(tx, filter)
	err = tx.Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "ошибка получения общего количества заявок на отпуск")
	}
	return count, nil
}

func (i impl) CountByEmployee(employeeID string) (count int64, err error) {
	err = i.db.Model(dbmodels.VacationRequest{}).
		Where("employee_id = ?", employeeID).
		Count(&count).
		Error
	return count, err
}

func (i impl) addFilter(tx *gorm.DB, filter vacationapimodels.VacationFilter) {
	if filter.EmployeeID != "" {
		tx.Where("employee_id = ?", filter.EmployeeID)
	}
	if len(filter.Statuses) > 0 {
		tx.Where("status in (?)", filter.Statuses)
	}
	if filter.Type != "" {
		tx.Where("type = ?", filter.Type)
	}
}
