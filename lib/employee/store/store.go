package employeestore

import (
	employeeapimodels "booking-backend/models/api/employee"
	dbmodels "booking-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Employee) (id string, err error)
	Save(rec dbmodels.Employee) error
	GetByID(id string) (rec *dbmodels.Employee, err error)
	GetForUpdate(id string) (rec *dbmodels.Employee, err error)
	GetByIDs(ids []string) (list []dbmodels.Employee, err error)
	FindByEmail(email string) (rec *dbmodels.Employee, err error)
	UpdateBalance(id string, balance int) error
	Delete(id string) error
	List(filter employeeapimodels.EmployeeFilter) (list []dbmodels.Employee, err error)
	ListCount(filter employeeapimodels.EmployeeFilter) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Employee) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Save(rec dbmodels.Employee) error {
	return i.db.Omit(clause.Associations).
		Save(&rec).
		Error
}

func (i impl) GetByID(id string) (*dbmodels.Employee, error) {
	return i.first(i.db.Where("id = ?", id))
}

// GetForUpdate блокирует строку сотрудника до конца транзакции
func (i impl) GetForUpdate(id string) (*dbmodels.Employee, error) {
	return i.first(i.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id))
}

func (i impl) GetByIDs(ids []string) (list []dbmodels.Employee, err error) {
	list = []dbmodels.Employee{}
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

func (i impl) FindByEmail(email string) (*dbmodels.Employee, error) {
	return i.first(i.db.Where("LOWER(email) = ?", strings.ToLower(email)))
}

func (i impl) UpdateBalance(id string, balance int) error {
	tx := i.db.
		Model(&dbmodels.Employee{}).
		Where("id = ?", id).
		Update("vacation_balance", balance)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.Employee{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Delete(&rec).
		Error
}

func (i impl) List(filter employeeapimodels.EmployeeFilter) (list []dbmodels.Employee, err error) {
	list = []dbmodels.Employee{}
	tx := i.db.Model(dbmodels.Employee{})
	i.addFilter(tx, filter)
	page, limit := filter.GetPage()
	tx.Order("name").
		Limit(limit).
		Offset((page - 1) * limit)
	err = tx.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(filter employeeapimodels.EmployeeFilter) (count int64, err error) {
	tx := i.db.Model(dbmodels.Employee{})
	i.addFilter(tx, filter)
	err = tx.Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "ошибка получения общего количества сотрудников")
	}
	return count, nil
}

func (i impl) addFilter(tx *gorm.DB, filter employeeapimodels.EmployeeFilter) {
	if filter.Search != "" {
		searchValue := "%" + strings.ToLower(filter.Search) + "%"
		tx.Where("LOWER(name) like ? or LOWER(email) like ?", searchValue, searchValue)
	}
	if filter.Role != "" {
		tx.Where("role = ?", filter.Role)
	}
}

func (i impl) first(tx *gorm.DB) (*dbmodels.Employee, error) {
	rec := dbmodels.Employee{}
	err := tx.First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}
