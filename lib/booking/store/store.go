package bookingstore

import (
	"booking-backend/lib/utils/apperr"
	"booking-backend/models"
	bookingapimodels "booking-backend/models/api/booking"
	dbmodels "booking-backend/models/db"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pgExclusionViolation нарушение ограничения EXCLUDE на пересечение броней
const pgExclusionViolation = "23P01"

type Provider interface {
	Create(rec dbmodels.BookingRequest) (id string, err error)
	Save(rec dbmodels.BookingRequest) error
	GetByID(id string) (rec *dbmodels.BookingRequest, err error)
	Delete(id string) error
	ExistsOverlap(roomID string, start, end time.Time, excludeID string) (bool, error)
	ReplaceInvites(bookingID string, employeeIDs []string) error
	List(filter bookingapimodels.BookingFilter) (list []dbmodels.BookingRequest, err error)
	ListCount(filter bookingapimodels.BookingFilter) (count int64, err error)
	CountByRoom(roomID string) (count int64, err error)
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

func (i impl) Create(rec dbmodels.BookingRequest) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", translateError(err)
	}
	return rec.ID, nil
}

func (i impl) Save(rec dbmodels.BookingRequest) error {
	err := i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	return translateError(err)
}

func (i impl) GetByID(id string) (*dbmodels.BookingRequest, error) {
	rec := dbmodels.BookingRequest{}
	err := i.db.
		Preload("Employee").
		Preload("MeetingRoom").
		Preload("InvitedUsers").
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
	err := i.db.
		Where("booking_request_id = ?", id).
		Delete(&dbmodels.BookingInvite{}).
		Error
	if err != nil {
		return err
	}
	rec := dbmodels.BookingRequest{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Delete(&rec).
		Error
}

// ExistsOverlap есть ли неотклоненная бронь переговорной, пересекающая [start, end)
func (i impl) ExistsOverlap(roomID string, start, end time.Time, excludeID string) (bool, error) {
	tx := i.db.Model(dbmodels.BookingRequest{}).
		Where("meeting_room_id = ?", roomID).
		Where("status <> ?", models.RequestStatusRejected).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeID != "" {
		tx.Where("id <> ?", excludeID)
	}
	var count int64
	err := tx.Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "ошибка проверки пересечения броней")
	}
	return count > 0, nil
}

func (i impl) ReplaceInvites(bookingID string, employeeIDs []string) error {
	err := i.db.
		Where("booking_request_id = ?", bookingID).
		Delete(&dbmodels.BookingInvite{}).
		Error
	if err != nil {
		return err
	}
	if len(employeeIDs) == 0 {
		return nil
	}
	invites := make([]dbmodels.BookingInvite, 0, len(employeeIDs))
	for _, employeeID := range employeeIDs {
		invites = append(invites, dbmodels.BookingInvite{
			BookingRequestID: bookingID,
			EmployeeID:       employeeID,
		})
	}
	return i.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&invites).
		Error
}

func (i impl) List(filter bookingapimodels.BookingFilter) (list []dbmodels.BookingRequest, err error) {
	list = []dbmodels.BookingRequest{}
	tx := i.db.Model(dbmodels.BookingRequest{})
	i.addFilter(tx, filter)
	page, limit := filter.GetPage()
	tx.Order("start_time").
		Limit(limit).
		Offset((page - 1) * limit)
	err = tx.
		Preload("Employee").
		Preload("MeetingRoom").
		Preload("InvitedUsers").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(filter bookingapimodels.BookingFilter) (count int64, err error) {
	tx := i.db.Model(dbmodels.BookingRequest{})
	i.addFilter(tx, filter)
	err = tx.Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "ошибка получения общего количества броней")
	}
	return count, nil
}

func (i impl) CountByRoom(roomID string) (count int64, err error) {
	err = i.db.Model(dbmodels.BookingRequest{}).
		Where("meeting_room_id = ?", roomID).
		Count(&count).
		Error
	return count, err
}

// CountByEmployee брони сотрудника, включая приглашения
func (i impl) CountByEmployee(employeeID string) (count int64, err error) {
	subQuery := i.db.Select("booking_request_id").
		Where("employee_id = ?", employeeID).
		Table("booking_request_invites")
	err = i.db.Model(dbmodels.BookingRequest{}).
		Where("employee_id = ? OR id in (?)", employeeID, subQuery).
		Count(&count).
		Error
	return count, err
}

func (i impl) addFilter(tx *gorm.DB, filter bookingapimodels.BookingFilter) {
	if filter.EmployeeID != "" {
		tx.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.MeetingRoomID != "" {
		tx.Where("meeting_room_id = ?", filter.MeetingRoomID)
	}
	if filter.InvitedUserID != "" {
		subQuery := i.db.Select("booking_request_id").
			Where("employee_id = ?", filter.InvitedUserID).
			Table("booking_request_invites")
		tx.Where("id in (?)", subQuery)
	}
	if len(filter.Statuses) > 0 {
		tx.Where("status in (?)", filter.Statuses)
	}
	if filter.From != nil {
		tx.Where("end_time > ?", *filter.From)
	}
	if filter.To != nil {
		tx.Where("start_time < ?", *filter.To)
	}
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
		return apperr.ErrTimeOverlap
	}
	return err
}
