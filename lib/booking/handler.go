package bookinghandler

import (
	"booking-backend/config"
	icsexport "booking-backend/lib/export/ics"
	xlsexport "booking-backend/lib/export/xls"
	"booking-backend/lib/notification"
	resourcestore "booking-backend/lib/resource-store"
	"booking-backend/lib/utils/apperr"
	initchecker "booking-backend/lib/utils/init-checker"
	"booking-backend/lib/utils/lock"
	"booking-backend/models"
	apimodels "booking-backend/models/api"
	bookingapimodels "booking-backend/models/api/booking"
	dbmodels "booking-backend/models/db"
	"bytes"
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(ctx context.Context, employeeID string, data bookingapimodels.BookingRequestData) (item bookingapimodels.BookingRequestView, err error)
	Update(ctx context.Context, id string, data bookingapimodels.BookingRequestEditData) (item bookingapimodels.BookingRequestView, err error)
	GetByID(id string) (item bookingapimodels.BookingRequestView, err error)
	List(filter bookingapimodels.BookingFilter) (list []bookingapimodels.BookingRequestView, rowCount int64, err error)
	ListMy(employeeID string, pagination apimodels.Pagination) (list []bookingapimodels.BookingRequestView, rowCount int64, err error)
	ListInvitations(employeeID string, pagination apimodels.Pagination) (list []bookingapimodels.BookingRequestView, rowCount int64, err error)
	Delete(id string) error
	ExportXls(filter bookingapimodels.BookingFilter) (*bytes.Buffer, error)
	GetIcs(id string) ([]byte, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(
		resourcestore.Instance,
		notification.Instance,
		time.Duration(config.Conf.Booking.LockWaitSec)*time.Second,
	)
}

func NewInstance(store resourcestore.Provider, notifier notification.Provider, lockWait time.Duration) Provider {
	instance := impl{
		store:    store,
		notifier: notifier,
		lockWait: lockWait,
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	return instance
}

type impl struct {
	store    resourcestore.Provider
	notifier notification.Provider
	lockWait time.Duration
}

func (i impl) Create(ctx context.Context, employeeID string, data bookingapimodels.BookingRequestData) (item bookingapimodels.BookingRequestView, err error) {
	logger := i.getLogger("", employeeID, data.MeetingRoomID)
	employee, err := i.store.Stores().Employee.GetByID(employeeID)
	if err != nil {
		return item, err
	}
	if employee == nil {
		return item, apperr.NotFound(apperr.EntityEmployee, "сотрудник не найден")
	}
	if data.MeetingRoomID == "" {
		return item, apperr.ErrRoomRequired
	}
	var rec *dbmodels.BookingRequest
	success, err := lock.WithDelay(ctx, lock.RoomKey(data.MeetingRoomID), i.lockWait, func() error {
		return i.store.Transaction(func(stores resourcestore.Stores) error {
			room, err := stores.MeetingRoom.GetForUpdate(data.MeetingRoomID)
			if err != nil {
				return err
			}
			if room == nil {
				return apperr.NotFound(apperr.EntityMeetingRoom, "переговорная не найдена")
			}
			invitedIDs, err := resolveEmployees(stores, data.InvitedUserIDs)
			if err != nil {
				return err
			}
			exist, err := stores.Booking.ExistsOverlap(room.ID, data.StartTime, data.EndTime, "")
			if err != nil {
				return err
			}
			if exist {
				return apperr.ErrTimeOverlap
			}
			recID, err := stores.Booking.Create(dbmodels.BookingRequest{
				StartTime:     data.StartTime,
				EndTime:       data.EndTime,
				Status:        initialStatus(*room),
				Purpose:       data.Purpose,
				EmployeeID:    employee.ID,
				MeetingRoomID: room.ID,
			})
			if err != nil {
				return err
			}
			err = stores.Booking.ReplaceInvites(recID, invitedIDs)
			if err != nil {
				return errors.Wrap(err, "ошибка сохранения приглашенных")
			}
			rec, err = stores.Booking.GetByID(recID)
			if err != nil {
				return err
			}
			if rec == nil {
				return errors.New("созданная бронь не найдена")
			}
			return nil
		})
	})
	if err != nil {
		return item, err
	}
	if !success {
		return item, apperr.Unavailable(apperr.EntityMeetingRoom, "переговорная занята другой операцией, повторите попытку")
	}
	logger = logger.WithField("rec_id", rec.ID)
	logger.
		WithField("status", rec.Status).
		Info("Создана бронь переговорной")
	notification.SendAll(i.notifier, logger, createdMessages(*rec)...)
	return bookingapimodels.BookingRequestConvert(*rec), nil
}

func (i impl) Update(ctx context.Context, id string, data bookingapimodels.BookingRequestEditData) (item bookingapimodels.BookingRequestView, err error) {
	logger := i.getLogger(id, "", "")
	current, err := i.store.Stores().Booking.GetByID(id)
	if err != nil {
		return item, err
	}
	if current == nil {
		return item, apperr.NotFound(apperr.EntityBookingRequest, "бронь не найдена")
	}
	// ключ блокировки по прочитанной до блокировки переговорной; при параллельном переносе
	// пересечения исключают блокировка строки переговорной в транзакции и ограничение в БД
	roomID := current.MeetingRoomID
	if data.MeetingRoomID != nil && *data.MeetingRoomID != "" {
		roomID = *data.MeetingRoomID
	}
	var rec *dbmodels.BookingRequest
	var prevStatus models.RequestStatus
	success, err := lock.WithDelay(ctx, lock.RoomKey(roomID), i.lockWait, func() error {
		return i.store.Transaction(func(stores resourcestore.Stores) error {
			loaded, err := stores.Booking.GetByID(id)
			if err != nil {
				return err
			}
			if loaded == nil {
				return apperr.NotFound(apperr.EntityBookingRequest, "бронь не найдена")
			}
			prevStatus = loaded.Status
			changed, err := applyChanges(stores, loaded, data)
			if err != nil {
				return err
			}
			if changed && loaded.BlocksRoom() {
				exist, err := stores.Booking.ExistsOverlap(loaded.MeetingRoomID, loaded.StartTime, loaded.EndTime, loaded.ID)
				if err != nil {
					return err
				}
				if exist {
					return apperr.ErrTimeOverlap
				}
			}
			err = stores.Booking.Save(*loaded)
			if err != nil {
				return err
			}
			if data.InvitedUserIDs != nil {
				invitedIDs, err := resolveEmployees(stores, *data.InvitedUserIDs)
				if err != nil {
					return err
				}
				err = stores.Booking.ReplaceInvites(loaded.ID, invitedIDs)
				if err != nil {
					return errors.Wrap(err, "ошибка сохранения приглашенных")
				}
			}
			rec, err = stores.Booking.GetByID(id)
			return err
		})
	})
	if err != nil {
		return item, err
	}
	if !success {
		return item, apperr.Unavailable(apperr.EntityMeetingRoom, "переговорная занята другой операцией, повторите попытку")
	}
	logger.
		WithField("status", rec.Status).
		Info("Бронь переговорной обновлена")
	if rec.Status != prevStatus && rec.Status.IsTerminal() {
		notification.SendAll(i.notifier, logger, decisionMessages(*rec, prevStatus)...)
	}
	return bookingapimodels.BookingRequestConvert(*rec), nil
}

func (i impl) GetByID(id string) (item bookingapimodels.BookingRequestView, err error) {
	rec, err := i.store.Stores().Booking.GetByID(id)
	if err != nil {
		return item, err
	}
	if rec == nil {
		return item, apperr.NotFound(apperr.EntityBookingRequest, "бронь не найдена")
	}
	return bookingapimodels.BookingRequestConvert(*rec), nil
}

func (i impl) List(filter bookingapimodels.BookingFilter) (list []bookingapimodels.BookingRequestView, rowCount int64, err error) {
	store := i.store.Stores().Booking
	rowCount, err = store.ListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	list = make([]bookingapimodels.BookingRequestView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, bookingapimodels.BookingRequestConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) ListMy(employeeID string, pagination apimodels.Pagination) (list []bookingapimodels.BookingRequestView, rowCount int64, err error) {
	return i.List(bookingapimodels.BookingFilter{
		Pagination: pagination,
		EmployeeID: employeeID,
	})
}

func (i impl) ListInvitations(employeeID string, pagination apimodels.Pagination) (list []bookingapimodels.BookingRequestView, rowCount int64, err error) {
	return i.List(bookingapimodels.BookingFilter{
		Pagination:    pagination,
		InvitedUserID: employeeID,
	})
}

// Delete удаление отсутствующей брони не является ошибкой
func (i impl) Delete(id string) error {
	err := i.store.Transaction(func(stores resourcestore.Stores) error {
		return stores.Booking.Delete(id)
	})
	if err != nil {
		return err
	}
	i.getLogger(id, "", "").Info("Бронь переговорной удалена")
	return nil
}

func (i impl) ExportXls(filter bookingapimodels.BookingFilter) (*bytes.Buffer, error) {
	filter.Page = 1
	filter.Limit = 100
	store := i.store.Stores().Booking
	result := []dbmodels.BookingRequest{}
	for {
		recList, err := store.List(filter)
		if err != nil {
			return nil, err
		}
		result = append(result, recList...)
		if len(recList) < filter.Limit {
			break
		}
		filter.Page++
	}
	return xlsexport.ExportBookingList(result)
}

func (i impl) GetIcs(id string) ([]byte, error) {
	rec, err := i.store.Stores().Booking.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperr.NotFound(apperr.EntityBookingRequest, "бронь не найдена")
	}
	return icsexport.BookingEvent(*rec), nil
}

func (i impl) getLogger(recID, employeeID, roomID string) *log.Entry {
	logger := log.NewEntry(log.StandardLogger())
	if recID != "" {
		logger = logger.WithField("rec_id", recID)
	}
	if employeeID != "" {
		logger = logger.WithField("employee_id", employeeID)
	}
	if roomID != "" {
		logger = logger.WithField("room_id", roomID)
	}
	return logger
}

// initialStatus переговорные с согласованием бронируются в статусе ожидания
func initialStatus(room dbmodels.MeetingRoom) models.RequestStatus {
	if room.RequiresApproval {
		return models.RequestStatusPending
	}
	return models.RequestStatusApproved
}

// applyChanges применяет переданные поля, changed - изменились время или переговорная
func applyChanges(stores resourcestore.Stores, rec *dbmodels.BookingRequest, data bookingapimodels.BookingRequestEditData) (changed bool, err error) {
	if data.StartTime != nil && !data.StartTime.Equal(rec.StartTime) {
		rec.StartTime = *data.StartTime
		changed = true
	}
	if data.EndTime != nil && !data.EndTime.Equal(rec.EndTime) {
		rec.EndTime = *data.EndTime
		changed = true
	}
	if !rec.StartTime.Before(rec.EndTime) {
		return false, apperr.ErrInvalidInterval
	}
	if data.Purpose != nil {
		rec.Purpose = *data.Purpose
	}
	if data.Status != nil {
		status, err := models.ParseRequestStatus(*data.Status)
		if err != nil {
			return false, apperr.InvalidRequest(apperr.EntityBookingRequest, apperr.KeyStatusTransition, err.Error())
		}
		if !rec.Status.IsAllowChange(status) {
			return false, apperr.ErrStatusTransition
		}
		rec.Status = status
	}
	if data.EmployeeID != nil && *data.EmployeeID != "" && *data.EmployeeID != rec.EmployeeID {
		employee, err := stores.Employee.GetByID(*data.EmployeeID)
		if err != nil {
			return false, err
		}
		if employee == nil {
			return false, apperr.NotFound(apperr.EntityEmployee, "сотрудник не найден")
		}
		rec.EmployeeID = employee.ID
		rec.Employee = employee
	}
	if data.MeetingRoomID != nil && *data.MeetingRoomID != "" && *data.MeetingRoomID != rec.MeetingRoomID {
		room, err := stores.MeetingRoom.GetForUpdate(*data.MeetingRoomID)
		if err != nil {
			return false, err
		}
		if room == nil {
			return false, apperr.NotFound(apperr.EntityMeetingRoom, "переговорная не найдена")
		}
		rec.MeetingRoomID = room.ID
		rec.MeetingRoom = room
		changed = true
	} else if changed {
		// блокировка строки переговорной на время проверки пересечений
		room, err := stores.MeetingRoom.GetForUpdate(rec.MeetingRoomID)
		if err != nil {
			return false, err
		}
		if room == nil {
			return false, apperr.NotFound(apperr.EntityMeetingRoom, "переговорная не найдена")
		}
	}
	return changed, nil
}

// resolveEmployees проверяет существование приглашенных, повторы отбрасываются
func resolveEmployees(stores resourcestore.Stores, ids []string) ([]string, error) {
	uniqIDs := make([]string, 0, len(ids))
	seen := map[string]bool{}
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		uniqIDs = append(uniqIDs, id)
	}
	if len(uniqIDs) == 0 {
		return uniqIDs, nil
	}
	list, err := stores.Employee.GetByIDs(uniqIDs)
	if err != nil {
		return nil, err
	}
	if len(list) != len(uniqIDs) {
		return nil, apperr.NotFound(apperr.EntityEmployee, "приглашенный сотрудник не найден")
	}
	return uniqIDs, nil
}
