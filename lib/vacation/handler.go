package vacationhandler

import (
	"booking-backend/config"
	pdfexport "booking-backend/lib/export/pdf"
	filestorage "booking-backend/lib/file-storage"
	"booking-backend/lib/notification"
	resourcestore "booking-backend/lib/resource-store"
	"booking-backend/lib/utils/apperr"
	initchecker "booking-backend/lib/utils/init-checker"
	"booking-backend/lib/utils/lock"
	"booking-backend/models"
	vacationapimodels "booking-backend/models/api/vacation"
	dbmodels "booking-backend/models/db"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(ctx context.Context, employeeID string, data vacationapimodels.VacationRequestData) (item vacationapimodels.VacationRequestView, err error)
	Update(ctx context.Context, employeeID, id string, data vacationapimodels.VacationRequestEditData) (item vacationapimodels.VacationRequestView, err error)
	GetByID(id string) (item vacationapimodels.VacationRequestView, err error)
	Delete(ctx context.Context, id string) error
	ListMy(employeeID string) (list []vacationapimodels.VacationRequestView, err error)
	List(filter vacationapimodels.VacationFilter) (list []vacationapimodels.VacationRequestView, rowCount int64, err error)
	AddAttachment(ctx context.Context, id, fileName, contentType string, fileReader io.Reader, fileSize int64) (item vacationapimodels.AttachmentView, err error)
	GetPdf(id string) ([]byte, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(
		resourcestore.Instance,
		notification.Instance,
		filestorage.Instance,
		time.Duration(config.Conf.Booking.LockWaitSec)*time.Second,
		config.Conf.Export.FontDir,
	)
}

func NewInstance(store resourcestore.Provider, notifier notification.Provider, fileStorage filestorage.Provider, lockWait time.Duration, fontDir string) Provider {
	instance := impl{
		store:       store,
		notifier:    notifier,
		fileStorage: fileStorage,
		lockWait:    lockWait,
		fontDir:     fontDir,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"fileStorage", instance.fileStorage,
	)
	return instance
}

type impl struct {
	store       resourcestore.Provider
	notifier    notification.Provider
	fileStorage filestorage.Provider
	lockWait    time.Duration
	fontDir     string
}

func (i impl) Create(ctx context.Context, employeeID string, data vacationapimodels.VacationRequestData) (item vacationapimodels.VacationRequestView, err error) {
	logger := i.getLogger("", employeeID)
	startDate, endDate, err := data.GetDates()
	if err != nil {
		return item, apperr.InvalidRequest(apperr.EntityVacationRequest, "", err.Error())
	}
	var rec *dbmodels.VacationRequest
	err = i.store.Transaction(func(stores resourcestore.Stores) error {
		employee, err := stores.Employee.GetByID(employeeID)
		if err != nil {
			return err
		}
		if employee == nil {
			return apperr.NotFound(apperr.EntityEmployee, "сотрудник не найден")
		}
		now := time.Now()
		recID, err := stores.Vacation.Create(dbmodels.VacationRequest{
			BaseModel: dbmodels.BaseModel{
				CreatedAt: now,
				UpdatedAt: now,
			},
			StartDate:  startDate,
			EndDate:    endDate,
			Type:       data.Type,
			Reason:     data.Reason,
			Status:     models.RequestStatusPending,
			EmployeeID: &employee.ID,
		})
		if err != nil {
			return err
		}
		err = addAttachments(stores, recID, data.Attachments, now)
		if err != nil {
			return err
		}
		rec, err = stores.Vacation.GetByID(recID)
		return err
	})
	if err != nil {
		return item, err
	}
	logger.
		WithField("rec_id", rec.ID).
		Info("Создана заявка на отпуск")
	return vacationapimodels.VacationRequestConvert(*rec), nil
}

func (i impl) Update(ctx context.Context, employeeID, id string, data vacationapimodels.VacationRequestEditData) (item vacationapimodels.VacationRequestView, err error) {
	logger := i.getLogger(id, employeeID)
	current, err := i.store.Stores().Vacation.GetByID(id)
	if err != nil {
		return item, err
	}
	if current == nil {
		return item, apperr.NotFound(apperr.EntityVacationRequest, "заявка на отпуск не найдена")
	}
	ownerID := employeeID
	if current.EmployeeID != nil {
		ownerID = *current.EmployeeID
	}
	var rec *dbmodels.VacationRequest
	var prevStatus models.RequestStatus
	var debited int
	success, err := lock.WithDelay(ctx, lock.EmployeeKey(ownerID), i.lockWait, func() error {
		return i.store.Transaction(func(stores resourcestore.Stores) error {
			loaded, err := stores.Vacation.GetByID(id)
			if err != nil {
				return err
			}
			if loaded == nil {
				return apperr.NotFound(apperr.EntityVacationRequest, "заявка на отпуск не найдена")
			}
			prevStatus = loaded.Status
			err = applyChanges(loaded, data)
			if err != nil {
				return err
			}
			if loaded.EmployeeID == nil {
				employee, err := stores.Employee.GetByID(employeeID)
				if err != nil {
					return err
				}
				if employee == nil {
					return apperr.NotFound(apperr.EntityEmployee, "сотрудник не найден")
				}
				loaded.EmployeeID = &employee.ID
			}
			if loaded.Status.IsApproved() && !prevStatus.IsApproved() {
				debited, err = debitBalance(stores, *loaded)
				if err != nil {
					return err
				}
			}
			err = stores.Vacation.Save(*loaded)
			if err != nil {
				return err
			}
			err = addAttachments(stores, loaded.ID, data.Attachments, time.Now())
			if err != nil {
				return err
			}
			rec, err = stores.Vacation.GetByID(id)
			return err
		})
	})
	if err != nil {
		return item, err
	}
	if !success {
		return item, apperr.Unavailable(apperr.EntityEmployee, "остаток отпуска сотрудника изменяется другой операцией, повторите попытку")
	}
	logger = logger.WithField("status", rec.Status)
	if debited != 0 {
		logger = logger.WithField("debited_days", debited)
	}
	logger.Info("Заявка на отпуск обновлена")
	if rec.Status != prevStatus && rec.Status.IsTerminal() {
		notification.SendAll(i.notifier, logger, decisionMessage(*rec, prevStatus)...)
	}
	return vacationapimodels.VacationRequestConvert(*rec), nil
}

func (i impl) GetByID(id string) (item vacationapimodels.VacationRequestView, err error) {
	rec, err := i.store.Stores().Vacation.GetByID(id)
	if err != nil {
		return item, err
	}
	if rec == nil {
		return item, apperr.NotFound(apperr.EntityVacationRequest, "заявка на отпуск не найдена")
	}
	return vacationapimodels.VacationRequestConvert(*rec), nil
}

// Delete вложения удаляются вместе с заявкой, файлы убираются из хранилища после фиксации
func (i impl) Delete(ctx context.Context, id string) error {
	logger := i.getLogger(id, "")
	var attachments []dbmodels.Attachment
	err := i.store.Transaction(func(stores resourcestore.Stores) (err error) {
		attachments, err = stores.Attachment.ListByRequest(id)
		if err != nil {
			return err
		}
		err = stores.Attachment.DeleteByRequest(id)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления вложений")
		}
		return stores.Vacation.Delete(id)
	})
	if err != nil {
		return err
	}
	for _, item := range attachments {
		err = i.fileStorage.Remove(ctx, item.URL)
		if err != nil {
			logger.
				WithField("attachment_id", item.ID).
				WithError(err).
				Warn("не удалось удалить файл вложения")
		}
	}
	logger.Info("Заявка на отпуск удалена")
	return nil
}

func (i impl) ListMy(employeeID string) (list []vacationapimodels.VacationRequestView, err error) {
	recList, err := i.store.Stores().Vacation.ListByEmployee(employeeID)
	if err != nil {
		return nil, err
	}
	list = make([]vacationapimodels.VacationRequestView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, vacationapimodels.VacationRequestConvert(rec))
	}
	return list, nil
}

func (i impl) List(filter vacationapimodels.VacationFilter) (list []vacationapimodels.VacationRequestView, rowCount int64, err error) {
	store := i.store.Stores().Vacation
	rowCount, err = store.ListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	list = make([]vacationapimodels.VacationRequestView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, vacationapimodels.VacationRequestConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) AddAttachment(ctx context.Context, id, fileName, contentType string, fileReader io.Reader, fileSize int64) (item vacationapimodels.AttachmentView, err error) {
	logger := i.getLogger(id, "")
	if fileName == "" || len([]rune(fileName)) > 255 || fileSize < 0 || len(contentType) > 100 {
		return item, apperr.InvalidRequest(apperr.EntityVacationRequest, "", "некорректный файл вложения")
	}
	rec, err := i.store.Stores().Vacation.GetByID(id)
	if err != nil {
		return item, err
	}
	if rec == nil {
		return item, apperr.NotFound(apperr.EntityVacationRequest, "заявка на отпуск не найдена")
	}
	url, err := i.fileStorage.Upload(ctx, id, fileName, contentType, fileReader, fileSize)
	if err != nil {
		return item, err
	}
	attachment := dbmodels.Attachment{
		Name:              fileName,
		URL:               url,
		FileSize:          fileSize,
		ContentType:       contentType,
		UploadedAt:        time.Now(),
		VacationRequestID: id,
	}
	attachment.ID, err = i.store.Stores().Attachment.Create(attachment)
	if err != nil {
		if removeErr := i.fileStorage.Remove(ctx, url); removeErr != nil {
			logger.WithError(removeErr).Warn("не удалось удалить загруженный файл")
		}
		return item, errors.Wrap(err, "ошибка сохранения вложения")
	}
	logger.
		WithField("attachment_id", attachment.ID).
		Info("Добавлено вложение к заявке на отпуск")
	return vacationapimodels.AttachmentConvert(attachment), nil
}

func (i impl) GetPdf(id string) ([]byte, error) {
	rec, err := i.store.Stores().Vacation.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperr.NotFound(apperr.EntityVacationRequest, "заявка на отпуск не найдена")
	}
	return pdfexport.GenerateVacationRequest(*rec, i.fontDir)
}

func (i impl) getLogger(recID, employeeID string) *log.Entry {
	logger := log.NewEntry(log.StandardLogger())
	if recID != "" {
		logger = logger.WithField("rec_id", recID)
	}
	if employeeID != "" {
		logger = logger.WithField("employee_id", employeeID)
	}
	return logger
}

func applyChanges(rec *dbmodels.VacationRequest, data vacationapimodels.VacationRequestEditData) error {
	prevStart, prevEnd := rec.StartDate, rec.EndDate
	if data.StartDate != nil {
		startDate, err := vacationapimodels.ParseDate(*data.StartDate)
		if err != nil {
			return apperr.InvalidRequest(apperr.EntityVacationRequest, "", "некорректная дата начала")
		}
		rec.StartDate = startDate
	}
	if data.EndDate != nil {
		endDate, err := vacationapimodels.ParseDate(*data.EndDate)
		if err != nil {
			return apperr.InvalidRequest(apperr.EntityVacationRequest, "", "некорректная дата окончания")
		}
		rec.EndDate = endDate
	}
	if rec.Days() < 1 {
		return apperr.InvalidRequest(apperr.EntityVacationRequest, "", "дата окончания раньше даты начала")
	}
	// списание уже сделано по прежнему периоду
	if rec.Status.IsTerminal() && (!rec.StartDate.Equal(prevStart) || !rec.EndDate.Equal(prevEnd)) {
		return apperr.ErrPeriodLocked
	}
	if data.Type != nil {
		rec.Type = *data.Type
	}
	if data.Reason != nil {
		rec.Reason = *data.Reason
	}
	if data.Status != nil {
		status, err := models.ParseRequestStatus(*data.Status)
		if err != nil {
			return apperr.InvalidRequest(apperr.EntityVacationRequest, apperr.KeyStatusTransition, err.Error())
		}
		if !rec.Status.IsAllowChange(status) {
			return apperr.ErrStatusTransition
		}
		rec.Status = status
	}
	return nil
}

// debitBalance списывает дни отпуска под блокировкой строки сотрудника
func debitBalance(stores resourcestore.Stores, rec dbmodels.VacationRequest) (int, error) {
	employee, err := stores.Employee.GetForUpdate(*rec.EmployeeID)
	if err != nil {
		return 0, err
	}
	if employee == nil {
		return 0, apperr.NotFound(apperr.EntityEmployee, "сотрудник не найден")
	}
	days := rec.Days()
	if employee.VacationBalance < days {
		return 0, apperr.Conflict(apperr.EntityVacationRequest, apperr.KeyInsufficientBalance,
			fmt.Sprintf("недостаточно дней отпуска: остаток %d, требуется %d", employee.VacationBalance, days))
	}
	err = stores.Employee.UpdateBalance(employee.ID, employee.VacationBalance-days)
	if err != nil {
		return 0, errors.Wrap(err, "ошибка списания дней отпуска")
	}
	return days, nil
}

func addAttachments(stores resourcestore.Stores, vacationRequestID string, list []vacationapimodels.AttachmentData, now time.Time) error {
	for _, item := range list {
		uploadedAt := now
		if item.UploadedAt != nil {
			uploadedAt = *item.UploadedAt
		}
		_, err := stores.Attachment.Create(dbmodels.Attachment{
			Name:              item.Name,
			URL:               item.URL,
			FileSize:          item.FileSize,
			ContentType:       item.ContentType,
			UploadedAt:        uploadedAt,
			VacationRequestID: vacationRequestID,
		})
		if err != nil {
			return errors.Wrap(err, "ошибка сохранения вложения")
		}
	}
	return nil
}

func decisionMessage(rec dbmodels.VacationRequest, prevStatus models.RequestStatus) []notification.Message {
	if rec.Employee == nil {
		return nil
	}
	subject := "Заявка на отпуск согласована"
	if rec.Status == models.RequestStatusRejected {
		subject = "Заявка на отпуск отклонена"
	}
	body := fmt.Sprintf("Статус заявки изменен: %s -> %s.\nПериод: %s - %s (%d дн.)",
		prevStatus.ToHuman(),
		rec.Status.ToHuman(),
		rec.StartDate.Format(vacationapimodels.DateFormat),
		rec.EndDate.Format(vacationapimodels.DateFormat),
		rec.Days(),
	)
	return []notification.Message{{To: rec.Employee.Email, Subject: subject, Body: body}}
}
