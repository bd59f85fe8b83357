package vacationhandler

import (
	filestorage "booking-backend/lib/file-storage"
	"booking-backend/lib/notification"
	memorystore "booking-backend/lib/resource-store/memory"
	"booking-backend/lib/utils/apperr"
	"booking-backend/models"
	vacationapimodels "booking-backend/models/api/vacation"
	dbmodels "booking-backend/models/db"
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordNotifier struct {
	mu   sync.Mutex
	sent []notification.Message
}

func (r *recordNotifier) Send(to, subject, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, notification.Message{To: to, Subject: subject, Body: body})
	return nil
}

type fixture struct {
	store      *memorystore.Store
	files      *filestorage.Memory
	notifier   *recordNotifier
	handler    Provider
	employeeID string
	hrID       string
}

func newFixture(t *testing.T, balance int) fixture {
	store := memorystore.NewInstance()
	employeeID, err := store.Stores().Employee.Create(dbmodels.Employee{
		Name:            "Иван",
		Email:           "ivan@example.com",
		Role:            models.EmployeeRoleEmployee,
		VacationBalance: balance,
	})
	require.NoError(t, err)
	hrID, err := store.Stores().Employee.Create(dbmodels.Employee{
		Name:  "Ольга",
		Email: "hr@example.com",
		Role:  models.EmployeeRoleHR,
	})
	require.NoError(t, err)
	files := filestorage.NewMemory()
	notifier := &recordNotifier{}
	return fixture{
		store:      store,
		files:      files,
		notifier:   notifier,
		handler:    NewInstance(store, notifier, files, 5*time.Second, t.TempDir()),
		employeeID: employeeID,
		hrID:       hrID,
	}
}

func (f fixture) balance(t *testing.T) int {
	rec, err := f.store.Stores().Employee.GetByID(f.employeeID)
	require.NoError(t, err)
	return rec.VacationBalance
}

func vacation(start, end string) vacationapimodels.VacationRequestData {
	return vacationapimodels.VacationRequestData{
		StartDate: start,
		EndDate:   end,
		Type:      models.VacationTypeAnnual,
		Reason:    "Отдых",
	}
}

func statusPtr(value string) *string {
	return &value
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	t.Run(`статус всегда ожидание`, func(t *testing.T) {
		f := newFixture(t, 5)
		data := vacation("2024-01-01", "2024-01-03")
		data.Status = models.RequestStatusApproved
		data.Attachments = []vacationapimodels.AttachmentData{
			{Name: "справка.pdf", URL: "https://files.example.com/1", FileSize: 10, ContentType: "application/pdf"},
		}
		item, err := f.handler.Create(ctx, f.employeeID, data)
		require.NoError(t, err)
		require.Equal(t, models.RequestStatusPending, item.Status)
		require.Equal(t, 3, item.Days)
		require.Equal(t, f.employeeID, item.Employee.ID)
		require.Len(t, item.Attachments, 1)
		require.False(t, item.Attachments[0].UploadedAt.IsZero())
		require.False(t, item.CreatedAt.IsZero())
		require.Equal(t, 5, f.balance(t))
	})
	t.Run(`сотрудник не найден`, func(t *testing.T) {
		f := newFixture(t, 5)
		_, err := f.handler.Create(ctx, "unknown", vacation("2024-01-01", "2024-01-03"))
		require.ErrorIs(t, err, &apperr.Error{Kind: apperr.KindNotFound, Entity: apperr.EntityEmployee})
	})
	t.Run(`некорректный период`, func(t *testing.T) {
		f := newFixture(t, 5)
		_, err := f.handler.Create(ctx, f.employeeID, vacation("2024-01-03", "2024-01-01"))
		require.ErrorIs(t, err, apperr.ErrInvalidRequest)
	})
}

func TestApprove(t *testing.T) {
	ctx := context.Background()
	t.Run(`списание и нехватка остатка`, func(t *testing.T) {
		f := newFixture(t, 5)
		first, err := f.handler.Create(ctx, f.employeeID, vacation("2024-01-01", "2024-01-03"))
		require.NoError(t, err)
		approved, err := f.handler.Update(ctx, f.hrID, first.ID, vacationapimodels.VacationRequestEditData{Status: statusPtr("Approved")})
		require.NoError(t, err)
		require.Equal(t, models.RequestStatusApproved, approved.Status)
		require.Equal(t, 2, f.balance(t))

		second, err := f.handler.Create(ctx, f.employeeID, vacation("2024-02-01", "2024-02-05"))
		require.NoError(t, err)
		_, err = f.handler.Update(ctx, f.hrID, second.ID, vacationapimodels.VacationRequestEditData{
			Status: statusPtr("Approved"),
			Reason: statusPtr("изменено"),
		})
		require.ErrorIs(t, err, apperr.ErrInsufficientBalance)
		require.Equal(t, 2, f.balance(t))
		stored, err := f.handler.GetByID(second.ID)
		require.NoError(t, err)
		require.Equal(t, models.RequestStatusPending, stored.Status)
		require.Equal(t, "Отдых", stored.Reason)
	})
	t.Run(`повторное согласование не списывает`, func(t *testing.T) {
		f := newFixture(t, 5)
		item, err := f.handler.Create(ctx, f.employeeID, vacation("2024-01-01", "2024-01-02"))
		require.NoError(t, err)
		_, err = f.handler.Update(ctx, f.hrID, item.ID, vacationapimodels.VacationRequestEditData{Status: statusPtr("APPROVED")})
		require.NoError(t, err)
		_, err = f.handler.Update(ctx, f.hrID, item.ID, vacationapimodels.VacationRequestEditData{Status: statusPtr("approved")})
		require.NoError(t, err)
		require.Equal(t, 3, f.balance(t))
	})
	t.Run(`остаток ровно на отпуск`, func(t *testing.T) {
		f := newFixture(t, 3)
		item, err := f.handler.Create(ctx, f.employeeID, vacation("2024-01-01", "2024-01-03"))
		require.NoError(t, err)
		_, err = f.handler.Update(ctx, f.hrID, item.ID, vacationapimodels.VacationRequestEditData{Status: statusPtr("APPROVED")})
		require.NoError(t, err)
		require.Equal(t, 0, f.balance(t))
	})
	t.Run(`отказ не списывает и уведомляет`, func(t *testing.T) {
		f := newFixture(t, 5)
		item, err := f.handler.Create(ctx, f.employeeID, vacation("2024-01-01", "2024-01-03"))
		require.NoError(t, err)
		_, err = f.handler.Update(ctx, f.hrID, item.ID, vacationapimodels.VacationRequestEditData{Status: statusPtr("REJECTED")})
		require.NoError(t, err)
		require.Equal(t, 5, f.balance(t))
		require.Len(t, f.notifier.sent, 1)
		require.Equal(t, "ivan@example.com", f.notifier.sent[0].To)
		require.Contains(t, f.notifier.sent[0].Body, models.RequestStatusPending.ToHuman())

		_, err = f.handler.Update(ctx, f.hrID, item.ID, vacationapimodels.VacationRequestEditData{Status: statusPtr("APPROVED")})
		require.ErrorIs(t, err, apperr.ErrStatusTransition)
		require.Equal(t, 5, f.balance(t))
	})
	t.Run(`параллельное согласование`, func(t *testing.T) {
		f := newFixture(t, 5)
		ids := []string{}
		for _, period := range [][2]string{{"2024-03-01", "2024-03-03"}, {"2024-04-01", "2024-04-03"}, {"2024-05-01", "2024-05-03"}} {
			item, err := f.handler.Create(ctx, f.employeeID, vacation(period[0], period[1]))
			require.NoError(t, err)
			ids = append(ids, item.ID)
		}
		wg := sync.WaitGroup{}
		results := make([]error, len(ids))
		for n, id := range ids {
			wg.Add(1)
			go func(n int, id string) {
				defer wg.Done()
				_, results[n] = f.handler.Update(ctx, f.hrID, id, vacationapimodels.VacationRequestEditData{Status: statusPtr("APPROVED")})
			}(n, id)
		}
		wg.Wait()
		succeeded := 0
		for _, err := range results {
			if err == nil {
				succeeded++
				continue
			}
			require.ErrorIs(t, err, apperr.ErrInsufficientBalance)
		}
		require.Equal(t, 1, succeeded)
		require.Equal(t, 2, f.balance(t))
	})
	t.Run(`изменение периода`, func(t *testing.T) {
		f := newFixture(t, 5)
		item, err := f.handler.Create(ctx, f.employeeID, vacation("2024-01-01", "2024-01-03"))
		require.NoError(t, err)
		updated, err := f.handler.Update(ctx, f.employeeID, item.ID, vacationapimodels.VacationRequestEditData{
			EndDate: statusPtr("2024-01-01"),
		})
		require.NoError(t, err)
		require.Equal(t, 1, updated.Days)
		_, err = f.handler.Update(ctx, f.employeeID, item.ID, vacationapimodels.VacationRequestEditData{
			StartDate: statusPtr("2024-01-05"),
		})
		require.ErrorIs(t, err, apperr.ErrInvalidRequest)
	})
	t.Run(`период рассмотренной заявки не меняется`, func(t *testing.T) {
		f := newFixture(t, 5)
		item, err := f.handler.Create(ctx, f.employeeID, vacation("2024-01-01", "2024-01-01"))
		require.NoError(t, err)
		_, err = f.handler.Update(ctx, f.hrID, item.ID, vacationapimodels.VacationRequestEditData{Status: statusPtr("APPROVED")})
		require.NoError(t, err)
		require.Equal(t, 4, f.balance(t))

		_, err = f.handler.Update(ctx, f.employeeID, item.ID, vacationapimodels.VacationRequestEditData{
			EndDate: statusPtr("2024-01-30"),
		})
		require.ErrorIs(t, err, apperr.ErrPeriodLocked)
		stored, err := f.handler.GetByID(item.ID)
		require.NoError(t, err)
		require.Equal(t, 1, stored.Days)
		require.Equal(t, 4, f.balance(t))

		// те же даты и прочие поля менять можно
		updated, err := f.handler.Update(ctx, f.employeeID, item.ID, vacationapimodels.VacationRequestEditData{
			StartDate: statusPtr("2024-01-01"),
			Reason:    statusPtr("Семейные обстоятельства"),
		})
		require.NoError(t, err)
		require.Equal(t, "Семейные обстоятельства", updated.Reason)
	})
	t.Run(`период и согласование одним запросом`, func(t *testing.T) {
		f := newFixture(t, 5)
		item, err := f.handler.Create(ctx, f.employeeID, vacation("2024-01-01", "2024-01-01"))
		require.NoError(t, err)
		_, err = f.handler.Update(ctx, f.hrID, item.ID, vacationapimodels.VacationRequestEditData{
			EndDate: statusPtr("2024-01-03"),
			Status:  statusPtr("APPROVED"),
		})
		require.NoError(t, err)
		require.Equal(t, 2, f.balance(t))
	})
	t.Run(`заявка не найдена`, func(t *testing.T) {
		f := newFixture(t, 5)
		_, err := f.handler.Update(ctx, f.hrID, "unknown", vacationapimodels.VacationRequestEditData{})
		require.ErrorIs(t, err, &apperr.Error{Kind: apperr.KindNotFound, Entity: apperr.EntityVacationRequest})
	})
}

func TestAttachmentsAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 5)
	item, err := f.handler.Create(ctx, f.employeeID, vacation("2024-01-01", "2024-01-03"))
	require.NoError(t, err)

	attachment, err := f.handler.AddAttachment(ctx, item.ID, "справка.pdf", "application/pdf", strings.NewReader("pdf"), 3)
	require.NoError(t, err)
	body, ok := f.files.Get(attachment.URL)
	require.True(t, ok)
	require.Equal(t, "pdf", string(body))

	_, err = f.handler.AddAttachment(ctx, "unknown", "справка.pdf", "application/pdf", strings.NewReader("pdf"), 3)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	pdf, err := f.handler.GetPdf(item.ID)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	list, err := f.handler.ListMy(f.employeeID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Attachments, 1)

	require.NoError(t, f.handler.Delete(ctx, item.ID))
	_, ok = f.files.Get(attachment.URL)
	require.False(t, ok)
	attachments, err := f.store.Stores().Attachment.ListByRequest(item.ID)
	require.NoError(t, err)
	require.Empty(t, attachments)
	_, err = f.handler.GetByID(item.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	// повторное удаление не ошибка и не меняет остаток
	require.NoError(t, f.handler.Delete(ctx, item.ID))
	require.Equal(t, 5, f.balance(t))

	list, err = f.handler.ListMy(f.employeeID)
	require.NoError(t, err)
	require.Empty(t, list)
}
