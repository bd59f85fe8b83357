package pendingexpireworker

import (
	"booking-backend/config"
	bookinghandler "booking-backend/lib/booking"
	baseworker "booking-backend/lib/utils/base-worker"
	"booking-backend/models"
	apimodels "booking-backend/models/api"
	bookingapimodels "booking-backend/models/api/booking"
	"context"
	"time"
)

const batchSize = 100

func StartWorker(ctx context.Context) {
	i := newInstance(bookinghandler.Instance, time.Duration(config.Conf.Booking.PendingExpireIntervalMin)*time.Minute)
	go i.Run(ctx, i.handle)
}

func newInstance(bookingProvider bookinghandler.Provider, interval time.Duration) *impl {
	return &impl{
		BaseImpl:        *baseworker.NewInstance("PendingExpireWorker", 30*time.Second, interval),
		bookingProvider: bookingProvider,
		now:             time.Now,
	}
}

// impl отклоняет брони, не согласованные до времени начала
type impl struct {
	baseworker.BaseImpl
	bookingProvider bookinghandler.Provider
	now             func() time.Time
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	now := i.now()
	list, _, err := i.bookingProvider.List(bookingapimodels.BookingFilter{
		Pagination: apimodels.Pagination{Limit: batchSize},
		Statuses:   []models.RequestStatus{models.RequestStatusPending},
		To:         &now,
	})
	if err != nil {
		logger.WithError(err).Error("Ошибка получения списка несогласованных броней")
		return
	}
	rejected := string(models.RequestStatusRejected)
	for _, item := range list {
		if ctx.Err() != nil {
			break
		}
		if !item.StartTime.Before(now) {
			continue
		}
		_, err = i.bookingProvider.Update(ctx, item.ID, bookingapimodels.BookingRequestEditData{
			Status: &rejected,
		})
		if err != nil {
			logger.
				WithError(err).
				WithField("rec_id", item.ID).
				Error("Ошибка отклонения просроченной брони")
			continue
		}
		logger.WithField("rec_id", item.ID).Info("Бронь отклонена, время начала прошло без согласования")
	}
}
