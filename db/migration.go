package db

import (
	dbmodels "booking-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// бронирования одной переговорной не пересекаются, отклоненные не учитываются
const bookingOverlapConstraint = `
DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'booking_requests_no_overlap') THEN
		ALTER TABLE booking_requests ADD CONSTRAINT booking_requests_no_overlap
			EXCLUDE USING gist (meeting_room_id WITH =, tstzrange(start_time, end_time, '[)') WITH &&)
			WHERE (status <> 'REJECTED');
	END IF;
END $$;`

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	if err := DB.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist;").Error; err != nil {
		return errors.Wrap(err, "ошибка подключения расширения btree_gist")
	}
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Employee{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Employee")
	}
	if err := DB.AutoMigrate(&dbmodels.Equipment{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Equipment")
	}
	if err := DB.AutoMigrate(&dbmodels.MeetingRoom{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры MeetingRoom")
	}
	if err := DB.SetupJoinTable(&dbmodels.BookingRequest{}, "InvitedUsers", &dbmodels.BookingInvite{}); err != nil {
		return errors.Wrap(err, "ошибка настройки таблицы приглашений")
	}
	if err := DB.AutoMigrate(&dbmodels.BookingRequest{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры BookingRequest")
	}
	if err := DB.Exec(bookingOverlapConstraint).Error; err != nil {
		return errors.Wrap(err, "ошибка создания ограничения пересечения броней")
	}
	if err := DB.AutoMigrate(&dbmodels.VacationRequest{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры VacationRequest")
	}
	if err := DB.AutoMigrate(&dbmodels.Attachment{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Attachment")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
