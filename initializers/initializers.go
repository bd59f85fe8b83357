package initializers

import (
	"booking-backend/config"
	"booking-backend/db"
	"booking-backend/fiberlog"
	authhandler "booking-backend/lib/auth"
	bookinghandler "booking-backend/lib/booking"
	pendingexpireworker "booking-backend/lib/booking/pending-expire-worker"
	equipmentprovider "booking-backend/lib/dicts/equipment"
	employeehandler "booking-backend/lib/employee"
	meetingroomhandler "booking-backend/lib/meeting-room"
	vacationhandler "booking-backend/lib/vacation"
	"context"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	config.InitConfig()
	LoggerConfig = InitLogger()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	employeehandler.NewHandler()
	authhandler.NewHandler()
	equipmentprovider.NewHandler()
	meetingroomhandler.NewHandler()
	bookinghandler.NewHandler()
	vacationhandler.NewHandler()
	db.InitPreload()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Отклонение броней, не согласованных до времени начала
	pendingexpireworker.StartWorker(ctx)
}
