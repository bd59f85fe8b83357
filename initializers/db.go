package initializers

import (
	"booking-backend/config"
	"booking-backend/db"
	resourcestore "booking-backend/lib/resource-store"
	memorystore "booking-backend/lib/resource-store/memory"

	log "github.com/sirupsen/logrus"
)

// HealthCheck проверка хранилища для /health, nil для хранилища в памяти
var HealthCheck func() error

func InitDBConnection() {
	if *config.Conf.Database.InMemory {
		log.Warn("используется хранилище в памяти, данные не сохраняются между запусками")
		resourcestore.Instance = memorystore.NewInstance()
		return
	}
	conf := config.Conf.Database
	err := db.Connect(db.ConnConfig{
		Host:      conf.Host,
		Port:      conf.Port,
		Name:      conf.Name,
		User:      conf.User,
		Password:  conf.Password,
		DebugMode: *conf.DebugMode,
		Migrate:   *conf.MigrateOnStart,
		MaxConns:  conf.MaxConns,
	})
	if err != nil {
		panic(err.Error())
	}
	resourcestore.Instance = resourcestore.NewInstance(db.DB)
	HealthCheck = db.PingDB
}
