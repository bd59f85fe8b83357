package db

import (
	"context"
	"fmt"
	"time"

	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

type ConnConfig struct {
	Host      string
	Port      string
	Name      string
	User      string
	Password  string
	DebugMode bool
	Migrate   bool
	MaxConns  int
}

func (c ConnConfig) dsn() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s TimeZone=UTC",
		c.Host, c.Port, c.User, c.Name, c.Password)
}

func Connect(conf ConnConfig) error {
	if DB != nil {
		return nil
	}
	db, err := gorm.Open(postgres.Open(conf.dsn()), &gorm.Config{
		Logger:  gorm_logrus.New(),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return errors.Wrap(err, "ошибка подключения к БД")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "ошибка получения пула соединений")
	}
	if conf.MaxConns > 0 {
		sqlDB.SetMaxOpenConns(conf.MaxConns)
		sqlDB.SetMaxIdleConns(conf.MaxConns)
	}
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	if conf.DebugMode {
		db.Logger = logger.Default.LogMode(logger.Info)
		db = db.Debug()
	}
	DB = db
	if conf.Migrate {
		if err = AutoMigrateDB(); err != nil {
			return err
		}
	}
	log.WithField("host", conf.Host).WithField("db", conf.Name).Info("сервис подключен к БД")
	return nil
}

func PingDB() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
