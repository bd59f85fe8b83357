package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
		BodyLimit  int    `default:"10485760" env:"APP_BODY_LIMIT"` // байт
		LogLevel   string `default:"info" env:"APP_LOG_LEVEL"`
		// webhook для уведомлений о 5xx, пусто - не отправлять
		ErrNotifyAddr string `default:"" env:"APP_ERR_NOTIFY_ADDR"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"booking" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
		InMemory       *bool  `default:"false" env:"DB_IN_MEMORY"` // хранение в памяти, без postgres
		MaxConns       int    `default:"20" env:"DB_MAX_CONNS"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		From       string `default:"" env:"SMTP_FROM"`
	}
	S3 struct {
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"booking" env:"S3_BUCKET_NAME"`
	}
	Auth struct {
		JWTSecret       string `default:"secret" env:"AUTH_JWT_SECRET"`
		JWTExpireInSec  int    `default:"86400" env:"AUTH_JWT_EXPIRE_IN_SEC"`
		DefaultPassword string `default:"changeme" env:"AUTH_DEFAULT_PASSWORD"`
	}
	Booking struct {
		LockWaitSec     int `default:"10" env:"BOOKING_LOCK_WAIT_SEC"`
		RoomCacheTTLSec int `default:"300" env:"BOOKING_ROOM_CACHE_TTL_SEC"`
		// период отклонения несогласованных броней, время начала которых прошло
		PendingExpireIntervalMin int `default:"10" env:"BOOKING_PENDING_EXPIRE_INTERVAL_MIN"`
	}
	Export struct {
		FontDir string `default:"static/font/" env:"EXPORT_FONT_DIR"` // DejaVuSans.ttf для pdf
	}
	Admin struct {
		Email           string `default:"" env:"ADMIN_EMAIL"`
		Name            string `default:"Администратор" env:"ADMIN_NAME"`
		VacationBalance int    `default:"28" env:"ADMIN_VACATION_BALANCE"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
