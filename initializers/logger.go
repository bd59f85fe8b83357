package initializers

import (
	"booking-backend/config"
	"booking-backend/fiberlog"

	log "github.com/sirupsen/logrus"
)

func newJSONFormatter() *log.JSONFormatter {
	return &log.JSONFormatter{
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "@timestamp",
			log.FieldKeyMsg:  "message",
		},
	}
}

// InitLogger вызывается после загрузки конфигурации
func InitLogger() *fiberlog.Config {
	level, err := log.ParseLevel(config.Conf.App.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetFormatter(newJSONFormatter())
	log.SetLevel(level)
	if err != nil {
		log.WithError(err).Warn("неизвестный уровень логирования, используется info")
	}

	// логгер запросов api
	logger := log.New()
	logger.SetFormatter(newJSONFormatter())
	logger.SetLevel(level)
	return &fiberlog.Config{
		Logger: logger,
		Tags: []string{
			fiberlog.TagBody,
			fiberlog.TagResBody,
			fiberlog.TagMethod,
			fiberlog.TagPath,
			fiberlog.TagStatus,
			fiberlog.TagLatency,
			fiberlog.RequestID,
		},
		SkipPaths: []string{"/api/v1/health"},
	}
}
