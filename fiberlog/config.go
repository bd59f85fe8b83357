package fiberlog

import "github.com/sirupsen/logrus"

// Config настройки middleware логирования запросов
type Config struct {
	Logger *logrus.Logger
	Tags   []string
	// запросы по этим путям не логируются (health)
	SkipPaths []string
}

var ConfigDefault = Config{
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
		RequestID,
	},
}
