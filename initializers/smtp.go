package initializers

import (
	"booking-backend/config"
	"booking-backend/lib/notification"
	"booking-backend/lib/smtp"

	log "github.com/sirupsen/logrus"
)

func InitSmtp() {
	conf := config.Conf.Smtp
	if conf.Host == "" {
		log.Warn("SMTP не настроен, уведомления отправляться не будут")
		return
	}
	notification.Instance = smtp.Connect(conf.User, conf.Password, conf.Host, conf.Port, conf.From, *conf.TLSEnabled)
}
