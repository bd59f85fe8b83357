package notification

import (
	log "github.com/sirupsen/logrus"
)

// Provider отправка уведомления, транспорт внешний
type Provider interface {
	Send(to, subject, body string) error
}

var Instance Provider

type Message struct {
	To      string
	Subject string
	Body    string
}

// SendAll отправка без гарантий: ошибки только логируются, повторные адресаты пропускаются
func SendAll(provider Provider, logger *log.Entry, messages ...Message) {
	if provider == nil {
		logger.Warn("уведомления не отправлены, транспорт не настроен")
		return
	}
	sent := map[string]bool{}
	for _, message := range messages {
		if message.To == "" || sent[message.To] {
			continue
		}
		sent[message.To] = true
		err := provider.Send(message.To, message.Subject, message.Body)
		if err != nil {
			logger.
				WithField("recipient", message.To).
				WithError(err).
				Warn("ошибка отправки уведомления")
		}
	}
}
