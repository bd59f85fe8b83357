package middleware

import (
	"booking-backend/fiberlog"
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

var errNotifyClient = &http.Client{Timeout: 5 * time.Second}

type errNotifyPayload struct {
	Code      int    `json:"code"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
}

// ErrNotify отправляет сведения об ответах 5xx на webhook мониторинга, отправка асинхронная
func ErrNotify(addr string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		statusCode := c.Response().StatusCode()
		if statusCode < http.StatusInternalServerError {
			return err
		}

		payload := errNotifyPayload{
			Code:      statusCode,
			Method:    c.Method(),
			Path:      c.OriginalURL(),
			RequestID: fiberlog.GetRequestID(c),
		}
		if r := c.Route(); r != nil {
			payload.Path = r.Path
		}
		var resp struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(c.Response().Body(), &resp) == nil && resp.Message != "" {
			payload.Error = resp.Message
		} else {
			payload.Error = string(c.Response().Body())
		}

		go sendErrNotify(addr, payload)
		return err
	}
}

func sendErrNotify(addr string, payload errNotifyPayload) {
	logger := log.WithField("request_id", payload.RequestID)
	body, err := json.Marshal(payload)
	if err != nil {
		logger.WithError(err).Warn("ошибка формирования уведомления об ошибке")
		return
	}
	resp, err := errNotifyClient.Post(addr, fiber.MIMEApplicationJSON, bytes.NewReader(body))
	if err != nil {
		logger.WithError(err).Warn("ошибка отправки уведомления об ошибке")
		return
	}
	resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		logger.WithField("status", resp.StatusCode).Warn("webhook мониторинга отклонил уведомление")
	}
}
