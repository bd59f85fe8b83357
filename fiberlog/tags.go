package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	TagPid       = "pid"
	TagStatus    = "status"
	TagLatency   = "latency"
	TagMethod    = "method"
	TagPath      = "path"
	TagIP        = "ip"
	TagUserAgent = "user_agent"
	TagBody      = "body"
	TagResBody   = "res_body"
	RequestID    = "request_id"
)

const requestIDLocal = "request_id"

// максимальный размер тела запроса/ответа в логе
const maxBodyLen = 2048

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

// FuncTag значение тега для записи лога
type FuncTag func(c *fiber.Ctx, d *data) interface{}

func getFuncTagMap(cfg Config) map[string]FuncTag {
	all := map[string]FuncTag{
		TagPid: func(_ *fiber.Ctx, d *data) interface{} {
			return d.pid
		},
		TagStatus: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Response().StatusCode()
		},
		TagLatency: func(_ *fiber.Ctx, d *data) interface{} {
			return d.end.Sub(d.start).String()
		},
		TagMethod: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Method()
		},
		TagPath: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Path()
		},
		TagIP: func(c *fiber.Ctx, _ *data) interface{} {
			return c.IP()
		},
		TagUserAgent: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Get(fiber.HeaderUserAgent)
		},
		TagBody: func(c *fiber.Ctx, _ *data) interface{} {
			if isMultipart(c) {
				return ""
			}
			return truncate(c.Body())
		},
		TagResBody: func(c *fiber.Ctx, _ *data) interface{} {
			if !isJSONResponse(c) {
				return ""
			}
			return truncate(c.Response().Body())
		},
		RequestID: func(c *fiber.Ctx, _ *data) interface{} {
			return GetRequestID(c)
		},
	}
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := all[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}

// GetRequestID идентификатор запроса из заголовка X-Request-ID, либо сгенерированный
func GetRequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestIDLocal).(string); ok && id != "" {
		return id
	}
	id := c.Get(fiber.HeaderXRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	c.Locals(requestIDLocal, id)
	return id
}

func isMultipart(c *fiber.Ctx) bool {
	return len(c.Request().Header.MultipartFormBoundary()) > 0
}

func isJSONResponse(c *fiber.Ctx) bool {
	return string(c.Response().Header.ContentType()) == fiber.MIMEApplicationJSON
}

func truncate(body []byte) string {
	if len(body) > maxBodyLen {
		return string(body[:maxBodyLen]) + "..."
	}
	return string(body)
}
