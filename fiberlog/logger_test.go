package fiberlog

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	app := fiber.New()
	app.Use(New(Config{
		Logger: logger,
		Tags:   []string{TagStatus, TagMethod, TagPath, TagBody, RequestID},
	}))
	app.Post("/ping", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "fail"})
	})

	req := httptest.NewRequest("POST", "/ping", bytes.NewBufferString(`{"a":1}`))
	req.Header.Set(fiber.HeaderXRequestID, "req-1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, "req-1", resp.Header.Get(fiber.HeaderXRequestID))

	entry := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "warning", entry["level"])
	require.Equal(t, "запрос api", entry["msg"])
	require.Equal(t, "POST", entry[TagMethod])
	require.Equal(t, "/ping", entry[TagPath])
	require.Equal(t, "req-1", entry[RequestID])
	require.Equal(t, `{"a":1}`, entry[TagBody])
	require.EqualValues(t, 404, entry[TagStatus])
}

func TestLoggerSkipPaths(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := logrus.New()
	logger.SetOutput(buf)

	app := fiber.New()
	app.Use(New(Config{
		Logger:    logger,
		Tags:      []string{TagStatus, TagPath},
		SkipPaths: []string{"/health"},
	}))
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Empty(t, resp.Header.Get(fiber.HeaderXRequestID))
	require.Zero(t, buf.Len())
}
