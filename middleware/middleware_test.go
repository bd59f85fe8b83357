package middleware

import (
	"booking-backend/config"
	authutils "booking-backend/lib/utils/auth-utils"
	"booking-backend/models"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"
	config.Conf.Auth.JWTExpireInSec = 60

	app := fiber.New()
	app.Use(AuthorizationRequired())
	app.Get("/me", func(ctx *fiber.Ctx) error {
		return ctx.SendString(GetUserID(ctx) + ":" + string(GetUserRole(ctx)))
	})
	app.Get("/hr", HrRoleRequired(), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	call := func(path, token string) (int, string) {
		req := httptest.NewRequest(fiber.MethodGet, path, nil)
		if token != "" {
			req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	employeeToken, err := authutils.GetToken("e1", "Иван", models.EmployeeRoleEmployee)
	require.NoError(t, err)
	hrToken, err := authutils.GetToken("h1", "Анна", models.EmployeeRoleHR)
	require.NoError(t, err)

	t.Run(`без токена`, func(t *testing.T) {
		status, _ := call("/me", "")
		require.Equal(t, fiber.StatusUnauthorized, status)
	})
	t.Run(`сотрудник из токена`, func(t *testing.T) {
		status, body := call("/me", employeeToken)
		require.Equal(t, fiber.StatusOK, status)
		require.Equal(t, "e1:EMPLOYEE", body)
	})
	t.Run(`роль HR`, func(t *testing.T) {
		status, _ := call("/hr", employeeToken)
		require.Equal(t, fiber.StatusForbidden, status)
		status, _ = call("/hr", hrToken)
		require.Equal(t, fiber.StatusOK, status)
	})
}

func TestWithBodyLimit(t *testing.T) {
	app := fiber.New()
	app.Use(WithBodyLimit(10))
	app.Post("/", func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader("short")))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader("much longer than ten")))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestErrNotify(t *testing.T) {
	received := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- string(body)
	}))
	defer server.Close()

	app := fiber.New()
	app.Use(ErrNotify(server.URL))
	app.Get("/fail", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "fail", "message": "сбой"})
	})
	app.Get("/ok", func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ok", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/fail", nil))
	require.NoError(t, err)

	select {
	case body := <-received:
		require.Contains(t, body, `"code":500`)
		require.Contains(t, body, `"path":"/fail"`)
		require.Contains(t, body, "сбой")
	case <-time.After(5 * time.Second):
		t.Fatal("уведомление не отправлено")
	}
}
