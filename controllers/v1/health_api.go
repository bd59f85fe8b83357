package apiv1

import (
	"booking-backend/controllers"
	apimodels "booking-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type healthApiController struct {
	controllers.BaseAPIController
	check func() error
}

// InitHealthApiRouters check проверяет доступность хранилища, может быть nil
func InitHealthApiRouters(app fiber.Router, check func() error) {
	controller := healthApiController{check: check}
	app.Get("health", controller.health)
}

// @Summary Проверка работоспособности
// @Tags Служебные
// @Description Проверка работоспособности сервиса
// @Success 200 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /api/v1/health [get]
func (c *healthApiController) health(ctx *fiber.Ctx) error {
	if c.check != nil {
		if err := c.check(); err != nil {
			c.GetLogger(ctx).WithError(err).Error("хранилище недоступно")
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError("хранилище недоступно"))
		}
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse("ok"))
}
