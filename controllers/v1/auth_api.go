package apiv1

import (
	"booking-backend/controllers"
	authhandler "booking-backend/lib/auth"
	apimodels "booking-backend/models/api"
	authapimodels "booking-backend/models/api/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type authApiController struct {
	controllers.BaseAPIController
}

func InitAuthApiRouters(app fiber.Router) {
	controller := authApiController{}
	app.Route("auth", func(router fiber.Router) {
		router.Post("login", controller.login)
	})
}

// @Summary Аутентификация сотрудника
// @Tags Аутентификация
// @Description Аутентификация сотрудника по почте и паролю
// @Param	body				body		authapimodels.LoginRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=authapimodels.JWTResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/login [post]
func (c *authApiController) login(ctx *fiber.Ctx) error {
	var payload authapimodels.LoginRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := authhandler.Instance.Login(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, authhandler.ErrWrongCredentials) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка аутентификации")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
