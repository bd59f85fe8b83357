package apiv1

import (
	"booking-backend/controllers"
	employeehandler "booking-backend/lib/employee"
	"booking-backend/middleware"
	apimodels "booking-backend/models/api"
	employeeapimodels "booking-backend/models/api/employee"

	"github.com/gofiber/fiber/v2"
)

type employeeApiController struct {
	controllers.BaseAPIController
}

func InitEmployeeApiRouters(app fiber.Router) {
	controller := employeeApiController{}
	app.Route("employee", func(router fiber.Router) {
		router.Get("me", controller.me)
		router.Use(middleware.HrRoleRequired())
		router.Post("", controller.create)
		router.Post("list", controller.list)
		router.Get(":id", controller.get)
		router.Put(":id", controller.update)
		router.Delete(":id", controller.delete)
	})
}

// @Summary Профиль текущего сотрудника
// @Tags Сотрудники
// @Description Профиль текущего сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=employeeapimodels.EmployeeView}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/me [get]
func (c *employeeApiController) me(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	item, err := employeehandler.Instance.GetByID(userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения профиля")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Создание сотрудника
// @Tags Сотрудники
// @Description Создание сотрудника с учетной записью (HR)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 employeeapimodels.EmployeeData	true	"request body"
// @Success 200 {object} apimodels.Response{data=employeeapimodels.EmployeeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee [post]
func (c *employeeApiController) create(ctx *fiber.Ctx) error {
	var payload employeeapimodels.EmployeeData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	item, err := employeehandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания сотрудника")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Список сотрудников
// @Tags Сотрудники
// @Description Список сотрудников (HR)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 employeeapimodels.EmployeeFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]employeeapimodels.EmployeeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/list [post]
func (c *employeeApiController) list(ctx *fiber.Ctx) error {
	var payload employeeapimodels.EmployeeFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, rowCount, err := employeehandler.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка сотрудников")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Получение сотрудника
// @Tags Сотрудники
// @Description Получение сотрудника (HR)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  				true         "rec ID"
// @Success 200 {object} apimodels.Response{data=employeeapimodels.EmployeeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/{id} [get]
func (c *employeeApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	item, err := employeehandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения сотрудника")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Изменение сотрудника
// @Tags Сотрудники
// @Description Изменение сотрудника (HR)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  				true         "rec ID"
// @Param	body body	 employeeapimodels.EmployeeData	true	"request body"
// @Success 200 {object} apimodels.Response{data=employeeapimodels.EmployeeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/{id} [put]
func (c *employeeApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload employeeapimodels.EmployeeData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	item, err := employeehandler.Instance.Update(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения сотрудника")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Удаление сотрудника
// @Tags Сотрудники
// @Description Удаление сотрудника без заявок (HR)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  				true         "rec ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/{id} [delete]
func (c *employeeApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = employeehandler.Instance.Delete(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления сотрудника")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
