package apiv1

import (
	"booking-backend/controllers"
	meetingroomhandler "booking-backend/lib/meeting-room"
	"booking-backend/middleware"
	apimodels "booking-backend/models/api"
	roomapimodels "booking-backend/models/api/room"

	"github.com/gofiber/fiber/v2"
)

type meetingRoomApiController struct {
	controllers.BaseAPIController
}

func InitMeetingRoomApiRouters(app fiber.Router) {
	controller := meetingRoomApiController{}
	app.Route("meeting_room", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Get(":id", controller.get)
		router.Use(middleware.HrRoleRequired())
		router.Post("", controller.create)
		router.Put(":id", controller.update)
		router.Delete(":id", controller.delete)
	})
}

// @Summary Создание переговорной
// @Tags Переговорные
// @Description Создание переговорной (HR)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 roomapimodels.MeetingRoomData	true	"request body"
// @Success 200 {object} apimodels.Response{data=roomapimodels.MeetingRoomView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/meeting_room [post]
func (c *meetingRoomApiController) create(ctx *fiber.Ctx) error {
	var payload roomapimodels.MeetingRoomData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	item, err := meetingroomhandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания переговорной")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Список переговорных
// @Tags Переговорные
// @Description Список переговорных с фильтром
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 roomapimodels.MeetingRoomFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]roomapimodels.MeetingRoomView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/meeting_room/list [post]
func (c *meetingRoomApiController) list(ctx *fiber.Ctx) error {
	var payload roomapimodels.MeetingRoomFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, rowCount, err := meetingroomhandler.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка переговорных")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Получение переговорной
// @Tags Переговорные
// @Description Получение переговорной
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  				true         "rec ID"
// @Success 200 {object} apimodels.Response{data=roomapimodels.MeetingRoomView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/meeting_room/{id} [get]
func (c *meetingRoomApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	item, err := meetingroomhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения переговорной")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Изменение переговорной
// @Tags Переговорные
// @Description Изменение переговорной (HR)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  				true         "rec ID"
// @Param	body body	 roomapimodels.MeetingRoomData	true	"request body"
// @Success 200 {object} apimodels.Response{data=roomapimodels.MeetingRoomView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/meeting_room/{id} [put]
func (c *meetingRoomApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload roomapimodels.MeetingRoomData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	item, err := meetingroomhandler.Instance.Update(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения переговорной")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Удаление переговорной
// @Tags Переговорные
// @Description Удаление переговорной (HR)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  				true         "rec ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/meeting_room/{id} [delete]
func (c *meetingRoomApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = meetingroomhandler.Instance.Delete(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления переговорной")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
