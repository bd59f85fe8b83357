package dict

import (
	"booking-backend/controllers"
	equipmentprovider "booking-backend/lib/dicts/equipment"
	"booking-backend/middleware"
	apimodels "booking-backend/models/api"
	dictapimodels "booking-backend/models/api/dict"

	"github.com/gofiber/fiber/v2"
)

type equipmentDictApiController struct {
	controllers.BaseAPIController
}

func InitEquipmentDictApiRouters(app fiber.Router) {
	controller := equipmentDictApiController{}
	app.Route("equipment", func(router fiber.Router) {
		router.Get("", controller.equipmentList)
		router.Use(middleware.HrRoleRequired())
		router.Post("", controller.equipmentCreate)
		router.Delete(":id", controller.equipmentDelete)
	})
}

// @Summary Создание
// @Tags Справочник. Оборудование
// @Description Создание
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.EquipmentData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/equipment [post]
func (c *equipmentDictApiController) equipmentCreate(ctx *fiber.Ctx) error {
	var payload dictapimodels.EquipmentData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := equipmentprovider.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания записи в справочнике оборудования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список
// @Tags Справочник. Оборудование
// @Description Список
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.EquipmentView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/equipment [get]
func (c *equipmentDictApiController) equipmentList(ctx *fiber.Ctx) error {
	list, err := equipmentprovider.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка оборудования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Удаление
// @Tags Справочник. Оборудование
// @Description Удаление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/equipment/{id} [delete]
func (c *equipmentDictApiController) equipmentDelete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = equipmentprovider.Instance.Delete(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления записи из справочника оборудования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
