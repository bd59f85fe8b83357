package apiv1

import (
	"booking-backend/controllers"
	"booking-backend/lib/utils/apperr"
	vacationhandler "booking-backend/lib/vacation"
	"booking-backend/middleware"
	apimodels "booking-backend/models/api"
	vacationapimodels "booking-backend/models/api/vacation"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type vacationRequestApiController struct {
	controllers.BaseAPIController
}

func InitVacationRequestApiRouters(app fiber.Router) {
	controller := vacationRequestApiController{}
	app.Route("vacation_request", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Post("list", middleware.HrRoleRequired(), controller.list)
		router.Get("my", controller.listMy)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Post("attachment", controller.uploadAttachment)
			idRoute.Get("pdf", controller.getPdf)
		})
	})
}

// @Summary Создание заявки на отпуск
// @Tags Заявки на отпуск
// @Description Создание заявки на отпуск от имени текущего сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 vacationapimodels.VacationRequestData	true	"request body"
// @Success 200 {object} apimodels.Response{data=vacationapimodels.VacationRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/vacation_request [post]
func (c *vacationRequestApiController) create(ctx *fiber.Ctx) error {
	var payload vacationapimodels.VacationRequestData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	userID := middleware.GetUserID(ctx)
	item, err := vacationhandler.Instance.Create(ctx.UserContext(), userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания заявки на отпуск")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Список заявок на отпуск
// @Tags Заявки на отпуск
// @Description Список заявок на отпуск (HR)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 vacationapimodels.VacationFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]vacationapimodels.VacationRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/vacation_request/list [post]
func (c *vacationRequestApiController) list(ctx *fiber.Ctx) error {
	var payload vacationapimodels.VacationFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, rowCount, err := vacationhandler.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок на отпуск")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Мои заявки на отпуск
// @Tags Заявки на отпуск
// @Description Заявки на отпуск текущего сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]vacationapimodels.VacationRequestView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/vacation_request/my [get]
func (c *vacationRequestApiController) listMy(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	list, err := vacationhandler.Instance.ListMy(userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок на отпуск")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Получение заявки на отпуск
// @Tags Заявки на отпуск
// @Description Получение заявки на отпуск
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  				true         "rec ID"
// @Success 200 {object} apimodels.Response{data=vacationapimodels.VacationRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/vacation_request/{id} [get]
func (c *vacationRequestApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	item, err := vacationhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки на отпуск")
	}
	if !middleware.IsHR(ctx) && !isVacationOwner(ctx, item) {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Изменение заявки на отпуск
// @Tags Заявки на отпуск
// @Description Изменение заявки на отпуск. Согласование и отклонение доступны HR
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  				true         "rec ID"
// @Param	body body	 vacationapimodels.VacationRequestEditData	true	"request body"
// @Success 200 {object} apimodels.Response{data=vacationapimodels.VacationRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/vacation_request/{id} [put]
func (c *vacationRequestApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload vacationapimodels.VacationRequestEditData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	isHR := middleware.IsHR(ctx)
	if !isHR {
		if payload.Status != nil {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		current, err := vacationhandler.Instance.GetByID(id)
		if err != nil {
			return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения заявки на отпуск")
		}
		if !isVacationOwner(ctx, current) {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
	}

	userID := middleware.GetUserID(ctx)
	item, err := vacationhandler.Instance.Update(ctx.UserContext(), userID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения заявки на отпуск")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Удаление заявки на отпуск
// @Tags Заявки на отпуск
// @Description Удаление заявки на отпуск вместе с вложениями
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  				true         "rec ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/vacation_request/{id} [delete]
func (c *vacationRequestApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if !middleware.IsHR(ctx) {
		current, err := vacationhandler.Instance.GetByID(id)
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления заявки на отпуск")
		}
		if err == nil && !isVacationOwner(ctx, current) {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
	}

	err = vacationhandler.Instance.Delete(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления заявки на отпуск")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Загрузить вложение
// @Tags Заявки на отпуск
// @Description Загрузить вложение к заявке на отпуск
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  				true         "rec ID"
// @Param   file				formData	file 	true 	"Файл"
// @Success 200 {object} apimodels.Response{data=vacationapimodels.AttachmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/vacation_request/{id}/attachment [post]
func (c *vacationRequestApiController) uploadAttachment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if !middleware.IsHR(ctx) {
		current, err := vacationhandler.Instance.GetByID(id)
		if err != nil {
			return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки вложения")
		}
		if !isVacationOwner(ctx, current) {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
	}

	buffer, err := file.Open()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка при получении файла")
	}
	defer buffer.Close()
	contentType := file.Header.Get(fiber.HeaderContentType)
	if contentType == "" {
		contentType = fiber.MIMEOctetStream
	}
	item, err := vacationhandler.Instance.AddAttachment(ctx.UserContext(), id, file.Filename, contentType, buffer, file.Size)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки вложения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Заявление на отпуск в PDF
// @Tags Заявки на отпуск
// @Description Печатная форма заявления на отпуск
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  				true         "rec ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/vacation_request/{id}/pdf [get]
func (c *vacationRequestApiController) getPdf(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if !middleware.IsHR(ctx) {
		current, err := vacationhandler.Instance.GetByID(id)
		if err != nil {
			return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования заявления")
		}
		if !isVacationOwner(ctx, current) {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
	}

	body, err := vacationhandler.Instance.GetPdf(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования заявления")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `inline; filename="vacation-`+id+`.pdf"`)
	return ctx.Send(body)
}

func isVacationOwner(ctx *fiber.Ctx, item vacationapimodels.VacationRequestView) bool {
	return item.Employee != nil && item.Employee.ID == middleware.GetUserID(ctx)
}
