package apiv1

import (
	"booking-backend/controllers"
	bookinghandler "booking-backend/lib/booking"
	"booking-backend/lib/utils/apperr"
	"booking-backend/middleware"
	"booking-backend/models"
	apimodels "booking-backend/models/api"
	bookingapimodels "booking-backend/models/api/booking"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type bookingRequestApiController struct {
	controllers.BaseAPIController
}

func InitBookingRequestApiRouters(app fiber.Router) {
	controller := bookingRequestApiController{}
	app.Route("booking_request", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Post("list", controller.list)
		router.Get("my", controller.listMy)
		router.Get("my_invitations", controller.listInvitations)
		router.Get("export", controller.exportXls)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Get("ics", controller.getIcs)
		})
	})
}

// @Summary Создание брони переговорной
// @Tags Бронирование переговорных
// @Description Создание брони переговорной от имени текущего сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 bookingapimodels.BookingRequestData	true	"request body"
// @Success 200 {object} apimodels.Response{data=bookingapimodels.BookingRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/booking_request [post]
func (c *bookingRequestApiController) create(ctx *fiber.Ctx) error {
	var payload bookingapimodels.BookingRequestData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	userID := middleware.GetUserID(ctx)
	item, err := bookinghandler.Instance.Create(ctx.UserContext(), userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания брони")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Список броней
// @Tags Бронирование переговорных
// @Description Список броней с фильтром
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 bookingapimodels.BookingFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]bookingapimodels.BookingRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/booking_request/list [post]
func (c *bookingRequestApiController) list(ctx *fiber.Ctx) error {
	var payload bookingapimodels.BookingFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, rowCount, err := bookinghandler.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка броней")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Мои брони
// @Tags Бронирование переговорных
// @Description Брони текущего сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   page				query		int		false	"Страница"
// @Param   limit				query		int		false	"Записей на странице"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]bookingapimodels.BookingRequestView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/booking_request/my [get]
func (c *bookingRequestApiController) listMy(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	list, rowCount, err := bookinghandler.Instance.ListMy(userID, paginationFromQuery(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка броней")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Мои приглашения
// @Tags Бронирование переговорных
// @Description Брони, на которые приглашен текущий сотрудник
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   page				query		int		false	"Страница"
// @Param   limit				query		int		false	"Записей на странице"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]bookingapimodels.BookingRequestView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/booking_request/my_invitations [get]
func (c *bookingRequestApiController) listInvitations(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	list, rowCount, err := bookinghandler.Instance.ListInvitations(userID, paginationFromQuery(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка приглашений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Выгрузка броней в Excel
// @Tags Бронирование переговорных
// @Description Выгрузка броней в Excel
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   employee_id			query		string	false	"Владелец брони"
// @Param   meeting_room_id		query		string	false	"Переговорная"
// @Param   status				query		string	false	"Статусы через запятую"
// @Param   from				query		string	false	"Начало периода, RFC3339"
// @Param   to					query		string	false	"Окончание периода, RFC3339"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/booking_request/export [get]
func (c *bookingRequestApiController) exportXls(ctx *fiber.Ctx) error {
	filter, err := bookingFilterFromQuery(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := filter.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	data, err := bookinghandler.Instance.ExportXls(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки броней в Excel")
	}
	fileName := fmt.Sprintf("bookings-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

// @Summary Получение брони
// @Tags Бронирование переговорных
// @Description Получение брони
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  				true         "rec ID"
// @Success 200 {object} apimodels.Response{data=bookingapimodels.BookingRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/booking_request/{id} [get]
func (c *bookingRequestApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	item, err := bookinghandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения брони")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Изменение брони
// @Tags Бронирование переговорных
// @Description Изменение брони. Владелец меняет время, цель и участников, статус меняет HR
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  				true         "rec ID"
// @Param	body body	 bookingapimodels.BookingRequestEditData	true	"request body"
// @Success 200 {object} apimodels.Response{data=bookingapimodels.BookingRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/booking_request/{id} [put]
func (c *bookingRequestApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload bookingapimodels.BookingRequestEditData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	isHR := middleware.IsHR(ctx)
	if !isHR && (payload.Status != nil || payload.EmployeeID != nil) {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
	}
	current, err := bookinghandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения брони")
	}
	if !isHR && !isBookingOwner(ctx, current) {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
	}

	item, err := bookinghandler.Instance.Update(ctx.UserContext(), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения брони")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Удаление брони
// @Tags Бронирование переговорных
// @Description Удаление брони
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  				true         "rec ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/booking_request/{id} [delete]
func (c *bookingRequestApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if !middleware.IsHR(ctx) {
		current, err := bookinghandler.Instance.GetByID(id)
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления брони")
		}
		if err == nil && !isBookingOwner(ctx, current) {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
	}

	err = bookinghandler.Instance.Delete(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления брони")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Приглашение в формате iCalendar
// @Tags Бронирование переговорных
// @Description Событие брони для календаря (.ics)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  				true         "rec ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/booking_request/{id}/ics [get]
func (c *bookingRequestApiController) getIcs(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	body, err := bookinghandler.Instance.GetIcs(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования события календаря")
	}
	ctx.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="booking-`+id+`.ics"`)
	return ctx.Send(body)
}

func isBookingOwner(ctx *fiber.Ctx, item bookingapimodels.BookingRequestView) bool {
	return item.Employee != nil && item.Employee.ID == middleware.GetUserID(ctx)
}

func paginationFromQuery(ctx *fiber.Ctx) apimodels.Pagination {
	return apimodels.Pagination{
		Page:  ctx.QueryInt("page"),
		Limit: ctx.QueryInt("limit"),
	}
}

func bookingFilterFromQuery(ctx *fiber.Ctx) (filter bookingapimodels.BookingFilter, err error) {
	filter.EmployeeID = ctx.Query("employee_id")
	filter.MeetingRoomID = ctx.Query("meeting_room_id")
	filter.InvitedUserID = ctx.Query("invited_user_id")
	if statuses := ctx.Query("status"); statuses != "" {
		for _, value := range strings.Split(statuses, ",") {
			status, err := models.ParseRequestStatus(strings.TrimSpace(value))
			if err != nil {
				return filter, err
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}
	if from := ctx.Query("from"); from != "" {
		value, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return filter, errors.New("некорректное начало периода")
		}
		filter.From = &value
	}
	if to := ctx.Query("to"); to != "" {
		value, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return filter, errors.New("некорректное окончание периода")
		}
		filter.To = &value
	}
	return filter, nil
}
