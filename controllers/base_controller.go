package controllers

import (
	"booking-backend/fiberlog"
	"booking-backend/lib/utils/apperr"
	"booking-backend/middleware"
	apimodels "booking-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := ctx.Params("id")
	if id == "" {
		return "", errors.New("не указан идентификатор")
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.WithFields(log.Fields{
		"request_id":  fiberlog.GetRequestID(ctx),
		"employee_id": middleware.GetUserID(ctx),
		"path":        ctx.Path(),
	})
}

// SendError бизнес-ошибки отдаются с их статусом и ключом, остальные логируются как 500
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	if appErr, ok := apperr.As(err); ok {
		logger.WithError(err).Info(msg)
		return ctx.Status(apperr.HttpStatus(err)).JSON(apimodels.NewErrorWithInfo(appErr.Error(), apimodels.ErrorInfo{
			Entity:   appErr.Entity,
			ErrorKey: appErr.Key,
		}))
	}
	logger.WithError(err).Error(msg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(msg))
}
