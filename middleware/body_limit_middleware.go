package middleware

import (
	apimodels "booking-backend/models/api"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// WithBodyLimit отклоняет запрос по заголовку Content-Length до чтения тела
func WithBodyLimit(limit int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		size := int64(c.Request().Header.ContentLength())
		if size > limit {
			return c.Status(fiber.StatusRequestEntityTooLarge).
				JSON(apimodels.NewError(fmt.Sprintf("размер запроса превышает %d байт", limit)))
		}
		return c.Next()
	}
}
