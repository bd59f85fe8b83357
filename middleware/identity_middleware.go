package middleware

import (
	authutils "booking-backend/lib/utils/auth-utils"
	"booking-backend/models"
	apimodels "booking-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		if stringSub, ok := sub.(string); ok {
			return stringSub
		}
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.EmployeeRole {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if stringRole, ok := role.(string); ok && stringRole != "" {
			return models.EmployeeRole(stringRole)
		}
	}
	return ""
}

func IsHR(ctx *fiber.Ctx) bool {
	return GetUserRole(ctx).IsHR()
}

func HrRoleRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if !IsHR(ctx) {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}
