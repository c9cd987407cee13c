package middleware

import (
	"github.com/calmind-app/calmind-backend/internal/actor"
	"github.com/calmind-app/calmind-backend/internal/dto"
	"github.com/calmind-app/calmind-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RoleRequired allows only callers holding the given role. The JWT claim is
// checked first; the stored user row is the fallback for tokens issued
// before a role change.
func RoleRequired(db *gorm.DB, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		act, err := actor.FromContext(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("Unauthorized"))
		}

		if act.Role == role {
			return c.Next()
		}

		var user models.User
		if err := db.First(&user, "id = ?", act.UserID).Error; err == nil && user.Role == role {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.Error(role + " access required"))
	}
}
