// Package actor extracts the authenticated caller from JWT claims so that
// handlers can pass it into services explicitly.
package actor

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Actor identifies the authenticated caller of a request.
type Actor struct {
	UserID uuid.UUID
	Role   string
	// ProfileID is the patient or psychologist row id; uuid.Nil for admins.
	ProfileID uuid.UUID
}

// FromContext reads the actor out of the JWT placed in locals by the auth
// middleware.
func FromContext(c *fiber.Ctx) (Actor, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return Actor{}, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Actor{}, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Actor{}, errors.New("missing sub claim")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Actor{}, err
	}

	act := Actor{UserID: userID}
	if role, ok := claims["role"].(string); ok {
		act.Role = role
	}
	if pid, ok := claims["profile_id"].(string); ok && pid != "" {
		if parsed, err := uuid.Parse(pid); err == nil {
			act.ProfileID = parsed
		}
	}
	return act, nil
}
