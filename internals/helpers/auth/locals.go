package helperAuth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sei_backend/internals/constants"
)

// Locals keys hydrated by the JWT middleware.
const (
	LocUserID   = "user_id"
	LocUserRole = "user_role"
	LocRawToken = "raw_token"
	LocTokenExp = "token_exp"
)

func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	s, _ := c.Locals(LocUserID).(string)
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing user id")
	}
	return id, nil
}

func GetRole(c *fiber.Ctx) (constants.Role, error) {
	r, ok := c.Locals(LocUserRole).(constants.Role)
	if !ok || r == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing role information")
	}
	return r, nil
}

// EnsureCan is the in-handler variant of the Require middleware, for checks
// that depend on the payload (e.g. changing a user's role).
func EnsureCan(c *fiber.Ctx, action constants.Action, res constants.Resource) error {
	role, err := GetRole(c)
	if err != nil {
		return err
	}
	if !constants.Can(role, action, res) {
		return fiber.NewError(fiber.StatusForbidden, constants.ForbiddenMessage(action, res))
	}
	return nil
}
