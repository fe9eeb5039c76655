package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"sei_backend/internals/constants"
	helperAuth "sei_backend/internals/helpers/auth"
)

// Require lets the request through only when the caller's role may perform
// action on res. Must run after AuthMiddleware.
func Require(action constants.Action, res constants.Resource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := helperAuth.EnsureCan(c, action, res); err != nil {
			if fe, ok := err.(*fiber.Error); ok && fe.Code == fiber.StatusForbidden {
				log.Printf("[WARN] forbidden %s %s for %v", action, res, c.Locals(helperAuth.LocUserRole))
			}
			return err
		}
		return c.Next()
	}
}
