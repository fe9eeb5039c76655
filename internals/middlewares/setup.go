package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"sei_backend/internals/middlewares/logger"
)

// SetupMiddlewares installs the middlewares shared by every route.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
}
