package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sei_backend/internals/constants"
	"sei_backend/internals/features/school/settings/controller"
	authMiddleware "sei_backend/internals/middlewares/auth"
)

// SettingsPublicRoutes exposes the branding shown on the login screen.
func SettingsPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewSettingsController(db)
	r.Get("/settings", ctl.Get)
}

// SettingsRoutes mounts the admin-only writes.
func SettingsRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewSettingsController(db)
	guard := authMiddleware.Require(constants.ActionUpdate, constants.ResSettings)

	g := r.Group("/settings")
	g.Put("/", guard, ctl.Update)
	g.Post("/logo", guard, ctl.UploadLogo)
}
