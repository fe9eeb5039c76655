package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sei_backend/internals/constants"
	"sei_backend/internals/features/users/auth/controller"
	"sei_backend/internals/middlewares"
	authMiddleware "sei_backend/internals/middlewares/auth"
)

// AuthPublicRoutes must be mounted before any router that carries the JWT
// middleware on the same prefix.
func AuthPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewAuthController(db)

	g := r.Group("/auth")
	g.Get("/setup-status", ctl.SetupStatus)
	g.Post("/setup-admin", middlewares.RegisterRateLimiter(), ctl.SetupAdmin)
	g.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
}

// AuthRoutes expects r to already run authMiddleware.AuthMiddleware.
func AuthRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewAuthController(db)

	g := r.Group("/auth")
	g.Post("/register", authMiddleware.Require(constants.ActionCreate, constants.ResUsers), ctl.Register)
	g.Get("/me", ctl.Me)
	g.Post("/update-password", ctl.UpdatePassword)
	g.Post("/logout", ctl.Logout)
}
