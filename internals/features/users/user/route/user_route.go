package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sei_backend/internals/constants"
	"sei_backend/internals/features/users/user/controller"
	authMiddleware "sei_backend/internals/middlewares/auth"
)

func UserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewUserController(db)
	res := constants.ResUsers

	g := r.Group("/users")
	g.Get("/", authMiddleware.Require(constants.ActionRead, res), ctl.List)
	g.Get("/:id", authMiddleware.Require(constants.ActionRead, res), ctl.Get)
	// permission depends on the target and payload, checked in the handler
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", authMiddleware.Require(constants.ActionDelete, res), ctl.Delete)
}
