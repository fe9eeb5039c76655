package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sei_backend/internals/constants"
	"sei_backend/internals/features/school/assignments/controller"
	authMiddleware "sei_backend/internals/middlewares/auth"
)

func AssignmentRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewAssignmentController(db)
	res := constants.ResAssignments

	g := r.Group("/assignments")
	g.Get("/", authMiddleware.Require(constants.ActionRead, res), ctl.List)
	g.Get("/:id", authMiddleware.Require(constants.ActionRead, res), ctl.Get)
	g.Post("/", authMiddleware.Require(constants.ActionCreate, res), ctl.Create)
	g.Put("/:id", authMiddleware.Require(constants.ActionUpdate, res), ctl.Update)
	g.Delete("/:id", authMiddleware.Require(constants.ActionDelete, res), ctl.Delete)
}
