package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sei_backend/internals/constants"
	"sei_backend/internals/features/school/students/controller"
	authMiddleware "sei_backend/internals/middlewares/auth"
)

// StudentRoutes mounts /students. mw runs before every handler of the group
// (the caller passes the stats cache invalidator here).
func StudentRoutes(r fiber.Router, db *gorm.DB, mw ...fiber.Handler) {
	ctl := controller.NewStudentController(db)
	res := constants.ResStudents

	g := r.Group("/students", mw...)
	g.Get("/", authMiddleware.Require(constants.ActionRead, res), ctl.List)
	g.Get("/:id", authMiddleware.Require(constants.ActionRead, res), ctl.Get)
	g.Post("/", authMiddleware.Require(constants.ActionCreate, res), ctl.Create)
	g.Put("/:id", authMiddleware.Require(constants.ActionUpdate, res), ctl.Update)
	g.Delete("/:id", authMiddleware.Require(constants.ActionDelete, res), ctl.Delete)
}
