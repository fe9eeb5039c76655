package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sei_backend/internals/constants"
	"sei_backend/internals/features/school/grades/controller"
	authMiddleware "sei_backend/internals/middlewares/auth"
)

func GradeRoutes(r fiber.Router, db *gorm.DB, mw ...fiber.Handler) {
	ctl := controller.NewGradeController(db)
	res := constants.ResGrades

	g := r.Group("/grades", mw...)
	g.Get("/", authMiddleware.Require(constants.ActionRead, res), ctl.List)
	g.Get("/:id", authMiddleware.Require(constants.ActionRead, res), ctl.Get)
	g.Post("/", authMiddleware.Require(constants.ActionCreate, res), ctl.Upsert)
	g.Post("/bulk", authMiddleware.Require(constants.ActionCreate, res), ctl.Bulk)
	g.Put("/:id", authMiddleware.Require(constants.ActionUpdate, res), ctl.Update)
	g.Delete("/:id", authMiddleware.Require(constants.ActionDelete, res), ctl.Delete)
}
