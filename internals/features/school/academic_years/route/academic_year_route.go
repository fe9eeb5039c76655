package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sei_backend/internals/constants"
	"sei_backend/internals/features/school/academic_years/controller"
	authMiddleware "sei_backend/internals/middlewares/auth"
)

func AcademicYearRoutes(r fiber.Router, db *gorm.DB, mw ...fiber.Handler) {
	ctl := controller.NewAcademicYearController(db)
	res := constants.ResAcademicYears

	g := r.Group("/academic-years", mw...)
	g.Get("/", authMiddleware.Require(constants.ActionRead, res), ctl.List)
	g.Get("/:year", authMiddleware.Require(constants.ActionRead, res), ctl.Get)
	g.Post("/", authMiddleware.Require(constants.ActionUpdate, res), ctl.Upsert)
	g.Put("/:year", authMiddleware.Require(constants.ActionUpdate, res), ctl.Update)
	g.Delete("/:year", authMiddleware.Require(constants.ActionDelete, res), ctl.Delete)
}
