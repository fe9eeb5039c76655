package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sei_backend/internals/constants"
	"sei_backend/internals/features/school/curriculum/controller"
	authMiddleware "sei_backend/internals/middlewares/auth"
)

// CurriculumRoutes mounts /formations, /knowledge-areas and /sub-areas.
func CurriculumRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewCurriculumController(db)
	can := authMiddleware.Require

	f := r.Group("/formations")
	f.Get("/", can(constants.ActionRead, constants.ResFormations), ctl.ListFormations)
	f.Get("/:id", can(constants.ActionRead, constants.ResFormations), ctl.GetFormation)
	f.Post("/", can(constants.ActionCreate, constants.ResFormations), ctl.CreateFormation)
	f.Put("/:id", can(constants.ActionUpdate, constants.ResFormations), ctl.UpdateFormation)
	f.Delete("/:id", can(constants.ActionDelete, constants.ResFormations), ctl.DeleteFormation)

	ka := r.Group("/knowledge-areas")
	ka.Get("/", can(constants.ActionRead, constants.ResKnowledgeAreas), ctl.ListKnowledgeAreas)
	ka.Get("/:id", can(constants.ActionRead, constants.ResKnowledgeAreas), ctl.GetKnowledgeArea)
	ka.Post("/", can(constants.ActionCreate, constants.ResKnowledgeAreas), ctl.CreateKnowledgeArea)
	ka.Put("/:id", can(constants.ActionUpdate, constants.ResKnowledgeAreas), ctl.UpdateKnowledgeArea)
	ka.Delete("/:id", can(constants.ActionDelete, constants.ResKnowledgeAreas), ctl.DeleteKnowledgeArea)

	sa := r.Group("/sub-areas")
	sa.Get("/", can(constants.ActionRead, constants.ResSubAreas), ctl.ListSubAreas)
	sa.Get("/:id", can(constants.ActionRead, constants.ResSubAreas), ctl.GetSubArea)
	sa.Post("/", can(constants.ActionCreate, constants.ResSubAreas), ctl.CreateSubArea)
	sa.Put("/:id", can(constants.ActionUpdate, constants.ResSubAreas), ctl.UpdateSubArea)
	sa.Delete("/:id", can(constants.ActionDelete, constants.ResSubAreas), ctl.DeleteSubArea)
}
