package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sei_backend/internals/features/school/curriculum/dto"
	"sei_backend/internals/features/school/curriculum/model"
	helper "sei_backend/internals/helpers"
)

// GET /knowledge-areas?formationTypeId=
func (ctl *CurriculumController) ListKnowledgeAreas(c *fiber.Ctx) error {
	parent, ok, err := helper.ParseUUIDQuery(c, "formationTypeId")
	if err != nil {
		return err
	}
	q := ctl.DB.WithContext(c.UserContext()).Model(&model.KnowledgeAreaModel{})
	if ok {
		q = q.Where("knowledge_area_formation_type_id = ?", parent)
	}
	var rows []model.KnowledgeAreaModel
	if err := q.Order("knowledge_area_name ASC").Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonList(c, "ok", dto.FromKnowledgeAreas(rows), nil)
}

func (ctl *CurriculumController) GetKnowledgeArea(c *fiber.Ctx) error {
	m, err := ctl.findKnowledgeArea(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromKnowledgeArea(m))
}

func (ctl *CurriculumController) CreateKnowledgeArea(c *fiber.Ctx) error {
	var req dto.KnowledgeAreaRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	m := req.ToModel()
	if err := ctl.ensureParent(c, &model.FormationTypeModel{}, "formation_type_id", m.KnowledgeAreaFormationTypeID, "formationTypeId"); err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return err
	}
	return helper.JsonCreated(c, "Knowledge area created", dto.FromKnowledgeArea(m))
}

func (ctl *CurriculumController) UpdateKnowledgeArea(c *fiber.Ctx) error {
	m, err := ctl.findKnowledgeArea(c)
	if err != nil {
		return err
	}
	var req dto.KnowledgeAreaRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	next := req.ToModel()
	if err := ctl.ensureParent(c, &model.FormationTypeModel{}, "formation_type_id", next.KnowledgeAreaFormationTypeID, "formationTypeId"); err != nil {
		return err
	}
	m.KnowledgeAreaName = next.KnowledgeAreaName
	m.KnowledgeAreaFormationTypeID = next.KnowledgeAreaFormationTypeID
	if err := ctl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Knowledge area updated", dto.FromKnowledgeArea(m))
}

func (ctl *CurriculumController) DeleteKnowledgeArea(c *fiber.Ctx) error {
	return ctl.deleteLeaf(c, &model.KnowledgeAreaModel{}, "knowledge_area_id",
		&model.SubAreaModel{}, "sub_area_knowledge_area_id", "Knowledge area")
}

func (ctl *CurriculumController) findKnowledgeArea(c *fiber.Ctx) (model.KnowledgeAreaModel, error) {
	var m model.KnowledgeAreaModel
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return m, err
	}
	err = ctl.DB.WithContext(c.UserContext()).First(&m, "knowledge_area_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m, fiber.NewError(fiber.StatusNotFound, "Knowledge area not found")
	}
	return m, err
}
