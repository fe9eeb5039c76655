package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sei_backend/internals/features/school/curriculum/dto"
	"sei_backend/internals/features/school/curriculum/model"
	helper "sei_backend/internals/helpers"
)

func (ctl *CurriculumController) ListFormations(c *fiber.Ctx) error {
	var rows []model.FormationTypeModel
	if err := ctl.DB.WithContext(c.UserContext()).Order("formation_type_name ASC").Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonList(c, "ok", dto.FromFormations(rows), nil)
}

func (ctl *CurriculumController) GetFormation(c *fiber.Ctx) error {
	m, err := ctl.findFormation(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromFormation(m))
}

func (ctl *CurriculumController) CreateFormation(c *fiber.Ctx) error {
	var req dto.FormationRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	m := model.FormationTypeModel{FormationTypeName: strings.TrimSpace(req.Name)}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return err
	}
	return helper.JsonCreated(c, "Formation created", dto.FromFormation(m))
}

func (ctl *CurriculumController) UpdateFormation(c *fiber.Ctx) error {
	m, err := ctl.findFormation(c)
	if err != nil {
		return err
	}
	var req dto.FormationRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	m.FormationTypeName = strings.TrimSpace(req.Name)
	if err := ctl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Formation updated", dto.FromFormation(m))
}

func (ctl *CurriculumController) DeleteFormation(c *fiber.Ctx) error {
	return ctl.deleteLeaf(c, &model.FormationTypeModel{}, "formation_type_id",
		&model.KnowledgeAreaModel{}, "knowledge_area_formation_type_id", "Formation")
}

func (ctl *CurriculumController) findFormation(c *fiber.Ctx) (model.FormationTypeModel, error) {
	var m model.FormationTypeModel
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return m, err
	}
	err = ctl.DB.WithContext(c.UserContext()).First(&m, "formation_type_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m, fiber.NewError(fiber.StatusNotFound, "Formation not found")
	}
	return m, err
}
