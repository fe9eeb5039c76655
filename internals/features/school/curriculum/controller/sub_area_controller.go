package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sei_backend/internals/features/school/curriculum/dto"
	"sei_backend/internals/features/school/curriculum/model"
	subjectModel "sei_backend/internals/features/school/subjects/model"
	helper "sei_backend/internals/helpers"
)

// GET /sub-areas?knowledgeAreaId=
func (ctl *CurriculumController) ListSubAreas(c *fiber.Ctx) error {
	parent, ok, err := helper.ParseUUIDQuery(c, "knowledgeAreaId")
	if err != nil {
		return err
	}
	q := ctl.DB.WithContext(c.UserContext()).Model(&model.SubAreaModel{})
	if ok {
		q = q.Where("sub_area_knowledge_area_id = ?", parent)
	}
	var rows []model.SubAreaModel
	if err := q.Order("sub_area_name ASC").Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonList(c, "ok", dto.FromSubAreas(rows), nil)
}

func (ctl *CurriculumController) GetSubArea(c *fiber.Ctx) error {
	m, err := ctl.findSubArea(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromSubArea(m))
}

func (ctl *CurriculumController) CreateSubArea(c *fiber.Ctx) error {
	var req dto.SubAreaRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	m := req.ToModel()
	if err := ctl.ensureParent(c, &model.KnowledgeAreaModel{}, "knowledge_area_id", m.SubAreaKnowledgeAreaID, "knowledgeAreaId"); err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return err
	}
	return helper.JsonCreated(c, "Sub-area created", dto.FromSubArea(m))
}

func (ctl *CurriculumController) UpdateSubArea(c *fiber.Ctx) error {
	m, err := ctl.findSubArea(c)
	if err != nil {
		return err
	}
	var req dto.SubAreaRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	next := req.ToModel()
	if err := ctl.ensureParent(c, &model.KnowledgeAreaModel{}, "knowledge_area_id", next.SubAreaKnowledgeAreaID, "knowledgeAreaId"); err != nil {
		return err
	}
	m.SubAreaName = next.SubAreaName
	m.SubAreaKnowledgeAreaID = next.SubAreaKnowledgeAreaID
	if err := ctl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Sub-area updated", dto.FromSubArea(m))
}

func (ctl *CurriculumController) DeleteSubArea(c *fiber.Ctx) error {
	return ctl.deleteLeaf(c, &model.SubAreaModel{}, "sub_area_id",
		&subjectModel.SubjectModel{}, "subject_sub_area_id", "Sub-area")
}

func (ctl *CurriculumController) findSubArea(c *fiber.Ctx) (model.SubAreaModel, error) {
	var m model.SubAreaModel
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return m, err
	}
	err = ctl.DB.WithContext(c.UserContext()).First(&m, "sub_area_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m, fiber.NewError(fiber.StatusNotFound, "Sub-area not found")
	}
	return m, err
}
