package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	assignmentModel "sei_backend/internals/features/school/assignments/model"
	classModel "sei_backend/internals/features/school/classes/model"
	curriculumModel "sei_backend/internals/features/school/curriculum/model"
	gradeModel "sei_backend/internals/features/school/grades/model"
	"sei_backend/internals/features/school/subjects/dto"
	"sei_backend/internals/features/school/subjects/model"
	helper "sei_backend/internals/helpers"
)

type SubjectController struct {
	DB *gorm.DB
}

func NewSubjectController(db *gorm.DB) *SubjectController {
	return &SubjectController{DB: db}
}

// GET /subjects?year=&subAreaId=
func (ctl *SubjectController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&model.SubjectModel{})
	if y := strings.TrimSpace(c.Query("year")); y != "" {
		q = q.Where("subject_year = ?", y)
	}
	sub, ok, err := helper.ParseUUIDQuery(c, "subAreaId")
	if err != nil {
		return err
	}
	if ok {
		q = q.Where("subject_sub_area_id = ?", sub)
	}

	var rows []model.SubjectModel
	if err := q.Find(&rows).Error; err != nil {
		return err
	}
	helper.SortNatural(rows, func(m model.SubjectModel) string { return m.SubjectName })
	return helper.JsonList(c, "ok", dto.FromModels(rows), nil)
}

func (ctl *SubjectController) Get(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

func (ctl *SubjectController) Create(c *fiber.Ctx) error {
	m, err := ctl.bind(c)
	if err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return err
	}
	return helper.JsonCreated(c, "Subject created", dto.FromModel(m))
}

// Update replaces every editable field.
func (ctl *SubjectController) Update(c *fiber.Ctx) error {
	cur, err := ctl.find(c)
	if err != nil {
		return err
	}
	next, err := ctl.bind(c)
	if err != nil {
		return err
	}
	next.SubjectID = cur.SubjectID
	next.SubjectCreatedAt = cur.SubjectCreatedAt
	if err := ctl.DB.WithContext(c.UserContext()).Save(&next).Error; err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Subject updated", dto.FromModel(next))
}

// Delete unlinks the subject from classes and assignments. Subjects that
// already carry grades are kept.
func (ctl *SubjectController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var graded int64
		if err := tx.Model(&gradeModel.GradeModel{}).Where("grade_subject_id = ?", id).Count(&graded).Error; err != nil {
			return err
		}
		if graded > 0 {
			return fiber.NewError(fiber.StatusConflict, "Subject has grades and cannot be deleted")
		}
		if err := tx.Where("class_subject_subject_id = ?", id).Delete(&classModel.ClassSubjectModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("assignment_subject_id = ?", id).Delete(&assignmentModel.AssignmentModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("subject_id = ?", id).Delete(&model.SubjectModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Subject not found")
		}
		return nil
	})
	if err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Subject deleted", fiber.Map{"id": id})
}

func (ctl *SubjectController) bind(c *fiber.Ctx) (model.SubjectModel, error) {
	var req dto.SubjectRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return model.SubjectModel{}, err
	}
	m, err := req.ToModel()
	if err != nil {
		return m, err
	}
	if m.SubjectSubAreaID != nil {
		var n int64
		if err := ctl.DB.WithContext(c.UserContext()).Model(&curriculumModel.SubAreaModel{}).
			Where("sub_area_id = ?", *m.SubjectSubAreaID).Count(&n).Error; err != nil {
			return m, err
		}
		if n == 0 {
			return m, helper.FieldErrors{"subAreaId": {"not found"}}
		}
	}
	return m, nil
}

func (ctl *SubjectController) find(c *fiber.Ctx) (model.SubjectModel, error) {
	var m model.SubjectModel
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return m, err
	}
	err = ctl.DB.WithContext(c.UserContext()).First(&m, "subject_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m, fiber.NewError(fiber.StatusNotFound, "Subject not found")
	}
	return m, err
}
