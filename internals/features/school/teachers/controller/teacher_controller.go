package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	assignmentModel "sei_backend/internals/features/school/assignments/model"
	"sei_backend/internals/features/school/teachers/dto"
	"sei_backend/internals/features/school/teachers/model"
	helper "sei_backend/internals/helpers"
)

type TeacherController struct {
	DB *gorm.DB
}

func NewTeacherController(db *gorm.DB) *TeacherController {
	return &TeacherController{DB: db}
}

// GET /teachers?q=
func (ctl *TeacherController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&model.TeacherModel{})
	if s := strings.ToLower(strings.TrimSpace(c.Query("q"))); s != "" {
		q = q.Where("LOWER(teacher_name) LIKE ? OR LOWER(teacher_email) LIKE ?", "%"+s+"%", "%"+s+"%")
	}

	var rows []model.TeacherModel
	if err := q.Order("teacher_name ASC").Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), nil)
}

func (ctl *TeacherController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.find(c, id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

func (ctl *TeacherController) Create(c *fiber.Ctx) error {
	var req dto.CreateTeacherRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	m := req.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.FieldErrors{"email": {"is already in use"}}
		}
		return err
	}
	return helper.JsonCreated(c, "Teacher created", dto.FromModel(m))
}

func (ctl *TeacherController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateTeacherRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	m, err := ctl.find(c, id)
	if err != nil {
		return err
	}
	if up := req.Apply(); len(up) > 0 {
		if err := ctl.DB.WithContext(c.UserContext()).Model(&m).Updates(up).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return helper.FieldErrors{"email": {"is already in use"}}
			}
			return err
		}
	}
	if m, err = ctl.find(c, id); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Teacher updated", dto.FromModel(m))
}

// Delete also drops the teacher's assignments.
func (ctl *TeacherController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assignment_teacher_id = ?", id).Delete(&assignmentModel.AssignmentModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("teacher_id = ?", id).Delete(&model.TeacherModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Teacher not found")
		}
		return nil
	})
	if err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Teacher deleted", fiber.Map{"id": id})
}

func (ctl *TeacherController) find(c *fiber.Ctx, id uuid.UUID) (model.TeacherModel, error) {
	var m model.TeacherModel
	err := ctl.DB.WithContext(c.UserContext()).First(&m, "teacher_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m, fiber.NewError(fiber.StatusNotFound, "Teacher not found")
	}
	return m, err
}
