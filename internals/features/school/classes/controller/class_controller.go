package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	assignmentModel "sei_backend/internals/features/school/assignments/model"
	"sei_backend/internals/features/school/classes/dto"
	"sei_backend/internals/features/school/classes/model"
	"sei_backend/internals/features/school/classes/service"
	studentModel "sei_backend/internals/features/school/students/model"
	helper "sei_backend/internals/helpers"
)

type ClassController struct {
	DB *gorm.DB
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db}
}

/* ============================ LIST ============================ */

// GET /classes?year=  (natural order by name: "Turma 2" before "Turma 10")
func (ctl *ClassController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&model.ClassModel{})
	if y := strings.TrimSpace(c.Query("year")); y != "" {
		q = q.Where("class_year = ?", y)
	}
	var rows []model.ClassModel
	if err := q.Order("class_created_at ASC").Find(&rows).Error; err != nil {
		return err
	}
	helper.SortNatural(rows, func(m model.ClassModel) string { return m.ClassName })

	ids := make([]uuid.UUID, len(rows))
	for i, r := range rows {
		ids[i] = r.ClassID
	}
	links, err := service.SubjectIDsByClass(c.UserContext(), ctl.DB, ids)
	if err != nil {
		return err
	}

	out := make([]dto.ClassResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.FromModel(r, links[r.ClassID]))
	}
	return helper.JsonList(c, "ok", out, nil)
}

/* ============================ GET ============================ */

func (ctl *ClassController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	resp, err := ctl.load(c, ctl.DB, id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", resp)
}

/* ============================ CREATE ============================ */

func (ctl *ClassController) Create(c *fiber.Ctx) error {
	var req dto.CreateClassRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	if err := ctl.ensureSubjects(c, req.SubjectIDs); err != nil {
		return err
	}

	m := req.ToModel()
	var resp dto.ClassResponse
	err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		if err := service.ReplaceSubjects(tx, m.ClassID, req.SubjectIDs); err != nil {
			return err
		}
		var err error
		resp, err = ctl.load(c, tx, m.ClassID)
		return err
	})
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Class created", resp)
}

/* ============================ UPDATE ============================ */

func (ctl *ClassController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateClassRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	if req.SubjectIDs != nil {
		if err := ctl.ensureSubjects(c, *req.SubjectIDs); err != nil {
			return err
		}
	}

	var resp dto.ClassResponse
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var m model.ClassModel
		if err := tx.First(&m, "class_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Class not found")
			}
			return err
		}
		if up := req.Apply(); len(up) > 0 {
			if err := tx.Model(&m).Updates(up).Error; err != nil {
				return err
			}
		}
		if req.SubjectIDs != nil {
			if err := service.ReplaceSubjects(tx, id, *req.SubjectIDs); err != nil {
				return err
			}
		}
		var err error
		resp, err = ctl.load(c, tx, id)
		return err
	})
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Class updated", resp)
}

/* ============================ DELETE ============================ */

// Delete drops the class with its subject links and assignments. Students of
// the class stay, detached.
func (ctl *ClassController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&studentModel.StudentModel{}).
			Where("student_class_id = ?", id).
			Update("student_class_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("class_subject_class_id = ?", id).Delete(&model.ClassSubjectModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("assignment_class_id = ?", id).Delete(&assignmentModel.AssignmentModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("class_id = ?", id).Delete(&model.ClassModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Class not found")
		}
		return nil
	})
	if err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Class deleted", fiber.Map{"id": id})
}

/* ============================ helpers ============================ */

func (ctl *ClassController) load(c *fiber.Ctx, db *gorm.DB, id uuid.UUID) (dto.ClassResponse, error) {
	var m model.ClassModel
	if err := db.WithContext(c.UserContext()).First(&m, "class_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassResponse{}, fiber.NewError(fiber.StatusNotFound, "Class not found")
		}
		return dto.ClassResponse{}, err
	}
	links, err := service.SubjectIDsByClass(c.UserContext(), db, []uuid.UUID{id})
	if err != nil {
		return dto.ClassResponse{}, err
	}
	return dto.FromModel(m, links[id]), nil
}

func (ctl *ClassController) ensureSubjects(c *fiber.Ctx, ids []uuid.UUID) error {
	missing, err := service.MissingSubjects(c.UserContext(), ctl.DB, ids)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		msgs := make([]string, 0, len(missing))
		for _, id := range missing {
			msgs = append(msgs, "unknown subject "+id.String())
		}
		return helper.FieldErrors{"subjectIds": msgs}
	}
	return nil
}
