package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sei_backend/internals/configs"
	classModel "sei_backend/internals/features/school/classes/model"
	gradeModel "sei_backend/internals/features/school/grades/model"
	"sei_backend/internals/features/school/students/dto"
	"sei_backend/internals/features/school/students/model"
	"sei_backend/internals/features/school/students/service"
	helper "sei_backend/internals/helpers"
)

type StudentController struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db, Now: time.Now}
}

/* ============================ LIST ============================ */

// GET /students?classId=&q=&page=&per_page=
func (ctl *StudentController) List(c *fiber.Ctx) error {
	classID, hasClass, err := helper.ParseUUIDQuery(c, "classId")
	if err != nil {
		return err
	}
	search := strings.ToLower(strings.TrimSpace(c.Query("q")))

	filter := func(db *gorm.DB) *gorm.DB {
		if hasClass {
			db = db.Where("student_class_id = ?", classID)
		}
		if search != "" {
			db = db.Where("LOWER(student_name) LIKE ? OR LOWER(student_registration_number) LIKE ?", "%"+search+"%", "%"+search+"%")
		}
		return db
	}

	p := helper.ResolvePaging(c, 50, 500)
	q := filter(ctl.DB.WithContext(c.UserContext()).Model(&model.StudentModel{}))

	var pg *helper.Pagination
	if p.Enabled {
		var total int64
		if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
			return err
		}
		q = q.Offset(p.Offset).Limit(p.Limit)
		page := helper.BuildPaginationFromPage(total, p.Page, p.PerPage, 0)
		pg = &page
	}

	var rows []model.StudentModel
	if err := q.Order("student_name ASC").Order("student_id ASC").Find(&rows).Error; err != nil {
		return err
	}
	if pg != nil {
		pg.Count = len(rows)
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), pg)
}

/* ============================ GET ============================ */

func (ctl *StudentController) Get(c *fiber.Ctx) error {
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

/* ============================ CREATE ============================ */

func (ctl *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	m, err := req.ToModel()
	if err != nil {
		return err
	}
	if err := ctl.ensureClass(c, m.StudentClassID); err != nil {
		return err
	}

	if m.StudentRegistrationNumber == "" {
		ra, err := service.NewRegistrationNumber(c.UserContext(), ctl.DB, ctl.Now().In(configs.Location()))
		if err != nil {
			return err
		}
		m.StudentRegistrationNumber = ra
	}

	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.FieldErrors{"registrationNumber": {"is already in use"}}
		}
		return err
	}
	return helper.JsonCreated(c, "Student created", dto.FromModel(m))
}

/* ============================ UPDATE ============================ */

func (ctl *StudentController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateStudentRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	up, err := req.Apply()
	if err != nil {
		return err
	}
	if cid, ok := up["student_class_id"].(uuid.UUID); ok {
		if err := ctl.ensureClass(c, &cid); err != nil {
			return err
		}
	}

	m, err := ctl.find(c, id)
	if err != nil {
		return err
	}
	if len(up) > 0 {
		if err := ctl.DB.WithContext(c.UserContext()).Model(&m).Updates(up).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return helper.FieldErrors{"registrationNumber": {"is already in use"}}
			}
			return err
		}
	}

	m, err = ctl.find(c, id)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Student updated", dto.FromModel(m))
}

/* ============================ DELETE ============================ */

// Delete removes the student together with all of their grades.
func (ctl *StudentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var removedGrades int64
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("grade_student_id = ?", id).Delete(&gradeModel.GradeModel{})
		if res.Error != nil {
			return res.Error
		}
		removedGrades = res.RowsAffected

		res = tx.Where("student_id = ?", id).Delete(&model.StudentModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return nil
	})
	if err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Student deleted", fiber.Map{"id": id, "gradesDeleted": removedGrades})
}

/* ============================ helpers ============================ */

func (ctl *StudentController) find(c *fiber.Ctx, id uuid.UUID) (model.StudentModel, error) {
	var m model.StudentModel
	err := ctl.DB.WithContext(c.UserContext()).First(&m, "student_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m, fiber.NewError(fiber.StatusNotFound, "Student not found")
	}
	return m, err
}

func (ctl *StudentController) ensureClass(c *fiber.Ctx, classID *uuid.UUID) error {
	if classID == nil {
		return nil
	}
	var n int64
	if err := ctl.DB.WithContext(c.UserContext()).Model(&classModel.ClassModel{}).
		Where("class_id = ?", *classID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return helper.FieldErrors{"classId": {"class not found"}}
	}
	return nil
}
