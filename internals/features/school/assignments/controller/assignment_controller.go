package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sei_backend/internals/features/school/assignments/dto"
	"sei_backend/internals/features/school/assignments/model"
	classModel "sei_backend/internals/features/school/classes/model"
	subjectModel "sei_backend/internals/features/school/subjects/model"
	teacherModel "sei_backend/internals/features/school/teachers/model"
	helper "sei_backend/internals/helpers"
)

type AssignmentController struct {
	DB *gorm.DB
}

func NewAssignmentController(db *gorm.DB) *AssignmentController {
	return &AssignmentController{DB: db}
}

// GET /assignments?teacherId=&subjectId=&classId=
func (ctl *AssignmentController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&model.AssignmentModel{})
	for param, column := range map[string]string{
		"teacherId": "assignment_teacher_id",
		"subjectId": "assignment_subject_id",
		"classId":   "assignment_class_id",
	} {
		id, ok, err := helper.ParseUUIDQuery(c, param)
		if err != nil {
			return err
		}
		if ok {
			q = q.Where(column+" = ?", id)
		}
	}

	var rows []model.AssignmentModel
	if err := q.Order("assignment_id").Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), nil)
}

func (ctl *AssignmentController) Get(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

func (ctl *AssignmentController) Create(c *fiber.Ctx) error {
	m, err := ctl.bind(c)
	if err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return err
	}
	return helper.JsonCreated(c, "Assignment created", dto.FromModel(m))
}

func (ctl *AssignmentController) Update(c *fiber.Ctx) error {
	cur, err := ctl.find(c)
	if err != nil {
		return err
	}
	next, err := ctl.bind(c)
	if err != nil {
		return err
	}
	next.AssignmentID = cur.AssignmentID
	if err := ctl.DB.WithContext(c.UserContext()).Save(&next).Error; err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Assignment updated", dto.FromModel(next))
}

func (ctl *AssignmentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	res := ctl.DB.WithContext(c.UserContext()).Where("assignment_id = ?", id).Delete(&model.AssignmentModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Assignment not found")
	}
	return helper.JsonDeleted(c, "Assignment deleted", fiber.Map{"id": id})
}

// bind parses the body and checks that all three references exist.
func (ctl *AssignmentController) bind(c *fiber.Ctx) (model.AssignmentModel, error) {
	var req dto.AssignmentRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return model.AssignmentModel{}, err
	}
	m := req.ToModel()

	refs := []struct {
		field  string
		table  any
		column string
		id     any
	}{
		{"teacherId", &teacherModel.TeacherModel{}, "teacher_id", m.AssignmentTeacherID},
		{"subjectId", &subjectModel.SubjectModel{}, "subject_id", m.AssignmentSubjectID},
		{"classId", &classModel.ClassModel{}, "class_id", m.AssignmentClassID},
	}
	fieldErrs := helper.FieldErrors{}
	for _, r := range refs {
		var n int64
		if err := ctl.DB.WithContext(c.UserContext()).Model(r.table).Where(r.column+" = ?", r.id).Count(&n).Error; err != nil {
			return m, err
		}
		if n == 0 {
			fieldErrs[r.field] = []string{"not found"}
		}
	}
	if len(fieldErrs) > 0 {
		return m, fieldErrs
	}
	return m, nil
}

func (ctl *AssignmentController) find(c *fiber.Ctx) (model.AssignmentModel, error) {
	var m model.AssignmentModel
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return m, err
	}
	err = ctl.DB.WithContext(c.UserContext()).First(&m, "assignment_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m, fiber.NewError(fiber.StatusNotFound, "Assignment not found")
	}
	return m, err
}
