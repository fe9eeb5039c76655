package controller

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sei_backend/internals/features/school/grades/dto"
	"sei_backend/internals/features/school/grades/model"
	"sei_backend/internals/features/school/grades/service"
	studentModel "sei_backend/internals/features/school/students/model"
	subjectModel "sei_backend/internals/features/school/subjects/model"
	helper "sei_backend/internals/helpers"
)

type GradeController struct {
	DB *gorm.DB
}

func NewGradeController(db *gorm.DB) *GradeController {
	return &GradeController{DB: db}
}

/* ============================ LIST ============================ */

// GET /grades?studentId=&subjectId=&studentIds=a,b&term=
func (ctl *GradeController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&model.GradeModel{})

	if id, ok, err := helper.ParseUUIDQuery(c, "studentId"); err != nil {
		return err
	} else if ok {
		q = q.Where("grade_student_id = ?", id)
	}
	if id, ok, err := helper.ParseUUIDQuery(c, "subjectId"); err != nil {
		return err
	} else if ok {
		q = q.Where("grade_subject_id = ?", id)
	}
	ids, err := helper.ParseUUIDList(c, "studentIds")
	if err != nil {
		return err
	}
	if ids != nil {
		q = q.Scopes(helper.WhereIDIn("grade_student_id", ids))
	}
	if term := c.QueryInt("term", 0); term != 0 {
		if term < model.TermFirst || term > model.TermRecovery {
			return helper.FieldErrors{"term": {"must be between 1 and 5"}}
		}
		q = q.Where("grade_term = ?", term)
	}

	var rows []model.GradeModel
	if err := q.Order("grade_student_id").Order("grade_subject_id").Order("grade_term").Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), nil)
}

func (ctl *GradeController) Get(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

/* ============================ UPSERT ============================ */

// POST /grades stores the grade of (student, subject, term), replacing any
// previous value.
func (ctl *GradeController) Upsert(c *fiber.Ctx) error {
	var req dto.UpsertGradeRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	if err := ctl.ensureRefs(c.UserContext(), req.StudentID, req.SubjectID); err != nil {
		return err
	}
	g, err := service.Upsert(ctl.DB.WithContext(c.UserContext()), req.StudentID, req.SubjectID, req.Term, *req.Value)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Grade saved", dto.FromModel(g))
}

// POST /grades/bulk upserts every usable entry in one transaction. Entries
// with missing fields, out of range values or unknown references are skipped.
func (ctl *GradeController) Bulk(c *fiber.Ctx) error {
	var req dto.BulkGradesRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload: grades must be an array")
	}
	if req.Grades == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload: grades must be an array")
	}

	type entry struct {
		studentID, subjectID uuid.UUID
		term                 int
		value                float64
	}
	entries := make([]entry, 0, len(req.Grades))
	var studentIDs, subjectIDs []uuid.UUID
	for _, raw := range req.Grades {
		st, sub, term, value, ok := raw.Parse()
		if !ok {
			continue
		}
		entries = append(entries, entry{st, sub, term, value})
		studentIDs = append(studentIDs, st)
		subjectIDs = append(subjectIDs, sub)
	}

	ctx := c.UserContext()
	knownStudents, err := ctl.existing(ctx, &studentModel.StudentModel{}, "student_id", studentIDs)
	if err != nil {
		return err
	}
	knownSubjects, err := ctl.existing(ctx, &subjectModel.SubjectModel{}, "subject_id", subjectIDs)
	if err != nil {
		return err
	}

	count := 0
	err = ctl.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			if !knownStudents[e.studentID] || !knownSubjects[e.subjectID] {
				continue
			}
			if _, err := service.Upsert(tx, e.studentID, e.subjectID, e.term, e.value); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return err
	}

	skipped := len(req.Grades) - count
	if skipped > 0 {
		log.Printf("[INFO] grades bulk: %d saved, %d skipped", count, skipped)
	}
	return helper.JsonOK(c, "Grades processed", dto.BulkGradesResponse{Count: count, Skipped: skipped})
}

/* ============================ UPDATE / DELETE ============================ */

func (ctl *GradeController) Update(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return err
	}
	var req dto.UpdateGradeRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	up := map[string]any{"grade_value": service.RoundValue(*req.Value)}
	if req.Term != nil {
		up["grade_term"] = *req.Term
	}
	if err := ctl.DB.WithContext(c.UserContext()).Model(&m).Updates(up).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusConflict, "A grade for this term already exists")
		}
		return err
	}
	if m, err = ctl.find(c); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Grade updated", dto.FromModel(m))
}

func (ctl *GradeController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	res := ctl.DB.WithContext(c.UserContext()).Where("grade_id = ?", id).Delete(&model.GradeModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Grade not found")
	}
	return helper.JsonDeleted(c, "Grade deleted", fiber.Map{"id": id})
}

/* ============================ helpers ============================ */

func (ctl *GradeController) find(c *fiber.Ctx) (model.GradeModel, error) {
	var m model.GradeModel
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return m, err
	}
	err = ctl.DB.WithContext(c.UserContext()).First(&m, "grade_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m, fiber.NewError(fiber.StatusNotFound, "Grade not found")
	}
	return m, err
}

func (ctl *GradeController) ensureRefs(ctx context.Context, studentID, subjectID uuid.UUID) error {
	fieldErrs := helper.FieldErrors{}
	if ok, err := ctl.existing(ctx, &studentModel.StudentModel{}, "student_id", []uuid.UUID{studentID}); err != nil {
		return err
	} else if !ok[studentID] {
		fieldErrs["studentId"] = []string{"not found"}
	}
	if ok, err := ctl.existing(ctx, &subjectModel.SubjectModel{}, "subject_id", []uuid.UUID{subjectID}); err != nil {
		return err
	} else if !ok[subjectID] {
		fieldErrs["subjectId"] = []string{"not found"}
	}
	if len(fieldErrs) > 0 {
		return fieldErrs
	}
	return nil
}

// existing returns the subset of ids present in table.column.
func (ctl *GradeController) existing(ctx context.Context, table any, column string, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	ids = helper.UniqueUUIDs(ids)
	out := make(map[uuid.UUID]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var found []uuid.UUID
	if err := ctl.DB.WithContext(ctx).Model(table).
		Scopes(helper.WhereIDIn(column, ids)).
		Pluck(column, &found).Error; err != nil {
		return nil, err
	}
	for _, id := range found {
		out[id] = true
	}
	return out, nil
}
