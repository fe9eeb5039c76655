package service

import (
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sei_backend/internals/features/school/grades/model"
)

// RoundValue keeps two decimals, the precision of the grade column.
func RoundValue(v float64) float64 {
	return math.Round(v*100) / 100
}

// Upsert writes the grade of (student, subject, term), replacing the value
// when one is already stored, and returns the persisted row.
func Upsert(tx *gorm.DB, studentID, subjectID uuid.UUID, term int, value float64) (model.GradeModel, error) {
	g := model.GradeModel{
		GradeStudentID: studentID,
		GradeSubjectID: subjectID,
		GradeTerm:      term,
		GradeValue:     RoundValue(value),
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "grade_student_id"}, {Name: "grade_subject_id"}, {Name: "grade_term"}},
		DoUpdates: clause.AssignmentColumns([]string{"grade_value", "grade_updated_at"}),
	}).Create(&g).Error
	if err != nil {
		return g, err
	}

	var out model.GradeModel
	err = tx.Where("grade_student_id = ? AND grade_subject_id = ? AND grade_term = ?", studentID, subjectID, term).
		First(&out).Error
	return out, err
}
