package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sei_backend/internals/constants"
	yearModel "sei_backend/internals/features/school/academic_years/model"
	classModel "sei_backend/internals/features/school/classes/model"
	gradeModel "sei_backend/internals/features/school/grades/model"
	studentModel "sei_backend/internals/features/school/students/model"
	subjectModel "sei_backend/internals/features/school/subjects/model"
)

// LoadSnapshot reads everything Evaluate needs for one year. The six reads
// run concurrently; the first failure cancels the rest.
func LoadSnapshot(ctx context.Context, db *gorm.DB, year string) (Snapshot, error) {
	var (
		classes  []classModel.ClassModel
		links    []classModel.ClassSubjectModel
		subjects []subjectModel.SubjectModel
		students []studentModel.StudentModel
		grades   []gradeModel.GradeModel
		years    []yearModel.AcademicYearModel
	)

	g, gctx := errgroup.WithContext(ctx)
	q := func() *gorm.DB { return db.WithContext(gctx) }

	// subqueries are rebuilt per goroutine; a *gorm.DB statement is not shareable
	classIDs := func() *gorm.DB {
		return q().Model(&classModel.ClassModel{}).Select("class_id").Where("class_year = ?", year)
	}
	studentIDs := func() *gorm.DB {
		return q().Model(&studentModel.StudentModel{}).Select("student_id").Where("student_class_id IN (?)", classIDs())
	}

	g.Go(func() error {
		return q().Where("class_year = ?", year).Order("class_name").Find(&classes).Error
	})
	g.Go(func() error {
		return q().Where("class_subject_class_id IN (?)", classIDs()).Find(&links).Error
	})
	g.Go(func() error {
		linked := q().Model(&classModel.ClassSubjectModel{}).Select("class_subject_subject_id").
			Where("class_subject_class_id IN (?)", classIDs())
		return q().Where("subject_year = ? OR subject_id IN (?)", year, linked).Find(&subjects).Error
	})
	g.Go(func() error {
		return q().Where("student_class_id IN (?)", classIDs()).Find(&students).Error
	})
	g.Go(func() error {
		return q().Where("grade_student_id IN (?)", studentIDs()).Find(&grades).Error
	})
	g.Go(func() error {
		return q().Where("academic_year = ?", year).Find(&years).Error
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("load snapshot %s: %w", year, err)
	}

	return buildSnapshot(classes, links, subjects, students, grades, years), nil
}

func buildSnapshot(
	classes []classModel.ClassModel,
	links []classModel.ClassSubjectModel,
	subjects []subjectModel.SubjectModel,
	students []studentModel.StudentModel,
	grades []gradeModel.GradeModel,
	years []yearModel.AcademicYearModel,
) Snapshot {
	subjectsOf := make(map[uuid.UUID][]uuid.UUID, len(classes))
	for _, l := range links {
		subjectsOf[l.ClassSubjectClassID] = append(subjectsOf[l.ClassSubjectClassID], l.ClassSubjectSubjectID)
	}

	snap := Snapshot{
		Students:      make([]StudentRecord, 0, len(students)),
		Classes:       make([]ClassRecord, 0, len(classes)),
		Subjects:      make([]SubjectRecord, 0, len(subjects)),
		Grades:        make([]GradeRecord, 0, len(grades)),
		AcademicYears: make([]YearConfig, 0, len(years)),
	}

	for _, c := range classes {
		snap.Classes = append(snap.Classes, ClassRecord{
			ID:         c.ClassID,
			Name:       c.ClassName,
			Year:       c.ClassYear,
			Shift:      c.ClassShift,
			SubjectIDs: subjectsOf[c.ClassID],
		})
	}
	for _, s := range subjects {
		snap.Subjects = append(snap.Subjects, SubjectRecord{ID: s.SubjectID, Year: s.SubjectYear})
	}
	for _, s := range students {
		status, ok := constants.ParseEnrollmentStatus(s.StudentStatus)
		if !ok {
			log.Printf("[WARN] student %s has unrecognized status %q, counted as other", s.StudentID, s.StudentStatus)
		}
		snap.Students = append(snap.Students, StudentRecord{
			ID:      s.StudentID,
			Name:    s.StudentName,
			ClassID: s.StudentClassID,
			Status:  status,
		})
	}
	for _, g := range grades {
		snap.Grades = append(snap.Grades, GradeRecord{
			StudentID: g.GradeStudentID,
			SubjectID: g.GradeSubjectID,
			Term:      g.GradeTerm,
			Value:     g.GradeValue,
		})
	}
	for _, y := range years {
		snap.AcademicYears = append(snap.AcademicYears, YearConfig{
			Year:     y.AcademicYear,
			B1End:    calendarDay(y.AcademicYearB1End),
			B2End:    calendarDay(y.AcademicYearB2End),
			B3End:    calendarDay(y.AcademicYearB3End),
			B4End:    calendarDay(y.AcademicYearB4End),
			RecStart: calendarDay(y.AcademicYearRecStart),
			RecEnd:   calendarDay(y.AcademicYearRecEnd),
		})
	}
	return snap
}

// calendarDay keeps only the Y/M/D of a stored date, at UTC midnight.
func calendarDay(d *datatypes.Date) *time.Time {
	if d == nil {
		return nil
	}
	y, m, day := time.Time(*d).Date()
	t := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	return &t
}
