package school

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sei_backend/internals/constants"
	yearDTO "sei_backend/internals/features/school/academic_years/dto"
	assignmentModel "sei_backend/internals/features/school/assignments/model"
	classModel "sei_backend/internals/features/school/classes/model"
	classService "sei_backend/internals/features/school/classes/service"
	curriculumModel "sei_backend/internals/features/school/curriculum/model"
	gradeService "sei_backend/internals/features/school/grades/service"
	settingsModel "sei_backend/internals/features/school/settings/model"
	settingsService "sei_backend/internals/features/school/settings/service"
	studentModel "sei_backend/internals/features/school/students/model"
	studentService "sei_backend/internals/features/school/students/service"
	subjectModel "sei_backend/internals/features/school/subjects/model"
	teacherModel "sei_backend/internals/features/school/teachers/model"
)

//go:embed data_school.json
var DefaultData []byte

type SchoolSeed struct {
	SchoolName string                      `json:"schoolName"`
	Year       string                      `json:"year"`
	Deadlines  yearDTO.AcademicYearRequest `json:"deadlines"`
	Formations []FormationSeed             `json:"formations"`
	Classes    []ClassSeed                 `json:"classes"`
	Teachers   []TeacherSeed               `json:"teachers"`
}

type FormationSeed struct {
	Name  string     `json:"name"`
	Areas []AreaSeed `json:"areas"`
}

type AreaSeed struct {
	Name     string        `json:"name"`
	SubAreas []SubAreaSeed `json:"subAreas"`
}

type SubAreaSeed struct {
	Name     string        `json:"name"`
	Subjects []SubjectSeed `json:"subjects"`
}

type SubjectSeed struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Color       string `json:"color"`
	Periodicity string `json:"periodicity"`
	Semester    string `json:"semester"`
}

type ClassSeed struct {
	Name           string        `json:"name"`
	Shift          string        `json:"shift"`
	EnrollmentType string        `json:"enrollmentType"`
	Subjects       []string      `json:"subjects"`
	Students       []StudentSeed `json:"students"`
}

type StudentSeed struct {
	Name   string               `json:"name"`
	Status string               `json:"status"`
	Grades map[string][]float64 `json:"grades"`
}

type TeacherSeed struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Assignments []struct {
		Subject string `json:"subject"`
		Class   string `json:"class"`
	} `json:"assignments"`
}

// SeedSchoolFromJSON loads a demo school year in one transaction. It does
// nothing when the year already has classes.
func SeedSchoolFromJSON(db *gorm.DB, raw []byte) error {
	var in SchoolSeed
	if err := sonic.Unmarshal(raw, &in); err != nil {
		return err
	}
	year, err := strconv.Atoi(in.Year)
	if err != nil || len(in.Year) != 4 {
		return fmt.Errorf("seed year %q must have 4 digits", in.Year)
	}

	var n int64
	if err := db.Model(&classModel.ClassModel{}).Where("class_year = ?", in.Year).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		log.Printf("[SEED] year %s already has classes, skipped", in.Year)
		return nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		subjects, err := seedCurriculum(tx, in.Year, in.Formations)
		if err != nil {
			return err
		}
		classes, err := seedClasses(tx, year, in, subjects)
		if err != nil {
			return err
		}
		if err := seedTeachers(tx, in.Teachers, subjects, classes); err != nil {
			return err
		}

		in.Deadlines.Year = in.Year
		cfg := in.Deadlines.ToModel()
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&cfg).Error
	})
	if err != nil {
		return err
	}

	if name := strings.TrimSpace(in.SchoolName); name != "" {
		_, err := settingsService.Mutate(context.Background(), db, func(m *settingsModel.SchoolSettingsModel) {
			m.SchoolSettingsSchoolName = name
		})
		if err != nil {
			return err
		}
	}
	log.Printf("[SEED] school year %s inserted", in.Year)
	return nil
}

func seedCurriculum(tx *gorm.DB, year string, formations []FormationSeed) (map[string]uuid.UUID, error) {
	subjects := map[string]uuid.UUID{}
	for _, f := range formations {
		formation := curriculumModel.FormationTypeModel{FormationTypeName: f.Name}
		if err := tx.Create(&formation).Error; err != nil {
			return nil, err
		}
		for _, a := range f.Areas {
			area := curriculumModel.KnowledgeAreaModel{KnowledgeAreaName: a.Name, KnowledgeAreaFormationTypeID: formation.FormationTypeID}
			if err := tx.Create(&area).Error; err != nil {
				return nil, err
			}
			for _, sa := range a.SubAreas {
				sub := curriculumModel.SubAreaModel{SubAreaName: sa.Name, SubAreaKnowledgeAreaID: area.KnowledgeAreaID}
				if err := tx.Create(&sub).Error; err != nil {
					return nil, err
				}
				for _, s := range sa.Subjects {
					m := subjectModel.SubjectModel{
						SubjectName:        s.Name,
						SubjectSubAreaID:   &sub.SubAreaID,
						SubjectPeriodicity: orDefault(s.Periodicity, "Anual"),
						SubjectYear:        year,
						SubjectCode:        optional(s.Code),
						SubjectColor:       optional(s.Color),
						SubjectSemester:    optional(s.Semester),
					}
					if err := tx.Create(&m).Error; err != nil {
						return nil, err
					}
					subjects[s.Name] = m.SubjectID
				}
			}
		}
	}
	return subjects, nil
}

func seedClasses(tx *gorm.DB, year int, in SchoolSeed, subjects map[string]uuid.UUID) (map[string]uuid.UUID, error) {
	classes := map[string]uuid.UUID{}
	seq := 0
	for _, c := range in.Classes {
		m := classModel.ClassModel{
			ClassName:           c.Name,
			ClassEnrollmentType: c.EnrollmentType,
			ClassYear:           in.Year,
			ClassShift:          c.Shift,
		}
		if err := tx.Create(&m).Error; err != nil {
			return nil, err
		}
		classes[c.Name] = m.ClassID

		ids, err := lookup(subjects, c.Subjects, "subject")
		if err != nil {
			return nil, err
		}
		if err := classService.ReplaceSubjects(tx, m.ClassID, ids); err != nil {
			return nil, err
		}

		for _, s := range c.Students {
			seq++
			status, ok := constants.ParseEnrollmentStatus(orDefault(s.Status, "Cursando"))
			if !ok {
				return nil, fmt.Errorf("student %s: unknown status %q", s.Name, s.Status)
			}
			st := studentModel.StudentModel{
				StudentName:               strings.TrimSpace(s.Name),
				StudentClassID:            &m.ClassID,
				StudentRegistrationNumber: studentService.FormatRegistrationNumber(year, seq),
				StudentStatus:             status.Label(),
			}
			if err := tx.Create(&st).Error; err != nil {
				return nil, err
			}
			for subject, values := range s.Grades {
				subjectID, ok := subjects[subject]
				if !ok {
					return nil, fmt.Errorf("student %s: unknown subject %q", s.Name, subject)
				}
				for i, v := range values {
					if _, err := gradeService.Upsert(tx, st.StudentID, subjectID, i+1, v); err != nil {
						return nil, err
					}
				}
			}
		}
	}
	return classes, nil
}

func seedTeachers(tx *gorm.DB, teachers []TeacherSeed, subjects, classes map[string]uuid.UUID) error {
	for _, t := range teachers {
		m := teacherModel.TeacherModel{TeacherName: t.Name, TeacherEmail: strings.ToLower(t.Email)}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		for _, a := range t.Assignments {
			subjectID, ok := subjects[a.Subject]
			if !ok {
				return fmt.Errorf("teacher %s: unknown subject %q", t.Name, a.Subject)
			}
			classID, ok := classes[a.Class]
			if !ok {
				return fmt.Errorf("teacher %s: unknown class %q", t.Name, a.Class)
			}
			row := assignmentModel.AssignmentModel{
				AssignmentTeacherID: m.TeacherID,
				AssignmentSubjectID: subjectID,
				AssignmentClassID:   classID,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func lookup(known map[string]uuid.UUID, names []string, kind string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		id, ok := known[name]
		if !ok {
			return nil, fmt.Errorf("unknown %s %q", kind, name)
		}
		out = append(out, id)
	}
	return out, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
