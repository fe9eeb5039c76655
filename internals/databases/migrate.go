package database

import (
	"log"

	"gorm.io/gorm"

	yearModel "sei_backend/internals/features/school/academic_years/model"
	assignmentModel "sei_backend/internals/features/school/assignments/model"
	classModel "sei_backend/internals/features/school/classes/model"
	curriculumModel "sei_backend/internals/features/school/curriculum/model"
	gradeModel "sei_backend/internals/features/school/grades/model"
	settingsModel "sei_backend/internals/features/school/settings/model"
	studentModel "sei_backend/internals/features/school/students/model"
	subjectModel "sei_backend/internals/features/school/subjects/model"
	teacherModel "sei_backend/internals/features/school/teachers/model"
	authModel "sei_backend/internals/features/users/auth/model"
	userModel "sei_backend/internals/features/users/user/model"
)

// Models lists every table owned by the service, in dependency order.
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&curriculumModel.FormationTypeModel{},
		&curriculumModel.KnowledgeAreaModel{},
		&curriculumModel.SubAreaModel{},
		&subjectModel.SubjectModel{},
		&classModel.ClassModel{},
		&classModel.ClassSubjectModel{},
		&teacherModel.TeacherModel{},
		&assignmentModel.AssignmentModel{},
		&studentModel.StudentModel{},
		&gradeModel.GradeModel{},
		&yearModel.AcademicYearModel{},
		&settingsModel.SchoolSettingsModel{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	log.Println("[INFO] schema migrated")
	return nil
}
