package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sei_backend/internals/cache"
	AcademicYearRoutes "sei_backend/internals/features/school/academic_years/route"
	AssignmentRoutes "sei_backend/internals/features/school/assignments/route"
	ClassRoutes "sei_backend/internals/features/school/classes/route"
	CurriculumRoutes "sei_backend/internals/features/school/curriculum/route"
	GradeRoutes "sei_backend/internals/features/school/grades/route"
	SettingsRoutes "sei_backend/internals/features/school/settings/route"
	StudentRoutes "sei_backend/internals/features/school/students/route"
	SubjectRoutes "sei_backend/internals/features/school/subjects/route"
	TeacherRoutes "sei_backend/internals/features/school/teachers/route"
	StatsRoute "sei_backend/internals/features/stats/academic_status/route"
)

/* ===================== PUBLIC ===================== */
// Branding for the login screen.
func SchoolPublicRoutes(public fiber.Router, db *gorm.DB) {
	SettingsRoutes.SettingsPublicRoutes(public, db)
}

/* ===================== PRIVATE ===================== */
// Writes on records the evaluator reads drop the cached stats.
func SchoolRoutes(private fiber.Router, db *gorm.DB, c cache.Cache) {
	invalidate := StatsRoute.InvalidateOnWrite(c)

	StudentRoutes.StudentRoutes(private, db, invalidate)
	TeacherRoutes.TeacherRoutes(private, db)
	CurriculumRoutes.CurriculumRoutes(private, db)
	SubjectRoutes.SubjectRoutes(private, db, invalidate)
	ClassRoutes.ClassRoutes(private, db, invalidate)
	AssignmentRoutes.AssignmentRoutes(private, db)
	GradeRoutes.GradeRoutes(private, db, invalidate)
	AcademicYearRoutes.AcademicYearRoutes(private, db, invalidate)
	SettingsRoutes.SettingsRoutes(private, db)
}
