package dto

import (
	"github.com/google/uuid"

	"sei_backend/internals/features/stats/academic_status/service"
)

// DashboardSummary is the cached dashboard payload (no per-student rows).
type DashboardSummary struct {
	Year                string                 `json:"year"`
	TotalStudents       int                    `json:"totalStudents"`
	StatusCounts        service.StatusCounts   `json:"statusCounts"`
	Academic            service.AcademicCounts `json:"academic"`
	GlobalAverage       float64                `json:"globalAverage"`
	ActiveClassesCount  int                    `json:"activeClassesCount"`
	ActiveSubjectsCount int                    `json:"activeSubjectsCount"`
	SortedClasses       []service.ClassRecord  `json:"sortedClasses"`
	GeneratedAt         string                 `json:"generatedAt"`
}

func FromResult(r service.Result, generatedAt string) DashboardSummary {
	return DashboardSummary{
		Year:                r.Year,
		TotalStudents:       r.TotalStudents,
		StatusCounts:        r.StatusCounts,
		Academic:            r.Academic,
		GlobalAverage:       r.GlobalAverage,
		ActiveClassesCount:  r.ActiveClassesCount,
		ActiveSubjectsCount: r.ActiveSubjectsCount,
		SortedClasses:       r.SortedClasses,
		GeneratedAt:         generatedAt,
	}
}

type StudentOutcomeItem struct {
	StudentID   uuid.UUID       `json:"studentId"`
	StudentName string          `json:"studentName"`
	ClassID     *uuid.UUID      `json:"classId"`
	ClassName   string          `json:"className"`
	Outcome     service.Outcome `json:"outcome"`
}
