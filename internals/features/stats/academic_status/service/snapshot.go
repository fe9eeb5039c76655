package service

import (
	"time"

	"github.com/google/uuid"

	"sei_backend/internals/constants"
)

// Snapshot is the read-only input of Evaluate. It is passed by value and never
// mutated.
type Snapshot struct {
	Students      []StudentRecord
	Classes       []ClassRecord
	Subjects      []SubjectRecord
	Grades        []GradeRecord
	AcademicYears []YearConfig
}

type StudentRecord struct {
	ID      uuid.UUID
	Name    string
	ClassID *uuid.UUID
	Status  constants.EnrollmentStatus
}

type ClassRecord struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	Year       string      `json:"year"`
	Shift      string      `json:"shift,omitempty"`
	SubjectIDs []uuid.UUID `json:"subjectIds"`
}

type SubjectRecord struct {
	ID   uuid.UUID
	Year string
}

// GradeRecord: Term 1..4 are bimesters, 5 is RF.
type GradeRecord struct {
	StudentID uuid.UUID
	SubjectID uuid.UUID
	Term      int
	Value     float64
}

// YearConfig deadlines are calendar dates; only year, month and day are read.
// A nil deadline never passes.
type YearConfig struct {
	Year     string
	B1End    *time.Time
	B2End    *time.Time
	B3End    *time.Time
	B4End    *time.Time
	RecStart *time.Time
	RecEnd   *time.Time
}

func (y YearConfig) bimesterEnds() [4]*time.Time {
	return [4]*time.Time{y.B1End, y.B2End, y.B3End, y.B4End}
}
