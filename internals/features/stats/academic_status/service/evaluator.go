package service

import (
	"time"

	"github.com/google/uuid"

	"sei_backend/internals/constants"
	helper "sei_backend/internals/helpers"
)

type Outcome string

const (
	OutcomeApproved   Outcome = "approved"
	OutcomeInRecovery Outcome = "in_recovery"
	OutcomeInProgress Outcome = "in_progress"
	OutcomeRetained   Outcome = "retained"
)

func ParseOutcome(raw string) (Outcome, bool) {
	switch o := Outcome(raw); o {
	case OutcomeApproved, OutcomeInRecovery, OutcomeInProgress, OutcomeRetained:
		return o, true
	}
	return "", false
}

const (
	passingAverage  = 6.0
	recoveryPassing = 5.0
	bimesterCount   = 4
)

type StatusCounts struct {
	Attending   int `json:"attending"`
	Transferred int `json:"transferred"`
	DroppedOut  int `json:"droppedOut"`
}

type AcademicCounts struct {
	Approved   int `json:"approved"`
	InRecovery int `json:"inRecovery"`
	InProgress int `json:"inProgress"`
	Retained   int `json:"retained"`
}

type StudentOutcome struct {
	StudentID uuid.UUID  `json:"studentId"`
	ClassID   *uuid.UUID `json:"classId"`
	Outcome   Outcome    `json:"outcome"`
}

type Result struct {
	Year                string           `json:"year"`
	TotalStudents       int              `json:"totalStudents"`
	StatusCounts        StatusCounts     `json:"statusCounts"`
	Academic            AcademicCounts   `json:"academic"`
	GlobalAverage       float64          `json:"globalAverage"`
	ActiveClassesCount  int              `json:"activeClassesCount"`
	ActiveSubjectsCount int              `json:"activeSubjectsCount"`
	SortedClasses       []ClassRecord    `json:"sortedClasses"`
	Students            []StudentOutcome `json:"students,omitempty"`
}

// Evaluate classifies every attending student of year and aggregates the
// dashboard counters. Deadlines expire at 23:59:59 of their calendar day in
// loc (time.Local when nil). Grade values are taken as-is.
func Evaluate(now time.Time, year string, snap Snapshot, loc *time.Location) Result {
	if loc == nil {
		loc = time.Local
	}

	res := Result{
		Year:          year,
		SortedClasses: []ClassRecord{},
		Students:      []StudentOutcome{},
	}

	classesOfYear := make(map[uuid.UUID]ClassRecord)
	for _, c := range snap.Classes {
		if c.Year == year {
			res.SortedClasses = append(res.SortedClasses, c)
			if _, dup := classesOfYear[c.ID]; !dup {
				classesOfYear[c.ID] = c
			}
		}
	}
	res.ActiveClassesCount = len(res.SortedClasses)
	helper.SortNatural(res.SortedClasses, func(c ClassRecord) string { return c.Name })

	subjectsByID := make(map[uuid.UUID]SubjectRecord, len(snap.Subjects))
	for _, s := range snap.Subjects {
		if s.Year == year {
			res.ActiveSubjectsCount++
		}
		if _, dup := subjectsByID[s.ID]; !dup {
			subjectsByID[s.ID] = s
		}
	}

	var cfg YearConfig
	for _, y := range snap.AcademicYears {
		if y.Year == year {
			cfg = y
			break
		}
	}
	dl := newDeadlines(now, cfg, loc)

	studentsOfYear := make(map[uuid.UUID]struct{})
	var attending []StudentRecord
	for _, s := range snap.Students {
		if s.ClassID == nil {
			continue
		}
		if _, ok := classesOfYear[*s.ClassID]; !ok {
			continue
		}
		studentsOfYear[s.ID] = struct{}{}
		res.TotalStudents++

		switch s.Status {
		case constants.EnrollmentAttending:
			res.StatusCounts.Attending++
			attending = append(attending, s)
		case constants.EnrollmentTransferred:
			res.StatusCounts.Transferred++
		case constants.EnrollmentDroppedOut:
			res.StatusCounts.DroppedOut++
		}
	}

	book := newGradeBook(snap.Grades, studentsOfYear)
	res.GlobalAverage = book.average()

	for _, s := range attending {
		var cls *ClassRecord
		if c, ok := classesOfYear[*s.ClassID]; ok {
			cls = &c
		}
		outcome := classifyStudent(s, cls, subjectsByID, book, dl)
		switch outcome {
		case OutcomeApproved:
			res.Academic.Approved++
		case OutcomeInRecovery:
			res.Academic.InRecovery++
		case OutcomeInProgress:
			res.Academic.InProgress++
		case OutcomeRetained:
			res.Academic.Retained++
		}
		res.Students = append(res.Students, StudentOutcome{StudentID: s.ID, ClassID: s.ClassID, Outcome: outcome})
	}

	return res
}

func classifyStudent(s StudentRecord, cls *ClassRecord, subjects map[uuid.UUID]SubjectRecord, book gradeBook, dl deadlines) Outcome {
	if cls == nil || len(cls.SubjectIDs) == 0 {
		return OutcomeInProgress
	}

	var failed, atRecovery, pending bool
	seen := make(map[uuid.UUID]struct{}, len(cls.SubjectIDs))
	for _, subID := range cls.SubjectIDs {
		if _, ok := subjects[subID]; !ok {
			continue
		}
		if _, dup := seen[subID]; dup {
			continue
		}
		seen[subID] = struct{}{}

		st := classifySubject(book.slots(s.ID, subID), dl)
		failed = failed || st.failed
		atRecovery = atRecovery || st.atRecovery
		pending = pending || st.pending
	}

	switch {
	case failed:
		return OutcomeRetained
	case atRecovery:
		return OutcomeInRecovery
	case pending:
		return OutcomeInProgress
	}
	return OutcomeApproved
}

type subjectState struct {
	failed     bool
	atRecovery bool
	pending    bool
}

func classifySubject(g termSlots, dl deadlines) subjectState {
	var st subjectState

	present := 0
	sum := 0.0
	for i := 0; i < bimesterCount; i++ {
		if g[i] == nil {
			if dl.bimesterPassed[i] {
				st.pending = true
			}
			continue
		}
		present++
		sum += *g[i]
	}

	if present < bimesterCount {
		if dl.bimesterPassed[bimesterCount-1] {
			st.failed = true
		}
		return st
	}

	mg := sum / bimesterCount
	if mg >= passingAverage {
		return st
	}

	if rf := g[bimesterCount]; rf != nil {
		mf := (mg*6 + *rf*4) / 10
		if mf < recoveryPassing {
			st.failed = true
		}
		return st
	}
	if dl.recoveryPassed {
		st.failed = true
		return st
	}
	st.atRecovery = true
	return st
}

// deadlines are resolved once per evaluation.
type deadlines struct {
	bimesterPassed [bimesterCount]bool
	recoveryPassed bool
}

func newDeadlines(now time.Time, cfg YearConfig, loc *time.Location) deadlines {
	var dl deadlines
	for i, d := range cfg.bimesterEnds() {
		dl.bimesterPassed[i] = DeadlinePassed(now, d, loc)
	}
	dl.recoveryPassed = DeadlinePassed(now, cfg.RecEnd, loc)
	return dl
}

// DeadlinePassed reports whether now is after 23:59:59 of the calendar day of
// d, read in loc. A nil d never passes.
func DeadlinePassed(now time.Time, d *time.Time, loc *time.Location) bool {
	if d == nil {
		return false
	}
	y, m, day := d.Date()
	cutoff := time.Date(y, m, day, 23, 59, 59, 0, loc)
	return now.After(cutoff)
}

// termSlots[0..3] are bimesters 1..4, [4] is RF.
type termSlots [bimesterCount + 1]*float64

type gradeKey struct {
	student uuid.UUID
	subject uuid.UUID
}

type gradeBook struct {
	byKey map[gradeKey]termSlots
	sum   float64
	count int
}

// newGradeBook indexes the grades of the given students. When the same
// (student, subject, term) appears twice the first one wins; every value
// still counts toward the average.
func newGradeBook(grades []GradeRecord, students map[uuid.UUID]struct{}) gradeBook {
	b := gradeBook{byKey: make(map[gradeKey]termSlots)}
	for i := range grades {
		g := grades[i]
		if _, ok := students[g.StudentID]; !ok {
			continue
		}
		b.sum += g.Value
		b.count++

		if g.Term < 1 || g.Term > bimesterCount+1 {
			continue
		}
		k := gradeKey{student: g.StudentID, subject: g.SubjectID}
		slots := b.byKey[k]
		if slots[g.Term-1] == nil {
			v := g.Value
			slots[g.Term-1] = &v
			b.byKey[k] = slots
		}
	}
	return b
}

func (b gradeBook) slots(student, subject uuid.UUID) termSlots {
	return b.byKey[gradeKey{student: student, subject: subject}]
}

func (b gradeBook) average() float64 {
	if b.count == 0 {
		return 0
	}
	return b.sum / float64(b.count)
}
