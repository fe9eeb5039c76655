package service

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sei_backend/internals/constants"
)

var brt = time.FixedZone("BRT", -3*60*60)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, brt)
}

// 2026 calendar used by most cases.
func year2026() YearConfig {
	return YearConfig{
		Year:     "2026",
		B1End:    day(2026, time.April, 30),
		B2End:    day(2026, time.July, 10),
		B3End:    day(2026, time.September, 30),
		B4End:    day(2026, time.December, 5),
		RecStart: day(2026, time.December, 8),
		RecEnd:   day(2026, time.December, 18),
	}
}

type school struct {
	snap    Snapshot
	classID uuid.UUID
}

// newSchool builds year 2026 with one class "9A" holding the given subjects.
func newSchool(subjects ...uuid.UUID) *school {
	classID := uuid.New()
	s := &school{classID: classID}
	s.snap.Classes = []ClassRecord{{ID: classID, Name: "9A", Year: "2026", SubjectIDs: subjects}}
	for _, id := range subjects {
		s.snap.Subjects = append(s.snap.Subjects, SubjectRecord{ID: id, Year: "2026"})
	}
	s.snap.AcademicYears = []YearConfig{year2026()}
	return s
}

func (s *school) student(status constants.EnrollmentStatus) uuid.UUID {
	id := uuid.New()
	classID := s.classID
	s.snap.Students = append(s.snap.Students, StudentRecord{ID: id, Name: "Aluno", ClassID: &classID, Status: status})
	return id
}

// grades adds values for terms 1..n in order; pass a negative value to skip a term.
func (s *school) grades(student, subject uuid.UUID, values ...float64) {
	for i, v := range values {
		if v < 0 {
			continue
		}
		s.snap.Grades = append(s.snap.Grades, GradeRecord{StudentID: student, SubjectID: subject, Term: i + 1, Value: v})
	}
}

func (s *school) rf(student, subject uuid.UUID, v float64) {
	s.snap.Grades = append(s.snap.Grades, GradeRecord{StudentID: student, SubjectID: subject, Term: 5, Value: v})
}

func outcomeOf(t *testing.T, res Result, student uuid.UUID) Outcome {
	t.Helper()
	for _, so := range res.Students {
		if so.StudentID == student {
			return so.Outcome
		}
	}
	t.Fatalf("student %s not classified", student)
	return ""
}

func TestEvaluate_ApprovedWhenAverageReachesSix(t *testing.T) {
	math := uuid.New()
	s := newSchool(math)
	st := s.student(constants.EnrollmentAttending)
	s.grades(st, math, 7, 8, 5, 6)

	res := Evaluate(at(2026, time.December, 10, 12, 0), "2026", s.snap, brt)

	assert.Equal(t, OutcomeApproved, outcomeOf(t, res, st))
	assert.Equal(t, AcademicCounts{Approved: 1}, res.Academic)
}

func TestEvaluate_RetainedAfterRecoveryWindowWithoutRF(t *testing.T) {
	math := uuid.New()
	s := newSchool(math)
	st := s.student(constants.EnrollmentAttending)
	s.grades(st, math, 4, 5, 4, 3)

	res := Evaluate(at(2026, time.December, 20, 9, 0), "2026", s.snap, brt)

	assert.Equal(t, OutcomeRetained, outcomeOf(t, res, st))
	assert.Equal(t, 1, res.Academic.Retained)
}

func TestEvaluate_InRecoveryBeforeRecEnd(t *testing.T) {
	math := uuid.New()
	s := newSchool(math)
	st := s.student(constants.EnrollmentAttending)
	s.grades(st, math, 5, 5, 5, 5)

	res := Evaluate(at(2026, time.December, 18, 23, 0), "2026", s.snap, brt)

	assert.Equal(t, OutcomeInRecovery, outcomeOf(t, res, st))
	assert.Equal(t, 1, res.Academic.InRecovery)
}

func TestEvaluate_MissingTermsBeforeTheirDeadlineAreNotPending(t *testing.T) {
	math := uuid.New()
	s := newSchool(math)
	st := s.student(constants.EnrollmentAttending)
	s.grades(st, math, 7, 6)

	// b1 and b2 are over, b3 is not
	res := Evaluate(at(2026, time.August, 15, 10, 0), "2026", s.snap, brt)

	assert.Equal(t, OutcomeApproved, outcomeOf(t, res, st))
}

func TestEvaluate_MissingGradePastDeadlineIsInProgress(t *testing.T) {
	math := uuid.New()
	s := newSchool(math)
	st := s.student(constants.EnrollmentAttending)
	s.grades(st, math, 7, -1)

	res := Evaluate(at(2026, time.August, 15, 10, 0), "2026", s.snap, brt)

	assert.Equal(t, OutcomeInProgress, outcomeOf(t, res, st))
	assert.Equal(t, 1, res.Academic.InProgress)
}

func TestEvaluate_IncompleteAfterB4EndIsRetained(t *testing.T) {
	math := uuid.New()
	s := newSchool(math)
	st := s.student(constants.EnrollmentAttending)
	s.grades(st, math, 9, 9, 9)

	res := Evaluate(at(2026, time.December, 6, 8, 0), "2026", s.snap, brt)

	assert.Equal(t, OutcomeRetained, outcomeOf(t, res, st))
}

func TestEvaluate_RecoveryExam(t *testing.T) {
	cases := []struct {
		name string
		rf   float64
		want Outcome
	}{
		// MG 4.0: MF = (24 + 4*RF) / 10
		{"recovered", 7, OutcomeApproved},      // MF 5.2
		{"exactly five", 6.5, OutcomeApproved}, // MF 5.0
		{"still failing", 5, OutcomeRetained},  // MF 4.4
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			math := uuid.New()
			s := newSchool(math)
			st := s.student(constants.EnrollmentAttending)
			s.grades(st, math, 4, 4, 4, 4)
			s.rf(st, math, tc.rf)

			// before recEnd, so only MF decides
			res := Evaluate(at(2026, time.December, 10, 12, 0), "2026", s.snap, brt)
			assert.Equal(t, tc.want, outcomeOf(t, res, st))
		})
	}
}

func TestEvaluate_FailedRFWinsOverOtherSubjects(t *testing.T) {
	math, history, art := uuid.New(), uuid.New(), uuid.New()
	s := newSchool(math, history, art)
	st := s.student(constants.EnrollmentAttending)
	s.grades(st, math, 4, 4, 4, 4)
	s.rf(st, math, 2)
	s.grades(st, history, 5, 5, 5, 5) // at recovery
	s.grades(st, art, 10, 10, 10, 10)

	res := Evaluate(at(2026, time.December, 10, 12, 0), "2026", s.snap, brt)

	assert.Equal(t, OutcomeRetained, outcomeOf(t, res, st))
}

func TestEvaluate_PassingAverageIgnoresRF(t *testing.T) {
	math := uuid.New()
	s := newSchool(math)
	st := s.student(constants.EnrollmentAttending)
	s.grades(st, math, 6, 6, 6, 6)
	s.rf(st, math, 0)

	res := Evaluate(at(2026, time.December, 20, 12, 0), "2026", s.snap, brt)

	assert.Equal(t, OutcomeApproved, outcomeOf(t, res, st))
}

func TestEvaluate_RecoveryBeatsPending(t *testing.T) {
	math, history := uuid.New(), uuid.New()
	s := newSchool(math, history)
	st := s.student(constants.EnrollmentAttending)
	s.grades(st, math, 5, 5, 5, 5)
	s.grades(st, history, 8, -1, 8, 8) // b2 missing, b4End not yet over

	res := Evaluate(at(2026, time.December, 1, 12, 0), "2026", s.snap, brt)

	assert.Equal(t, OutcomeInRecovery, outcomeOf(t, res, st))
}

func TestEvaluate_ClassWithoutSubjectsIsInProgress(t *testing.T) {
	s := newSchool()
	st := s.student(constants.EnrollmentAttending)

	res := Evaluate(at(2026, time.December, 20, 12, 0), "2026", s.snap, brt)

	assert.Equal(t, OutcomeInProgress, outcomeOf(t, res, st))
}

func TestEvaluate_UnknownSubjectReferencesAreSkipped(t *testing.T) {
	s := newSchool()
	s.snap.Classes[0].SubjectIDs = []uuid.UUID{uuid.New()}
	st := s.student(constants.EnrollmentAttending)

	res := Evaluate(at(2026, time.December, 20, 12, 0), "2026", s.snap, brt)

	assert.Equal(t, OutcomeApproved, outcomeOf(t, res, st))
}

func TestEvaluate_UnconfiguredYearNeverPassesDeadlines(t *testing.T) {
	math := uuid.New()
	s := newSchool(math)
	s.snap.AcademicYears = nil
	st := s.student(constants.EnrollmentAttending)
	s.grades(st, math, 3, 3, 3, 3)
	other := s.student(constants.EnrollmentAttending)

	res := Evaluate(at(2027, time.March, 1, 12, 0), "2026", s.snap, brt)

	assert.Equal(t, OutcomeInRecovery, outcomeOf(t, res, st))
	assert.Equal(t, OutcomeApproved, outcomeOf(t, res, other))
}

func TestEvaluate_StatusCounts(t *testing.T) {
	math := uuid.New()
	s := newSchool(math)
	s.student(constants.EnrollmentAttending)
	s.student(constants.EnrollmentAttending)
	s.student(constants.EnrollmentTransferred)
	s.student(constants.EnrollmentDroppedOut)
	s.student(constants.EnrollmentOther)

	// another year and a student without class never count
	otherClass := uuid.New()
	s.snap.Classes = append(s.snap.Classes, ClassRecord{ID: otherClass, Name: "1A", Year: "2025"})
	s.snap.Students = append(s.snap.Students,
		StudentRecord{ID: uuid.New(), ClassID: &otherClass, Status: constants.EnrollmentAttending},
		StudentRecord{ID: uuid.New(), Status: constants.EnrollmentAttending},
	)

	res := Evaluate(at(2026, time.May, 1, 12, 0), "2026", s.snap, brt)

	assert.Equal(t, 5, res.TotalStudents)
	assert.Equal(t, StatusCounts{Attending: 2, Transferred: 1, DroppedOut: 1}, res.StatusCounts)
	assert.Len(t, res.Students, 2, "only attending students are classified")
	sum := res.Academic.Approved + res.Academic.InRecovery + res.Academic.InProgress + res.Academic.Retained
	assert.Equal(t, 2, sum)
}

func TestEvaluate_GlobalAverage(t *testing.T) {
	math := uuid.New()
	s := newSchool(math)
	st := s.student(constants.EnrollmentTransferred)

	res := Evaluate(at(2026, time.May, 1, 12, 0), "2026", s.snap, brt)
	assert.Equal(t, 0.0, res.GlobalAverage)

	s.grades(st, math, 7, 8, 5, 6)
	s.rf(st, math, 9)
	// grades of a student outside the year are ignored
	s.snap.Grades = append(s.snap.Grades, GradeRecord{StudentID: uuid.New(), SubjectID: math, Term: 1, Value: 0})

	res = Evaluate(at(2026, time.May, 1, 12, 0), "2026", s.snap, brt)
	assert.InDelta(t, 7.0, res.GlobalAverage, 1e-9)
}

func TestEvaluate_FirstDuplicateGradeWins(t *testing.T) {
	math := uuid.New()
	s := newSchool(math)
	st := s.student(constants.EnrollmentAttending)
	s.grades(st, math, 8, 8, 8, 8)
	s.grades(st, math, 0, 0, 0, 0)

	res := Evaluate(at(2026, time.December, 20, 12, 0), "2026", s.snap, brt)

	assert.Equal(t, OutcomeApproved, outcomeOf(t, res, st))
	assert.InDelta(t, 4.0, res.GlobalAverage, 1e-9)
}

func TestEvaluate_SortedClassesAndCounters(t *testing.T) {
	s := &school{}
	names := []string{"Turma 10", "Turma 2", "turma 1", "Turma 9B", "Turma 9A"}
	for _, n := range names {
		s.snap.Classes = append(s.snap.Classes, ClassRecord{ID: uuid.New(), Name: n, Year: "2026"})
	}
	s.snap.Classes = append(s.snap.Classes, ClassRecord{ID: uuid.New(), Name: "Turma 3", Year: "2025"})
	s.snap.Subjects = []SubjectRecord{{ID: uuid.New(), Year: "2026"}, {ID: uuid.New(), Year: "2025"}, {ID: uuid.New(), Year: "2026"}}

	res := Evaluate(at(2026, time.May, 1, 12, 0), "2026", s.snap, brt)

	got := make([]string, 0, len(res.SortedClasses))
	for _, c := range res.SortedClasses {
		got = append(got, c.Name)
	}
	assert.Equal(t, []string{"turma 1", "Turma 2", "Turma 9A", "Turma 9B", "Turma 10"}, got)
	assert.Equal(t, 5, res.ActiveClassesCount)
	assert.Equal(t, 2, res.ActiveSubjectsCount)

	// input order untouched
	assert.Equal(t, "Turma 10", s.snap.Classes[0].Name)
}

func TestEvaluate_EmptySnapshot(t *testing.T) {
	res := Evaluate(time.Now(), "2026", Snapshot{}, nil)

	assert.Equal(t, 0, res.TotalStudents)
	assert.Equal(t, 0.0, res.GlobalAverage)
	assert.NotNil(t, res.SortedClasses)
	assert.Empty(t, res.SortedClasses)
}

func TestEvaluate_ConcurrentCallsAgree(t *testing.T) {
	math, history := uuid.New(), uuid.New()
	s := newSchool(math, history)
	for i := 0; i < 20; i++ {
		st := s.student(constants.EnrollmentAttending)
		s.grades(st, math, float64(i%10), 6, 7, 8)
		s.grades(st, history, 5, 5, float64(i%7), 5)
	}
	now := at(2026, time.December, 10, 12, 0)
	want := Evaluate(now, "2026", s.snap, brt)

	var wg sync.WaitGroup
	results := make([]Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Evaluate(now, "2026", s.snap, brt)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		require.Equal(t, want.Academic, got.Academic)
		require.Equal(t, want.GlobalAverage, got.GlobalAverage)
	}
}

func TestDeadlinePassed(t *testing.T) {
	d := day(2026, time.March, 30)

	assert.False(t, DeadlinePassed(time.Now(), nil, brt))

	cutoff := time.Date(2026, time.March, 30, 23, 59, 59, 0, brt)
	assert.False(t, DeadlinePassed(cutoff, d, brt))
	assert.True(t, DeadlinePassed(cutoff.Add(time.Second), d, brt))

	// 02:30 UTC on the 31st is still the 30th in Brazil
	assert.False(t, DeadlinePassed(time.Date(2026, time.March, 31, 2, 30, 0, 0, time.UTC), d, brt))
	assert.True(t, DeadlinePassed(time.Date(2026, time.March, 31, 2, 30, 0, 0, time.UTC), d, time.UTC))
}

func TestParseOutcome(t *testing.T) {
	o, ok := ParseOutcome("retained")
	assert.True(t, ok)
	assert.Equal(t, OutcomeRetained, o)

	_, ok = ParseOutcome("failed")
	assert.False(t, ok)
}
