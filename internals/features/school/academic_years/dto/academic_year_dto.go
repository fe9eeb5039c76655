package dto

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"sei_backend/internals/features/school/academic_years/model"
)

const dateLayout = "2006-01-02"

// Deadlines outside this range are treated as typos and stored as null.
const (
	minDeadlineYear = 2000
	maxDeadlineYear = 2100
)

type AcademicYearRequest struct {
	Year     string  `json:"year" validate:"required,len=4,numeric"`
	B1End    *string `json:"b1End"`
	B2End    *string `json:"b2End"`
	B3End    *string `json:"b3End"`
	B4End    *string `json:"b4End"`
	RecStart *string `json:"recStart"`
	RecEnd   *string `json:"recEnd"`
}

func (r AcademicYearRequest) ToModel() model.AcademicYearModel {
	return model.AcademicYearModel{
		AcademicYear:         r.Year,
		AcademicYearB1End:    ParseDeadline(r.B1End),
		AcademicYearB2End:    ParseDeadline(r.B2End),
		AcademicYearB3End:    ParseDeadline(r.B3End),
		AcademicYearB4End:    ParseDeadline(r.B4End),
		AcademicYearRecStart: ParseDeadline(r.RecStart),
		AcademicYearRecEnd:   ParseDeadline(r.RecEnd),
	}
}

// ParseDeadline reads YYYY-MM-DD (a longer ISO timestamp is cut to its date).
// Empty, unparsable or out of range input yields nil.
func ParseDeadline(raw *string) *datatypes.Date {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	if t.Year() < minDeadlineYear || t.Year() > maxDeadlineYear {
		return nil
	}
	d := datatypes.Date(t)
	return &d
}

func formatDate(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := time.Time(*d).Format(dateLayout)
	return &s
}

type AcademicYearResponse struct {
	Year      string    `json:"year"`
	B1End     *string   `json:"b1End"`
	B2End     *string   `json:"b2End"`
	B3End     *string   `json:"b3End"`
	B4End     *string   `json:"b4End"`
	RecStart  *string   `json:"recStart"`
	RecEnd    *string   `json:"recEnd"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromModel(m model.AcademicYearModel) AcademicYearResponse {
	return AcademicYearResponse{
		Year:      m.AcademicYear,
		B1End:     formatDate(m.AcademicYearB1End),
		B2End:     formatDate(m.AcademicYearB2End),
		B3End:     formatDate(m.AcademicYearB3End),
		B4End:     formatDate(m.AcademicYearB4End),
		RecStart:  formatDate(m.AcademicYearRecStart),
		RecEnd:    formatDate(m.AcademicYearRecEnd),
		UpdatedAt: m.AcademicYearUpdatedAt,
	}
}
