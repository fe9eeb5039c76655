package dto

import (
	"strings"
	"time"

	"sei_backend/internals/features/school/settings/model"
)

// UpdateSettingsRequest is partial; "" clears a logo.
type UpdateSettingsRequest struct {
	SchoolName *string `json:"schoolName" validate:"omitempty,min=1,max=200"`
	SchoolLogo *string `json:"schoolLogo" validate:"omitempty,max=2000000"`
	SystemLogo *string `json:"systemLogo" validate:"omitempty,max=2000000"`
}

func (r UpdateSettingsRequest) ApplyTo(m *model.SchoolSettingsModel) {
	if r.SchoolName != nil {
		m.SchoolSettingsSchoolName = strings.TrimSpace(*r.SchoolName)
	}
	if r.SchoolLogo != nil {
		m.SchoolSettingsSchoolLogo = emptyToNil(*r.SchoolLogo)
	}
	if r.SystemLogo != nil {
		m.SchoolSettingsSystemLogo = emptyToNil(*r.SystemLogo)
	}
}

func emptyToNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

type SettingsResponse struct {
	SchoolName string     `json:"schoolName"`
	SchoolLogo *string    `json:"schoolLogo"`
	SystemLogo *string    `json:"systemLogo"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

func FromModel(m model.SchoolSettingsModel) SettingsResponse {
	out := SettingsResponse{
		SchoolName: m.SchoolSettingsSchoolName,
		SchoolLogo: m.SchoolSettingsSchoolLogo,
		SystemLogo: m.SchoolSettingsSystemLogo,
	}
	if !m.SchoolSettingsUpdatedAt.IsZero() {
		t := m.SchoolSettingsUpdatedAt
		out.UpdatedAt = &t
	}
	return out
}
