package constants

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// EnrollmentStatus is the normalized enrollment state of a student.
type EnrollmentStatus string

const (
	EnrollmentAttending   EnrollmentStatus = "attending"
	EnrollmentTransferred EnrollmentStatus = "transferred"
	EnrollmentDroppedOut  EnrollmentStatus = "dropped_out"
	EnrollmentOther       EnrollmentStatus = "other"
)

// Label is the value persisted in students.status.
func (s EnrollmentStatus) Label() string {
	switch s {
	case EnrollmentAttending:
		return "Cursando"
	case EnrollmentTransferred:
		return "Transferência"
	case EnrollmentDroppedOut:
		return "Evasão"
	}
	return "Outro"
}

var attendingAliases = map[string]bool{
	"cursando":  true,
	"ativo":     true,
	"active":    true,
	"attending": true,
}

// ParseEnrollmentStatus normalizes free text (case, accents, surrounding
// spaces). ok is false when the value is empty or unrecognized; the status is
// then EnrollmentOther so it never counts toward any category.
func ParseEnrollmentStatus(raw string) (status EnrollmentStatus, ok bool) {
	s := foldText(raw)
	switch {
	case s == "":
		return EnrollmentOther, false
	case attendingAliases[s]:
		return EnrollmentAttending, true
	case strings.Contains(s, "transfer"):
		return EnrollmentTransferred, true
	case strings.Contains(s, "eva"), strings.Contains(s, "dropped"):
		return EnrollmentDroppedOut, true
	case s == "outro", s == "other":
		return EnrollmentOther, true
	}
	return EnrollmentOther, false
}

// foldText lower-cases, trims and strips combining marks ("Evasão" -> "evasao").
func foldText(raw string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, raw)
	if err != nil {
		out = raw
	}
	return strings.ToLower(strings.TrimSpace(out))
}
