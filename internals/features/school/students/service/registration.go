package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"gorm.io/gorm"

	"sei_backend/internals/features/school/students/model"
)

const registrationAttempts = 5

// FormatRegistrationNumber renders RA<year><6 digits>.
func FormatRegistrationNumber(year int, seq int) string {
	return fmt.Sprintf("RA%04d%06d", year, seq%1_000_000)
}

// NewRegistrationNumber draws random numbers for the year of now until one is
// free. Collisions are unlikely; the unique index is the final guard.
func NewRegistrationNumber(ctx context.Context, db *gorm.DB, now time.Time) (string, error) {
	for i := 0; i < registrationAttempts; i++ {
		ra := FormatRegistrationNumber(now.Year(), rand.IntN(1_000_000))
		var n int64
		if err := db.WithContext(ctx).
			Model(&model.StudentModel{}).
			Where("student_registration_number = ?", ra).
			Count(&n).Error; err != nil {
			return "", err
		}
		if n == 0 {
			return ra, nil
		}
	}
	return "", fmt.Errorf("registration number: no free number after %d attempts", registrationAttempts)
}
