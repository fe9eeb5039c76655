package seeds

import (
	"log"

	"gorm.io/gorm"

	school "sei_backend/internals/seeds/school"
	users "sei_backend/internals/seeds/users/auth"
)

// RunAllSeeds loads the demo accounts and school year. Both steps skip data
// that is already present, so running twice is harmless.
func RunAllSeeds(db *gorm.DB) error {
	log.Println("[SEED] running seeds...")

	//* Users
	if _, err := users.SeedUsersFromJSON(db, users.DefaultData); err != nil {
		return err
	}

	//* School year
	if err := school.SeedSchoolFromJSON(db, school.DefaultData); err != nil {
		return err
	}
	return nil
}
