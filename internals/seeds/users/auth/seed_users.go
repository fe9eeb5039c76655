package user

import (
	_ "embed"
	"log"
	"strings"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"sei_backend/internals/constants"
	authRepo "sei_backend/internals/features/users/auth/repository"
	authService "sei_backend/internals/features/users/auth/service"
	"sei_backend/internals/features/users/user/model"
)

//go:embed data_users.json
var DefaultData []byte

type UserSeed struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SeedUsersFromJSON inserts the accounts whose e-mail is not taken yet and
// returns how many were created.
func SeedUsersFromJSON(db *gorm.DB, raw []byte) (int, error) {
	var inputs []UserSeed
	if err := sonic.Unmarshal(raw, &inputs); err != nil {
		return 0, err
	}

	created := 0
	for _, data := range inputs {
		email := authRepo.NormalizeEmail(data.Email)
		var n int64
		if err := db.Model(&model.UserModel{}).Where("email = ?", email).Count(&n).Error; err != nil {
			return created, err
		}
		if n > 0 {
			log.Printf("[SEED] user %s already exists, skipped", email)
			continue
		}

		role, err := constants.ParseRole(data.Role)
		if err != nil {
			log.Printf("[SEED] user %s: %v, skipped", email, err)
			continue
		}
		hashed, err := authService.HashPassword(data.Password)
		if err != nil {
			return created, err
		}

		u := model.UserModel{
			Email:    email,
			Password: hashed,
			Name:     strings.TrimSpace(data.Name),
			Role:     role,
		}
		if err := db.Create(&u).Error; err != nil {
			return created, err
		}
		created++
	}
	log.Printf("[SEED] %d users inserted", created)
	return created, nil
}
