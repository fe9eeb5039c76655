package service

import (
	"golang.org/x/crypto/bcrypt"

	"sei_backend/internals/configs"
)

func passwordCost() int {
	if configs.BcryptCost < bcrypt.MinCost || configs.BcryptCost > bcrypt.MaxCost {
		return 8
	}
	return configs.BcryptCost
}

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), passwordCost())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPasswordHash(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
