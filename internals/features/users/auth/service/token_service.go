package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"sei_backend/internals/configs"
	userModel "sei_backend/internals/features/users/user/model"
)

var ErrMissingSecret = errors.New("JWT_SECRET is not configured")

func tokenTTL() time.Duration {
	if configs.JWTTTL <= 0 {
		return 24 * time.Hour
	}
	return configs.JWTTTL
}

// IssueAccessToken signs {id, role, iat, exp} with HS256.
func IssueAccessToken(user userModel.UserModel, now time.Time) (string, time.Time, error) {
	if configs.JWTSecret == "" {
		return "", time.Time{}, ErrMissingSecret
	}
	exp := now.Add(tokenTTL())
	claims := jwt.MapClaims{
		"id":   user.ID.String(),
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}
