package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"sei_backend/internals/constants"
)

func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" {
		return "", fmt.Errorf("Token not provided")
	}

	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", fmt.Errorf("Invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", fmt.Errorf("Empty token")
	}
	return tok, nil
}

// validateTokenExpiry returns the exp claim as a time, tolerating skew.
func validateTokenExpiry(claims jwt.MapClaims, skew time.Duration) (time.Time, error) {
	expVal, ok := claims["exp"]
	if !ok {
		return time.Time{}, fmt.Errorf("token has no exp")
	}

	var expUnix int64
	switch t := expVal.(type) {
	case float64:
		expUnix = int64(t)
	case int64:
		expUnix = t
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid exp format")
		}
		expUnix = n
	default:
		return time.Time{}, fmt.Errorf("invalid exp type")
	}

	expTime := time.Unix(expUnix, 0).UTC()
	if time.Now().UTC().After(expTime.Add(skew)) {
		return time.Time{}, fmt.Errorf("token expired at %v", expTime)
	}
	return expTime, nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	s, ok := claims["id"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("no user id")
	}
	return uuid.Parse(strings.TrimSpace(s))
}

func extractRole(claims jwt.MapClaims) (constants.Role, error) {
	s, ok := claims["role"].(string)
	if !ok {
		return "", fmt.Errorf("no role")
	}
	return constants.ParseRole(s)
}
