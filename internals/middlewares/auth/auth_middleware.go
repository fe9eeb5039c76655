package auth

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"sei_backend/internals/configs"
	authRepo "sei_backend/internals/features/users/auth/repository"
	helperAuth "sei_backend/internals/helpers/auth"
)

// AuthMiddleware verifies the bearer token, rejects blacklisted tokens and
// hydrates user id, role, raw token and expiry into Locals.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET is empty")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		_, err = parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "unexpected signing method")
			}
			return []byte(secretKey), nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Token invalid")
		}

		exp, err := validateTokenExpiry(claims, 30*time.Second)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Token expired")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Token invalid - missing user id")
		}
		role, err := extractRole(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Token invalid - unknown role")
		}

		blacklisted, err := authRepo.IsBlacklisted(c.UserContext(), db, tokenString, secretKey, time.Now())
		if err != nil {
			log.Printf("[ERROR] blacklist lookup: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if blacklisted {
			return fiber.NewError(fiber.StatusUnauthorized, "Token revoked")
		}

		c.Locals(helperAuth.LocUserID, userID.String())
		c.Locals(helperAuth.LocUserRole, role)
		c.Locals(helperAuth.LocRawToken, tokenString)
		c.Locals(helperAuth.LocTokenExp, exp)
		return c.Next()
	}
}
