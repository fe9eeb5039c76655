package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "sei_backend/internals/features/users/auth/route"
)

func AuthPublicRoutes(public fiber.Router, db *gorm.DB) {
	authRoute.AuthPublicRoutes(public, db)
}

func AuthRoutes(private fiber.Router, db *gorm.DB) {
	authRoute.AuthRoutes(private, db)
}
