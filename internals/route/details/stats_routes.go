package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sei_backend/internals/cache"
	StatsRoute "sei_backend/internals/features/stats/academic_status/route"
)

func StatsRoutes(private fiber.Router, db *gorm.DB, c cache.Cache) {
	StatsRoute.AcademicStatusRoutes(private, db, c)
}
