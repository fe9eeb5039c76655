package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sei_backend/internals/cache"
	"sei_backend/internals/middlewares"
	authMiddleware "sei_backend/internals/middlewares/auth"
	routeDetails "sei_backend/internals/route/details"
)

var startTime time.Time

// SetupRoutes mounts every route. Public routes go first: once the private
// group is created its JWT middleware sits on the whole /api prefix.
func SetupRoutes(app *fiber.App, db *gorm.DB, c cache.Cache) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC routes...")
	public := app.Group("/api", middlewares.GlobalRateLimiter())
	routeDetails.AuthPublicRoutes(public, db)
	routeDetails.SchoolPublicRoutes(public, db)

	// ===================== PRIVATE =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api", authMiddleware.AuthMiddleware(db))

	log.Println("[INFO] Mounting Auth & User routes...")
	routeDetails.AuthRoutes(private, db)
	routeDetails.UserRoutes(private, db)

	log.Println("[INFO] Mounting School routes...")
	routeDetails.SchoolRoutes(private, db, c)

	log.Println("[INFO] Mounting Stats routes...")
	routeDetails.StatsRoutes(private, db, c)
}
