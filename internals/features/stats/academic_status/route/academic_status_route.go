package route

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sei_backend/internals/cache"
	"sei_backend/internals/constants"
	"sei_backend/internals/features/stats/academic_status/controller"
	authMiddleware "sei_backend/internals/middlewares/auth"
)

func AcademicStatusRoutes(r fiber.Router, db *gorm.DB, c cache.Cache) {
	ctl := controller.NewAcademicStatusController(db, c)

	stats := r.Group("/stats", authMiddleware.Require(constants.ActionRead, constants.ResStats))
	stats.Get("/dashboard", ctl.Dashboard)
	stats.Get("/students", ctl.Students)
}

// InvalidateOnWrite drops every cached stats entry after a successful
// mutating request. Mount it on routes whose writes change the dashboard.
func InvalidateOnWrite(c cache.Cache) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if ctx.Method() == fiber.MethodGet || ctx.Method() == fiber.MethodHead {
			return err
		}
		if err != nil || ctx.Response().StatusCode() >= fiber.StatusBadRequest {
			return err
		}
		// the request context may already be done; the purge must still run
		if perr := c.DeletePrefix(context.Background(), cache.PrefixStats); perr != nil {
			log.Printf("[WARN] stats cache purge: %v", perr)
		}
		return nil
	}
}
