package controller

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sei_backend/internals/cache"
	"sei_backend/internals/configs"
	"sei_backend/internals/features/stats/academic_status/dto"
	"sei_backend/internals/features/stats/academic_status/service"
	helper "sei_backend/internals/helpers"
)

var reYear = regexp.MustCompile(`^\d{4}$`)

type AcademicStatusController struct {
	DB    *gorm.DB
	Cache cache.Cache
	TTL   time.Duration
	Now   func() time.Time
}

func NewAcademicStatusController(db *gorm.DB, c cache.Cache) *AcademicStatusController {
	if c == nil {
		c = cache.Nop{}
	}
	return &AcademicStatusController{
		DB:    db,
		Cache: c,
		TTL:   configs.GetDurationEnv("STATS_CACHE_TTL", 30*time.Second),
		Now:   time.Now,
	}
}

func DashboardKey(year string) string {
	return cache.PrefixStats + "dashboard:" + year
}

// resolveYear reads ?year=, defaulting to the current year in school time.
func (ctl *AcademicStatusController) resolveYear(c *fiber.Ctx) (string, error) {
	year := strings.TrimSpace(c.Query("year"))
	if year == "" {
		return fmt.Sprintf("%d", ctl.Now().In(configs.Location()).Year()), nil
	}
	if !reYear.MatchString(year) {
		return "", helper.FieldErrors{"year": {"must be a 4-digit year"}}
	}
	return year, nil
}

func (ctl *AcademicStatusController) evaluate(c *fiber.Ctx, year string) (service.Result, error) {
	snap, err := service.LoadSnapshot(c.UserContext(), ctl.DB, year)
	if err != nil {
		return service.Result{}, err
	}
	return service.Evaluate(ctl.Now(), year, snap, configs.Location()), nil
}

// GET /api/stats/dashboard?year=2026&fresh=1
func (ctl *AcademicStatusController) Dashboard(c *fiber.Ctx) error {
	year, err := ctl.resolveYear(c)
	if err != nil {
		return err
	}
	key := DashboardKey(year)
	fresh := c.Query("fresh") == "1" || strings.EqualFold(c.Query("fresh"), "true")

	if !fresh {
		var cached dto.DashboardSummary
		err := ctl.Cache.GetJSON(c.UserContext(), key, &cached)
		if err == nil {
			c.Set("X-Cache", "HIT")
			return helper.JsonOK(c, "Dashboard stats", cached)
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("[WARN] stats cache read %s: %v", key, err)
		}
	}

	res, err := ctl.evaluate(c, year)
	if err != nil {
		log.Printf("[ERROR] stats dashboard %s: %v", year, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to compute dashboard stats")
	}

	summary := dto.FromResult(res, ctl.Now().UTC().Format(time.RFC3339))
	if err := ctl.Cache.SetJSON(c.UserContext(), key, summary, ctl.TTL); err != nil {
		log.Printf("[WARN] stats cache write %s: %v", key, err)
	}
	c.Set("X-Cache", "MISS")
	return helper.JsonOK(c, "Dashboard stats", summary)
}

// GET /api/stats/students?year=2026&outcome=retained
func (ctl *AcademicStatusController) Students(c *fiber.Ctx) error {
	year, err := ctl.resolveYear(c)
	if err != nil {
		return err
	}

	var want service.Outcome
	if raw := strings.TrimSpace(c.Query("outcome")); raw != "" {
		o, ok := service.ParseOutcome(raw)
		if !ok {
			return helper.FieldErrors{"outcome": {"must be one of approved in_recovery in_progress retained"}}
		}
		want = o
	}

	snap, err := service.LoadSnapshot(c.UserContext(), ctl.DB, year)
	if err != nil {
		log.Printf("[ERROR] stats students %s: %v", year, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to compute student outcomes")
	}
	res := service.Evaluate(ctl.Now(), year, snap, configs.Location())

	names := make(map[uuid.UUID]string, len(snap.Students))
	for _, s := range snap.Students {
		names[s.ID] = s.Name
	}
	classNames := make(map[uuid.UUID]string, len(res.SortedClasses))
	for _, cl := range res.SortedClasses {
		classNames[cl.ID] = cl.Name
	}

	items := make([]dto.StudentOutcomeItem, 0, len(res.Students))
	for _, so := range res.Students {
		if want != "" && so.Outcome != want {
			continue
		}
		item := dto.StudentOutcomeItem{
			StudentID:   so.StudentID,
			StudentName: names[so.StudentID],
			ClassID:     so.ClassID,
			Outcome:     so.Outcome,
		}
		if so.ClassID != nil {
			item.ClassName = classNames[*so.ClassID]
		}
		items = append(items, item)
	}
	helper.SortNatural(items, func(i dto.StudentOutcomeItem) string { return i.ClassName + " " + i.StudentName })

	return helper.JsonList(c, "Student outcomes", items, nil)
}
