package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"sei_backend/internals/configs"
	authRepo "sei_backend/internals/features/users/auth/repository"
)

// StartBlacklistCleanupScheduler purges expired blacklist rows once at boot and
// then on TOKEN_BLACKLIST_CLEANUP_CRON (daily by default) until ctx is
// cancelled. Rows are kept TOKEN_BLACKLIST_TTL_DAYS past expiry.
func StartBlacklistCleanupScheduler(ctx context.Context, db *gorm.DB) {
	ttlDays := configs.GetIntEnv("TOKEN_BLACKLIST_TTL_DAYS", 7)
	schedule := configs.GetEnv("TOKEN_BLACKLIST_CLEANUP_CRON", "@daily")

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(schedule, func() {
		RunBlacklistCleanup(ctx, db, ttlDays, time.Now())
	}); err != nil {
		log.Printf("[CLEANUP ERROR] invalid schedule %q: %v", schedule, err)
		return
	}

	go RunBlacklistCleanup(ctx, db, ttlDays, time.Now())
	c.Start()

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
		log.Println("[CLEANUP] blacklist scheduler stopped")
	}()
}

func RunBlacklistCleanup(ctx context.Context, db *gorm.DB, ttlDays int, now time.Time) int64 {
	before := now.Add(-time.Duration(ttlDays) * 24 * time.Hour)
	n, err := authRepo.PurgeExpiredBlacklist(ctx, db, before)
	if err != nil {
		log.Printf("[CLEANUP ERROR] purge token_blacklist: %v", err)
		return 0
	}
	if n > 0 {
		log.Printf("[CLEANUP] %d expired tokens removed", n)
	}
	return n
}
