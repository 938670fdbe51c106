package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	authService "attendance_backend/internals/features/users/auth/service"
)

const DefaultCleanupSchedule = "@daily"

// StartBlacklistCleanupScheduler menjalankan purge token_blacklist sesuai jadwal cron.
// Kembalikan *cron.Cron supaya main bisa Stop() saat shutdown.
func StartBlacklistCleanupScheduler(db *gorm.DB, schedule string) (*cron.Cron, error) {
	if schedule == "" {
		schedule = DefaultCleanupSchedule
	}
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	_, err := c.AddFunc(schedule, func() { RunBlacklistCleanup(db) })
	if err != nil {
		return nil, err
	}
	log.Printf("[CLEANUP] token_blacklist scheduler started schedule=%q", schedule)
	c.Start()
	return c, nil
}

func RunBlacklistCleanup(db *gorm.DB) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := authService.PurgeExpired(ctx, db, time.Now().UTC())
	if err != nil {
		log.Printf("[CLEANUP ERROR] Gagal hapus token kadaluarsa: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[CLEANUP] %d token kadaluarsa dihapus", n)
	} else {
		log.Println("[CLEANUP] Tidak ada token yang memenuhi syarat dihapus")
	}
}
