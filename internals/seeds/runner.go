package seeds

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"attendance_backend/internals/configs"
	classService "attendance_backend/internals/features/academics/classes/service"
	users "attendance_backend/internals/seeds/users/auth"
)

// RunAllSeeds idempoten; aman dipanggil setiap start.
func RunAllSeeds(db *gorm.DB, cfg *configs.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	//* Admin
	if err := users.SeedAdmin(ctx, db, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
		return err
	}

	//* User awal (opsional)
	if cfg.SeedUsersFile != "" {
		if err := users.SeedUsersFromJSON(ctx, db, cfg.SeedUsersFile); err != nil {
			return err
		}
	}

	//* Kelas & mapel default
	d, err := classService.EnsureDefaults(ctx, db)
	if err != nil {
		return err
	}
	log.Printf("[INFO] Default class=%s subject=%s siap", d.Class.ClassID, d.Subject.SubjectID)
	return nil
}
