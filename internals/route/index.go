package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"attendance_backend/internals/configs"
	classRoute "attendance_backend/internals/features/academics/classes/route"
	subjectRoute "attendance_backend/internals/features/academics/subjects/route"
	attendanceRoute "attendance_backend/internals/features/attendance/records/route"
	authRoute "attendance_backend/internals/features/users/auth/route"
	authService "attendance_backend/internals/features/users/auth/service"
	userRoute "attendance_backend/internals/features/users/users/route"
	authMiddleware "attendance_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config) {
	startTime = time.Now()

	BaseRoutes(app, db, cfg)

	token := authService.TokenConfig{Secret: cfg.JWTSecret, TTL: cfg.AccessTokenTTL}
	secureCookie := cfg.Environment != "development" && cfg.Environment != "test"

	api := app.Group("/api")

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up AuthRoutes (public)...")
	authRoute.AuthPublicRoutes(api, db, token, secureCookie)

	// ===================== PRIVATE =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := api.Group("",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              cfg.JWTSecret,
			BlacklistChecker:    authService.NewBlacklistChecker(db, cfg.JWTSecret),
			ActiveUserChecker:   authService.NewActiveUserChecker(db),
			AllowCookieFallback: true,
		}),
	)

	log.Println("[INFO] Mounting Auth/User routes...")
	authRoute.AuthProtectedRoutes(private, db, token, secureCookie)
	userRoute.UserRoutes(private, db)

	log.Println("[INFO] Mounting Academic routes...")
	classRoute.ClassRoutes(private, db)
	subjectRoute.SubjectRoutes(private, db)

	log.Println("[INFO] Mounting Attendance routes...")
	attendanceRoute.AttendanceRoutes(private, db, cfg.BulkConcurrency)
}
