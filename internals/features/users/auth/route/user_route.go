package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "attendance_backend/internals/features/users/auth/controller"
	"attendance_backend/internals/features/users/auth/service"
	rateLimiter "attendance_backend/internals/middlewares"
)

// AuthPublicRoutes: /api/auth tanpa token.
func AuthPublicRoutes(r fiber.Router, db *gorm.DB, token service.TokenConfig, secureCookie bool) {
	ctl := controller.NewAuthController(db, token, secureCookie)

	baseAuth := r.Group("/auth")
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), ctl.Login)
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), ctl.Register)
}

// AuthProtectedRoutes dipasang di group yang sudah lewat AuthJWT.
func AuthProtectedRoutes(r fiber.Router, db *gorm.DB, token service.TokenConfig, secureCookie bool) {
	ctl := controller.NewAuthController(db, token, secureCookie)

	protectedAuth := r.Group("/auth")
	protectedAuth.Get("/me", ctl.Me)
	protectedAuth.Post("/logout", ctl.Logout)
}
