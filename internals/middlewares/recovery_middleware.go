package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"attendance_backend/internals/configs"
	"attendance_backend/internals/middlewares/logger"
)

// RecoveryMiddleware menangkap panic dan mengembalikan error 500
func RecoveryMiddleware(env string) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: env == "development", // stack trace hanya di dev
	})
}

// SetupMiddlewares: recovery → CORS → access log → global limiter.
func SetupMiddlewares(app *fiber.App, cfg *configs.Config) {
	app.Use(RecoveryMiddleware(cfg.Environment))
	app.Use(CorsMiddleware(cfg.CORSOrigins))
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
