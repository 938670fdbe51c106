package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"attendance_backend/internals/constants"
	"attendance_backend/internals/features/academics/subjects/controller"
	authMiddleware "attendance_backend/internals/middlewares/auth"
)

func SubjectRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewSubjectController(db)

	subjects := r.Group("/subjects")
	subjects.Get("/", ctl.List)
	subjects.Post("/", authMiddleware.OnlyRoles(constants.RoleErrorAdmin("mapel"), constants.AdminOnly...), ctl.Create)
}
