package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"attendance_backend/internals/constants"
	"attendance_backend/internals/features/academics/classes/controller"
	authMiddleware "attendance_backend/internals/middlewares/auth"
)

// ClassRoutes dipasang di group yang sudah lewat AuthJWT.
func ClassRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewClassController(db)

	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("kelas"), constants.AdminOnly...)
	staff := authMiddleware.OnlyRoles(constants.RoleErrorStaff("kelas"), constants.MarkerRoles...)

	classes := r.Group("/classes")
	classes.Get("/", ctl.List)
	classes.Post("/", adminOnly, ctl.Create)
	classes.Get("/:id/students", staff, ctl.Students)
	classes.Post("/:id/subjects", adminOnly, ctl.AttachSubject)
	classes.Put("/:id/representatives/:userId", adminOnly, ctl.SetRepresentative)

	r.Post("/academics/defaults", staff, ctl.EnsureDefaults)
}
