package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"attendance_backend/internals/constants"
	"attendance_backend/internals/features/users/users/controller"
	authMiddleware "attendance_backend/internals/middlewares/auth"
)

// UserRoutes dipasang di group yang sudah lewat AuthJWT.
func UserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewUserController(db)

	users := r.Group("/users")
	users.Get("/me", ctl.GetMe)
	users.Patch("/me", ctl.UpdateMe)
	users.Delete("/:id",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("menghapus user"), constants.AdminOnly...),
		ctl.DeleteUser,
	)

	students := r.Group("/students",
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("data siswa"), constants.MarkerRoles...),
	)
	students.Post("/resolve", ctl.ResolveStudent)
	students.Post("/save", ctl.SaveStudents)
}
