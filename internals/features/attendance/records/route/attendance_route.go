package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"attendance_backend/internals/constants"
	"attendance_backend/internals/features/attendance/records/controller"
	authMiddleware "attendance_backend/internals/middlewares/auth"
	middlewares "attendance_backend/internals/middlewares"
)

// AttendanceRoutes dipasang di group yang sudah lewat AuthJWT.
func AttendanceRoutes(r fiber.Router, db *gorm.DB, bulkConcurrency int) {
	ctl := controller.NewAttendanceController(db, bulkConcurrency)

	att := r.Group("/attendance")

	att.Get("/records", ctl.ListRecords)
	att.Get("/stats", ctl.Stats)
	att.Get("/student-stats", ctl.StudentStats)

	markers := authMiddleware.OnlyRoles(constants.RoleErrorStaff("absensi"), constants.MarkerRoles...)
	att.Post("/mark", markers, ctl.Mark)
	att.Post("/mark/bulk", markers, middlewares.BulkRateLimiter(), ctl.MarkBulk)
}
