package controller

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"attendance_backend/internals/constants"
	"attendance_backend/internals/features/attendance/records/dto"
	"attendance_backend/internals/features/attendance/records/model"
	"attendance_backend/internals/features/attendance/records/service"
	helper "attendance_backend/internals/helpers"
	"attendance_backend/internals/helpers/apperror"
	helperAuth "attendance_backend/internals/helpers/auth"
)

const (
	defaultPerPage = 50
	maxPerPage     = 500
)

type AttendanceController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Service   *service.AttendanceService
}

func NewAttendanceController(db *gorm.DB, bulkConcurrency int) *AttendanceController {
	return &AttendanceController{
		DB:        db,
		Validator: validator.New(),
		Service:   service.NewAttendanceService(db, bulkConcurrency),
	}
}

// filterFromQuery: siswa selalu dipaksa melihat datanya sendiri.
func (ctl *AttendanceController) filterFromQuery(c *fiber.Ctx) (dto.Filter, error) {
	raw := c.Queries()
	if helperAuth.GetRoleFromToken(c) == constants.RoleStudent {
		uid, err := helperAuth.GetUserIDFromToken(c)
		if err != nil {
			return dto.Filter{}, err
		}
		delete(raw, "student_id")
		raw["studentId"] = uid.String()
	}
	return dto.NormalizeFilter(raw)
}

func marker(c *fiber.Ctx) (service.Marker, error) {
	uid, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return service.Marker{}, err
	}
	return service.Marker{UserID: uid, Role: helperAuth.GetRoleFromToken(c)}, nil
}

// GET /api/attendance/records
// Query: classId, subjectId, studentId, date, startDate, endDate (+ page, per_page opsional)
func (ctl *AttendanceController) ListRecords(c *fiber.Ctx) error {
	f, err := ctl.filterFromQuery(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	if p, ok := helper.ResolvePaging(c, defaultPerPage, maxPerPage); ok {
		rows, total, err := ctl.Service.ListPage(c.UserContext(), f, p.Limit, p.Offset)
		if err != nil {
			return helper.JsonAppError(c, err)
		}
		return helper.JsonList(c, "Data absensi berhasil diambil", rows, helper.BuildPagination(total, p, len(rows)))
	}

	rows, err := ctl.Service.List(c.UserContext(), f)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "Data absensi berhasil diambil", rows, nil)
}

// GET /api/attendance/stats
func (ctl *AttendanceController) Stats(c *fiber.Ctx) error {
	f, err := ctl.filterFromQuery(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	st, err := ctl.Service.GetStats(c.UserContext(), f)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Statistik absensi", st)
}

// GET /api/attendance/student-stats?studentId=&classId=&days=
func (ctl *AttendanceController) StudentStats(c *fiber.Ctx) error {
	self, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	studentID := self
	if s := strings.TrimSpace(c.Query("studentId", c.Query("student_id"))); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonAppError(c, apperror.Filter("studentId", "harus UUID"))
		}
		studentID = id
	}
	if helperAuth.GetRoleFromToken(c) == constants.RoleStudent && studentID != self {
		return helper.JsonAppError(c, apperror.Forbidden("siswa hanya boleh melihat statistiknya sendiri"))
	}

	var classID *uuid.UUID
	if s := strings.TrimSpace(c.Query("classId", c.Query("class_id"))); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonAppError(c, apperror.Filter("classId", "harus UUID"))
		}
		classID = &id
	}

	days := 0
	if s := strings.TrimSpace(c.Query("days")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return helper.JsonAppError(c, apperror.Input("days", "harus angka"))
		}
		days = n
	}

	sum, err := ctl.Service.StudentSummary(c.UserContext(), studentID, classID, days)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Statistik siswa", sum)
}

// POST /api/attendance/mark
func (ctl *AttendanceController) Mark(c *fiber.Ctx) error {
	var req dto.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationErrorFrom(c, err)
	}

	status, err := model.ParseStatus(req.Status)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	day, err := dto.ParseDate(req.Date)
	if err != nil {
		return helper.JsonAppError(c, apperror.Input("date", "format tanggal harus YYYY-MM-DD"))
	}
	m, err := marker(c)
	if err != nil {
		return err
	}

	rec, err := ctl.Service.MarkAttendance(c.UserContext(), service.MarkInput{
		StudentID: uuid.MustParse(req.StudentID),
		ClassID:   uuid.MustParse(req.ClassID),
		SubjectID: uuid.MustParse(req.SubjectID),
		Date:      day,
		Status:    status,
		Notes:     req.Notes,
	}, m)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Absensi berhasil disimpan", dto.FromModel(rec))
}

// POST /api/attendance/mark/bulk
// Item yang gagal dilaporkan per index; item lain tetap tersimpan.
func (ctl *AttendanceController) MarkBulk(c *fiber.Ctx) error {
	var req dto.BulkMarkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationErrorFrom(c, err)
	}
	m, err := marker(c)
	if err != nil {
		return err
	}

	results, err := ctl.Service.MarkAttendanceBulk(c.UserContext(), req.AttendanceRecords, m)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	sum := dto.Summarize(results)
	msg := "Absensi massal berhasil disimpan"
	if sum.Failed > 0 {
		msg = "Sebagian absensi gagal disimpan"
	}
	return helper.JsonOK(c, msg, sum)
}
