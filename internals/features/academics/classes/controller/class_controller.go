package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classDTO "attendance_backend/internals/features/academics/classes/dto"
	classService "attendance_backend/internals/features/academics/classes/service"
	subjectService "attendance_backend/internals/features/academics/subjects/service"
	helper "attendance_backend/internals/helpers"
	"attendance_backend/internals/helpers/apperror"
)

type ClassController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db, Validator: validator.New()}
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperror.Input(name, "harus UUID")
	}
	return id, nil
}

// GET /api/classes
func (ctl *ClassController) List(c *fiber.Ctx) error {
	rows, err := classService.ListClasses(c.UserContext(), ctl.DB)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "Daftar kelas", rows, nil)
}

// POST /api/classes
func (ctl *ClassController) Create(c *fiber.Ctx) error {
	var req classDTO.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationErrorFrom(c, err)
	}

	m, err := classService.CreateClass(c.UserContext(), ctl.DB, req.Name, req.Code, req.Description)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Kelas berhasil dibuat", m)
}

// GET /api/classes/:id/students
func (ctl *ClassController) Students(c *fiber.Ctx) error {
	classID, err := paramUUID(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	rows, err := classService.StudentsByClass(c.UserContext(), ctl.DB, classID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "Daftar siswa kelas", rows, nil)
}

// POST /api/classes/:id/subjects
func (ctl *ClassController) AttachSubject(c *fiber.Ctx) error {
	classID, err := paramUUID(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var req classDTO.AttachSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationErrorFrom(c, err)
	}

	cs, err := subjectService.AttachSubject(c.UserContext(), ctl.DB, classID, uuid.MustParse(req.SubjectID))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Mapel terhubung ke kelas", cs)
}

// PUT /api/classes/:id/representatives/:userId  body {"is_cr": true|false}, default true
func (ctl *ClassController) SetRepresentative(c *fiber.Ctx) error {
	classID, err := paramUUID(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	userID, err := paramUUID(c, "userId")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req classDTO.SetRepresentativeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}
	isCR := true
	if req.IsCR != nil {
		isCR = *req.IsCR
	}

	m, err := classService.SetClassRepresentative(c.UserContext(), ctl.DB, classID, userID, isCR)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Status CR diperbarui", m)
}

// POST /api/academics/defaults
func (ctl *ClassController) EnsureDefaults(c *fiber.Ctx) error {
	d, err := classService.EnsureDefaults(c.UserContext(), ctl.DB)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Kelas & mapel default siap", d)
}
