package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	subjectDTO "attendance_backend/internals/features/academics/subjects/dto"
	subjectService "attendance_backend/internals/features/academics/subjects/service"
	helper "attendance_backend/internals/helpers"
)

type SubjectController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewSubjectController(db *gorm.DB) *SubjectController {
	return &SubjectController{DB: db, Validator: validator.New()}
}

// GET /api/subjects
func (ctl *SubjectController) List(c *fiber.Ctx) error {
	rows, err := subjectService.ListSubjects(c.UserContext(), ctl.DB)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "Daftar mapel", rows, nil)
}

// POST /api/subjects
func (ctl *SubjectController) Create(c *fiber.Ctx) error {
	var req subjectDTO.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationErrorFrom(c, err)
	}

	m, err := subjectService.CreateSubject(c.UserContext(), ctl.DB, req.Name, req.Code, req.Description)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Mapel berhasil dibuat", m)
}
