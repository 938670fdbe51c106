package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	userDTO "attendance_backend/internals/features/users/users/dto"
	userService "attendance_backend/internals/features/users/users/service"
	helper "attendance_backend/internals/helpers"
	"attendance_backend/internals/helpers/apperror"
	helperAuth "attendance_backend/internals/helpers/auth"
)

type UserController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, Validator: validator.New()}
}

// GET /api/users/me
func (uc *UserController) GetMe(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	u, err := userService.FindUserByID(c.UserContext(), uc.DB, userID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "User profile retrieved", userDTO.FromModel(u))
}

// PATCH /api/users/me
func (uc *UserController) UpdateMe(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req userDTO.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := uc.Validator.Struct(&req); err != nil {
		return helper.ValidationErrorFrom(c, err)
	}

	u, err := userService.UpdateProfile(c.UserContext(), uc.DB, userID, req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Profil berhasil diperbarui", userDTO.FromModel(u))
}

// DELETE /api/users/:id (admin)
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonAppError(c, apperror.Input("id", "harus UUID"))
	}
	if self, _ := helperAuth.GetUserIDFromToken(c); self == id {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak bisa menghapus akun sendiri")
	}

	if err := userService.SoftDelete(c.UserContext(), uc.DB, id); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "User berhasil dihapus", fiber.Map{"id": id})
}

// POST /api/students/resolve  body {"rollNumber": "042"}
func (uc *UserController) ResolveStudent(c *fiber.Ctx) error {
	var req userDTO.ResolveStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := uc.Validator.Struct(&req); err != nil {
		return helper.ValidationErrorFrom(c, err)
	}

	u, err := userService.GetOrCreateStudentByRollNumber(c.UserContext(), uc.DB, req.RollNumber)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Siswa ditemukan", userDTO.FromModel(u))
}

// POST /api/students/save
// Berhenti di entry gagal pertama; entry sebelumnya tetap tersimpan dan ikut dikembalikan.
func (uc *UserController) SaveStudents(c *fiber.Ctx) error {
	var req userDTO.SaveStudentsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := uc.Validator.Struct(&req); err != nil {
		return helper.ValidationErrorFrom(c, err)
	}

	saved, err := userService.SaveStudents(c.UserContext(), uc.DB, req.Students)
	if err != nil {
		status := apperror.HTTPStatus(err)
		msg := err.Error()
		if status >= fiber.StatusInternalServerError {
			msg = "Terjadi kesalahan pada database"
		}
		return c.Status(status).JSON(fiber.Map{
			"success":    false,
			"message":    msg,
			"error_code": apperror.Code(err),
			"saved":      saved,
			"failed_at":  len(saved),
		})
	}
	return helper.JsonCreated(c, "Data siswa berhasil disimpan", saved)
}
