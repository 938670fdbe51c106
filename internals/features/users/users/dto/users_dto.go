package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"attendance_backend/internals/features/users/users/model"
)

/* ===========================
   Response
   =========================== */

type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	StudentID     *string   `json:"student_id,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	IsPlaceholder bool      `json:"is_placeholder"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromModel(u *model.UserModel) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		StudentID:     u.StudentID,
		Phone:         u.Phone,
		IsPlaceholder: u.IsPlaceholder(),
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func FromModelList(list []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}

/* ===========================
   Requests
   =========================== */

// PATCH /api/users/me
type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=120"`
	Phone *string `json:"phone" validate:"omitempty,max=32"`
}

func (r *UpdateProfileRequest) Normalize() {
	if r.Name != nil {
		t := strings.TrimSpace(*r.Name)
		r.Name = &t
	}
	if r.Phone != nil {
		t := strings.TrimSpace(*r.Phone)
		r.Phone = &t
	}
}

// POST /api/students/resolve
type ResolveStudentRequest struct {
	RollNumber string `json:"rollNumber" validate:"required,max=64"`
}

// StudentEntry: satu baris import siswa.
type StudentEntry struct {
	Name       string `json:"name" validate:"required,max=120"`
	RollNumber string `json:"rollNumber" validate:"required,max=64"`
	Class      string `json:"class" validate:"required,max=120"`
}

// POST /api/students/save
type SaveStudentsRequest struct {
	Students []StudentEntry `json:"students" validate:"required,min=1,dive"`
}
