package dto

import (
	"strings"
	"time"

	userDTO "attendance_backend/internals/features/users/users/dto"
)

type RegisterRequest struct {
	Name      string  `json:"name" validate:"required,min=2,max=120"`
	Email     string  `json:"email" validate:"required,email,max=255"`
	Password  string  `json:"password" validate:"required,min=8,max=72"`
	Role      string  `json:"role" validate:"omitempty,oneof=cr teacher student"`
	StudentID *string `json:"student_id" validate:"omitempty,max=64"`
	Phone     *string `json:"phone" validate:"omitempty,max=32"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
	if r.Role == "" {
		r.Role = "student"
	}
	if r.StudentID != nil {
		s := strings.TrimSpace(*r.StudentID)
		if s == "" {
			r.StudentID = nil
		} else {
			r.StudentID = &s
		}
	}
	if r.Phone != nil {
		s := strings.TrimSpace(*r.Phone)
		if s == "" {
			r.Phone = nil
		} else {
			r.Phone = &s
		}
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string                `json:"access_token"`
	TokenType   string                `json:"token_type"`
	ExpiresAt   time.Time             `json:"expires_at"`
	User        *userDTO.UserResponse `json:"user"`
}
