package dto

import "strings"

// POST /api/subjects
type CreateSubjectRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=120"`
	Code        string  `json:"code" validate:"required,max=64"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

func (r *CreateSubjectRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Code = strings.TrimSpace(r.Code)
	if r.Description != nil {
		s := strings.TrimSpace(*r.Description)
		if s == "" {
			r.Description = nil
		} else {
			r.Description = &s
		}
	}
}
