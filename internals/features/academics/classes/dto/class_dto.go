package dto

import "strings"

// POST /api/classes
type CreateClassRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=120"`
	Code        string  `json:"code" validate:"omitempty,max=64"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

func (r *CreateClassRequest) Normalize() {
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

// PUT /api/classes/:id/representatives/:userId
type SetRepresentativeRequest struct {
	IsCR *bool `json:"is_cr"`
}

// POST /api/classes/:id/subjects
type AttachSubjectRequest struct {
	SubjectID string `json:"subject_id" validate:"required,uuid"`
}
