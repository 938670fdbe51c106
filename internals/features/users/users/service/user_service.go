package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userDTO "attendance_backend/internals/features/users/users/dto"
	userModel "attendance_backend/internals/features/users/users/model"
	"attendance_backend/internals/helpers/apperror"
)

// FindUserByID hanya mengembalikan user yang belum di-soft-delete.
func FindUserByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*userModel.UserModel, error) {
	var u userModel.UserModel
	err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("user", id.String())
	}
	if err != nil {
		return nil, apperror.Query("find user", err)
	}
	return &u, nil
}

func UpdateProfile(ctx context.Context, db *gorm.DB, id uuid.UUID, req userDTO.UpdateProfileRequest) (*userModel.UserModel, error) {
	req.Normalize()

	u, err := FindUserByID(ctx, db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, apperror.Input("name", "tidak boleh kosong")
		}
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		if *req.Phone == "" {
			updates["phone"] = nil
		} else {
			updates["phone"] = *req.Phone
		}
	}
	if len(updates) == 0 {
		return u, nil
	}

	if err := db.WithContext(ctx).Model(u).Updates(updates).Error; err != nil {
		return nil, apperror.Query("update profile", err)
	}
	return FindUserByID(ctx, db, id)
}

// SoftDelete: set deleted_at. Email & roll bebas dipakai ulang (partial unique index).
func SoftDelete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	res := db.WithContext(ctx).Delete(&userModel.UserModel{}, "id = ?", id)
	if res.Error != nil {
		return apperror.Query("delete user", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("user", id.String())
	}
	return nil
}
