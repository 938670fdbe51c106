package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"attendance_backend/internals/constants"
	authService "attendance_backend/internals/features/users/auth/service"
	"attendance_backend/internals/features/users/users/model"
)

type UserSeed struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Role      string  `json:"role"`
	StudentID *string `json:"student_id"`
}

// seedUser: insert kalau email belum ada. created=false kalau dilewati.
func seedUser(ctx context.Context, db *gorm.DB, data UserSeed) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(data.Email))
	if email == "" || data.Password == "" {
		return false, fmt.Errorf("email dan password wajib diisi")
	}
	role := strings.ToLower(strings.TrimSpace(data.Role))
	if !constants.IsValidRole(role) {
		return false, fmt.Errorf("role %q tidak dikenal", data.Role)
	}

	var existing model.UserModel
	err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hashed, err := authService.HashPassword(data.Password)
	if err != nil {
		return false, err
	}
	u := model.UserModel{
		Email:     email,
		Name:      strings.TrimSpace(data.Name),
		Password:  hashed,
		Role:      role,
		StudentID: data.StudentID,
	}
	if err := db.WithContext(ctx).Create(&u).Error; err != nil {
		return false, err
	}
	return true, nil
}

// SeedAdmin memastikan akun admin dari ENV ada. Tidak menimpa password yang sudah ada.
func SeedAdmin(ctx context.Context, db *gorm.DB, email, password, name string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		log.Println("[WARN] ADMIN_EMAIL / ADMIN_PASSWORD kosong, seed admin dilewati")
		return nil
	}
	created, err := seedUser(ctx, db, UserSeed{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     constants.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if created {
		log.Printf("[INFO] Admin '%s' dibuat", email)
	} else {
		log.Printf("[INFO] Admin '%s' sudah ada, dilewati", email)
	}
	return nil
}

// SeedUsersFromJSON membaca array UserSeed. Baris gagal di-log lalu dilewati.
func SeedUsersFromJSON(ctx context.Context, db *gorm.DB, filePath string) error {
	log.Println("[INFO] Membaca file user:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("baca file seed: %w", err)
	}
	var inputs []UserSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		return fmt.Errorf("decode file seed: %w", err)
	}

	for _, data := range inputs {
		created, err := seedUser(ctx, db, data)
		switch {
		case err != nil:
			log.Printf("[ERROR] Gagal insert user '%s': %v", data.Email, err)
		case created:
			log.Printf("[INFO] Berhasil insert user '%s'", data.Email)
		default:
			log.Printf("[INFO] User dengan email '%s' sudah ada, dilewati.", data.Email)
		}
	}
	return nil
}
