package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"attendance_backend/internals/constants"
	authDTO "attendance_backend/internals/features/users/auth/dto"
	authRepo "attendance_backend/internals/features/users/auth/repository"
	userDTO "attendance_backend/internals/features/users/users/dto"
	userModel "attendance_backend/internals/features/users/users/model"
	"attendance_backend/internals/helpers/apperror"
)

/* ==========================
   Const & Types
========================== */

const accessTTLDefault = 7 * 24 * time.Hour

// TokenConfig diisi dari configs.Config saat wiring route.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

var ErrInvalidCredentials = fiber.NewError(fiber.StatusUnauthorized, "Email atau password salah")

func nowUTC() time.Time { return time.Now().UTC() }

/* ==========================
   Password
========================== */

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPasswordHash(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

/* ==========================
   REGISTER
========================== */

// Register membuat akun baru. Siswa yang roll number-nya sudah ada sebagai
// placeholder (hasil import / bulk mark) mengklaim akun placeholder itu.
func Register(ctx context.Context, db *gorm.DB, req authDTO.RegisterRequest) (*userModel.UserModel, error) {
	req.Normalize()
	if !constants.IsValidRole(req.Role) || req.Role == constants.RoleAdmin {
		return nil, apperror.Input("role", "harus cr, teacher, atau student")
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Password hashing failed")
	}

	var out *userModel.UserModel
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.Role == constants.RoleStudent && req.StudentID != nil {
			existing, err := authRepo.FindStudentByRoll(ctx, tx, *req.StudentID)
			switch {
			case err == nil && !existing.IsPlaceholder():
				return fiber.NewError(fiber.StatusConflict, "Roll number sudah terdaftar")
			case err == nil:
				if err := tx.Model(existing).Updates(map[string]interface{}{
					"email":    req.Email,
					"name":     req.Name,
					"password": hash,
					"phone":    req.Phone,
				}).Error; err != nil {
					return apperror.Query("claim placeholder", err)
				}
				out, err = authRepo.FindUserByID(ctx, tx, existing.ID)
				if err != nil {
					return apperror.Query("reselect user", err)
				}
				return nil
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return apperror.Query("find student by roll", err)
			}
		}

		u := &userModel.UserModel{
			Email:     req.Email,
			Name:      req.Name,
			Password:  hash,
			Role:      req.Role,
			StudentID: req.StudentID,
			Phone:     req.Phone,
		}
		if err := authRepo.CreateUser(ctx, tx, u); err != nil {
			return apperror.Query("register", err)
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

/* ==========================
   LOGIN (email + password)
========================== */

func Login(ctx context.Context, db *gorm.DB, cfg TokenConfig, req authDTO.LoginRequest) (*authDTO.LoginResponse, error) {
	u, err := authRepo.FindUserByEmail(ctx, db, req.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperror.Query("find user by email", err)
	}
	// akun placeholder tidak pernah bisa login
	if u.IsPlaceholder() {
		return nil, ErrInvalidCredentials
	}
	if err := CheckPasswordHash(u.Password, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := IssueAccessToken(cfg, u, nowUTC())
	if err != nil {
		return nil, err
	}
	return &authDTO.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   exp,
		User:        userDTO.FromModel(u),
	}, nil
}

// IssueAccessToken: HS256 dengan klaim id, role, iat, exp.
func IssueAccessToken(cfg TokenConfig, u *userModel.UserModel, now time.Time) (string, time.Time, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return "", time.Time{}, fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET belum diset")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = accessTTLDefault
	}
	exp := now.Add(ttl)

	claims := jwt.MapClaims{
		"id":   u.ID.String(),
		"role": u.Role,
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat token")
	}
	return signed, exp, nil
}
