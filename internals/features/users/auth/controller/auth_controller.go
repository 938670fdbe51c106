package controller

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authDTO "attendance_backend/internals/features/users/auth/dto"
	"attendance_backend/internals/features/users/auth/service"
	userDTO "attendance_backend/internals/features/users/users/dto"
	userService "attendance_backend/internals/features/users/users/service"
	helper "attendance_backend/internals/helpers"
	helperAuth "attendance_backend/internals/helpers/auth"
)

const accessCookieName = "access_token"

type AuthController struct {
	DB           *gorm.DB
	Validator    *validator.Validate
	Token        service.TokenConfig
	SecureCookie bool
}

func NewAuthController(db *gorm.DB, token service.TokenConfig, secureCookie bool) *AuthController {
	return &AuthController{
		DB:           db,
		Validator:    validator.New(),
		Token:        token,
		SecureCookie: secureCookie,
	}
}

// POST /api/auth/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ac.Validator.Struct(&req); err != nil {
		return helper.ValidationErrorFrom(c, err)
	}

	u, err := service.Register(c.UserContext(), ac.DB, req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	log.Printf("[INFO] user registered id=%s role=%s", u.ID, u.Role)
	return helper.JsonCreated(c, "Registrasi berhasil", userDTO.FromModel(u))
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ac.Validator.Struct(&req); err != nil {
		return helper.ValidationErrorFrom(c, err)
	}

	res, err := service.Login(c.UserContext(), ac.DB, ac.Token, req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     accessCookieName,
		Value:    res.AccessToken,
		Path:     "/",
		Expires:  res.ExpiresAt,
		HTTPOnly: true,
		Secure:   ac.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return helper.JsonOK(c, "Login berhasil", res)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	u, err := userService.FindUserByID(c.UserContext(), ac.DB, userID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "User aktif", userDTO.FromModel(u))
}

// POST /api/auth/logout
// Token yang sedang dipakai masuk blacklist sampai exp-nya lewat.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	raw := helperAuth.GetRawToken(c)
	if raw == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	exp := helperAuth.GetTokenExpiry(c)
	if exp.IsZero() {
		exp = time.Now().UTC().Add(ac.Token.TTL)
	}

	if err := service.BlacklistToken(c.UserContext(), ac.DB, raw, ac.Token.Secret, exp); err != nil {
		return helper.JsonAppError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     accessCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   ac.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return helper.JsonOK(c, "Logout berhasil", nil)
}
