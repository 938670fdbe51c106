package auth

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	helperAuth "attendance_backend/internals/helpers/auth"
)

type AuthJWTOpts struct {
	Secret              string
	BlacklistChecker    func(rawToken string) (bool, error) // return true if blacklisted
	ActiveUserChecker   func(userID uuid.UUID) (bool, error) // false → akun dihapus / tidak ada
	AllowCookieFallback bool                                // pakai cookie access_token jika tidak ada Bearer
}

// RawToken: Bearer dulu, lalu cookie access_token kalau diizinkan.
func RawToken(c *fiber.Ctx, allowCookie bool) string {
	if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	if allowCookie {
		return strings.TrimSpace(c.Cookies("access_token"))
	}
	return ""
}

// AuthJWT memverifikasi HS256 lalu mengisi Locals user_id, userRole, jwt_claims.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}

	return func(c *fiber.Ctx) error {
		raw := RawToken(c, o.AllowCookieFallback)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		// gagal cek blacklist → tolak, jangan loloskan token yang mungkin sudah di-revoke
		if o.BlacklistChecker != nil {
			black, err := o.BlacklistChecker(raw)
			if err != nil {
				log.Printf("[ERROR] AuthJWT blacklist check: %v", err)
				return fiber.NewError(fiber.StatusServiceUnavailable, "Gagal memverifikasi token")
			}
			if black {
				return fiber.NewError(fiber.StatusUnauthorized, "Token revoked")
			}
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}

		// user_id: id/sub dalam urutan preferensi
		uid := strClaim(claims, "id")
		if uid == "" {
			uid = strClaim(claims, "sub")
		}
		userID, err := uuid.Parse(uid)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "user_id pada token tidak valid")
		}
		role := strings.ToLower(strClaim(claims, "role"))
		if role == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}

		if o.ActiveUserChecker != nil {
			active, err := o.ActiveUserChecker(userID)
			if err != nil {
				log.Printf("[ERROR] AuthJWT user check: %v", err)
				return fiber.NewError(fiber.StatusServiceUnavailable, "Gagal memverifikasi token")
			}
			if !active {
				return fiber.NewError(fiber.StatusUnauthorized, "Akun tidak aktif")
			}
		}

		c.Locals(helperAuth.LocClaims, claims)
		c.Locals(helperAuth.LocUserID, uid)
		c.Locals(helperAuth.LocRole, role)
		c.Locals(helperAuth.LocRawToken, raw)

		return c.Next()
	}
}

// util kecil untuk ambil string claim
func strClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
