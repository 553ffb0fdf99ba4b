// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	helper "kompetensi_backend/internals/helpers"
	"kompetensi_backend/internals/helpers/apperr"
	helperAuth "kompetensi_backend/internals/helpers/auth"
	"kompetensi_backend/internals/helpers/logger"
)

// Authenticator: blacklist + verifikasi token + akun aktif (lihat auth service).
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (helperAuth.Session, error)
}

// Public path yang di-skip auth (mis. login di bawah group yang sama)
var skipPaths = map[string]struct{}{
	"/api/auth/login": {},
}

func AuthMiddleware(a Authenticator, log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		if _, ok := skipPaths[c.Path()]; ok {
			return c.Next()
		}

		// 1) Authorization: Bearer (atau cookie access_token)
		raw := helper.GetRawAccessToken(c)
		if raw == "" {
			return helper.FromServiceError(c, apperr.Unauthorizedf("Unauthorized - No token provided"))
		}

		// 2) blacklist → signature/exp → akun aktif
		sess, err := a.Authenticate(c.UserContext(), raw)
		if err != nil {
			if !apperr.IsUnauthorized(err) {
				log.Errorf(err, "auth check failed %s %s", c.Method(), c.Path())
			} else {
				log.Debugf("auth rejected %s %s: %v", c.Method(), c.Path(), err)
			}
			return helper.FromServiceError(c, err)
		}

		// 3) simpan ke Locals
		helper.SetRawAccessToken(c, raw)
		helperAuth.StoreSession(c, sess)
		return c.Next()
	}
}
