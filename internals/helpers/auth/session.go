// internals/helpers/auth/session.go
package helper

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kompetensi_backend/internals/helpers/apperr"
)

const (
	LocSession = "session"
	LocUserID  = "user_id"
)

// Session adalah akun terautentikasi untuk satu request.
type Session struct {
	AccountID    uuid.UUID
	NRP          string
	PositionType string
	ExpiresAt    time.Time
}

func (s Session) Valid() bool { return s.AccountID != uuid.Nil }

// StoreSession dipanggil middleware setelah token terverifikasi.
func StoreSession(c *fiber.Ctx, s Session) {
	c.Locals(LocSession, s)
	c.Locals(LocUserID, s.AccountID.String())
	if s.PositionType != "" {
		c.Locals("position_type", s.PositionType)
	}
}

// SessionFromCtx: AuthError kalau middleware belum menyimpan session.
func SessionFromCtx(c *fiber.Ctx) (Session, error) {
	s, ok := c.Locals(LocSession).(Session)
	if !ok || !s.Valid() {
		return Session{}, apperr.Unauthorizedf("Sesi tidak ditemukan, silakan login")
	}
	return s, nil
}
