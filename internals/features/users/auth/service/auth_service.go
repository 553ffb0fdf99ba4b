// internals/features/users/auth/service/auth_service.go
package service

import (
	"context"
	"strings"
	"time"

	"github.com/juju/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	authRepo "kompetensi_backend/internals/features/users/auth/repository"
	"kompetensi_backend/internals/helpers/apperr"
	helperAuth "kompetensi_backend/internals/helpers/auth"
	"kompetensi_backend/internals/helpers/logger"
)

const msgBadCredential = "NRP atau password salah"

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	Session     helperAuth.Session
}

type Service struct {
	db  *gorm.DB
	cfg helperAuth.TokenConfig
	log *logger.Logger
	now func() time.Time
}

func New(db *gorm.DB, cfg helperAuth.TokenConfig, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{db: db, cfg: cfg, log: log.With("service", "auth"), now: time.Now}
}

// Login: nrp + password → access token HS256.
func (s *Service) Login(ctx context.Context, nrp, password string) (LoginResult, error) {
	nrp = strings.TrimSpace(nrp)
	fe := apperr.FieldErrors{}
	if nrp == "" {
		fe.Add("nrp", "wajib diisi")
	}
	if password == "" {
		fe.Add("password", "wajib diisi")
	}
	if err := fe.Err(); err != nil {
		return LoginResult{}, err
	}

	acc, err := authRepo.FindAccountByNRPLight(ctx, s.db, nrp)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResult{}, apperr.Unauthorizedf(msgBadCredential)
		}
		return LoginResult{}, errors.Annotate(err, "find account")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.AccountPassword), []byte(password)); err != nil {
		return LoginResult{}, apperr.Unauthorizedf(msgBadCredential)
	}
	if !acc.AccountIsActive {
		return LoginResult{}, apperr.Unauthorizedf("Akun Anda telah dinonaktifkan. Hubungi admin.")
	}

	sess := helperAuth.Session{
		AccountID:    acc.AccountID,
		NRP:          acc.AccountNRP,
		PositionType: acc.AccountPositionType,
	}
	token, exp, err := helperAuth.IssueToken(s.cfg, sess, s.now())
	if err != nil {
		return LoginResult{}, errors.Annotate(err, "issue token")
	}
	sess.ExpiresAt = exp
	s.log.Infof("login nrp=%s", acc.AccountNRP)
	return LoginResult{AccessToken: token, ExpiresAt: exp, Session: sess}, nil
}

// Authenticate dipakai AuthMiddleware: blacklist → signature/exp → akun aktif.
func (s *Service) Authenticate(ctx context.Context, raw string) (helperAuth.Session, error) {
	if strings.TrimSpace(raw) == "" {
		return helperAuth.Session{}, apperr.Unauthorizedf("Token tidak ditemukan")
	}
	now := s.now()

	bl, err := authRepo.IsBlacklisted(ctx, s.db, helperAuth.TokenDigest(raw, s.cfg.Secret), now)
	if err != nil {
		return helperAuth.Session{}, errors.Annotate(err, "check blacklist")
	}
	if bl {
		return helperAuth.Session{}, apperr.Unauthorizedf("Sesi sudah keluar. Silakan login lagi.")
	}

	sess, err := helperAuth.ParseToken(s.cfg, raw, now)
	if err != nil {
		return helperAuth.Session{}, err
	}

	ok, err := authRepo.AccountActive(ctx, s.db, sess.AccountID)
	if err != nil {
		return helperAuth.Session{}, errors.Annotate(err, "check account")
	}
	if !ok {
		return helperAuth.Session{}, apperr.Unauthorizedf("Akun tidak ditemukan atau nonaktif")
	}
	return sess, nil
}

// Logout mem-blacklist token sesi yang sudah diverifikasi AuthMiddleware sampai exp (+skew).
// Idempotent.
func (s *Service) Logout(ctx context.Context, sess helperAuth.Session, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" || !sess.Valid() {
		return apperr.Unauthorizedf("Sesi tidak ditemukan, silakan login")
	}
	until := sess.ExpiresAt.Add(helperAuth.ClockSkew)
	if err := authRepo.BlacklistToken(ctx, s.db, helperAuth.TokenDigest(raw, s.cfg.Secret), until); err != nil {
		return errors.Annotate(err, "blacklist token")
	}
	return nil
}
