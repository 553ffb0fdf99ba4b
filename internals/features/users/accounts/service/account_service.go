// file: internals/features/users/accounts/service/account_service.go
package service

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kompetensi_backend/internals/features/users/accounts/dto"
	m "kompetensi_backend/internals/features/users/accounts/model"
	"kompetensi_backend/internals/helpers/apperr"
	helperAuth "kompetensi_backend/internals/helpers/auth"
	"kompetensi_backend/internals/helpers/logger"
)

// SubdirectoratDirectory: lookup nama subdirektorat untuk tampilan akun.
type SubdirectoratDirectory interface {
	NamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

type Options struct {
	PasswordMinLen int
	BcryptCost     int
}

type Service struct {
	db      *gorm.DB
	subdirs SubdirectoratDirectory
	opt     Options
	log     *logger.Logger
	now     func() time.Time
}

func New(db *gorm.DB, subdirs SubdirectoratDirectory, opt Options, log *logger.Logger) *Service {
	if opt.PasswordMinLen <= 0 {
		opt.PasswordMinLen = 6
	}
	if opt.BcryptCost == 0 {
		opt.BcryptCost = bcrypt.DefaultCost
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{db: db, subdirs: subdirs, opt: opt, log: log.With("service", "account"), now: time.Now}
}

// GetCurrentAccount memetakan session ke tepat satu akun.
func (s *Service) GetCurrentAccount(ctx context.Context, sess helperAuth.Session) (dto.AccountResponse, error) {
	acc, err := s.load(ctx, sess)
	if err != nil {
		return dto.AccountResponse{}, err
	}
	out := dto.FromAccountModel(acc)

	if acc.AccountSubdirectoratID != nil && s.subdirs != nil {
		names, err := s.subdirs.NamesByIDs(ctx, []uuid.UUID{*acc.AccountSubdirectoratID})
		if err != nil {
			return dto.AccountResponse{}, err
		}
		if n, ok := names[*acc.AccountSubdirectoratID]; ok {
			out.AccountSubdirectoratName = &n
		}
	}
	if acc.AccountSupervisorID != nil {
		var sup m.AccountModel
		err := s.db.WithContext(ctx).
			Select("account_id", "account_name").
			Where("account_id = ?", *acc.AccountSupervisorID).
			Limit(1).Find(&sup).Error
		if err != nil {
			return dto.AccountResponse{}, errors.Annotate(err, "resolve supervisor")
		}
		if sup.AccountID != uuid.Nil {
			out.AccountSupervisorName = &sup.AccountName
		}
	}
	return out, nil
}

// UpdatePassword hanya mengganti kredensial; field profil tidak disentuh.
func (s *Service) UpdatePassword(ctx context.Context, sess helperAuth.Session, newPassword string) error {
	pw := strings.TrimSpace(newPassword)
	if pw == "" {
		return apperr.Validation("Password baru wajib diisi")
	}
	if utf8.RuneCountInString(pw) < s.opt.PasswordMinLen {
		return apperr.FieldErrors{}.Add("new_password", "minimal "+strconv.Itoa(s.opt.PasswordMinLen)+" karakter")
	}
	acc, err := s.load(ctx, sess)
	if err != nil {
		return err
	}
	hash, err := s.HashPassword(pw)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(&m.AccountModel{}).
		Where("account_id = ?", acc.AccountID).
		Updates(map[string]any{
			"account_password":   hash,
			"account_updated_at": s.now(),
		})
	if res.Error != nil {
		return errors.Annotate(res.Error, "update password")
	}
	s.log.Infof("password updated account=%s", acc.AccountID)
	return nil
}

func (s *Service) HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), s.opt.BcryptCost)
	if err != nil {
		return "", errors.Annotate(err, "hash password")
	}
	return string(b), nil
}

func (s *Service) load(ctx context.Context, sess helperAuth.Session) (m.AccountModel, error) {
	var acc m.AccountModel
	if !sess.Valid() {
		return acc, apperr.Unauthorizedf("Sesi tidak ditemukan, silakan login")
	}
	err := s.db.WithContext(ctx).Where("account_id = ?", sess.AccountID).First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return acc, apperr.Unauthorizedf("Akun tidak ditemukan")
	}
	if err != nil {
		return acc, errors.Annotate(err, "load account")
	}
	return acc, nil
}
