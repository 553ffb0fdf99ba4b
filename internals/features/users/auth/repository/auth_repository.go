// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	accountModel "kompetensi_backend/internals/features/users/accounts/model"
	authModel "kompetensi_backend/internals/features/users/auth/model"
)

/* ====================== ACCOUNT ====================== */

// FindAccountByNRPLight: kolom minimal untuk cek login.
func FindAccountByNRPLight(ctx context.Context, db *gorm.DB, nrp string) (*accountModel.AccountModel, error) {
	var acc accountModel.AccountModel
	if err := db.WithContext(ctx).
		Select("account_id", "account_nrp", "account_password", "account_position_type", "account_is_active").
		Where("account_nrp = ?", nrp).
		First(&acc).Error; err != nil {
		return nil, err
	}
	return &acc, nil
}

// AccountActive: akun masih ada, belum dihapus, dan aktif.
func AccountActive(ctx context.Context, db *gorm.DB, id uuid.UUID) (bool, error) {
	var exists bool
	err := db.WithContext(ctx).
		Raw(`SELECT EXISTS(SELECT 1 FROM accounts WHERE account_id = ? AND account_deleted_at IS NULL AND account_is_active = ?)`, id, true).
		Scan(&exists).Error
	return exists, err
}

/* ====================== BLACKLIST TOKEN ====================== */

// BlacklistToken idempotent: token yang sama hanya memperpanjang expired_at.
func BlacklistToken(ctx context.Context, db *gorm.DB, digest string, expiredAt time.Time) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"expired_at"}),
	}).Create(&authModel.TokenBlacklist{
		Token:     digest,
		ExpiredAt: expiredAt.UTC(),
	}).Error
}

func IsBlacklisted(ctx context.Context, db *gorm.DB, digest string, now time.Time) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&authModel.TokenBlacklist{}).
		Where("token = ? AND expired_at > ?", digest, now.UTC()).
		Count(&n).Error
	return n > 0, err
}

func CleanupExpiredBlacklist(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("expired_at <= ?", now.UTC()).
		Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
