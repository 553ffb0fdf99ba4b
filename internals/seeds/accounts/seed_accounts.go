package accounts

import (
	"context"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/juju/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kompetensi_backend/internals/constants"
	subdirModel "kompetensi_backend/internals/features/organization/subdirectorats/model"
	accountModel "kompetensi_backend/internals/features/users/accounts/model"
	"kompetensi_backend/internals/helpers/logger"
)

type AccountSeed struct {
	Name          string `json:"name"`
	NRP           string `json:"nrp"`
	Password      string `json:"password"`
	Rank          string `json:"rank"`
	Position      string `json:"position"`
	PositionType  string `json:"position_type"`
	Subdirectorat string `json:"subdirectorat"` // nama, opsional
	SupervisorNRP string `json:"supervisor_nrp"`
}

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

// SeedAccountsFromJSON: skip kalau NRP sudah terdaftar. Password di-hash bcrypt.
func SeedAccountsFromJSON(ctx context.Context, db *gorm.DB, filePath string, log *logger.Logger) (int, error) {
	log.Infof("📥 Membaca file akun: %s", filePath)
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return 0, errors.Annotatef(err, "read %s", filePath)
	}
	var inputs []AccountSeed
	if err := sonic.Unmarshal(raw, &inputs); err != nil {
		return 0, errors.Annotatef(err, "decode %s", filePath)
	}

	inserted := 0
	for _, in := range inputs {
		var n int64
		if err := db.WithContext(ctx).Unscoped().Model(&accountModel.AccountModel{}).
			Where("account_nrp = ?", in.NRP).Count(&n).Error; err != nil {
			return inserted, errors.Annotate(err, "check account")
		}
		if n > 0 {
			log.Debugf("ℹ️ Akun NRP '%s' sudah ada, dilewati.", in.NRP)
			continue
		}

		pt, ok := constants.NormalizePositionType(in.PositionType)
		if !ok {
			return inserted, errors.NotValidf("position_type %q untuk NRP %s", in.PositionType, in.NRP)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return inserted, errors.Annotatef(err, "hash password %s", in.NRP)
		}

		row := accountModel.AccountModel{
			AccountName:         in.Name,
			AccountNRP:          in.NRP,
			AccountRank:         optional(in.Rank),
			AccountPosition:     optional(in.Position),
			AccountPositionType: pt,
			AccountPassword:     string(hash),
			AccountIsActive:     true,
		}
		if in.Subdirectorat != "" {
			var sd subdirModel.SubdirectoratModel
			if err := db.WithContext(ctx).Where("subdirectorat_name = ?", in.Subdirectorat).First(&sd).Error; err == nil {
				id := sd.SubdirectoratID
				row.AccountSubdirectoratID = &id
			} else {
				log.Warnf("⚠️ Subdirektorat '%s' untuk NRP %s tidak ditemukan", in.Subdirectorat, in.NRP)
			}
		}
		if in.SupervisorNRP != "" {
			var sup accountModel.AccountModel
			if err := db.WithContext(ctx).Where("account_nrp = ?", in.SupervisorNRP).First(&sup).Error; err == nil {
				id := sup.AccountID
				row.AccountSupervisorID = &id
			}
		}
		if err := db.WithContext(ctx).Create(&row).Error; err != nil {
			return inserted, errors.Annotatef(err, "insert account %s", in.NRP)
		}
		inserted++
	}
	log.Infof("✅ Akun: %d baru dari %d data", inserted, len(inputs))
	return inserted, nil
}
