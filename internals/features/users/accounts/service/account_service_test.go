package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kompetensi_backend/internals/constants"
	"kompetensi_backend/internals/databases"
	m "kompetensi_backend/internals/features/users/accounts/model"
	"kompetensi_backend/internals/helpers/apperr"
	helperAuth "kompetensi_backend/internals/helpers/auth"
)

type fakeSubdirs map[uuid.UUID]string

func (f fakeSubdirs) NamesByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := map[uuid.UUID]string{}
	for _, id := range ids {
		if n, ok := f[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

func setup(t *testing.T, subdirs fakeSubdirs) (*Service, *gorm.DB) {
	t.Helper()
	db := database.NewTestDB(t, &m.AccountModel{})
	return New(db, subdirs, Options{PasswordMinLen: 6, BcryptCost: bcrypt.MinCost}, nil), db
}

func seedAccount(t *testing.T, db *gorm.DB, acc m.AccountModel) m.AccountModel {
	t.Helper()
	if acc.AccountPassword == "" {
		acc.AccountPassword = "x"
	}
	if acc.AccountPositionType == "" {
		acc.AccountPositionType = constants.PositionStaff
	}
	acc.AccountIsActive = true
	require.NoError(t, db.Create(&acc).Error)
	return acc
}

func TestGetCurrentAccountRequiresSession(t *testing.T) {
	s, _ := setup(t, nil)
	_, err := s.GetCurrentAccount(context.Background(), helperAuth.Session{})
	assert.True(t, apperr.IsUnauthorized(err))
}

func TestGetCurrentAccountMissingAccountIsAuthError(t *testing.T) {
	s, _ := setup(t, nil)
	_, err := s.GetCurrentAccount(context.Background(), helperAuth.Session{AccountID: uuid.New()})
	assert.True(t, apperr.IsUnauthorized(err))
}

func TestGetCurrentAccountResolvesNames(t *testing.T) {
	subID := uuid.New()
	s, db := setup(t, fakeSubdirs{subID: "Subdit Perencanaan"})
	boss := seedAccount(t, db, m.AccountModel{AccountName: "Pak Kepala", AccountNRP: "1001", AccountPositionType: constants.PositionAtasan})
	dangling := uuid.New()
	me := seedAccount(t, db, m.AccountModel{
		AccountName:            "Staf",
		AccountNRP:             "2002",
		AccountSubdirectoratID: &subID,
		AccountSupervisorID:    &boss.AccountID,
	})
	other := seedAccount(t, db, m.AccountModel{
		AccountName:            "Staf Lain",
		AccountNRP:             "3003",
		AccountSubdirectoratID: &dangling,
	})

	got, err := s.GetCurrentAccount(context.Background(), helperAuth.Session{AccountID: me.AccountID})
	require.NoError(t, err)
	assert.Equal(t, "2002", got.AccountNRP)
	require.NotNil(t, got.AccountSubdirectoratName)
	assert.Equal(t, "Subdit Perencanaan", *got.AccountSubdirectoratName)
	require.NotNil(t, got.AccountSupervisorName)
	assert.Equal(t, "Pak Kepala", *got.AccountSupervisorName)

	got, err = s.GetCurrentAccount(context.Background(), helperAuth.Session{AccountID: other.AccountID})
	require.NoError(t, err)
	assert.Nil(t, got.AccountSubdirectoratName)
	assert.Nil(t, got.AccountSupervisorName)

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
}

func TestUpdatePasswordValidation(t *testing.T) {
	s, db := setup(t, nil)
	acc := seedAccount(t, db, m.AccountModel{AccountName: "A", AccountNRP: "1"})
	sess := helperAuth.Session{AccountID: acc.AccountID}

	err := s.UpdatePassword(context.Background(), sess, "   ")
	assert.True(t, apperr.IsValidation(err))

	err = s.UpdatePassword(context.Background(), sess, "abc")
	assert.True(t, apperr.IsValidation(err))

	err = s.UpdatePassword(context.Background(), helperAuth.Session{}, "rahasia123")
	assert.True(t, apperr.IsUnauthorized(err))
}

func TestUpdatePasswordOnlyTouchesCredential(t *testing.T) {
	s, db := setup(t, nil)
	rank := "Penata"
	acc := seedAccount(t, db, m.AccountModel{AccountName: "A", AccountNRP: "1", AccountRank: &rank})

	require.NoError(t, s.UpdatePassword(context.Background(), helperAuth.Session{AccountID: acc.AccountID}, " rahasia123 "))

	var after m.AccountModel
	require.NoError(t, db.First(&after, "account_id = ?", acc.AccountID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(after.AccountPassword), []byte("rahasia123")))
	assert.Equal(t, acc.AccountName, after.AccountName)
	assert.Equal(t, acc.AccountNRP, after.AccountNRP)
	require.NotNil(t, after.AccountRank)
	assert.Equal(t, rank, *after.AccountRank)
}
