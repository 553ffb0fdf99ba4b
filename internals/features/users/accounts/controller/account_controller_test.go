package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kompetensi_backend/internals/constants"
	"kompetensi_backend/internals/databases"
	m "kompetensi_backend/internals/features/users/accounts/model"
	"kompetensi_backend/internals/features/users/accounts/service"
	helper "kompetensi_backend/internals/helpers"
	helperAuth "kompetensi_backend/internals/helpers/auth"
)

// newApp: header X-Test-Account menggantikan AuthMiddleware; tanpa header = tanpa sesi.
func newApp(t *testing.T) (*fiber.App, *gorm.DB, m.AccountModel) {
	t.Helper()
	db := database.NewTestDB(t, &m.AccountModel{})
	hash, err := bcrypt.GenerateFromPassword([]byte("lama123"), bcrypt.MinCost)
	require.NoError(t, err)
	acc := m.AccountModel{
		AccountName:         "Staf",
		AccountNRP:          "19900101",
		AccountPositionType: constants.PositionStaff,
		AccountPassword:     string(hash),
		AccountIsActive:     true,
	}
	require.NoError(t, db.Create(&acc).Error)

	svc := service.New(db, nil, service.Options{PasswordMinLen: 6, BcryptCost: bcrypt.MinCost}, nil)
	ctl := NewAccountController(svc)

	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		if c.Get("X-Test-Account") == acc.AccountID.String() {
			helperAuth.StoreSession(c, helperAuth.Session{AccountID: acc.AccountID, NRP: acc.AccountNRP})
		}
		return c.Next()
	})
	app.Put("/api/accounts/me/password", ctl.UpdatePassword)
	return app, db, acc
}

func putPassword(t *testing.T, app *fiber.App, account, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/api/accounts/me/password", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if account != "" {
		req.Header.Set("X-Test-Account", account)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestUpdatePasswordHTTP(t *testing.T) {
	app, db, acc := newApp(t)
	id := acc.AccountID.String()

	code, body := putPassword(t, app, id, `{"new_password":"baru12345"}`)
	require.Equal(t, fiber.StatusOK, code, body)
	assert.Equal(t, true, body["success"])

	var got m.AccountModel
	require.NoError(t, db.First(&got, "account_id = ?", acc.AccountID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.AccountPassword), []byte("baru12345")))

	code, body = putPassword(t, app, id, `{"new_password":"   "}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Equal(t, "VALIDATION_ERROR", body["error_code"])

	code, body = putPassword(t, app, "", `{"new_password":"baru12345"}`)
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.Equal(t, "UNAUTHORIZED", body["error_code"])
}
