package helper

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"kompetensi_backend/internals/helpers/apperr"
)

var testCfg = TokenConfig{Secret: "rahasia", TTL: time.Hour, Issuer: "kompetensi"}

func TestIssueAndParseRoundTrip(t *testing.T) {
	now := time.Now()
	sess := Session{AccountID: uuid.New(), NRP: "198001", PositionType: "ADMIN"}

	raw, exp, err := IssueToken(testCfg, sess, now)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(time.Hour), exp, 2*time.Second)

	got, err := ParseToken(testCfg, raw, now)
	require.NoError(t, err)
	assert.Equal(t, sess.AccountID, got.AccountID)
	assert.Equal(t, "198001", got.NRP)
	assert.Equal(t, "ADMIN", got.PositionType)
}

func TestParseTokenRejects(t *testing.T) {
	now := time.Now()
	sess := Session{AccountID: uuid.New()}
	raw, _, err := IssueToken(testCfg, sess, now)
	require.NoError(t, err)

	t.Run("secret salah", func(t *testing.T) {
		_, err := ParseToken(TokenConfig{Secret: "lain"}, raw, now)
		assert.True(t, apperr.IsUnauthorized(err))
	})
	t.Run("kedaluwarsa", func(t *testing.T) {
		_, err := ParseToken(testCfg, raw, now.Add(2*time.Hour))
		assert.True(t, apperr.IsUnauthorized(err))
	})
	t.Run("masih dalam skew", func(t *testing.T) {
		_, err := ParseToken(testCfg, raw, now.Add(time.Hour+10*time.Second))
		assert.NoError(t, err)
	})
	t.Run("sampah", func(t *testing.T) {
		_, err := ParseToken(testCfg, "bukan.jwt.valid", now)
		assert.True(t, apperr.IsUnauthorized(err))
	})
	t.Run("tanpa sub", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		})
		signed, err := tok.SignedString([]byte(testCfg.Secret))
		require.NoError(t, err)
		_, err = ParseToken(testCfg, signed, now)
		assert.True(t, apperr.IsUnauthorized(err))
	})
}

func TestTokenDigestIsStable(t *testing.T) {
	a := TokenDigest("tok", "s")
	assert.Equal(t, a, TokenDigest("tok", "s"))
	assert.NotEqual(t, a, TokenDigest("tok", "s2"))
	assert.Len(t, a, 64)
}

func TestSessionFromCtx(t *testing.T) {
	app := fiber.New()
	c := app.AcquireCtx(&fasthttp.RequestCtx{})
	defer app.ReleaseCtx(c)

	_, err := SessionFromCtx(c)
	assert.True(t, apperr.IsUnauthorized(err))

	sess := Session{AccountID: uuid.New(), PositionType: "STAFF"}
	StoreSession(c, sess)
	got, err := SessionFromCtx(c)
	require.NoError(t, err)
	assert.Equal(t, sess, got)
	assert.Equal(t, sess.AccountID.String(), c.Locals(LocUserID))
}
