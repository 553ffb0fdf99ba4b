// internals/helpers/auth/jwt.go
package helper

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"kompetensi_backend/internals/helpers/apperr"
)

// Toleransi jam antar server (exp/nbf).
const ClockSkew = 30 * time.Second

type Claims struct {
	NRP          string `json:"nrp,omitempty"`
	PositionType string `json:"position_type,omitempty"`
	jwt.RegisteredClaims
}

type TokenConfig struct {
	Secret   string
	TTL      time.Duration
	Issuer   string
	Audience string
}

// IssueToken menandatangani access token HS256 (sub = account id).
func IssueToken(cfg TokenConfig, s Session, now time.Time) (string, time.Time, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return "", time.Time{}, apperr.Validation("JWT secret kosong")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	exp := now.Add(ttl).UTC().Truncate(time.Second)
	claims := Claims{
		NRP:          s.NRP,
		PositionType: s.PositionType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.AccountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	if cfg.Issuer != "" {
		claims.Issuer = cfg.Issuer
	}
	if cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{cfg.Audience}
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseToken memverifikasi signature + exp dan mengembalikan Session.
// Token dari hosted backend (HS256, claim sub) diterima dengan cara yang sama.
func ParseToken(cfg TokenConfig, raw string, now time.Time) (Session, error) {
	claims := &Claims{}
	parser := jwt.Parser{
		ValidMethods:         []string{jwt.SigningMethodHS256.Alg()},
		SkipClaimsValidation: true,
	}
	if _, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	}); err != nil {
		return Session{}, apperr.Unauthorizedf("Token tidak valid")
	}

	if claims.ExpiresAt == nil {
		return Session{}, apperr.Unauthorizedf("Token tidak memiliki exp")
	}
	if now.After(claims.ExpiresAt.Time.Add(ClockSkew)) {
		return Session{}, apperr.Unauthorizedf("Token kedaluwarsa")
	}
	if cfg.Issuer != "" && claims.Issuer != "" && claims.Issuer != cfg.Issuer {
		return Session{}, apperr.Unauthorizedf("Issuer token tidak dikenal")
	}

	id, err := uuid.Parse(strings.TrimSpace(claims.Subject))
	if err != nil {
		return Session{}, apperr.Unauthorizedf("Token tanpa account id")
	}
	return Session{
		AccountID:    id,
		NRP:          claims.NRP,
		PositionType: claims.PositionType,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}

// TokenDigest: HMAC-SHA256(raw token) hex; yang disimpan di blacklist, bukan token mentah.
func TokenDigest(raw, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(raw))
	return hex.EncodeToString(m.Sum(nil))
}
