package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"kompetensi_backend/internals/features/users/auth/service"
	helper "kompetensi_backend/internals/helpers"
	helperAuth "kompetensi_backend/internals/helpers/auth"
)

type AuthController struct {
	Svc          *service.Service
	SecureCookie bool
}

func NewAuthController(svc *service.Service, secureCookie bool) *AuthController {
	return &AuthController{Svc: svc, SecureCookie: secureCookie}
}

type loginRequest struct {
	NRP      string `json:"nrp"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input loginRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	res, err := ac.Svc.Login(c.UserContext(), input.NRP, input.Password)
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	ac.setAccessCookie(c, res.AccessToken, res.ExpiresAt)
	return helper.JsonOK(c, "Login berhasil", fiber.Map{
		"access_token": res.AccessToken,
		"token_type":   "Bearer",
		"expires_at":   res.ExpiresAt,
		"account": fiber.Map{
			"account_id":            res.Session.AccountID,
			"account_nrp":           res.Session.NRP,
			"account_position_type": res.Session.PositionType,
		},
	})
}

// POST /api/auth/logout (di belakang AuthMiddleware)
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFromCtx(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	if err := ac.Svc.Logout(c.UserContext(), sess, helper.GetRawAccessToken(c)); err != nil {
		return helper.FromServiceError(c, err)
	}
	ac.setAccessCookie(c, "", time.Now().Add(-time.Hour))
	return helper.JsonOK(c, "Logout successful", nil)
}

func (ac *AuthController) setAccessCookie(c *fiber.Ctx, value string, expires time.Time) {
	sameSite := "Lax"
	if ac.SecureCookie {
		sameSite = "None"
	}
	ck := &fiber.Cookie{
		Name:     "access_token",
		Value:    value,
		HTTPOnly: true,
		Secure:   ac.SecureCookie,
		SameSite: sameSite,
		Path:     "/",
		Expires:  expires,
	}
	if value == "" {
		ck.MaxAge = -1
	}
	c.Cookie(ck)
}
