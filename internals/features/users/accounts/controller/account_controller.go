// file: internals/features/users/accounts/controller/account_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"kompetensi_backend/internals/features/users/accounts/dto"
	"kompetensi_backend/internals/features/users/accounts/service"
	helper "kompetensi_backend/internals/helpers"
	helperAuth "kompetensi_backend/internals/helpers/auth"
)

type AccountController struct {
	Svc *service.Service
}

func NewAccountController(svc *service.Service) *AccountController {
	return &AccountController{Svc: svc}
}

// GET /api/accounts/me
func (ctl *AccountController) Me(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFromCtx(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	acc, err := ctl.Svc.GetCurrentAccount(c.UserContext(), sess)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Profil akun", acc)
}

// PUT /api/accounts/me/password
func (ctl *AccountController) UpdatePassword(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFromCtx(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Svc.UpdatePassword(c.UserContext(), sess, req.NewPassword); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Password berhasil diperbarui", nil)
}
