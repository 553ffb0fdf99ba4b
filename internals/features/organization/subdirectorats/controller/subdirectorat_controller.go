// file: internals/features/organization/subdirectorats/controller/subdirectorat_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"kompetensi_backend/internals/features/organization/subdirectorats/dto"
	"kompetensi_backend/internals/features/organization/subdirectorats/service"
	helper "kompetensi_backend/internals/helpers"
)

type SubdirectoratController struct {
	Svc *service.Service
}

func NewSubdirectoratController(svc *service.Service) *SubdirectoratController {
	return &SubdirectoratController{Svc: svc}
}

// GET /api/subdirectorats?q=
func (ctl *SubdirectoratController) List(c *fiber.Ctx) error {
	rows, err := ctl.Svc.ListAll(c.UserContext(), service.ListQuery{Search: c.Query("q")})
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "Daftar subdirektorat", dto.FromSubdirectoratModels(rows))
}

// GET /api/subdirectorats/active (dropdown akun)
func (ctl *SubdirectoratController) ListActive(c *fiber.Ctx) error {
	rows, err := ctl.Svc.ListActive(c.UserContext())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	if c.QueryBool("options") {
		return helper.JsonList(c, "Pilihan subdirektorat", dto.ToSubdirectoratOptions(rows))
	}
	return helper.JsonList(c, "Daftar subdirektorat aktif", dto.FromSubdirectoratModels(rows))
}

// GET /api/subdirectorats/:id
func (ctl *SubdirectoratController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	row, err := ctl.Svc.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Detail subdirektorat", dto.FromSubdirectoratModel(row))
}

// POST /api/subdirectorats
func (ctl *SubdirectoratController) Create(c *fiber.Ctx) error {
	var req dto.CreateSubdirectoratRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	row, err := ctl.Svc.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Subdirektorat berhasil dibuat", dto.FromSubdirectoratModel(row))
}

// PATCH /api/subdirectorats/:id
func (ctl *SubdirectoratController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.UpdateSubdirectoratRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	row, err := ctl.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Subdirektorat berhasil diperbarui", dto.FromSubdirectoratModel(row))
}

// DELETE /api/subdirectorats/:id (soft delete, hanya yang non-aktif)
func (ctl *SubdirectoratController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	row, err := ctl.Svc.SoftDelete(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Subdirektorat berhasil dihapus", dto.FromSubdirectoratModel(row))
}
