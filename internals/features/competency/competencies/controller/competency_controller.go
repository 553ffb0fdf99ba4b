// file: internals/features/competency/competencies/controller/competency_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"kompetensi_backend/internals/features/competency/competencies/dto"
	"kompetensi_backend/internals/features/competency/competencies/service"
	helper "kompetensi_backend/internals/helpers"
)

type CompetencyController struct {
	Svc *service.Service
}

func NewCompetencyController(svc *service.Service) *CompetencyController {
	return &CompetencyController{Svc: svc}
}

// GET /api/competencies?q=
func (ctl *CompetencyController) List(c *fiber.Ctx) error {
	rows, err := ctl.Svc.ListAll(c.UserContext(), service.ListQuery{Search: c.Query("q")})
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "Daftar kompetensi", dto.FromCompetencyModels(rows))
}

// GET /api/competencies/active (dropdown indikator)
func (ctl *CompetencyController) ListActive(c *fiber.Ctx) error {
	rows, err := ctl.Svc.ListActive(c.UserContext())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	if c.QueryBool("options") {
		return helper.JsonList(c, "Pilihan kompetensi", dto.ToCompetencyOptions(rows))
	}
	return helper.JsonList(c, "Daftar kompetensi aktif", dto.FromCompetencyModels(rows))
}

// GET /api/competencies/:id
func (ctl *CompetencyController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	row, err := ctl.Svc.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Detail kompetensi", dto.FromCompetencyModel(row))
}

// POST /api/competencies
func (ctl *CompetencyController) Create(c *fiber.Ctx) error {
	var req dto.CreateCompetencyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	row, err := ctl.Svc.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Kompetensi berhasil dibuat", dto.FromCompetencyModel(row))
}

// PATCH /api/competencies/:id
func (ctl *CompetencyController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.UpdateCompetencyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	row, err := ctl.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Kompetensi berhasil diperbarui", dto.FromCompetencyModel(row))
}

// DELETE /api/competencies/:id (soft delete, hanya yang non-aktif)
func (ctl *CompetencyController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	row, err := ctl.Svc.SoftDelete(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Kompetensi berhasil dihapus", dto.FromCompetencyModel(row))
}
