// file: internals/features/competency/indicators/controller/indicator_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kompetensi_backend/internals/features/competency/indicators/dto"
	m "kompetensi_backend/internals/features/competency/indicators/model"
	"kompetensi_backend/internals/features/competency/indicators/service"
	helper "kompetensi_backend/internals/helpers"
	"kompetensi_backend/internals/helpers/apperr"
)

type IndicatorController struct {
	Svc *service.Service
}

func NewIndicatorController(svc *service.Service) *IndicatorController {
	return &IndicatorController{Svc: svc}
}

// GET /api/indicators?q=&competency_id=
func (ctl *IndicatorController) List(c *fiber.Ctx) error {
	q := service.ListQuery{Search: c.Query("q")}
	if raw := strings.TrimSpace(c.Query("competency_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.FromServiceError(c, apperr.Validation("competency_id tidak valid"))
		}
		q.CompetencyID = &id
	}
	rows, err := ctl.Svc.ListAll(c.UserContext(), q)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return ctl.list(c, "Daftar indikator", rows)
}

// GET /api/indicators/active
func (ctl *IndicatorController) ListActive(c *fiber.Ctx) error {
	rows, err := ctl.Svc.ListActive(c.UserContext())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return ctl.list(c, "Daftar indikator aktif", rows)
}

// GET /api/indicators/:id
func (ctl *IndicatorController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	row, err := ctl.Svc.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return ctl.one(c, helper.JsonOK, "Detail indikator", row)
}

// POST /api/indicators
func (ctl *IndicatorController) Create(c *fiber.Ctx) error {
	var req dto.CreateIndicatorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	row, err := ctl.Svc.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return ctl.one(c, helper.JsonCreated, "Indikator berhasil dibuat", row)
}

// PATCH /api/indicators/:id
func (ctl *IndicatorController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.UpdateIndicatorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	row, err := ctl.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return ctl.one(c, helper.JsonUpdated, "Indikator berhasil diperbarui", row)
}

// DELETE /api/indicators/:id
func (ctl *IndicatorController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	row, err := ctl.Svc.SoftDelete(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return ctl.one(c, helper.JsonDeleted, "Indikator berhasil dihapus", row)
}

func (ctl *IndicatorController) list(c *fiber.Ctx, msg string, rows []m.IndicatorModel) error {
	names, err := ctl.Svc.CompetencyNames(c.UserContext(), rows...)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, msg, dto.FromIndicatorModels(rows, names))
}

func (ctl *IndicatorController) one(c *fiber.Ctx, respond func(*fiber.Ctx, string, any) error, msg string, row m.IndicatorModel) error {
	names, err := ctl.Svc.CompetencyNames(c.UserContext(), row)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return respond(c, msg, dto.FromIndicatorModel(row, names))
}
