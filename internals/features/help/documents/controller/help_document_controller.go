// file: internals/features/help/documents/controller/help_document_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"kompetensi_backend/internals/features/help/documents/dto"
	"kompetensi_backend/internals/features/help/documents/service"
	helper "kompetensi_backend/internals/helpers"
	helperAuth "kompetensi_backend/internals/helpers/auth"
	"kompetensi_backend/internals/helpers/storage"
)

type HelpDocumentController struct {
	Svc *service.Service
}

func NewHelpDocumentController(svc *service.Service) *HelpDocumentController {
	return &HelpDocumentController{Svc: svc}
}

// GET /api/help/documents?q=
func (ctl *HelpDocumentController) List(c *fiber.Ctx) error {
	rows, err := ctl.Svc.List(c.UserContext(), c.Query("q"))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "Daftar dokumen bantuan", dto.FromHelpDocumentModels(rows))
}

// GET /api/help/documents/:id
func (ctl *HelpDocumentController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	row, err := ctl.Svc.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Detail dokumen bantuan", dto.FromHelpDocumentModel(row))
}

// POST /api/help/documents (multipart: help_document_title, help_document_description, file)
func (ctl *HelpDocumentController) Create(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFromCtx(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	form, err := c.MultipartForm()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Form multipart tidak valid")
	}
	req := dto.CreateHelpDocumentRequest{
		Title:       helper.FormString(form, "help_document_title"),
		Description: helper.FormString(form, "help_document_description"),
	}
	file, err := helper.OpenUpload(helper.FirstFile(form))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	defer file.Close()

	row, err := ctl.Svc.Create(c.UserContext(), sess, req, file)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Dokumen bantuan berhasil diunggah", dto.FromHelpDocumentModel(row))
}

// PATCH /api/help/documents/:id (multipart dengan file opsional, atau JSON)
func (ctl *HelpDocumentController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	var req dto.UpdateHelpDocumentRequest
	var file *storage.Upload
	if strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Form multipart tidak valid")
		}
		req.Title = helper.FormPatchString(form, "help_document_title")
		req.Description = helper.FormPatchString(form, "help_document_description")
		if file, err = helper.OpenUpload(helper.FirstFile(form)); err != nil {
			return helper.FromServiceError(c, err)
		}
		defer file.Close()
	} else if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	row, err := ctl.Svc.Update(c.UserContext(), id, req, file)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Dokumen bantuan berhasil diperbarui", dto.FromHelpDocumentModel(row))
}

// DELETE /api/help/documents/:id (hard delete)
func (ctl *HelpDocumentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	row, err := ctl.Svc.Delete(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Dokumen bantuan berhasil dihapus", dto.FromHelpDocumentModel(row))
}
