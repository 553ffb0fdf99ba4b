// file: internals/features/help/videos/controller/help_video_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"kompetensi_backend/internals/features/help/videos/dto"
	"kompetensi_backend/internals/features/help/videos/service"
	helper "kompetensi_backend/internals/helpers"
	helperAuth "kompetensi_backend/internals/helpers/auth"
	"kompetensi_backend/internals/helpers/storage"
)

type HelpVideoController struct {
	Svc *service.Service
}

func NewHelpVideoController(svc *service.Service) *HelpVideoController {
	return &HelpVideoController{Svc: svc}
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm)
}

// GET /api/help/videos?q=
func (ctl *HelpVideoController) List(c *fiber.Ctx) error {
	rows, err := ctl.Svc.List(c.UserContext(), c.Query("q"))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "Daftar video bantuan", dto.FromHelpVideoModels(rows))
}

// GET /api/help/videos/:id
func (ctl *HelpVideoController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	row, err := ctl.Svc.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Detail video bantuan", dto.FromHelpVideoModel(row))
}

// POST /api/help/videos (multipart dengan thumbnail opsional, atau JSON)
func (ctl *HelpVideoController) Create(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFromCtx(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	var req dto.CreateHelpVideoRequest
	var thumb *storage.Upload
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Form multipart tidak valid")
		}
		req = dto.CreateHelpVideoRequest{
			Title:       helper.FormString(form, "help_video_title"),
			Description: helper.FormString(form, "help_video_description"),
			VideoURL:    helper.FormString(form, "help_video_url"),
		}
		if d := helper.FormString(form, "help_video_duration"); d != "" {
			req.Duration = &d
		}
		if thumb, err = helper.OpenUpload(helper.FirstFile(form, "thumbnail", "file")); err != nil {
			return helper.FromServiceError(c, err)
		}
		defer thumb.Close()
	} else if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	row, err := ctl.Svc.Create(c.UserContext(), sess, req, thumb)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Video bantuan berhasil dibuat", dto.FromHelpVideoModel(row))
}

// PATCH /api/help/videos/:id
func (ctl *HelpVideoController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	var req dto.UpdateHelpVideoRequest
	var thumb *storage.Upload
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Form multipart tidak valid")
		}
		req.Title = helper.FormPatchString(form, "help_video_title")
		req.Description = helper.FormPatchString(form, "help_video_description")
		req.VideoURL = helper.FormPatchString(form, "help_video_url")
		req.Duration = helper.FormPatchString(form, "help_video_duration")
		req.RemoveThumbnail = helper.FormBool(form, "remove_thumbnail")
		if thumb, err = helper.OpenUpload(helper.FirstFile(form, "thumbnail", "file")); err != nil {
			return helper.FromServiceError(c, err)
		}
		defer thumb.Close()
	} else if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	row, err := ctl.Svc.Update(c.UserContext(), id, req, thumb)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Video bantuan berhasil diperbarui", dto.FromHelpVideoModel(row))
}

// DELETE /api/help/videos/:id (hard delete)
func (ctl *HelpVideoController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	row, err := ctl.Svc.Delete(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Video bantuan berhasil dihapus", dto.FromHelpVideoModel(row))
}
