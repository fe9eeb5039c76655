package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sei_backend/internals/features/school/settings/dto"
	"sei_backend/internals/features/school/settings/model"
	"sei_backend/internals/features/school/settings/service"
	helper "sei_backend/internals/helpers"
	"sei_backend/internals/helpers/imagex"
)

type SettingsController struct {
	DB    *gorm.DB
	Image imagex.Options
}

func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{DB: db, Image: imagex.DefaultOptions()}
}

// GET /settings
func (ctl *SettingsController) Get(c *fiber.Ctx) error {
	m, err := service.Load(c.UserContext(), ctl.DB)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

// PUT /settings
func (ctl *SettingsController) Update(c *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	m, err := service.Mutate(c.UserContext(), ctl.DB, req.ApplyTo)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Settings updated", dto.FromModel(m))
}

// POST /settings/logo?kind=school|system, multipart field "file".
func (ctl *SettingsController) UploadLogo(c *fiber.Ctx) error {
	kind := strings.ToLower(strings.TrimSpace(c.Query("kind", "school")))
	if kind != "school" && kind != "system" {
		return helper.FieldErrors{"kind": {"must be one of school system"}}
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return helper.FieldErrors{"file": {"is required"}}
	}

	url, err := imagex.FileToDataURL(fh, ctl.Image)
	switch {
	case errors.Is(err, imagex.ErrTooLarge):
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "Image too large")
	case errors.Is(err, imagex.ErrUnsupported), errors.Is(err, imagex.ErrEmpty):
		return fiber.NewError(fiber.StatusUnsupportedMediaType, "Unsupported image format (use jpg, png or webp)")
	case err != nil:
		return err
	}

	m, err := service.Mutate(c.UserContext(), ctl.DB, func(m *model.SchoolSettingsModel) {
		if kind == "system" {
			m.SchoolSettingsSystemLogo = &url
		} else {
			m.SchoolSettingsSchoolLogo = &url
		}
	})
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Logo updated", dto.FromModel(m))
}
