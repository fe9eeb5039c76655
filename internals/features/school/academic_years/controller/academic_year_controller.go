package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sei_backend/internals/features/school/academic_years/dto"
	"sei_backend/internals/features/school/academic_years/model"
	helper "sei_backend/internals/helpers"
)

type AcademicYearController struct {
	DB *gorm.DB
}

func NewAcademicYearController(db *gorm.DB) *AcademicYearController {
	return &AcademicYearController{DB: db}
}

func (ctl *AcademicYearController) List(c *fiber.Ctx) error {
	var rows []model.AcademicYearModel
	if err := ctl.DB.WithContext(c.UserContext()).Order("academic_year DESC").Find(&rows).Error; err != nil {
		return err
	}
	out := make([]dto.AcademicYearResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.FromModel(r))
	}
	return helper.JsonList(c, "ok", out, nil)
}

// GET /academic-years/:year
func (ctl *AcademicYearController) Get(c *fiber.Ctx) error {
	m, err := ctl.find(c, c.Params("year"))
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

// Upsert stores the configuration of a year, replacing every deadline.
func (ctl *AcademicYearController) Upsert(c *fiber.Ctx) error {
	var req dto.AcademicYearRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	m, err := ctl.save(c, req)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Academic year saved", dto.FromModel(m))
}

// PUT /academic-years/:year is the same upsert with the year from the path.
func (ctl *AcademicYearController) Update(c *fiber.Ctx) error {
	var req dto.AcademicYearRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Year = strings.TrimSpace(c.Params("year"))
	if fieldErrs := helper.ValidateStruct(&req); fieldErrs != nil {
		return helper.FieldErrors(fieldErrs)
	}
	m, err := ctl.save(c, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Academic year saved", dto.FromModel(m))
}

func (ctl *AcademicYearController) Delete(c *fiber.Ctx) error {
	year := strings.TrimSpace(c.Params("year"))
	res := ctl.DB.WithContext(c.UserContext()).Where("academic_year = ?", year).Delete(&model.AcademicYearModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Academic year not found")
	}
	return helper.JsonDeleted(c, "Academic year deleted", fiber.Map{"year": year})
}

func (ctl *AcademicYearController) save(c *fiber.Ctx, req dto.AcademicYearRequest) (model.AcademicYearModel, error) {
	m := req.ToModel()
	err := ctl.DB.WithContext(c.UserContext()).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "academic_year"}},
		UpdateAll: true,
	}).Create(&m).Error
	if err != nil {
		return m, err
	}
	return ctl.find(c, req.Year)
}

func (ctl *AcademicYearController) find(c *fiber.Ctx, year string) (model.AcademicYearModel, error) {
	var m model.AcademicYearModel
	err := ctl.DB.WithContext(c.UserContext()).First(&m, "academic_year = ?", strings.TrimSpace(year)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m, fiber.NewError(fiber.StatusNotFound, "Academic year not found")
	}
	return m, err
}
