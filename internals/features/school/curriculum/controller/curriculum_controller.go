package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "sei_backend/internals/helpers"
)

// CurriculumController serves formations, knowledge areas and sub-areas.
type CurriculumController struct {
	DB *gorm.DB
}

func NewCurriculumController(db *gorm.DB) *CurriculumController {
	return &CurriculumController{DB: db}
}

func (ctl *CurriculumController) count(c *fiber.Ctx, table any, column string, id uuid.UUID) (int64, error) {
	var n int64
	err := ctl.DB.WithContext(c.UserContext()).Model(table).Where(column+" = ?", id).Count(&n).Error
	return n, err
}

// ensureParent turns a dangling reference into a 422 on field.
func (ctl *CurriculumController) ensureParent(c *fiber.Ctx, table any, column string, id uuid.UUID, field string) error {
	n, err := ctl.count(c, table, column, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return helper.FieldErrors{field: {"not found"}}
	}
	return nil
}

// deleteLeaf removes one row unless children still point at it.
func (ctl *CurriculumController) deleteLeaf(c *fiber.Ctx, row any, pkColumn string, child any, childColumn, what string) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	n, err := ctl.count(c, child, childColumn, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fiber.NewError(fiber.StatusConflict, what+" is still in use")
	}
	res := ctl.DB.WithContext(c.UserContext()).Where(pkColumn+" = ?", id).Delete(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, what+" not found")
	}
	return helper.JsonDeleted(c, what+" deleted", fiber.Map{"id": id})
}
