package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sei_backend/internals/constants"
	"sei_backend/internals/features/users/user/dto"
	"sei_backend/internals/features/users/user/model"
	helper "sei_backend/internals/helpers"
	helperAuth "sei_backend/internals/helpers/auth"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

/* =========================================================
   LIST / DETAIL
========================================================= */

// GET /users?q=&role=
func (ctl *UserController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&model.UserModel{})
	if s := strings.ToLower(strings.TrimSpace(c.Query("q"))); s != "" {
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", "%"+s+"%", "%"+s+"%")
	}
	if raw := strings.TrimSpace(c.Query("role")); raw != "" {
		role, err := constants.ParseRole(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid role filter")
		}
		q = q.Where("role = ?", role)
	}

	var rows []model.UserModel
	if err := q.Order("name ASC").Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), nil)
}

func (ctl *UserController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.find(c, id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

/* =========================================================
   UPDATE
========================================================= */

// PUT /users/:id. Anyone may rename themselves; touching another account or
// any role needs update on users.
func (ctl *UserController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	self, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateUserRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	up, roleChange, err := req.Changes()
	if err != nil {
		return err
	}
	if id != self || roleChange {
		if err := helperAuth.EnsureCan(c, constants.ActionUpdate, constants.ResUsers); err != nil {
			return err
		}
	}

	m, err := ctl.find(c, id)
	if err != nil {
		return err
	}
	if len(up) > 0 {
		if err := ctl.DB.WithContext(c.UserContext()).Model(&m).Updates(up).Error; err != nil {
			return err
		}
	}
	if m, err = ctl.find(c, id); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "User updated", dto.FromModel(m))
}

/* =========================================================
   DELETE
========================================================= */

func (ctl *UserController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	self, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}
	if id == self {
		return fiber.NewError(fiber.StatusBadRequest, "You cannot delete your own account")
	}

	res := ctl.DB.WithContext(c.UserContext()).Where("id = ?", id).Delete(&model.UserModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	return helper.JsonDeleted(c, "User deleted", fiber.Map{"id": id})
}

func (ctl *UserController) find(c *fiber.Ctx, id uuid.UUID) (model.UserModel, error) {
	var m model.UserModel
	err := ctl.DB.WithContext(c.UserContext()).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m, fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	return m, err
}
