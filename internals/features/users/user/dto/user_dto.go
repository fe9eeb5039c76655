package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sei_backend/internals/constants"
	"sei_backend/internals/features/users/user/model"
	helper "sei_backend/internals/helpers"
)

type UpdateUserRequest struct {
	Name *string `json:"name" validate:"omitempty,min=2,max=150"`
	Role *string `json:"role"`
}

// Changes returns the column updates and whether the role is among them.
func (r UpdateUserRequest) Changes() (map[string]any, bool, error) {
	up := map[string]any{}
	if r.Name != nil {
		name := strings.ToUpper(strings.TrimSpace(*r.Name))
		if len(name) < 2 {
			return nil, false, helper.FieldErrors{"name": {"must be at least 2 characters"}}
		}
		up["name"] = name
	}
	if r.Role == nil {
		return up, false, nil
	}
	role, err := constants.ParseRole(*r.Role)
	if err != nil {
		return nil, false, helper.FieldErrors{"role": {"must be one of admin_ti admin_dir coord prof sec guest"}}
	}
	up["role"] = role
	return up, true, nil
}

type UserResponse struct {
	ID        uuid.UUID      `json:"id"`
	Email     string         `json:"email"`
	Name      string         `json:"name"`
	Role      constants.Role `json:"role"`
	RoleLabel string         `json:"roleLabel"`
	AvatarURL *string        `json:"avatarUrl,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func FromModel(m model.UserModel) UserResponse {
	return UserResponse{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		Role:      m.Role,
		RoleLabel: m.Role.Label(),
		AvatarURL: m.AvatarURL,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func FromModels(rows []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, FromModel(m))
	}
	return out
}
