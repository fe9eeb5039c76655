package dto

import (
	"strings"

	userModel "sei_backend/internals/features/users/user/model"
)

type SetupAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required,min=2,max=150"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required,min=2,max=150"`
	Role     string `json:"role" validate:"omitempty"`
}

func (r *SetupAdminRequest) Normalize() {
	r.Email = normalizeEmail(r.Email)
	r.Name = strings.TrimSpace(r.Name)
}

func (r *RegisterRequest) Normalize() {
	r.Email = normalizeEmail(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	r.Role = strings.TrimSpace(r.Role)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = normalizeEmail(r.Email)
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

type UpdatePasswordRequest struct {
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type AuthResponse struct {
	User  userModel.UserModel `json:"user"`
	Token string              `json:"token"`
}
