package dto

import "github.com/Leavend/SMI-HIMPA-Client/internal/domain/entity"

// UpdateRoleRequest body de PUT /admin/user/update-role.
type UpdateRoleRequest struct {
	UserID string `json:"userId" validate:"required"`
	Role   string `json:"newRole" validate:"user_role"`
}

// LoginRequest body de POST /user/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token y usuario devueltos por el login.
type LoginResponse struct {
	Token string      `json:"token"`
	User  entity.User `json:"user"`
}

// RegisterRequest body de POST /user/register. ConfirmPassword solo se compara localmente.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Number          string `json:"number" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"-"`
}

// ForgotPasswordRequest body de POST /user/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest body de POST /user/reset-password. ConfirmPassword vacío = no se compara.
type ResetPasswordRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Code            string `json:"code" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"-"`
}
