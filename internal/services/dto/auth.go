package dto

import "carpicks_backend/internal/models"

// RegisterRequest - registration payload. A "role" field in the body is
// deliberately not bound: the role of a created account is always forced to
// 'user'.
type RegisterRequest struct {
	Name            string `json:"name" validate:"required,min=3,max=20"`
	Age             int    `json:"age" validate:"required,gte=16,lte=60"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// LoginRequest - login payload. Presence of email/password is checked in the
// service so that absent credentials produce the dedicated 400 rather than a
// validation envelope.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest - reset-code request payload
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest - reset-code consumption payload (the code itself
// travels in the URL path)
type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required,password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// AuthResponse - register/login response body. The user's password hash is
// excluded from serialization at the model level.
type AuthResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Data    *models.User `json:"data"`
}

// ResetPasswordResponse - reset consumption response; the fresh session
// token is both set as the cookie and echoed in the body.
type ResetPasswordResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
}
