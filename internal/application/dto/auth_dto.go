package dto

import "time"

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token de sesión + token de autologin por URL + usuario.
type LoginResponse struct {
	Token          string       `json:"token"`
	AutologinToken string       `json:"autologin_token"`
	User           UserResponse `json:"user"`
}

// UserResponse usuario sin hash de contraseña.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserRequest alta de usuario (solo admin).
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// ResetPasswordRequest restablecer contraseña (solo admin).
type ResetPasswordRequest struct {
	Password string `json:"password"`
}
