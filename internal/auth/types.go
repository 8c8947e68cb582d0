package auth

import "openclass/lms-backend/internal/model/user"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=100"`
	Role     string `json:"role" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResult is returned by both register and login: the stored user (hash
// stripped by the model's json tag) and a signed bearer token.
type AuthResult struct {
	User  *user.User `json:"user"`
	Token string     `json:"token"`
}
