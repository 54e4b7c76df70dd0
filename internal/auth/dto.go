package auth

import (
	"github.com/rentkart/rentkart-backend/internal/users"
)

// RegisterInput is the signup payload.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginInput is the credentials payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse returns a bearer token alongside the authenticated profile.
type AuthResponse struct {
	Token string        `json:"token"`
	User  users.Profile `json:"user"`
}
