package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
)

// Profile is the public view of a user, stripped of credentials.
type Profile struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone,omitempty"`
	Role      enums.UserRole `json:"role"`
	Address   *string        `json:"address,omitempty"`
	City      *string        `json:"city,omitempty"`
	Pincode   *string        `json:"pincode,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// FromModel maps a stored user to its public profile.
func FromModel(user *models.User) Profile {
	return Profile{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		Address:   user.Address,
		City:      user.City,
		Pincode:   user.Pincode,
		CreatedAt: user.CreatedAt,
	}
}

// UpdateProfileInput carries the fields a user may change on their own
// profile. Nil means leave unchanged.
type UpdateProfileInput struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=120"`
	Phone   *string `json:"phone" validate:"omitempty,max=20"`
	Address *string `json:"address" validate:"omitempty,max=500"`
	City    *string `json:"city" validate:"omitempty,max=120"`
	Pincode *string `json:"pincode" validate:"omitempty,len=6,numeric"`
}
