package users

import (
	"github.com/amontes/storefront-backend/pkg/db/models"
	"github.com/google/uuid"
)

// UserDTO is the wire shape for an account profile.
type UserDTO struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// ToUserDTO converts a persisted user into its wire shape.
func ToUserDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}
