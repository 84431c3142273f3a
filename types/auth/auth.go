package auth

import (
	"fmt"

	"quickzone-backend/constants"
)

type RegisterRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required"`
	Password    string `json:"password" validate:"required"`
	Phone       string `json:"phone"`
	Role        string `json:"role" validate:"required"`
	Governorate string `json:"governorate"`
	AgencyID    *uint  `json:"agency_id"`
}

// Validate validates the RegisterRequest fields
func (r *RegisterRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}

	if r.Email == "" {
		return fmt.Errorf("email is required")
	}

	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	if r.Role == "" {
		return fmt.Errorf("role is required")
	}

	if _, ok := constants.RolePermissions[r.Role]; !ok {
		return fmt.Errorf("unknown role: %s", r.Role)
	}

	return nil
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Validate validates the LoginRequest fields
func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}

	if r.Password == "" {
		return fmt.Errorf("password is required")
	}

	return nil
}
