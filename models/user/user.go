package user

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Role labels as shown by the dashboard.
const (
	RoleAdmin        = "Administration"
	RoleCommercial   = "Commercial"
	RoleFinance      = "Finance"
	RoleChefAgence   = "Chef d'agence"
	RoleMembreAgence = "Membre de l'agence"
	RoleLivreur      = "Livreurs"
	RoleExpediteur   = "Expéditeur"
)

// User model covering every dashboard actor: administrators, agency staff,
// drivers and shipper accounts.
type User struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid         string  `gorm:"type:varchar(255);not null;unique" json:"uuid"`
	Name         string  `gorm:"type:varchar(255);not null" json:"name"`
	Email        string  `gorm:"type:varchar(255);not null;unique" json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null" json:"-"`
	Phone        *string `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Role         string  `gorm:"type:varchar(50);not null" json:"role"`
	Governorate  *string `gorm:"type:varchar(255)" json:"governorate,omitempty"`

	AgencyID *uint `gorm:"index" json:"agency_id,omitempty"`

	Permissions StringSlice `gorm:"type:json" json:"permissions"` // JSON column holding permission strings

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// StringSlice is a custom type to handle JSON serialization for PostgreSQL
type StringSlice []string

// Scan implements the Scanner interface for database deserialization
func (ss *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*ss = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, ss)
}

// Value implements the driver Valuer interface for database serialization
func (ss StringSlice) Value() (driver.Value, error) {
	if ss == nil {
		return nil, nil
	}
	return json.Marshal(ss)
}
