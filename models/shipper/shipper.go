package shipper

import (
	"time"

	"quickzone-backend/models/agency"
)

// Shipper represents an expéditeur, the sender client who originates parcels.
type Shipper struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Code    string `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`
	Company string `gorm:"type:varchar(255);not null" json:"company"`
	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	Phone   string `gorm:"type:varchar(20);not null" json:"phone"`
	Email   *string `gorm:"type:varchar(255)" json:"email,omitempty"`
	City    *string `gorm:"type:varchar(255)" json:"city,omitempty"`

	// BaseDeliveryFee is the per-parcel base rate the fee calculator applies
	// weight surcharges on top of.
	BaseDeliveryFee float64 `gorm:"type:decimal(10,2);not null;default:8" json:"base_delivery_fee"`

	// Foreign key for agency relationship
	AgencyID *uint          `gorm:"index" json:"agency_id,omitempty"`
	Agency   *agency.Agency `gorm:"foreignKey:AgencyID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"agency,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}
