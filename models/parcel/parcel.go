package parcel

import (
	"time"

	"quickzone-backend/models/shipper"
)

// Parcel represents one shipped package tracked end-to-end by its tracking
// number.
type Parcel struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	TrackingNumber string `gorm:"type:varchar(50);not null;uniqueIndex" json:"tracking_number"`

	// ClientCode is generated once at creation and never rewritten.
	ClientCode string `gorm:"type:varchar(50);not null" json:"client_code"`

	Status       ParcelStatus `gorm:"type:varchar(50);not null;index" json:"status"`
	Weight       float64      `gorm:"type:decimal(10,2);not null" json:"weight"`
	Price        float64      `gorm:"type:decimal(10,2);not null" json:"price"`
	DeliveryFees float64      `gorm:"type:decimal(10,2);not null" json:"delivery_fees"`
	Destination  string       `gorm:"type:varchar(255);not null" json:"destination"`

	RecipientName    string `gorm:"type:varchar(255);not null" json:"recipient_name"`
	RecipientPhone   string `gorm:"type:varchar(20);not null" json:"recipient_phone"`
	RecipientAddress string `gorm:"type:text" json:"recipient_address"`

	// Foreign key for shipper relationship
	ShipperID uint            `gorm:"not null;index" json:"shipper_id"`
	Shipper   shipper.Shipper `gorm:"foreignKey:ShipperID" json:"shipper"`

	CreatedBy uint      `gorm:"index" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Parcel model
func (Parcel) TableName() string {
	return "parcels"
}
