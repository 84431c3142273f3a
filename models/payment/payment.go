package payment

import (
	"time"

	"quickzone-backend/models/parcel"
	"quickzone-backend/models/shipper"
)

// Payment methods as entered through the payment wizard.
const (
	MethodEspeces  = "Espèces"
	MethodCheque   = "Chèque"
	MethodVirement = "Virement bancaire"
)

// Payment records money collected for a set of delivered parcels of one
// shipper. Creating one triggers the payment status transitions on the
// covered parcels.
type Payment struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Reference string  `gorm:"type:varchar(50);not null;uniqueIndex" json:"reference"`
	Amount    float64 `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method    string  `gorm:"type:varchar(50);not null" json:"method"`

	// Foreign key for shipper relationship
	ShipperID uint            `gorm:"not null;index" json:"shipper_id"`
	Shipper   shipper.Shipper `gorm:"foreignKey:ShipperID" json:"shipper"`

	Parcels []parcel.Parcel `gorm:"many2many:payment_parcels" json:"parcels"`

	CreatedBy uint      `gorm:"index" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
