package mission

import (
	"time"

	"quickzone-backend/models/parcel"
	"quickzone-backend/models/shipper"
	"quickzone-backend/models/user"
)

type MissionStatus string

const (
	MissionStatusEnAttente MissionStatus = "En attente"
	MissionStatusAcceptee  MissionStatus = "Acceptée"
	MissionStatusEnCours   MissionStatus = "En cours"
	MissionStatusTerminee  MissionStatus = "Terminée"
)

func (ms MissionStatus) IsValid() bool {
	switch ms {
	case MissionStatusEnAttente, MissionStatusAcceptee, MissionStatusEnCours, MissionStatusTerminee:
		return true
	default:
		return false
	}
}

// PickupMission aggregates pickup demands assigned to one driver for
// physical collection.
type PickupMission struct {
	ID            uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	MissionNumber string        `gorm:"type:varchar(50);not null;uniqueIndex" json:"mission_number"`
	Status        MissionStatus `gorm:"type:varchar(50);not null;index" json:"status"`

	// Foreign key for driver relationship
	DriverID uint      `gorm:"not null;index" json:"driver_id"`
	Driver   user.User `gorm:"foreignKey:DriverID" json:"driver"`

	Demands []PickupDemand `gorm:"foreignKey:MissionID" json:"demands"`

	CreatedBy uint      `gorm:"index" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the PickupMission model
func (PickupMission) TableName() string {
	return "pickup_missions"
}

// PickupDemand groups the parcels of one shipper inside a mission.
type PickupDemand struct {
	ID        uint `gorm:"primaryKey;autoIncrement" json:"id"`
	MissionID uint `gorm:"not null;index" json:"mission_id"`

	// Foreign key for shipper relationship
	ShipperID uint            `gorm:"not null;index" json:"shipper_id"`
	Shipper   shipper.Shipper `gorm:"foreignKey:ShipperID" json:"shipper"`

	Parcels []parcel.Parcel `gorm:"many2many:demand_parcels" json:"parcels"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the PickupDemand model
func (PickupDemand) TableName() string {
	return "pickup_demands"
}
