package parcel

import (
	"time"

	"quickzone-backend/models/user"
)

// TrackingHistoryRecord is one append-only log entry capturing a single
// status change for one parcel. Rows are never updated or deleted except by
// the ON DELETE CASCADE of their parcel.
type TrackingHistoryRecord struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for parcel relationship
	ParcelID uint   `gorm:"not null;index" json:"parcel_id"`
	Parcel   Parcel `gorm:"foreignKey:ParcelID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Status         ParcelStatus  `gorm:"type:varchar(50);not null;index" json:"status"`
	PreviousStatus *ParcelStatus `gorm:"type:varchar(50)" json:"previous_status"`

	// MissionID references pickup_missions; the constraint is created as raw
	// SQL in database.InitDB to avoid an import cycle with the mission model.
	MissionID *uint `gorm:"index" json:"mission_id"`

	UpdatedBy *uint      `gorm:"index" json:"updated_by"`
	User      *user.User `gorm:"foreignKey:UpdatedBy" json:"user,omitempty"`

	Location *string `gorm:"type:varchar(255)" json:"location"`
	Notes    *string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName sets the table name for the TrackingHistoryRecord model
func (TrackingHistoryRecord) TableName() string {
	return "parcel_tracking_history"
}
