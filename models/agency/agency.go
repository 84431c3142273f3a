package agency

import (
	"time"
)

// Agency represents a QuickZone regional agency.
type Agency struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null;unique" json:"name"`
	City        string    `gorm:"type:varchar(255);not null" json:"city"`
	Governorate string    `gorm:"type:varchar(255);not null" json:"governorate"`
	Phone       *string   `gorm:"type:varchar(20)" json:"phone,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
