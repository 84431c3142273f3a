package shipper

import "fmt"

type ShipperCreateRequest struct {
	Company         string  `json:"company" validate:"required"`
	Name            string  `json:"name" validate:"required"`
	Phone           string  `json:"phone" validate:"required"`
	Email           string  `json:"email"`
	City            string  `json:"city"`
	BaseDeliveryFee float64 `json:"base_delivery_fee"`
	AgencyID        *uint   `json:"agency_id"`
}

// Validate validates the ShipperCreateRequest fields
func (r *ShipperCreateRequest) Validate() error {
	if r.Company == "" {
		return fmt.Errorf("company is required")
	}

	if r.Name == "" {
		return fmt.Errorf("name is required")
	}

	if r.Phone == "" {
		return fmt.Errorf("phone is required")
	}

	if r.BaseDeliveryFee < 0 {
		return fmt.Errorf("base_delivery_fee must not be negative")
	}

	return nil
}
