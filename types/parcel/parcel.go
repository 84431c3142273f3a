package parcel

import (
	"fmt"

	parcelModel "quickzone-backend/models/parcel"
)

type ParcelCreateRequest struct {
	ShipperID        uint    `json:"shipper_id" validate:"required"`
	Weight           float64 `json:"weight" validate:"required"`
	Price            float64 `json:"price" validate:"required"`
	Destination      string  `json:"destination" validate:"required"`
	RecipientName    string  `json:"recipient_name" validate:"required"`
	RecipientPhone   string  `json:"recipient_phone" validate:"required"`
	RecipientAddress string  `json:"recipient_address"`
}

// Validate validates the ParcelCreateRequest fields
func (r *ParcelCreateRequest) Validate() error {
	if r.ShipperID == 0 {
		return fmt.Errorf("shipper_id is required")
	}

	if r.Weight < 0 {
		return fmt.Errorf("weight must be zero or positive")
	}

	if r.Price < 0 {
		return fmt.Errorf("price must be zero or positive")
	}

	if r.Destination == "" {
		return fmt.Errorf("destination is required")
	}

	if r.RecipientName == "" {
		return fmt.Errorf("recipient_name is required")
	}

	if r.RecipientPhone == "" {
		return fmt.Errorf("recipient_phone is required")
	}

	return nil
}

type ParcelUpdateRequest struct {
	Status           *string  `json:"status"`
	Weight           *float64 `json:"weight"`
	Price            *float64 `json:"price"`
	Destination      *string  `json:"destination"`
	RecipientName    *string  `json:"recipient_name"`
	RecipientPhone   *string  `json:"recipient_phone"`
	RecipientAddress *string  `json:"recipient_address"`
	Location         *string  `json:"location"`
	Notes            *string  `json:"notes"`
}

// Validate validates the ParcelUpdateRequest fields
func (r *ParcelUpdateRequest) Validate() error {
	if r.Status != nil && !parcelModel.ParcelStatus(*r.Status).IsValid() {
		return fmt.Errorf("status must be one of the known parcel statuses")
	}

	if r.Weight != nil && *r.Weight < 0 {
		return fmt.Errorf("weight must be zero or positive")
	}

	if r.Price != nil && *r.Price < 0 {
		return fmt.Errorf("price must be zero or positive")
	}

	if r.Destination != nil && *r.Destination == "" {
		return fmt.Errorf("destination cannot be empty")
	}

	return nil
}
