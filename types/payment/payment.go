package payment

import (
	"fmt"

	paymentModel "quickzone-backend/models/payment"
)

type PaymentCreateRequest struct {
	ShipperID uint    `json:"shipper_id" validate:"required"`
	Amount    float64 `json:"amount" validate:"required"`
	Method    string  `json:"method" validate:"required"`
	ParcelIDs []uint  `json:"parcel_ids" validate:"required"`
}

// Validate validates the PaymentCreateRequest fields
func (r *PaymentCreateRequest) Validate() error {
	if r.ShipperID == 0 {
		return fmt.Errorf("shipper_id is required")
	}

	if r.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	if r.Method == "" {
		return fmt.Errorf("method is required")
	}

	if r.Method != paymentModel.MethodEspeces &&
		r.Method != paymentModel.MethodCheque &&
		r.Method != paymentModel.MethodVirement {
		return fmt.Errorf("method must be one of 'Espèces', 'Chèque' or 'Virement bancaire'")
	}

	if len(r.ParcelIDs) == 0 {
		return fmt.Errorf("at least one parcel is required")
	}

	return nil
}
