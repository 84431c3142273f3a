package mission

import "fmt"

type DemandRequest struct {
	ShipperID uint   `json:"shipper_id" validate:"required"`
	ParcelIDs []uint `json:"parcel_ids" validate:"required"`
}

type MissionCreateRequest struct {
	DriverID uint            `json:"driver_id" validate:"required"`
	Demands  []DemandRequest `json:"demands" validate:"required"`
}

// Validate validates the MissionCreateRequest fields
func (r *MissionCreateRequest) Validate() error {
	if r.DriverID == 0 {
		return fmt.Errorf("driver_id is required")
	}

	if len(r.Demands) == 0 {
		return fmt.Errorf("at least one demand is required")
	}

	for i, demand := range r.Demands {
		if demand.ShipperID == 0 {
			return fmt.Errorf("demands[%d].shipper_id is required", i)
		}
		if len(demand.ParcelIDs) == 0 {
			return fmt.Errorf("demands[%d].parcel_ids is required", i)
		}
	}

	return nil
}

type ScanRequest struct {
	TrackingNumber string `json:"tracking_number" validate:"required"`
	Location       string `json:"location"`
}

// Validate validates the ScanRequest fields
func (r *ScanRequest) Validate() error {
	if r.TrackingNumber == "" {
		return fmt.Errorf("tracking_number is required")
	}

	return nil
}
