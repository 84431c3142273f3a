package timeline

import (
	"time"

	parcelModel "quickzone-backend/models/parcel"
)

// defaultLocation is the last resort of the location fallback chain.
const defaultLocation = "Tunis"

// Step is one display entry of a parcel's reconstructed timeline.
type Step struct {
	Timestamp     time.Time                `json:"timestamp"`
	Status        parcelModel.ParcelStatus `json:"status"`
	Location      string                   `json:"location"`
	Icon          string                   `json:"icon"`
	Color         string                   `json:"color"`
	Comment       string                   `json:"comment"`
	ActorName     string                   `json:"actor_name,omitempty"`
	MissionNumber string                   `json:"mission_number,omitempty"`
	Synthesized   bool                     `json:"synthesized,omitempty"`
}

// Viewer carries the fields of the requesting user the reconstruction needs.
type Viewer struct {
	Governorate string
}

// Reconstruct produces the ordered display steps for a parcel.
//
// With history rows (ascending by created_at) each row maps 1:1 to a step.
// Without any history — parcels created before the tracking table existed —
// intermediate milestones are synthesized from the canonical status order.
// Synthesized steps are a display-only approximation: they all reuse the
// parcel's updated_at and do not imply those events happened at distinct
// times.
func Reconstruct(p *parcelModel.Parcel, history []parcelModel.TrackingHistoryRecord,
	missionNumbers map[uint]string, viewer Viewer) []Step {

	if len(history) > 0 {
		steps := make([]Step, 0, len(history))
		for _, rec := range history {
			display := rec.Status.Display()
			step := Step{
				Timestamp: rec.CreatedAt,
				Status:    rec.Status,
				Location:  resolveStepLocation(rec.Location, p, viewer),
				Icon:      display.Icon,
				Color:     display.Color,
				Comment:   display.Comment,
			}
			if rec.Notes != nil && *rec.Notes != "" {
				step.Comment = *rec.Notes
			}
			if rec.User != nil {
				step.ActorName = rec.User.Name
			}
			if rec.MissionID != nil {
				step.MissionNumber = missionNumbers[*rec.MissionID]
			}
			steps = append(steps, step)
		}
		return steps
	}

	return synthesize(p, viewer)
}

// synthesize builds an approximate timeline for a parcel with no history.
func synthesize(p *parcelModel.Parcel, viewer Viewer) []Step {
	steps := []Step{makeSyntheticStep(parcelModel.StatusEnAttente, p.CreatedAt, p, viewer)}

	currentIdx := parcelModel.OrderIndex(p.Status)
	covered := p.Status == parcelModel.StatusEnAttente

	milestones := []parcelModel.ParcelStatus{
		parcelModel.StatusAEnlever,
		parcelModel.StatusEnleve,
	}
	for _, milestone := range milestones {
		if currentIdx >= parcelModel.OrderIndex(milestone) {
			steps = append(steps, makeSyntheticStep(milestone, p.UpdatedAt, p, viewer))
			if p.Status == milestone {
				covered = true
			}
		}
	}

	if !covered {
		steps = append(steps, makeSyntheticStep(p.Status, p.UpdatedAt, p, viewer))
	}

	return steps
}

func makeSyntheticStep(status parcelModel.ParcelStatus, ts time.Time, p *parcelModel.Parcel, viewer Viewer) Step {
	display := status.Display()
	return Step{
		Timestamp:   ts,
		Status:      status,
		Location:    resolveStepLocation(nil, p, viewer),
		Icon:        display.Icon,
		Color:       display.Color,
		Comment:     display.Comment,
		Synthesized: true,
	}
}

// resolveStepLocation applies the location fallback chain: explicit record
// location, shipper agency, shipper city, the viewer's governorate, then the
// literal "Tunis".
//
// Falling back to the viewer's own governorate substitutes data unrelated to
// the shipment; the behavior is kept for output parity with the dashboard
// and isolated here so it can be corrected in one place.
func resolveStepLocation(recordLocation *string, p *parcelModel.Parcel, viewer Viewer) string {
	if recordLocation != nil && *recordLocation != "" {
		return *recordLocation
	}
	if p.Shipper.Agency != nil && p.Shipper.Agency.Name != "" {
		return p.Shipper.Agency.Name
	}
	if p.Shipper.City != nil && *p.Shipper.City != "" {
		return *p.Shipper.City
	}
	if viewer.Governorate != "" {
		return viewer.Governorate
	}
	return defaultLocation
}
