package timeline

import (
	"testing"
	"time"

	agencyModel "quickzone-backend/models/agency"
	parcelModel "quickzone-backend/models/parcel"
	shipperModel "quickzone-backend/models/shipper"
	userModel "quickzone-backend/models/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func uintPtr(u uint) *uint { return &u }

func testParcel(status parcelModel.ParcelStatus) *parcelModel.Parcel {
	created := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return &parcelModel.Parcel{
		ID:             1,
		TrackingNumber: "QZ-aabbccddeeff",
		Status:         status,
		CreatedAt:      created,
		UpdatedAt:      created.Add(48 * time.Hour),
		Shipper:        shipperModel.Shipper{Company: "Boutique Leila"},
	}
}

func TestReconstructFromHistory(t *testing.T) {
	p := testParcel(parcelModel.StatusAuDepot)
	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	prev := parcelModel.StatusEnAttente
	history := []parcelModel.TrackingHistoryRecord{
		{
			Status:    parcelModel.StatusEnAttente,
			CreatedAt: base,
		},
		{
			Status:         parcelModel.StatusAEnlever,
			PreviousStatus: &prev,
			CreatedAt:      base.Add(time.Hour),
			User:           &userModel.User{Name: "Sami"},
			MissionID:      uintPtr(7),
		},
		{
			Status:    parcelModel.StatusAuDepot,
			CreatedAt: base.Add(2 * time.Hour),
			Location:  strPtr("Dépôt Sousse"),
			Notes:     strPtr("Reçu au dépôt central"),
		},
	}

	steps := Reconstruct(p, history, map[uint]string{7: "PIK-123456"}, Viewer{})

	require.Len(t, steps, 3)

	// Each history row maps 1:1 to a step, in order.
	assert.Equal(t, parcelModel.StatusEnAttente, steps[0].Status)
	assert.Equal(t, parcelModel.StatusAEnlever, steps[1].Status)
	assert.Equal(t, parcelModel.StatusAuDepot, steps[2].Status)
	for _, step := range steps {
		assert.False(t, step.Synthesized)
	}

	assert.Equal(t, "Sami", steps[1].ActorName)
	assert.Equal(t, "PIK-123456", steps[1].MissionNumber)

	// Notes override the canned status comment.
	assert.Equal(t, "Reçu au dépôt central", steps[2].Comment)
	assert.Equal(t, parcelModel.StatusAEnlever.Display().Comment, steps[1].Comment)

	// Explicit record location wins over every fallback.
	assert.Equal(t, "Dépôt Sousse", steps[2].Location)
}

func TestReconstructSynthesizesWithoutHistory(t *testing.T) {
	p := testParcel(parcelModel.StatusEnCours)

	steps := Reconstruct(p, nil, nil, Viewer{})

	require.Len(t, steps, 4)
	assert.Equal(t, parcelModel.StatusEnAttente, steps[0].Status)
	assert.Equal(t, parcelModel.StatusAEnlever, steps[1].Status)
	assert.Equal(t, parcelModel.StatusEnleve, steps[2].Status)
	assert.Equal(t, parcelModel.StatusEnCours, steps[3].Status)

	for _, step := range steps {
		assert.True(t, step.Synthesized)
	}

	// The first step reuses the creation time; later steps share updated_at.
	assert.Equal(t, p.CreatedAt, steps[0].Timestamp)
	assert.Equal(t, p.UpdatedAt, steps[1].Timestamp)
	assert.Equal(t, p.UpdatedAt, steps[3].Timestamp)
}

func TestReconstructSynthesisNewParcel(t *testing.T) {
	p := testParcel(parcelModel.StatusEnAttente)

	steps := Reconstruct(p, nil, nil, Viewer{})

	require.Len(t, steps, 1)
	assert.Equal(t, parcelModel.StatusEnAttente, steps[0].Status)
	assert.Equal(t, p.CreatedAt, steps[0].Timestamp)
}

func TestReconstructSynthesisCurrentIsMilestone(t *testing.T) {
	p := testParcel(parcelModel.StatusEnleve)

	steps := Reconstruct(p, nil, nil, Viewer{})

	// "Enlevé" is itself a milestone so it must not be duplicated.
	require.Len(t, steps, 3)
	assert.Equal(t, parcelModel.StatusEnAttente, steps[0].Status)
	assert.Equal(t, parcelModel.StatusAEnlever, steps[1].Status)
	assert.Equal(t, parcelModel.StatusEnleve, steps[2].Status)
}

func TestLocationFallbackChain(t *testing.T) {
	p := testParcel(parcelModel.StatusEnAttente)

	// No shipper data, no viewer governorate: literal default.
	steps := Reconstruct(p, nil, nil, Viewer{})
	assert.Equal(t, "Tunis", steps[0].Location)

	// Viewer governorate beats the default.
	steps = Reconstruct(p, nil, nil, Viewer{Governorate: "Sfax"})
	assert.Equal(t, "Sfax", steps[0].Location)

	// Shipper city beats the viewer governorate.
	p.Shipper.City = strPtr("Monastir")
	steps = Reconstruct(p, nil, nil, Viewer{Governorate: "Sfax"})
	assert.Equal(t, "Monastir", steps[0].Location)

	// Agency name beats the shipper city.
	p.Shipper.Agency = &agencyModel.Agency{Name: "Agence Sousse Centre"}
	steps = Reconstruct(p, nil, nil, Viewer{Governorate: "Sfax"})
	assert.Equal(t, "Agence Sousse Centre", steps[0].Location)

	// A record location beats everything.
	history := []parcelModel.TrackingHistoryRecord{
		{Status: parcelModel.StatusEnAttente, Location: strPtr("Hub Tunis Nord"), CreatedAt: p.CreatedAt},
	}
	steps = Reconstruct(p, history, nil, Viewer{Governorate: "Sfax"})
	assert.Equal(t, "Hub Tunis Nord", steps[0].Location)
}

func TestLocationEmptyStringsAreSkipped(t *testing.T) {
	p := testParcel(parcelModel.StatusEnAttente)
	p.Shipper.City = strPtr("")
	p.Shipper.Agency = &agencyModel.Agency{Name: ""}

	history := []parcelModel.TrackingHistoryRecord{
		{Status: parcelModel.StatusEnAttente, Location: strPtr(""), CreatedAt: p.CreatedAt},
	}

	steps := Reconstruct(p, history, nil, Viewer{})
	assert.Equal(t, "Tunis", steps[0].Location)
}
