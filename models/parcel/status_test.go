package parcel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParcelStatusIsValid(t *testing.T) {
	for _, s := range AllParcelStatuses() {
		assert.True(t, s.IsValid(), "status %q should be valid", s)
	}

	assert.False(t, ParcelStatus("Delivered").IsValid())
	assert.False(t, ParcelStatus("").IsValid())
	// Legacy labels are written by the payment flow but are not part of the
	// vocabulary accepted on status writes.
	assert.False(t, StatusRetourLegacy.IsValid())
	assert.False(t, StatusRetourEnCoursLegacy.IsValid())
}

func TestParcelStatusIsFinal(t *testing.T) {
	finals := map[ParcelStatus]bool{
		StatusLivresPayes:     true,
		StatusRetourDefinitif: true,
		StatusRetourRecu:      true,
	}

	for _, s := range AllParcelStatuses() {
		assert.Equal(t, finals[s], s.IsFinal(), "IsFinal mismatch for %q", s)
	}
}

func TestOrderIndex(t *testing.T) {
	assert.Equal(t, 0, OrderIndex(StatusEnAttente))
	assert.Equal(t, 1, OrderIndex(StatusAEnlever))
	assert.Equal(t, 2, OrderIndex(StatusEnleve))
	assert.Equal(t, 6, OrderIndex(StatusLivres))
	assert.Equal(t, -1, OrderIndex(ParcelStatus("bogus")))

	// Canonical order is strictly increasing over the vocabulary.
	prev := -1
	for _, s := range AllParcelStatuses() {
		idx := OrderIndex(s)
		assert.Greater(t, idx, prev)
		prev = idx
	}
}

func TestDisplayCoversVocabulary(t *testing.T) {
	for _, s := range AllParcelStatuses() {
		d := s.Display()
		assert.NotEmpty(t, d.Icon, "icon missing for %q", s)
		assert.NotEmpty(t, d.Color, "color missing for %q", s)
		assert.NotEmpty(t, d.Comment, "comment missing for %q", s)
	}
}

func TestDisplayUnknownStatusFallback(t *testing.T) {
	d := ParcelStatus("Statut inconnu").Display()
	assert.Equal(t, "📦", d.Icon)
	assert.Equal(t, "Statut inconnu", d.Comment)
}

func TestPaymentTransition(t *testing.T) {
	next, ok := PaymentTransition(StatusLivres)
	assert.True(t, ok)
	assert.Equal(t, StatusLivresPayes, next)

	next, ok = PaymentTransition(StatusRetourLegacy)
	assert.True(t, ok)
	assert.Equal(t, StatusRetourEnCoursLegacy, next)

	// Everything else is left untouched.
	untouched := []ParcelStatus{
		StatusEnAttente, StatusAEnlever, StatusEnleve, StatusAuDepot,
		StatusEnCours, StatusRTNDepot, StatusLivresPayes,
		StatusRetourDefinitif, StatusRetourRecu,
	}
	for _, s := range untouched {
		next, ok := PaymentTransition(s)
		assert.False(t, ok, "status %q should not transition on payment", s)
		assert.Equal(t, s, next)
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusEnAttente, StatusAEnlever))
	assert.True(t, CanTransition(StatusAEnlever, StatusEnleve))
	assert.True(t, CanTransition(StatusEnCours, StatusLivres))
	assert.True(t, CanTransition(StatusEnCours, StatusRTNDepot))
	assert.True(t, CanTransition(StatusLivres, StatusLivresPayes))
	assert.True(t, CanTransition(StatusRTNDepot, StatusRetourDefinitif))

	// Same-status writes are always legal.
	for _, s := range AllParcelStatuses() {
		assert.True(t, CanTransition(s, s))
	}

	assert.False(t, CanTransition(StatusEnAttente, StatusLivres))
	assert.False(t, CanTransition(StatusLivres, StatusEnAttente))
	assert.False(t, CanTransition(StatusLivresPayes, StatusLivres))
	assert.False(t, CanTransition(StatusEnAttente, StatusEnleve))
}
