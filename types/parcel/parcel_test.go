package parcel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParcelCreateRequestValidate(t *testing.T) {
	valid := ParcelCreateRequest{
		ShipperID:      1,
		Weight:         5,
		Price:          120,
		Destination:    "Sfax",
		RecipientName:  "Ahmed Ben Salah",
		RecipientPhone: "98765432",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*ParcelCreateRequest)
	}{
		{"missing shipper", func(r *ParcelCreateRequest) { r.ShipperID = 0 }},
		{"negative weight", func(r *ParcelCreateRequest) { r.Weight = -1 }},
		{"negative price", func(r *ParcelCreateRequest) { r.Price = -1 }},
		{"missing destination", func(r *ParcelCreateRequest) { r.Destination = "" }},
		{"missing recipient name", func(r *ParcelCreateRequest) { r.RecipientName = "" }},
		{"missing recipient phone", func(r *ParcelCreateRequest) { r.RecipientPhone = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestParcelUpdateRequestValidate(t *testing.T) {
	empty := ParcelUpdateRequest{}
	assert.NoError(t, empty.Validate())

	status := "Livrés"
	assert.NoError(t, (&ParcelUpdateRequest{Status: &status}).Validate())

	bogus := "Delivered"
	assert.Error(t, (&ParcelUpdateRequest{Status: &bogus}).Validate())

	legacy := "Retour"
	assert.Error(t, (&ParcelUpdateRequest{Status: &legacy}).Validate())

	negWeight := -2.0
	assert.Error(t, (&ParcelUpdateRequest{Weight: &negWeight}).Validate())

	emptyDest := ""
	assert.Error(t, (&ParcelUpdateRequest{Destination: &emptyDest}).Validate())
}
