package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentCreateRequestValidate(t *testing.T) {
	valid := PaymentCreateRequest{
		ShipperID: 3,
		Amount:    450.5,
		Method:    "Espèces",
		ParcelIDs: []uint{1, 2, 3},
	}
	assert.NoError(t, valid.Validate())

	for _, method := range []string{"Espèces", "Chèque", "Virement bancaire"} {
		req := valid
		req.Method = method
		assert.NoError(t, req.Validate())
	}

	req := valid
	req.Method = "Cash"
	assert.Error(t, req.Validate())

	req = valid
	req.Amount = 0
	assert.Error(t, req.Validate())

	req = valid
	req.ParcelIDs = nil
	assert.Error(t, req.Validate())

	req = valid
	req.ShipperID = 0
	assert.Error(t, req.Validate())
}
