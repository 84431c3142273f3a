package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateTrackingNumber(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tn := GenerateTrackingNumber()
		assert.True(t, strings.HasPrefix(tn, "QZ-"))
		assert.Len(t, tn, 15)
		assert.False(t, seen[tn], "tracking numbers should not repeat")
		seen[tn] = true
	}
}

func TestGenerateClientCode(t *testing.T) {
	code := GenerateClientCode()
	assert.True(t, strings.HasPrefix(code, "CL-"))
	assert.Len(t, code, 11)
}

func TestGenerateReference(t *testing.T) {
	ref := GenerateReference("PIK")
	assert.True(t, strings.HasPrefix(ref, "PIK-"))
	assert.Len(t, ref, 12)

	ref = GenerateReference("PAY")
	assert.True(t, strings.HasPrefix(ref, "PAY-"))
}

func TestValidatePhoneNumber(t *testing.T) {
	valid := []string{
		"20123456",
		"98765432",
		"55123456",
		"41234567",
		"+21620123456",
		"  98765432  ",
	}
	for _, phone := range valid {
		assert.True(t, ValidatePhoneNumber(phone), "expected %q to be valid", phone)
	}

	invalid := []string{
		"",
		"1234567",
		"71234567",   // landline prefix not accepted
		"201234567",  // too long
		"2012345",    // too short
		"+21671234567",
		"abcdefgh",
		"+33612345678",
	}
	for _, phone := range invalid {
		assert.False(t, ValidatePhoneNumber(phone), "expected %q to be invalid", phone)
	}
}

func TestIsLikelyBase64(t *testing.T) {
	assert.False(t, isLikelyBase64("short"))
	assert.False(t, isLikelyBase64(strings.Repeat("héllo wörld! ", 20)))
	assert.True(t, isLikelyBase64(strings.Repeat("QUJDREVGR0hJSg==", 10)))
}
