package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type msisdnPayload struct {
	PhoneNumber string `validate:"required,msisdn"`
}

func TestMsisdnRule(t *testing.T) {
	cv := NewValidator()

	valid := []string{"254712345678", "254112345678", "254798765432"}
	for _, number := range valid {
		assert.NoError(t, cv.Validate(msisdnPayload{PhoneNumber: number}), number)
	}

	invalid := []string{"0712345678", "+254712345678", "25471234567", "2547123456789", "254612345678", "not-a-number"}
	for _, number := range invalid {
		assert.Error(t, cv.Validate(msisdnPayload{PhoneNumber: number}), number)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(msisdnPayload{PhoneNumber: "0712345678"})
	require.Error(t, err)

	formatted := cv.FormatValidationErrors(err)
	assert.Equal(t, "PhoneNumber must be a Kenyan mobile number in 254XXXXXXXXX format", formatted["PhoneNumber"])

	err = cv.Validate(msisdnPayload{})
	require.Error(t, err)
	assert.Equal(t, "PhoneNumber is required", cv.FormatValidationErrors(err)["PhoneNumber"])
}
