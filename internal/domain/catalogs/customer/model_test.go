package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/types"
)

func TestValidateGSTIN(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		gstin string
		valid bool
	}{
		{name: "valid", gstin: "27AAPFU0939F1ZV", valid: true},
		{name: "valid other state", gstin: "09AABCU9603R1ZM", valid: true},
		{name: "too short", gstin: "27AAPFU0939F1Z", valid: false},
		{name: "lowercase", gstin: "27aapfu0939f1zv", valid: false},
		{name: "missing Z", gstin: "27AAPFU0939F1XV", valid: false},
		{name: "bad state code", gstin: "2XAAPFU0939F1ZV", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New("Sharma Traders")
			c.GSTIN = &tt.gstin

			err := c.Validate(ctx)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				appErr, ok := apperror.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, apperror.CodeValidation, appErr.Code)
			}
		})
	}
}

func TestValidateEmptyGSTINAllowed(t *testing.T) {
	c := New("Walk-in Regular")
	empty := ""
	c.GSTIN = &empty
	assert.NoError(t, c.Validate(context.Background()))
}

func TestValidateNegativeCreditLimit(t *testing.T) {
	c := New("Sharma Traders")
	c.CreditLimit = types.MustMoney("-100")

	err := c.Validate(context.Background())
	require.Error(t, err)
}

func TestHasCreditLimit(t *testing.T) {
	c := New("Sharma Traders")
	assert.False(t, c.HasCreditLimit(), "zero limit means unlimited")

	c.CreditLimit = types.MustMoney("5000")
	assert.True(t, c.HasCreditLimit())
}
