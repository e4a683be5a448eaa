package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPricingRecord_Validation(t *testing.T) {
	tests := []struct {
		name      string
		blockName string
		price     int64
		monthly   int64
		pt        PricingType
		isFree    bool
		wantErr   error
	}{
		{"valid one-time", "Logo", 4900, 0, PricingTypeOneTime, false, nil},
		{"valid free flag", "Logo", 0, 0, PricingTypeFree, true, nil},
		{"missing name", "", 0, 0, PricingTypeFree, false, ErrBlockNameRequired},
		{"bad type", "Logo", 0, 0, PricingType("weekly"), false, ErrInvalidPricingType},
		{"negative price", "Logo", -1, 0, PricingTypeOneTime, false, ErrInvalidPrice},
		{"negative monthly", "Logo", 0, -1, PricingTypeMonthly, false, ErrInvalidPrice},
		{"free flag with monthly type", "Logo", 0, 900, PricingTypeMonthly, true, ErrFreeFlagMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := NewPricingRecord(tt.blockName, tt.price, tt.monthly, tt.pt, tt.isFree)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, record)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.blockName, record.BlockName())
		})
	}
}

func TestPricingRecord_Update(t *testing.T) {
	record, err := NewPricingRecord("Logo", 4900, 0, PricingTypeOneTime, false)
	require.NoError(t, err)

	require.NoError(t, record.Update(0, 1900, PricingTypeMonthly, false))
	assert.Equal(t, PricingTypeMonthly, record.PricingType())
	assert.Equal(t, int64(1900), record.MonthlyPriceCents())

	err = record.Update(0, 0, PricingTypeOneTime, true)
	assert.ErrorIs(t, err, ErrFreeFlagMismatch)
	assert.Equal(t, PricingTypeMonthly, record.PricingType())
}

func TestPricingRecord_SetID(t *testing.T) {
	record, err := NewPricingRecord("Logo", 0, 0, PricingTypeFree, false)
	require.NoError(t, err)

	assert.Error(t, record.SetID(0))
	require.NoError(t, record.SetID(7))
	assert.Equal(t, uint(7), record.ID())
	assert.Error(t, record.SetID(8))
}
