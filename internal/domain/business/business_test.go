package business

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBusiness(t *testing.T) {
	now := time.Now()

	b, err := NewBusiness(7, "  Corner Bakery ", now)
	require.NoError(t, err)
	assert.Equal(t, "Corner Bakery", b.Name())
	assert.True(t, b.IsOwnedBy(7))
	assert.False(t, b.IsOwnedBy(8))
	assert.False(t, b.IsOwnedBy(0))

	_, err = NewBusiness(7, "   ", now)
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = NewBusiness(0, "Bakery", now)
	assert.Error(t, err)
}
