package region_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/region"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegion(t *testing.T) {
	t.Run("should create an active region with a normalized code", func(t *testing.T) {
		r, err := region.NewRegion(kernel.NewUUID(), " Jakarta ", "jkt")

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.Equal(t, "Jakarta", r.Name())
		assert.Equal(t, "JKT", r.Code())
		assert.True(t, r.IsActive())
	})

	t.Run("should join all validation errors", func(t *testing.T) {
		_, err := region.NewRegion(kernel.UUID{}, "", "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "name")
		assert.Contains(t, err.Error(), "code")
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should reject codes with spaces", func(t *testing.T) {
		_, err := region.NewRegion(kernel.NewUUID(), "West Java", "west java")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRegion_ActiveFlag(t *testing.T) {
	r, err := region.RestoreRegion(kernel.NewUUID(), "Bandung", "BDG", false)
	require.NoError(t, err)
	assert.False(t, r.IsActive())

	r.Activate()
	assert.True(t, r.IsActive())

	r.Deactivate()
	assert.False(t, r.IsActive())
}

func TestRegion_Validate(t *testing.T) {
	var r *region.Region

	assert.Equal(t, region.ErrRegionIsNotConstructed, r.Validate())
}
