package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront-service/internal/api/validation"
	"github.com/spec-kit/storefront-service/internal/config"
)

func TestModifyCartRequestQuantityBounds(t *testing.T) {
	req := ModifyCartRequest{Username: "alice", ItemID: 1, Quantity: config.CartQuantityCeiling}
	assert.NoError(t, validation.Struct(req))

	for _, qty := range []int{0, config.CartQuantityCeiling + 1, 1 << 30} {
		req.Quantity = qty
		err := validation.Struct(req)
		require.Error(t, err, qty)
		assert.Contains(t, validation.ToDetails(err), "quantity")
	}
}
