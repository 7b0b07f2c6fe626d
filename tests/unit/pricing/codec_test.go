package pricing_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"procura/internal/domain"
	"procura/internal/pricing"
)

// Decimal amounts encode as JSON strings, so totals survive a round trip
// through the API exactly.
func TestLineItem_JSONRoundTripPreservesTotals(t *testing.T) {
	item, err := pricing.BuildLineItem(uuid.New(), "Harina 000 25kg", pricing.LineInput{
		Quantity:  3,
		UnitPrice: d("33.33"),
		Discount:  pricing.RateAdjustment(pricing.PercentRate(d("7.5"))),
		Tax:       pricing.RateAdjustment(pricing.PercentRate(d("18"))),
	})
	require.NoError(t, err)

	raw, err := json.Marshal(item)
	require.NoError(t, err)

	var decoded domain.LineItem
	require.NoError(t, json.Unmarshal(raw, &decoded))

	require.True(t, decoded.TotalPrice.Equal(item.TotalPrice))
	require.True(t, decoded.DiscountAmount.Equal(item.DiscountAmount))
	require.True(t, decoded.TaxAmount.Equal(item.TaxAmount))
	require.True(t, decoded.FinalPrice.Equal(item.FinalPrice))
	require.Equal(t, item.Quantity, decoded.Quantity)
}
