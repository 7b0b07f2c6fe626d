package pricing_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procura/internal/domain"
	"procura/internal/pricing"
)

func priceItems(t *testing.T) []domain.LineItem {
	t.Helper()

	a, err := pricing.BuildLineItem(uuid.New(), "A", pricing.LineInput{
		Quantity: 10, UnitPrice: d("100"),
		Discount: pricing.RateAdjustment(pricing.PercentRate(d("10"))),
		Tax:      pricing.RateAdjustment(pricing.PercentRate(d("18"))),
	})
	require.NoError(t, err)

	b, err := pricing.BuildLineItem(uuid.New(), "B", pricing.LineInput{
		Quantity: 5, UnitPrice: d("40"),
	})
	require.NoError(t, err)

	return []domain.LineItem{*a, *b}
}

func TestAggregate_SumsAllComponents(t *testing.T) {
	totals := pricing.Aggregate(priceItems(t))

	// A: total 1000, discount 100, tax 162, final 1062. B: total 200, final 200.
	assert.True(t, totals.SubTotal.Equal(d("1200")))
	assert.True(t, totals.DiscountAmount.Equal(d("100")))
	assert.True(t, totals.TaxAmount.Equal(d("162")))
	assert.True(t, totals.TotalAmount.Equal(d("1262")))
}

func TestAggregate_OrderIndependent(t *testing.T) {
	items := priceItems(t)
	forward := pricing.Aggregate(items)
	reversed := pricing.Aggregate([]domain.LineItem{items[1], items[0]})

	assert.True(t, forward.TotalAmount.Equal(reversed.TotalAmount))
	assert.True(t, forward.SubTotal.Equal(reversed.SubTotal))
}

func TestAggregate_Idempotent(t *testing.T) {
	items := priceItems(t)
	first := pricing.Aggregate(items)
	second := pricing.Aggregate(items)

	assert.True(t, first.TotalAmount.Equal(second.TotalAmount))
}

func TestAggregate_Empty(t *testing.T) {
	totals := pricing.Aggregate(nil)
	assert.True(t, totals.SubTotal.IsZero())
	assert.True(t, totals.TotalAmount.IsZero())
}

func TestApplyToContract(t *testing.T) {
	c := &domain.Contract{Items: priceItems(t)}
	pricing.ApplyToContract(c)

	assert.True(t, c.SubTotal.Equal(d("1200")))
	assert.True(t, c.TotalAmount.Equal(d("1262")))
}

func TestApplyToOrder_RecomputesAfterEdit(t *testing.T) {
	o := &domain.PurchaseOrder{Items: priceItems(t)}
	pricing.ApplyToOrder(o)
	assert.True(t, o.TotalAmount.Equal(d("1262")))

	// Dropping a line and re-aggregating reflects only the remaining lines.
	o.Items = o.Items[:1]
	pricing.ApplyToOrder(o)
	assert.True(t, o.TotalAmount.Equal(d("1062")))
}
