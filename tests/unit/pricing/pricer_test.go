package pricing_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procura/internal/domain"
	"procura/internal/pricing"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPriceLine_NoAdjustments(t *testing.T) {
	result, err := pricing.PriceLine(pricing.LineInput{
		Quantity:  10,
		UnitPrice: d("100"),
	})

	require.NoError(t, err)
	assert.True(t, result.TotalPrice.Equal(d("1000")))
	assert.True(t, result.DiscountAmount.IsZero())
	assert.True(t, result.TaxAmount.IsZero())
	assert.True(t, result.FinalPrice.Equal(d("1000")))
}

func TestPriceLine_RateBasedDiscountAndTax(t *testing.T) {
	// 10 x 100 = 1000; 10% discount = 100; 18% tax on 900 = 162; final 1062.
	result, err := pricing.PriceLine(pricing.LineInput{
		Quantity:  10,
		UnitPrice: d("100"),
		Discount:  pricing.RateAdjustment(pricing.PercentRate(d("10"))),
		Tax:       pricing.RateAdjustment(pricing.PercentRate(d("18"))),
	})

	require.NoError(t, err)
	assert.True(t, result.TotalPrice.Equal(d("1000")))
	assert.True(t, result.DiscountAmount.Equal(d("100")))
	assert.True(t, result.TaxAmount.Equal(d("162")))
	assert.True(t, result.FinalPrice.Equal(d("1062")))
}

func TestPriceLine_ExplicitAmountWinsOverRate(t *testing.T) {
	result, err := pricing.PriceLine(pricing.LineInput{
		Quantity:  10,
		UnitPrice: d("100"),
		Discount: pricing.Adjustment{
			Amount: decimalPtr(d("50")),
			Rate:   pricing.PercentRate(d("10")),
		},
	})

	require.NoError(t, err)
	assert.True(t, result.DiscountAmount.Equal(d("50")))
	assert.True(t, result.FinalPrice.Equal(d("950")))
}

func TestPriceLine_TaxOnPostDiscountBase(t *testing.T) {
	result, err := pricing.PriceLine(pricing.LineInput{
		Quantity:  1,
		UnitPrice: d("200"),
		Discount:  pricing.AmountAdjustment(d("100")),
		Tax:       pricing.RateAdjustment(pricing.PercentRate(d("10"))),
	})

	require.NoError(t, err)
	assert.True(t, result.TaxAmount.Equal(d("10")), "tax applies to 100, not 200")
	assert.True(t, result.FinalPrice.Equal(d("110")))
}

func TestPriceLine_FinalPriceIdentity(t *testing.T) {
	result, err := pricing.PriceLine(pricing.LineInput{
		Quantity:  7,
		UnitPrice: d("33.33"),
		Discount:  pricing.RateAdjustment(pricing.PercentRate(d("5"))),
		Tax:       pricing.RateAdjustment(pricing.PercentRate(d("21"))),
	})

	require.NoError(t, err)
	identity := result.TotalPrice.Sub(result.DiscountAmount).Add(result.TaxAmount)
	assert.True(t, result.FinalPrice.Equal(identity))
}

func TestPriceLine_ZeroQuantity(t *testing.T) {
	_, err := pricing.PriceLine(pricing.LineInput{Quantity: 0, UnitPrice: d("100")})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestPriceLine_NegativeQuantity(t *testing.T) {
	_, err := pricing.PriceLine(pricing.LineInput{Quantity: -3, UnitPrice: d("100")})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestPriceLine_NegativeUnitPrice(t *testing.T) {
	_, err := pricing.PriceLine(pricing.LineInput{Quantity: 1, UnitPrice: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "unit_price", verr.Field)
}

func TestPriceLine_NegativeAdjustments(t *testing.T) {
	_, err := pricing.PriceLine(pricing.LineInput{
		Quantity: 1, UnitPrice: d("100"),
		Discount: pricing.AmountAdjustment(d("-10")),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = pricing.PriceLine(pricing.LineInput{
		Quantity: 1, UnitPrice: d("100"),
		Tax: pricing.RateAdjustment(pricing.PercentRate(d("-18"))),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestPriceLine_DiscountExceedsTotal(t *testing.T) {
	_, err := pricing.PriceLine(pricing.LineInput{
		Quantity:  1,
		UnitPrice: d("100"),
		Discount:  pricing.AmountAdjustment(d("100.01")),
	})
	assert.ErrorIs(t, err, domain.ErrDiscountExceedsTotal)
}

func TestPriceLine_DiscountEqualToTotalAllowed(t *testing.T) {
	result, err := pricing.PriceLine(pricing.LineInput{
		Quantity:  1,
		UnitPrice: d("100"),
		Discount:  pricing.AmountAdjustment(d("100")),
	})
	require.NoError(t, err)
	assert.True(t, result.FinalPrice.IsZero())
}

func TestPriceLine_ZeroUnitPriceAllowed(t *testing.T) {
	result, err := pricing.PriceLine(pricing.LineInput{Quantity: 5, UnitPrice: decimal.Zero})
	require.NoError(t, err)
	assert.True(t, result.FinalPrice.IsZero())
}

func TestBuildLineItem_StoresNormalizedRates(t *testing.T) {
	productID := uuid.New()
	item, err := pricing.BuildLineItem(productID, "Harina 000 25kg", pricing.LineInput{
		Quantity:  4,
		UnitPrice: d("250"),
		Discount:  pricing.RateAdjustment(pricing.PercentRate(d("10"))),
		Tax:       pricing.RateAdjustment(pricing.PercentRate(d("18"))),
	})

	require.NoError(t, err)
	assert.Equal(t, productID, item.ProductID)
	assert.Equal(t, "Harina 000 25kg", item.ProductName)
	require.NotNil(t, item.DiscountRate)
	assert.True(t, item.DiscountRate.Equal(d("0.1")))
	require.NotNil(t, item.TaxRate)
	assert.True(t, item.TaxRate.Equal(d("0.18")))
	assert.True(t, item.TotalPrice.Equal(d("1000")))
	assert.True(t, item.FinalPrice.Equal(d("1062")))
}

func TestBuildLineItem_ExplicitAmountLeavesRateNil(t *testing.T) {
	item, err := pricing.BuildLineItem(uuid.New(), "Azucar 1kg", pricing.LineInput{
		Quantity:  2,
		UnitPrice: d("100"),
		Discount:  pricing.AmountAdjustment(d("20")),
	})

	require.NoError(t, err)
	assert.Nil(t, item.DiscountRate)
	assert.True(t, item.DiscountAmount.Equal(d("20")))
}

func decimalPtr(v decimal.Decimal) *decimal.Decimal { return &v }
