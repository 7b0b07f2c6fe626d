package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"procura/internal/domain"
)

// Adjustment is a discount or tax specifier for one line. Exactly one of
// Amount/Rate is authoritative: an explicit Amount wins over a Rate. The
// zero value means no adjustment.
type Adjustment struct {
	Amount *decimal.Decimal
	Rate   Rate
}

// AmountAdjustment builds an explicit-amount adjustment.
func AmountAdjustment(amount decimal.Decimal) Adjustment {
	return Adjustment{Amount: &amount}
}

// RateAdjustment builds a rate-based adjustment.
func RateAdjustment(rate Rate) Adjustment {
	return Adjustment{Rate: rate}
}

// resolve computes the adjustment amount against a base.
func (a Adjustment) resolve(base decimal.Decimal) decimal.Decimal {
	if a.Amount != nil {
		return *a.Amount
	}
	return base.Mul(a.Rate.Fraction())
}

// LineInput is the input to PriceLine.
type LineInput struct {
	Quantity  int64
	UnitPrice decimal.Decimal
	Discount  Adjustment
	Tax       Adjustment
	Note      string
}

// LineResult holds the derived prices for one line.
type LineResult struct {
	TotalPrice     decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	FinalPrice     decimal.Decimal
}

// PriceLine computes the derived amounts for a single product line:
//
//	totalPrice     = quantity * unitPrice
//	discountAmount = explicit amount, or totalPrice * discountRate
//	taxAmount      = explicit amount, or (totalPrice - discountAmount) * taxRate
//	finalPrice     = totalPrice - discountAmount + taxAmount
//
// Tax is computed on the post-discount base unless an explicit tax amount is
// supplied. Pure function, no side effects.
func PriceLine(in LineInput) (LineResult, error) {
	if in.Quantity <= 0 {
		return LineResult{}, domain.NewValidationError("quantity", domain.ErrInvalidQuantity)
	}
	if in.UnitPrice.IsNegative() {
		return LineResult{}, domain.NewValidationError("unit_price", domain.ErrInvalidPrice)
	}
	if in.Discount.Amount != nil && in.Discount.Amount.IsNegative() {
		return LineResult{}, domain.NewValidationError("discount_amount", domain.ErrInvalidPrice)
	}
	if in.Discount.Amount == nil && in.Discount.Rate.IsNegative() {
		return LineResult{}, domain.NewValidationError("discount_rate", domain.ErrInvalidPrice)
	}
	if in.Tax.Amount != nil && in.Tax.Amount.IsNegative() {
		return LineResult{}, domain.NewValidationError("tax_amount", domain.ErrInvalidPrice)
	}
	if in.Tax.Amount == nil && in.Tax.Rate.IsNegative() {
		return LineResult{}, domain.NewValidationError("tax_rate", domain.ErrInvalidPrice)
	}

	totalPrice := decimal.NewFromInt(in.Quantity).Mul(in.UnitPrice)

	discountAmount := in.Discount.resolve(totalPrice)
	if discountAmount.GreaterThan(totalPrice) {
		return LineResult{}, domain.NewValidationError("discount_amount", domain.ErrDiscountExceedsTotal)
	}

	priceAfterDiscount := totalPrice.Sub(discountAmount)
	taxAmount := in.Tax.resolve(priceAfterDiscount)
	finalPrice := priceAfterDiscount.Add(taxAmount)

	return LineResult{
		TotalPrice:     totalPrice,
		DiscountAmount: discountAmount,
		TaxAmount:      taxAmount,
		FinalPrice:     finalPrice,
	}, nil
}

// BuildLineItem prices a line and materializes a domain.LineItem carrying
// both the inputs and the derived amounts. The stored rates are the
// normalized fractions; explicit amounts leave the rate nil.
func BuildLineItem(productID uuid.UUID, productName string, in LineInput) (*domain.LineItem, error) {
	result, err := PriceLine(in)
	if err != nil {
		return nil, err
	}

	item := &domain.LineItem{
		ProductID:      productID,
		ProductName:    productName,
		Quantity:       in.Quantity,
		UnitPrice:      in.UnitPrice,
		DiscountAmount: result.DiscountAmount,
		TaxAmount:      result.TaxAmount,
		TotalPrice:     result.TotalPrice,
		FinalPrice:     result.FinalPrice,
		Note:           in.Note,
	}
	if in.Discount.Amount == nil {
		f := in.Discount.Rate.Fraction()
		item.DiscountRate = &f
	}
	if in.Tax.Amount == nil {
		f := in.Tax.Rate.Fraction()
		item.TaxRate = &f
	}
	return item, nil
}
