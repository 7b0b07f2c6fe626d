package pricing

import (
	"github.com/shopspring/decimal"

	"procura/internal/domain"
)

// DocumentTotals holds the rolled-up totals of a commercial document.
type DocumentTotals struct {
	SubTotal       decimal.Decimal `json:"sub_total"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// Aggregate sums line items into document totals:
//
//	subTotal       = Σ totalPrice
//	discountAmount = Σ discountAmount
//	taxAmount      = Σ taxAmount
//	totalAmount    = Σ finalPrice
//
// Totals are order-independent and the function is idempotent; callers
// recompute on every insertion, removal, or edit of a line.
func Aggregate(items []domain.LineItem) DocumentTotals {
	var t DocumentTotals
	for i := range items {
		item := &items[i]
		t.SubTotal = t.SubTotal.Add(item.TotalPrice)
		t.DiscountAmount = t.DiscountAmount.Add(item.DiscountAmount)
		t.TaxAmount = t.TaxAmount.Add(item.TaxAmount)
		t.TotalAmount = t.TotalAmount.Add(item.FinalPrice)
	}
	return t
}

// ApplyToContract writes aggregated totals onto a contract.
func ApplyToContract(c *domain.Contract) {
	t := Aggregate(c.Items)
	c.SubTotal = t.SubTotal
	c.DiscountAmount = t.DiscountAmount
	c.TaxAmount = t.TaxAmount
	c.TotalAmount = t.TotalAmount
}

// ApplyToOrder writes aggregated totals onto a purchase order.
func ApplyToOrder(o *domain.PurchaseOrder) {
	t := Aggregate(o.Items)
	o.SubTotal = t.SubTotal
	o.DiscountAmount = t.DiscountAmount
	o.TaxAmount = t.TaxAmount
	o.TotalAmount = t.TotalAmount
}
