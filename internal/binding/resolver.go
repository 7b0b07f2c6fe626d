// Package binding restricts a purchase order draft to the products,
// quantities, and pricing terms of a referenced contract.
package binding

import (
	"github.com/google/uuid"

	"procura/internal/domain"
)

// Resolver resolves product options and validates order lines against an
// optional bound contract. A nil contract means the order is unbound and any
// catalog product with operator-entered pricing is allowed. Rebinding an
// order means building a new Resolver and re-running ValidateAll.
type Resolver struct {
	contract  *domain.Contract
	byProduct map[uuid.UUID]*domain.LineItem
}

// NewResolver creates a Resolver for the given contract (nil = unbound).
func NewResolver(contract *domain.Contract) *Resolver {
	r := &Resolver{contract: contract}
	if contract != nil {
		r.byProduct = make(map[uuid.UUID]*domain.LineItem, len(contract.Items))
		for i := range contract.Items {
			item := &contract.Items[i]
			r.byProduct[item.ProductID] = item
		}
	}
	return r
}

// Bound reports whether a contract is selected.
func (r *Resolver) Bound() bool {
	return r.contract != nil
}

// Restricted reports whether product selection is limited to contract lines.
// A bound contract with no line items places no product restriction.
func (r *Resolver) Restricted() bool {
	return r.contract != nil && len(r.contract.Items) > 0
}

// SupplierID returns the supplier forced by the contract, or the fallback
// for unbound orders. A bound order's supplier is never independently
// editable.
func (r *Resolver) SupplierID(fallback uuid.UUID) uuid.UUID {
	if r.contract != nil {
		return r.contract.SupplierID
	}
	return fallback
}

// Options filters the catalog to the selectable products: contract-line
// products when restricted, the full catalog otherwise.
func (r *Resolver) Options(catalog []domain.Product) []domain.Product {
	if !r.Restricted() {
		return catalog
	}
	options := make([]domain.Product, 0, len(r.byProduct))
	for i := range catalog {
		if _, ok := r.byProduct[catalog[i].ID]; ok {
			options = append(options, catalog[i])
		}
	}
	return options
}

// Prefill returns a copy of the contract line for the product, carrying the
// contracted quantity, pricing, and note for the form to pre-populate.
// The second return is false when the product has no contract line.
func (r *Resolver) Prefill(productID uuid.UUID) (domain.LineItem, bool) {
	if r.byProduct == nil {
		return domain.LineItem{}, false
	}
	line, ok := r.byProduct[productID]
	if !ok {
		return domain.LineItem{}, false
	}
	prefill := *line
	prefill.ID = uuid.Nil
	prefill.DocumentID = uuid.Nil
	return prefill, true
}

// ValidateLine checks one order line against the bound contract. The index
// is reported back on failure so the caller can highlight the line.
func (r *Resolver) ValidateLine(idx int, item *domain.LineItem) error {
	if !r.Restricted() {
		return nil
	}
	contractLine, ok := r.byProduct[item.ProductID]
	if !ok {
		return domain.NewLineValidationError(idx, "product_id", domain.ErrProductNotOnContract)
	}
	if item.Quantity > contractLine.Quantity {
		return &QuantityError{
			Line:      idx,
			ProductID: item.ProductID,
			Requested: item.Quantity,
			Allowed:   contractLine.Quantity,
		}
	}
	return nil
}

// ValidateAll re-validates every line of a draft, e.g. after the contract
// reference changed. The first failure is returned.
func (r *Resolver) ValidateAll(items []domain.LineItem) error {
	for i := range items {
		if err := r.ValidateLine(i, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

// QuantityError reports an order line whose quantity exceeds the contracted
// quantity, carrying the allowed maximum for the presentation layer.
type QuantityError struct {
	Line      int
	ProductID uuid.UUID
	Requested int64
	Allowed   int64
}

func (e *QuantityError) Error() string {
	return (&domain.ValidationError{Field: "quantity", Line: e.Line, Err: domain.ErrQuantityExceedsContract}).Error()
}

func (e *QuantityError) Unwrap() error { return domain.ErrQuantityExceedsContract }
