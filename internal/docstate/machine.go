// Package docstate guards contract and purchase order status transitions.
// Guards run synchronously before any persistence; a failed guard leaves the
// document untouched.
package docstate

import (
	"time"

	"procura/internal/domain"
)

// ValidateContractDates checks start <= sign <= end (inclusive).
func ValidateContractDates(start, sign, end time.Time) error {
	if sign.Before(start) {
		return domain.NewValidationError("sign_date", domain.ErrInvalidDateOrdering)
	}
	if end.Before(sign) {
		return domain.NewValidationError("end_date", domain.ErrInvalidDateOrdering)
	}
	return nil
}

// EnsureContractEditable rejects edits to non-DRAFT contracts.
func EnsureContractEditable(c *domain.Contract) error {
	if !c.Status.Editable() {
		return domain.ErrDocumentNotEditable
	}
	return nil
}

// EnsureOrderEditable rejects edits to non-DRAFT orders.
func EnsureOrderEditable(o *domain.PurchaseOrder) error {
	if !o.Status.Editable() {
		return domain.ErrDocumentNotEditable
	}
	return nil
}

// ActivateContract validates the DRAFT -> ACTIVE guards and applies the
// transition: title present, at least one line item, date ordering.
func ActivateContract(c *domain.Contract) error {
	if !c.Status.CanTransitionTo(domain.ContractStatusActive) {
		if !c.Status.Editable() {
			return domain.ErrDocumentNotEditable
		}
		return domain.ErrIllegalTransition
	}
	if c.Title == "" {
		return domain.NewValidationError("title", domain.ErrMissingRequiredField)
	}
	if len(c.Items) == 0 {
		return domain.NewValidationError("items", domain.ErrMissingRequiredField)
	}
	if err := ValidateContractDates(c.StartDate, c.SignDate, c.EndDate); err != nil {
		return err
	}
	c.Status = domain.ContractStatusActive
	return nil
}

// TransitionContract applies a non-activation contract transition
// (COMPLETED, CANCELLED, EXPIRED) after checking legality.
func TransitionContract(c *domain.Contract, target domain.ContractStatus) error {
	if !target.IsValid() {
		return domain.ErrIllegalTransition
	}
	if target == domain.ContractStatusActive {
		return ActivateContract(c)
	}
	if !c.Status.CanTransitionTo(target) {
		return domain.ErrIllegalTransition
	}
	c.Status = target
	return nil
}

// ApproveOrder validates the DRAFT -> APPROVED guards and applies the
// transition: order number present and at least one line item.
func ApproveOrder(o *domain.PurchaseOrder, now time.Time) error {
	if !o.Status.CanTransitionTo(domain.OrderStatusApproved) {
		if !o.Status.Editable() {
			return domain.ErrDocumentNotEditable
		}
		return domain.ErrIllegalTransition
	}
	if o.OrderNumber == "" {
		return domain.NewValidationError("order_number", domain.ErrMissingRequiredField)
	}
	if len(o.Items) == 0 {
		return domain.NewValidationError("items", domain.ErrMissingRequiredField)
	}
	o.Status = domain.OrderStatusApproved
	o.ApprovedAt = &now
	return nil
}

// CompleteOrder applies APPROVED -> COMPLETED.
func CompleteOrder(o *domain.PurchaseOrder, now time.Time) error {
	if !o.Status.CanTransitionTo(domain.OrderStatusCompleted) {
		return domain.ErrIllegalTransition
	}
	o.Status = domain.OrderStatusCompleted
	o.CompletedAt = &now
	return nil
}

// CancelOrder applies a cancellation if legal from the current status.
func CancelOrder(o *domain.PurchaseOrder) error {
	if !o.Status.CanTransitionTo(domain.OrderStatusCancelled) {
		return domain.ErrIllegalTransition
	}
	o.Status = domain.OrderStatusCancelled
	return nil
}
