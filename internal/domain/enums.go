package domain

// UserRole defines the role hierarchy within the company.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleStaff   UserRole = "staff"
)

// IsValid checks if the role is a known UserRole.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// ContractStatus represents the lifecycle state of a supply contract.
type ContractStatus string

const (
	ContractStatusDraft     ContractStatus = "DRAFT"
	ContractStatusActive    ContractStatus = "ACTIVE"
	ContractStatusCompleted ContractStatus = "COMPLETED"
	ContractStatusCancelled ContractStatus = "CANCELLED"
	ContractStatusExpired   ContractStatus = "EXPIRED"
)

// IsValid checks if the status is a known ContractStatus.
func (s ContractStatus) IsValid() bool {
	switch s {
	case ContractStatusDraft, ContractStatusActive, ContractStatusCompleted,
		ContractStatusCancelled, ContractStatusExpired:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can legally transition to the target status.
func (s ContractStatus) CanTransitionTo(target ContractStatus) bool {
	switch s {
	case ContractStatusDraft:
		return target == ContractStatusActive || target == ContractStatusCancelled
	case ContractStatusActive:
		return target == ContractStatusCompleted || target == ContractStatusCancelled || target == ContractStatusExpired
	case ContractStatusCompleted, ContractStatusCancelled, ContractStatusExpired:
		return false // terminal states
	}
	return false
}

// Editable reports whether documents in this status accept field edits.
func (s ContractStatus) Editable() bool {
	return s == ContractStatusDraft
}

// OrderStatus represents the lifecycle state of a purchase order.
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "DRAFT"
	OrderStatusApproved  OrderStatus = "APPROVED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusApproved, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can legally transition to the target status.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusDraft:
		return target == OrderStatusApproved || target == OrderStatusCancelled
	case OrderStatusApproved:
		return target == OrderStatusCompleted || target == OrderStatusCancelled
	case OrderStatusCompleted, OrderStatusCancelled:
		return false // terminal states
	}
	return false
}

// Editable reports whether orders in this status accept field edits.
func (s OrderStatus) Editable() bool {
	return s == OrderStatusDraft
}

// CanReceive reports whether goods receipts may be recorded in this status.
func (s OrderStatus) CanReceive() bool {
	return s == OrderStatusApproved
}

// DebtRecognitionMode is the supplier-level policy controlling when a
// purchase debt is generated from an approved order.
type DebtRecognitionMode string

const (
	DebtRecognitionImmediate        DebtRecognitionMode = "IMMEDIATE"
	DebtRecognitionByCompletion     DebtRecognitionMode = "BY_COMPLETION"
	DebtRecognitionByReceiptPartial DebtRecognitionMode = "BY_RECEIPT_PARTIAL"
)

// IsValid checks if the mode is a known DebtRecognitionMode.
func (m DebtRecognitionMode) IsValid() bool {
	switch m {
	case DebtRecognitionImmediate, DebtRecognitionByCompletion, DebtRecognitionByReceiptPartial:
		return true
	}
	return false
}

// DebtStatus represents the payment state of a purchase debt.
type DebtStatus string

const (
	DebtStatusPending   DebtStatus = "PENDING"
	DebtStatusPartial   DebtStatus = "PARTIAL"
	DebtStatusPaid      DebtStatus = "PAID"
	DebtStatusOverdue   DebtStatus = "OVERDUE"
	DebtStatusCancelled DebtStatus = "CANCELLED"
)

// IsValid checks if the status is a known DebtStatus.
func (s DebtStatus) IsValid() bool {
	switch s {
	case DebtStatusPending, DebtStatusPartial, DebtStatusPaid, DebtStatusOverdue, DebtStatusCancelled:
		return true
	}
	return false
}

// PaymentTermStatus represents the state of a scheduled contract payment.
type PaymentTermStatus string

const (
	PaymentTermStatusPending   PaymentTermStatus = "PENDING"
	PaymentTermStatusCompleted PaymentTermStatus = "COMPLETED"
	PaymentTermStatusCancelled PaymentTermStatus = "CANCELLED"
	PaymentTermStatusOverdue   PaymentTermStatus = "OVERDUE"
)

// AttachmentType represents the allowed attachment file types.
type AttachmentType string

const (
	AttachmentTypePDF AttachmentType = "pdf"
	AttachmentTypeJPG AttachmentType = "jpg"
	AttachmentTypePNG AttachmentType = "png"
)

// AllowedContentTypes maps MIME content types back to AttachmentType.
var AllowedContentTypes = map[string]AttachmentType{
	"application/pdf": AttachmentTypePDF,
	"image/jpeg":      AttachmentTypeJPG,
	"image/png":       AttachmentTypePNG,
}
