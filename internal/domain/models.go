package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents an authenticated staff member.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Supplier represents a vendor the company procures from. The debt
// recognition fields govern when a Debt is generated from a document.
type Supplier struct {
	ID                  uuid.UUID           `db:"id" json:"id"`
	Name                string              `db:"name" json:"name"`
	TaxID               string              `db:"tax_id" json:"tax_id"`
	Email               string              `db:"email" json:"email"`
	Phone               string              `db:"phone" json:"phone"`
	Address             string              `db:"address" json:"address"`
	DebtRecognitionMode DebtRecognitionMode `db:"debt_recognition_mode" json:"debt_recognition_mode"`
	PaymentTermDays     int                 `db:"payment_term_days" json:"payment_term_days"`
	MaxDebt             decimal.Decimal     `db:"max_debt" json:"max_debt"`
	IsActive            bool                `db:"is_active" json:"is_active"`
	CreatedAt           time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time           `db:"updated_at" json:"updated_at"`
}

// Product represents a catalog entry selectable on contracts and orders.
type Product struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	SKU       string          `db:"sku" json:"sku"`
	Name      string          `db:"name" json:"name"`
	Unit      string          `db:"unit" json:"unit"`
	ListPrice decimal.Decimal `db:"list_price" json:"list_price"`
	IsActive  bool            `db:"is_active" json:"is_active"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// LineItem is one product entry within a contract or purchase order.
// DiscountRate and TaxRate are stored as fractions (0.18 = 18%); exactly one
// of rate/amount is authoritative per adjustment and the derived amounts are
// always persisted alongside.
type LineItem struct {
	ID             uuid.UUID        `db:"id" json:"id"`
	DocumentID     uuid.UUID        `db:"document_id" json:"document_id"`
	ProductID      uuid.UUID        `db:"product_id" json:"product_id"`
	ProductName    string           `db:"product_name" json:"product_name"`
	Quantity       int64            `db:"quantity" json:"quantity"`
	UnitPrice      decimal.Decimal  `db:"unit_price" json:"unit_price"`
	DiscountRate   *decimal.Decimal `db:"discount_rate" json:"discount_rate,omitempty"`
	DiscountAmount decimal.Decimal  `db:"discount_amount" json:"discount_amount"`
	TaxRate        *decimal.Decimal `db:"tax_rate" json:"tax_rate,omitempty"`
	TaxAmount      decimal.Decimal  `db:"tax_amount" json:"tax_amount"`
	TotalPrice     decimal.Decimal  `db:"total_price" json:"total_price"`
	FinalPrice     decimal.Decimal  `db:"final_price" json:"final_price"`
	Note           string           `db:"note" json:"note"`
	SortOrder      int              `db:"sort_order" json:"sort_order"`
}

// Contract represents a supply contract with a supplier.
type Contract struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	ContractNumber string          `db:"contract_number" json:"contract_number"`
	Title          string          `db:"title" json:"title"`
	SupplierID     uuid.UUID       `db:"supplier_id" json:"supplier_id"`
	Status         ContractStatus  `db:"status" json:"status"`
	StartDate      time.Time       `db:"start_date" json:"start_date"`
	SignDate       time.Time       `db:"sign_date" json:"sign_date"`
	EndDate        time.Time       `db:"end_date" json:"end_date"`
	SubTotal       decimal.Decimal `db:"sub_total" json:"sub_total"`
	DiscountAmount decimal.Decimal `db:"discount_amount" json:"discount_amount"`
	TaxAmount      decimal.Decimal `db:"tax_amount" json:"tax_amount"`
	TotalAmount    decimal.Decimal `db:"total_amount" json:"total_amount"`
	Note           string          `db:"note" json:"note"`
	CreatedBy      uuid.UUID       `db:"created_by" json:"created_by"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`

	Items []LineItem    `db:"-" json:"items"`
	Terms []PaymentTerm `db:"-" json:"terms"`
}

// PaymentTerm is a scheduled partial payment obligation within a contract.
type PaymentTerm struct {
	ID          uuid.UUID         `db:"id" json:"id"`
	ContractID  uuid.UUID         `db:"contract_id" json:"contract_id"`
	Title       string            `db:"title" json:"title"`
	PaymentDate *time.Time        `db:"payment_date" json:"payment_date,omitempty"`
	DueDate     time.Time         `db:"due_date" json:"due_date"`
	Amount      decimal.Decimal   `db:"amount" json:"amount"`
	Status      PaymentTermStatus `db:"status" json:"status"`
	SortOrder   int               `db:"sort_order" json:"sort_order"`
}

// PurchaseOrder represents a purchase order, optionally bound to a contract.
type PurchaseOrder struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	OrderNumber    string          `db:"order_number" json:"order_number"`
	SupplierID     uuid.UUID       `db:"supplier_id" json:"supplier_id"`
	ContractID     *uuid.UUID      `db:"contract_id" json:"contract_id,omitempty"`
	Status         OrderStatus     `db:"status" json:"status"`
	OrderDate      time.Time       `db:"order_date" json:"order_date"`
	ApprovedAt     *time.Time      `db:"approved_at" json:"approved_at,omitempty"`
	CompletedAt    *time.Time      `db:"completed_at" json:"completed_at,omitempty"`
	SubTotal       decimal.Decimal `db:"sub_total" json:"sub_total"`
	DiscountAmount decimal.Decimal `db:"discount_amount" json:"discount_amount"`
	TaxAmount      decimal.Decimal `db:"tax_amount" json:"tax_amount"`
	TotalAmount    decimal.Decimal `db:"total_amount" json:"total_amount"`
	Note           string          `db:"note" json:"note"`
	CreatedBy      uuid.UUID       `db:"created_by" json:"created_by"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`

	Items []LineItem `db:"-" json:"items"`
}

// GoodsReceipt records a partial delivery against an approved order line.
type GoodsReceipt struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	OrderID    uuid.UUID       `db:"order_id" json:"order_id"`
	LineItemID uuid.UUID       `db:"line_item_id" json:"line_item_id"`
	Quantity   int64           `db:"quantity" json:"quantity"`
	UnitPrice  decimal.Decimal `db:"unit_price" json:"unit_price"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
	ReceivedBy uuid.UUID       `db:"received_by" json:"received_by"`
	ReceivedAt time.Time       `db:"received_at" json:"received_at"`
}

// Debt represents a payable obligation derived from a purchase document.
// Status is persisted as received from the server of record but is always
// recomputed for display; see the debt package.
type Debt struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	SupplierID      uuid.UUID       `db:"supplier_id" json:"supplier_id"`
	OrderID         uuid.UUID       `db:"order_id" json:"order_id"`
	OriginalAmount  decimal.Decimal `db:"original_amount" json:"original_amount"`
	PaidAmount      decimal.Decimal `db:"paid_amount" json:"paid_amount"`
	RemainingAmount decimal.Decimal `db:"remaining_amount" json:"remaining_amount"`
	DueDate         time.Time       `db:"due_date" json:"due_date"`
	Status          DebtStatus      `db:"status" json:"status"`
	Note            string          `db:"note" json:"note"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// DebtPayment records a single payment applied to a debt.
type DebtPayment struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	DebtID    uuid.UUID       `db:"debt_id" json:"debt_id"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	PaidBy    uuid.UUID       `db:"paid_by" json:"paid_by"`
	Reference string          `db:"reference" json:"reference"`
	PaidAt    time.Time       `db:"paid_at" json:"paid_at"`
}

// ContractAttachment stores metadata about an uploaded contract document.
type ContractAttachment struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	ContractID   uuid.UUID      `db:"contract_id" json:"contract_id"`
	UploadedBy   uuid.UUID      `db:"uploaded_by" json:"uploaded_by"`
	FileName     string         `db:"file_name" json:"file_name"`
	OriginalName string         `db:"original_name" json:"original_name"`
	FileType     AttachmentType `db:"file_type" json:"file_type"`
	FileSize     int64          `db:"file_size" json:"file_size"`
	S3Bucket     string         `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string         `db:"s3_key" json:"s3_key"`
	ContentType  string         `db:"content_type" json:"content_type"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}
