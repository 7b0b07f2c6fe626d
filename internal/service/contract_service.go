package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"procura/internal/config"
	"procura/internal/docstate"
	"procura/internal/domain"
	"procura/internal/port"
	"procura/internal/pricing"
)

// LineItemInput is the DTO for one document line. Rates arrive as percent
// values (18 = 18%); explicit amounts win over rates.
type LineItemInput struct {
	ProductID      uuid.UUID        `json:"product_id" binding:"required"`
	Quantity       int64            `json:"quantity" binding:"required"`
	UnitPrice      decimal.Decimal  `json:"unit_price"`
	DiscountRate   *decimal.Decimal `json:"discount_rate"`
	DiscountAmount *decimal.Decimal `json:"discount_amount"`
	TaxRate        *decimal.Decimal `json:"tax_rate"`
	TaxAmount      *decimal.Decimal `json:"tax_amount"`
	Note           string           `json:"note"`
}

// PaymentTermInput is the DTO for one scheduled contract payment.
type PaymentTermInput struct {
	Title       string          `json:"title" binding:"required"`
	DueDate     time.Time       `json:"due_date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate *time.Time      `json:"payment_date"`
}

// CreateContractInput is the DTO for creating a contract draft.
type CreateContractInput struct {
	ContractNumber string             `json:"contract_number" binding:"required"`
	Title          string             `json:"title" binding:"required"`
	SupplierID     uuid.UUID          `json:"supplier_id" binding:"required"`
	StartDate      time.Time          `json:"start_date" binding:"required"`
	SignDate       time.Time          `json:"sign_date" binding:"required"`
	EndDate        time.Time          `json:"end_date" binding:"required"`
	Note           string             `json:"note"`
	Items          []LineItemInput    `json:"items"`
	Terms          []PaymentTermInput `json:"terms"`
}

// UpdateContractInput is the DTO for editing a contract draft. The full
// document is resubmitted; totals are recomputed server-side.
type UpdateContractInput struct {
	ContractNumber string             `json:"contract_number" binding:"required"`
	Title          string             `json:"title" binding:"required"`
	SupplierID     uuid.UUID          `json:"supplier_id" binding:"required"`
	StartDate      time.Time          `json:"start_date" binding:"required"`
	SignDate       time.Time          `json:"sign_date" binding:"required"`
	EndDate        time.Time          `json:"end_date" binding:"required"`
	Note           string             `json:"note"`
	Items          []LineItemInput    `json:"items"`
	Terms          []PaymentTermInput `json:"terms"`
}

// TransitionContractInput is the DTO for a contract status change.
type TransitionContractInput struct {
	Status domain.ContractStatus `json:"status" binding:"required"`
}

// UploadAttachmentInput carries an attachment upload.
type UploadAttachmentInput struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
	UploadedBy  uuid.UUID
}

// AttachmentDownload pairs attachment metadata with a presigned URL.
type AttachmentDownload struct {
	Attachment *domain.ContractAttachment `json:"attachment"`
	URL        string                     `json:"url"`
}

// ContractService defines the supply contract management contract.
type ContractService interface {
	Create(ctx context.Context, input CreateContractInput, createdBy uuid.UUID) (*domain.Contract, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Contract, error)
	List(ctx context.Context, filter port.ContractFilter) ([]domain.Contract, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateContractInput) (*domain.Contract, error)
	Transition(ctx context.Context, id uuid.UUID, target domain.ContractStatus) (*domain.Contract, error)
	Delete(ctx context.Context, id uuid.UUID) error

	UploadAttachment(ctx context.Context, contractID uuid.UUID, input UploadAttachmentInput) (*domain.ContractAttachment, error)
	ListAttachments(ctx context.Context, contractID uuid.UUID) ([]domain.ContractAttachment, error)
	GetAttachmentURL(ctx context.Context, attachmentID uuid.UUID) (*AttachmentDownload, error)
	DeleteAttachment(ctx context.Context, attachmentID uuid.UUID) error
}

type contractService struct {
	contractRepo port.ContractRepository
	supplierRepo port.SupplierRepository
	productRepo  port.ProductRepository
	storage      port.ObjectStorage
	s3cfg        config.S3Config
}

// NewContractService creates a new ContractService implementation.
func NewContractService(
	contractRepo port.ContractRepository,
	supplierRepo port.SupplierRepository,
	productRepo port.ProductRepository,
	storage port.ObjectStorage,
	s3cfg config.S3Config,
) ContractService {
	return &contractService{
		contractRepo: contractRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		storage:      storage,
		s3cfg:        s3cfg,
	}
}

func (s *contractService) Create(ctx context.Context, input CreateContractInput, createdBy uuid.UUID) (*domain.Contract, error) {
	if err := docstate.ValidateContractDates(input.StartDate, input.SignDate, input.EndDate); err != nil {
		return nil, err
	}

	supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.IsActive {
		return nil, domain.ErrSupplierInactive
	}

	items, err := buildLineItems(ctx, s.productRepo, input.Items)
	if err != nil {
		return nil, err
	}
	terms, err := buildTerms(input.Terms)
	if err != nil {
		return nil, err
	}

	contract := &domain.Contract{
		ContractNumber: input.ContractNumber,
		Title:          input.Title,
		SupplierID:     input.SupplierID,
		Status:         domain.ContractStatusDraft,
		StartDate:      input.StartDate,
		SignDate:       input.SignDate,
		EndDate:        input.EndDate,
		Note:           input.Note,
		CreatedBy:      createdBy,
		Items:          items,
		Terms:          terms,
	}
	pricing.ApplyToContract(contract)

	if err := s.contractRepo.Create(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

func (s *contractService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	deriveTermStatuses(contract, time.Now().UTC())
	return contract, nil
}

func (s *contractService) List(ctx context.Context, filter port.ContractFilter) ([]domain.Contract, int, error) {
	contracts, total, err := s.contractRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	now := time.Now().UTC()
	for i := range contracts {
		deriveTermStatuses(&contracts[i], now)
	}
	return contracts, total, nil
}

// deriveTermStatuses marks unpaid scheduled payments past their due date as
// OVERDUE for display. The stored status is not touched.
func deriveTermStatuses(c *domain.Contract, now time.Time) {
	for i := range c.Terms {
		t := &c.Terms[i]
		if t.Status == domain.PaymentTermStatusPending && t.PaymentDate == nil && now.After(t.DueDate) {
			t.Status = domain.PaymentTermStatusOverdue
		}
	}
}

func (s *contractService) Update(ctx context.Context, id uuid.UUID, input UpdateContractInput) (*domain.Contract, error) {
	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := docstate.EnsureContractEditable(contract); err != nil {
		return nil, err
	}
	if err := docstate.ValidateContractDates(input.StartDate, input.SignDate, input.EndDate); err != nil {
		return nil, err
	}

	supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.IsActive {
		return nil, domain.ErrSupplierInactive
	}

	items, err := buildLineItems(ctx, s.productRepo, input.Items)
	if err != nil {
		return nil, err
	}
	terms, err := buildTerms(input.Terms)
	if err != nil {
		return nil, err
	}

	contract.ContractNumber = input.ContractNumber
	contract.Title = input.Title
	contract.SupplierID = input.SupplierID
	contract.StartDate = input.StartDate
	contract.SignDate = input.SignDate
	contract.EndDate = input.EndDate
	contract.Note = input.Note
	contract.Items = items
	contract.Terms = terms
	pricing.ApplyToContract(contract)

	if err := s.contractRepo.Update(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

func (s *contractService) Transition(ctx context.Context, id uuid.UUID, target domain.ContractStatus) (*domain.Contract, error) {
	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := docstate.TransitionContract(contract, target); err != nil {
		return nil, err
	}
	if err := s.contractRepo.UpdateStatus(ctx, id, contract.Status); err != nil {
		return nil, err
	}
	return contract, nil
}

func (s *contractService) Delete(ctx context.Context, id uuid.UUID) error {
	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := docstate.EnsureContractEditable(contract); err != nil {
		return err
	}
	return s.contractRepo.Delete(ctx, id)
}

// buildLineItems loads the referenced products and prices each line.
func buildLineItems(ctx context.Context, productRepo port.ProductRepository, inputs []LineItemInput) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(inputs))
	for i, in := range inputs {
		product, err := productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NewLineValidationError(i, "product_id", domain.ErrNotFound)
			}
			return nil, err
		}

		unitPrice := in.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = product.ListPrice
		}

		item, err := pricing.BuildLineItem(product.ID, product.Name, pricing.LineInput{
			Quantity:  in.Quantity,
			UnitPrice: unitPrice,
			Discount:  toAdjustment(in.DiscountAmount, in.DiscountRate),
			Tax:       toAdjustment(in.TaxAmount, in.TaxRate),
			Note:      in.Note,
		})
		if err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) && verr.Line < 0 {
				return nil, domain.NewLineValidationError(i, verr.Field, verr.Err)
			}
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// toAdjustment builds a pricing adjustment from DTO fields. Percent rates
// are normalized inside the pricing package.
func toAdjustment(amount, rate *decimal.Decimal) pricing.Adjustment {
	if amount != nil {
		return pricing.AmountAdjustment(*amount)
	}
	if rate != nil {
		return pricing.RateAdjustment(pricing.PercentRate(*rate))
	}
	return pricing.Adjustment{}
}

func buildTerms(inputs []PaymentTermInput) ([]domain.PaymentTerm, error) {
	terms := make([]domain.PaymentTerm, 0, len(inputs))
	for i, in := range inputs {
		if in.Amount.IsNegative() {
			return nil, domain.NewLineValidationError(i, "amount", domain.ErrInvalidPrice)
		}
		terms = append(terms, domain.PaymentTerm{
			Title:       in.Title,
			DueDate:     in.DueDate,
			PaymentDate: in.PaymentDate,
			Amount:      in.Amount,
			Status:      domain.PaymentTermStatusPending,
		})
	}
	return terms, nil
}

func (s *contractService) UploadAttachment(ctx context.Context, contractID uuid.UUID, input UploadAttachmentInput) (*domain.ContractAttachment, error) {
	if _, err := s.contractRepo.GetByID(ctx, contractID); err != nil {
		return nil, err
	}

	fileType, ok := domain.AllowedContentTypes[input.ContentType]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if input.Size > s.s3cfg.MaxFileSizeMB*1024*1024 {
		return nil, domain.ErrFileTooLarge
	}

	key := fmt.Sprintf("contracts/%s/%s%s", contractID, uuid.New(), filepath.Ext(input.FileName))
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:             s.s3cfg.Bucket,
		Key:                key,
		Body:               input.Body,
		ContentType:        input.ContentType,
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", input.FileName),
		Size:               input.Size,
	})
	if err != nil {
		log.Printf("contractService.UploadAttachment: upload failed for contract %s: %v", contractID, err)
		return nil, domain.ErrUploadFailed
	}

	attachment := &domain.ContractAttachment{
		ContractID:   contractID,
		UploadedBy:   input.UploadedBy,
		FileName:     filepath.Base(key),
		OriginalName: input.FileName,
		FileType:     fileType,
		FileSize:     input.Size,
		S3Bucket:     s.s3cfg.Bucket,
		S3Key:        key,
		ContentType:  input.ContentType,
	}
	if err := s.contractRepo.CreateAttachment(ctx, attachment); err != nil {
		// Orphaned object; best effort cleanup.
		if derr := s.storage.Delete(ctx, s.s3cfg.Bucket, key); derr != nil {
			log.Printf("contractService.UploadAttachment: cleanup of %s failed: %v", key, derr)
		}
		return nil, err
	}
	return attachment, nil
}

func (s *contractService) ListAttachments(ctx context.Context, contractID uuid.UUID) ([]domain.ContractAttachment, error) {
	if _, err := s.contractRepo.GetByID(ctx, contractID); err != nil {
		return nil, err
	}
	return s.contractRepo.ListAttachments(ctx, contractID)
}

func (s *contractService) GetAttachmentURL(ctx context.Context, attachmentID uuid.UUID) (*AttachmentDownload, error) {
	attachment, err := s.contractRepo.GetAttachment(ctx, attachmentID)
	if err != nil {
		return nil, err
	}
	url, err := s.storage.GetPresignedURL(ctx, attachment.S3Bucket, attachment.S3Key, s.s3cfg.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("contractService.GetAttachmentURL: %w", err)
	}
	return &AttachmentDownload{Attachment: attachment, URL: url}, nil
}

func (s *contractService) DeleteAttachment(ctx context.Context, attachmentID uuid.UUID) error {
	attachment, err := s.contractRepo.GetAttachment(ctx, attachmentID)
	if err != nil {
		return err
	}
	if err := s.contractRepo.DeleteAttachment(ctx, attachmentID); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, attachment.S3Bucket, attachment.S3Key); err != nil {
		log.Printf("contractService.DeleteAttachment: object delete failed for %s: %v", attachment.S3Key, err)
	}
	return nil
}
