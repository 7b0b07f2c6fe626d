package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"procura/internal/domain"
	"procura/internal/port"
	"procura/internal/service"
)

// ContractHandler handles supply contract endpoints.
type ContractHandler struct {
	contractService service.ContractService
}

// NewContractHandler creates a new ContractHandler.
func NewContractHandler(contractService service.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

// Create handles POST /api/v1/contracts
// @Summary Create a contract draft
// @Description Create a DRAFT contract with line items and payment terms; totals are computed server-side
// @Tags contracts
// @Accept json
// @Produce json
// @Param request body service.CreateContractInput true "Contract details"
// @Success 201 {object} Response{data=domain.Contract} "Contract created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Security BearerAuth
// @Router /contracts [post]
func (h *ContractHandler) Create(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	contract, err := h.contractService.Create(c.Request.Context(), input, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, contract)
}

// List handles GET /api/v1/contracts
// @Summary List contracts
// @Tags contracts
// @Produce json
// @Param supplier_id query string false "Filter by supplier (UUID)"
// @Param status query string false "Filter by status"
// @Param search query string false "Contract number or title search"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Contract,meta=PagMeta} "List of contracts"
// @Security BearerAuth
// @Router /contracts [get]
func (h *ContractHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	filter := port.ContractFilter{
		Status: domain.ContractStatus(c.Query("status")),
		Search: c.Query("search"),
		Offset: offset,
		Limit:  limit,
	}
	if raw := c.Query("supplier_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid supplier ID")
			return
		}
		filter.SupplierID = &id
	}

	contracts, total, err := h.contractService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, contracts, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/contracts/:id
// @Summary Get contract by ID
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID (UUID)"
// @Success 200 {object} Response{data=domain.Contract} "Contract with items and terms"
// @Failure 404 {object} ErrorResponseBody "Contract not found"
// @Security BearerAuth
// @Router /contracts/{id} [get]
func (h *ContractHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid contract ID")
		return
	}

	contract, err := h.contractService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, contract)
}

// Update handles PUT /api/v1/contracts/:id
// @Summary Edit a contract draft
// @Description Replace the draft's fields, items, and terms; only DRAFT contracts are editable
// @Tags contracts
// @Accept json
// @Produce json
// @Param id path string true "Contract ID (UUID)"
// @Param request body service.UpdateContractInput true "Full contract document"
// @Success 200 {object} Response{data=domain.Contract} "Contract updated"
// @Failure 409 {object} ErrorResponseBody "Contract not editable"
// @Security BearerAuth
// @Router /contracts/{id} [put]
func (h *ContractHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid contract ID")
		return
	}

	var input service.UpdateContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	contract, err := h.contractService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, contract)
}

// Transition handles POST /api/v1/contracts/:id/transition
// @Summary Change contract status
// @Description Apply a status transition (activate, complete, cancel, expire) with guard validation
// @Tags contracts
// @Accept json
// @Produce json
// @Param id path string true "Contract ID (UUID)"
// @Param request body service.TransitionContractInput true "Target status"
// @Success 200 {object} Response{data=domain.Contract} "Contract transitioned"
// @Failure 409 {object} ErrorResponseBody "Illegal transition"
// @Security BearerAuth
// @Router /contracts/{id}/transition [post]
func (h *ContractHandler) Transition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid contract ID")
		return
	}

	var input service.TransitionContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	contract, err := h.contractService.Transition(c.Request.Context(), id, input.Status)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, contract)
}

// Delete handles DELETE /api/v1/contracts/:id
func (h *ContractHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid contract ID")
		return
	}

	if err := h.contractService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "contract deleted"})
}

// UploadAttachment handles POST /api/v1/contracts/:id/attachments
// @Summary Upload a contract attachment
// @Description Upload a scanned contract document (pdf, jpg, png)
// @Tags contracts
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Contract ID (UUID)"
// @Param file formData file true "File to upload"
// @Success 201 {object} Response{data=domain.ContractAttachment} "Attachment stored"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Security BearerAuth
// @Router /contracts/{id}/attachments [post]
func (h *ContractHandler) UploadAttachment(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid contract ID")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "missing file field")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "cannot read uploaded file")
		return
	}
	defer file.Close()

	attachment, err := h.contractService.UploadAttachment(c.Request.Context(), id, service.UploadAttachmentInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        file,
		UploadedBy:  userID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, attachment)
}

// ListAttachments handles GET /api/v1/contracts/:id/attachments
func (h *ContractHandler) ListAttachments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid contract ID")
		return
	}

	attachments, err := h.contractService.ListAttachments(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, attachments)
}

// GetAttachment handles GET /api/v1/attachments/:id
// @Summary Download link for an attachment
// @Description Return attachment metadata with a presigned download URL
// @Tags contracts
// @Produce json
// @Param id path string true "Attachment ID (UUID)"
// @Success 200 {object} Response{data=service.AttachmentDownload} "Attachment with URL"
// @Failure 404 {object} ErrorResponseBody "Attachment not found"
// @Security BearerAuth
// @Router /attachments/{id} [get]
func (h *ContractHandler) GetAttachment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid attachment ID")
		return
	}

	download, err := h.contractService.GetAttachmentURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, download)
}

// DeleteAttachment handles DELETE /api/v1/attachments/:id
func (h *ContractHandler) DeleteAttachment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid attachment ID")
		return
	}

	if err := h.contractService.DeleteAttachment(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "attachment deleted"})
}
