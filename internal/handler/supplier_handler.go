package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"procura/internal/port"
	"procura/internal/service"
)

// SupplierHandler handles supplier management endpoints.
type SupplierHandler struct {
	supplierService service.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler.
func NewSupplierHandler(supplierService service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// Create handles POST /api/v1/suppliers
// @Summary Create a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param request body CreateSupplierRequest true "Supplier details"
// @Success 201 {object} Response{data=domain.Supplier} "Supplier created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Security BearerAuth
// @Router /suppliers [post]
func (h *SupplierHandler) Create(c *gin.Context) {
	var input service.CreateSupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	supplier, err := h.supplierService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, supplier)
}

// List handles GET /api/v1/suppliers
// @Summary List suppliers
// @Tags suppliers
// @Produce json
// @Param search query string false "Name or tax ID search"
// @Param active query bool false "Only active suppliers"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Supplier,meta=PagMeta} "List of suppliers"
// @Security BearerAuth
// @Router /suppliers [get]
func (h *SupplierHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	filter := port.SupplierFilter{
		Search:     c.Query("search"),
		ActiveOnly: c.Query("active") == "true",
		Offset:     offset,
		Limit:      limit,
	}

	suppliers, total, err := h.supplierService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, suppliers, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/suppliers/:id
// @Summary Get supplier by ID
// @Tags suppliers
// @Produce json
// @Param id path string true "Supplier ID (UUID)"
// @Success 200 {object} Response{data=domain.Supplier} "Supplier details"
// @Failure 404 {object} ErrorResponseBody "Supplier not found"
// @Security BearerAuth
// @Router /suppliers/{id} [get]
func (h *SupplierHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid supplier ID")
		return
	}

	supplier, err := h.supplierService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, supplier)
}

// Update handles PUT /api/v1/suppliers/:id
// @Summary Update a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param id path string true "Supplier ID (UUID)"
// @Param request body UpdateSupplierRequest true "Fields to update"
// @Success 200 {object} Response{data=domain.Supplier} "Supplier updated"
// @Failure 404 {object} ErrorResponseBody "Supplier not found"
// @Security BearerAuth
// @Router /suppliers/{id} [put]
func (h *SupplierHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid supplier ID")
		return
	}

	var input service.UpdateSupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	supplier, err := h.supplierService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, supplier)
}

// Delete handles DELETE /api/v1/suppliers/:id
// @Summary Delete a supplier
// @Tags suppliers
// @Produce json
// @Param id path string true "Supplier ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Supplier deleted"
// @Failure 404 {object} ErrorResponseBody "Supplier not found"
// @Security BearerAuth
// @Router /suppliers/{id} [delete]
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid supplier ID")
		return
	}

	if err := h.supplierService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "supplier deleted"})
}

// pagination parses offset/limit query parameters with defaults and caps.
func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
