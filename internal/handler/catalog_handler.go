package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"procura/internal/port"
	"procura/internal/service"
)

// CatalogHandler handles product catalog endpoints.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Create handles POST /api/v1/products
// @Summary Create a product
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body CreateProductRequest true "Product details"
// @Success 201 {object} Response{data=domain.Product} "Product created"
// @Security BearerAuth
// @Router /products [post]
func (h *CatalogHandler) Create(c *gin.Context) {
	var input service.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	product, err := h.catalogService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, product)
}

// List handles GET /api/v1/products
// @Summary List products
// @Tags catalog
// @Produce json
// @Param search query string false "Name or SKU search"
// @Param unit query string false "Filter by unit of measure"
// @Param active query bool false "Only active products"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Product,meta=PagMeta} "List of products"
// @Security BearerAuth
// @Router /products [get]
func (h *CatalogHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	filter := port.ProductFilter{
		Search:     c.Query("search"),
		Unit:       c.Query("unit"),
		ActiveOnly: c.Query("active") == "true",
		Offset:     offset,
		Limit:      limit,
	}

	products, total, err := h.catalogService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, products, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/products/:id
func (h *CatalogHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid product ID")
		return
	}

	product, err := h.catalogService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, product)
}

// Update handles PUT /api/v1/products/:id
func (h *CatalogHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid product ID")
		return
	}

	var input service.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	product, err := h.catalogService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, product)
}

// Delete handles DELETE /api/v1/products/:id
func (h *CatalogHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid product ID")
		return
	}

	if err := h.catalogService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "product deleted"})
}

// Options handles GET /api/v1/products/options
// @Summary Product options for an order form
// @Description Selectable products, filtered and pre-filled by the bound contract when contract_id is given
// @Tags catalog
// @Produce json
// @Param contract_id query string false "Bound contract ID (UUID)"
// @Success 200 {object} Response{data=[]service.ProductOption} "Selectable products"
// @Failure 404 {object} ErrorResponseBody "Contract not found"
// @Security BearerAuth
// @Router /products/options [get]
func (h *CatalogHandler) Options(c *gin.Context) {
	var contractID *uuid.UUID
	if raw := c.Query("contract_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid contract ID")
			return
		}
		contractID = &id
	}

	options, err := h.catalogService.OptionsForContract(c.Request.Context(), contractID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, options)
}
