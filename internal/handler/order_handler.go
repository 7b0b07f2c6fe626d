package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"procura/internal/domain"
	"procura/internal/port"
	"procura/internal/service"
)

// OrderHandler handles purchase order endpoints.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create handles POST /api/v1/orders
// @Summary Create an order draft
// @Description Create a DRAFT purchase order, optionally bound to an active contract
// @Tags orders
// @Accept json
// @Produce json
// @Param request body service.CreateOrderInput true "Order details"
// @Success 201 {object} Response{data=domain.PurchaseOrder} "Order created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Security BearerAuth
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), input, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, order)
}

// List handles GET /api/v1/orders
// @Summary List orders
// @Tags orders
// @Produce json
// @Param supplier_id query string false "Filter by supplier (UUID)"
// @Param contract_id query string false "Filter by bound contract (UUID)"
// @Param status query string false "Filter by status"
// @Param search query string false "Order number search"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.PurchaseOrder,meta=PagMeta} "List of orders"
// @Security BearerAuth
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	filter := port.OrderFilter{
		Status: domain.OrderStatus(c.Query("status")),
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
	if raw := c.Query("contract_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid contract ID")
			return
		}
		filter.ContractID = &id
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, orders, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/orders/:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid order ID")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, order)
}

// Update handles PUT /api/v1/orders/:id
// @Summary Edit an order draft
// @Description Replace the draft's fields and items; rebinding revalidates all lines
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Param request body service.UpdateOrderInput true "Full order document"
// @Success 200 {object} Response{data=domain.PurchaseOrder} "Order updated"
// @Failure 409 {object} ErrorResponseBody "Order not editable"
// @Security BearerAuth
// @Router /orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid order ID")
		return
	}

	var input service.UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, order)
}

// Approve handles POST /api/v1/orders/:id/approve
// @Summary Approve an order
// @Description Move DRAFT to APPROVED; creates the supplier debt for immediate recognition suppliers
// @Tags orders
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Success 200 {object} Response{data=domain.PurchaseOrder} "Order approved"
// @Failure 409 {object} ErrorResponseBody "Illegal transition or debt ceiling exceeded"
// @Security BearerAuth
// @Router /orders/{id}/approve [post]
func (h *OrderHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid order ID")
		return
	}

	order, err := h.orderService.Approve(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, order)
}

// Complete handles POST /api/v1/orders/:id/complete
// @Summary Complete an order
// @Description Move APPROVED to COMPLETED; creates the debt for on-completion recognition suppliers
// @Tags orders
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Success 200 {object} Response{data=domain.PurchaseOrder} "Order completed"
// @Failure 409 {object} ErrorResponseBody "Illegal transition"
// @Security BearerAuth
// @Router /orders/{id}/complete [post]
func (h *OrderHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid order ID")
		return
	}

	order, err := h.orderService.Complete(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, order)
}

// Cancel handles POST /api/v1/orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid order ID")
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, order)
}

// Delete handles DELETE /api/v1/orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid order ID")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "order deleted"})
}

// RecordReceipt handles POST /api/v1/orders/:id/receipts
// @Summary Record a goods receipt
// @Description Record a partial delivery against an approved order line; may create a debt increment
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Param request body service.RecordReceiptInput true "Receipt details"
// @Success 201 {object} Response{data=domain.GoodsReceipt} "Receipt recorded"
// @Failure 400 {object} ErrorResponseBody "Quantity exceeds ordered"
// @Security BearerAuth
// @Router /orders/{id}/receipts [post]
func (h *OrderHandler) RecordReceipt(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid order ID")
		return
	}

	var input service.RecordReceiptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	receipt, err := h.orderService.RecordReceipt(c.Request.Context(), id, input, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, receipt)
}

// ListReceipts handles GET /api/v1/orders/:id/receipts
func (h *OrderHandler) ListReceipts(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid order ID")
		return
	}

	receipts, err := h.orderService.ListReceipts(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, receipts)
}
