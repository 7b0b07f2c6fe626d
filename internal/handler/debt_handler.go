package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"procura/internal/config"
	"procura/internal/domain"
	"procura/internal/port"
	"procura/internal/service"
)

// DebtHandler handles supplier debt endpoints.
type DebtHandler struct {
	debtService service.DebtService
	reminderCfg config.ReminderConfig
}

// NewDebtHandler creates a new DebtHandler.
func NewDebtHandler(debtService service.DebtService, reminderCfg config.ReminderConfig) *DebtHandler {
	return &DebtHandler{debtService: debtService, reminderCfg: reminderCfg}
}

// List handles GET /api/v1/debts
// @Summary List debts
// @Description List debts with derived status and payment progress
// @Tags debts
// @Produce json
// @Param supplier_id query string false "Filter by supplier (UUID)"
// @Param status query string false "Filter by stored status"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]service.DebtView,meta=PagMeta} "List of debts"
// @Security BearerAuth
// @Router /debts [get]
func (h *DebtHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	filter := port.DebtFilter{
		Status: domain.DebtStatus(c.Query("status")),
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

	debts, total, err := h.debtService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, debts, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/debts/:id
// @Summary Get debt by ID
// @Description Debt with derived status; status_divergent flags stored/derived disagreement
// @Tags debts
// @Produce json
// @Param id path string true "Debt ID (UUID)"
// @Success 200 {object} Response{data=service.DebtView} "Debt details"
// @Failure 404 {object} ErrorResponseBody "Debt not found"
// @Security BearerAuth
// @Router /debts/{id} [get]
func (h *DebtHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid debt ID")
		return
	}

	debt, err := h.debtService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, debt)
}

// RecordPayment handles POST /api/v1/debts/:id/payments
// @Summary Record a payment
// @Description Apply a payment to a debt; overpayment is rejected
// @Tags debts
// @Accept json
// @Produce json
// @Param id path string true "Debt ID (UUID)"
// @Param request body service.RecordPaymentInput true "Payment details"
// @Success 200 {object} Response{data=service.DebtView} "Updated debt"
// @Failure 400 {object} ErrorResponseBody "Payment exceeds remaining debt"
// @Security BearerAuth
// @Router /debts/{id}/payments [post]
func (h *DebtHandler) RecordPayment(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid debt ID")
		return
	}

	var input service.RecordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	debt, err := h.debtService.RecordPayment(c.Request.Context(), id, input, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, debt)
}

// ListPayments handles GET /api/v1/debts/:id/payments
func (h *DebtHandler) ListPayments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid debt ID")
		return
	}

	payments, err := h.debtService.ListPayments(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, payments)
}

// Cancel handles POST /api/v1/debts/:id/cancel
// @Summary Cancel a debt
// @Description Operator override; a cancelled debt stops deriving its status
// @Tags debts
// @Produce json
// @Param id path string true "Debt ID (UUID)"
// @Success 200 {object} Response{data=service.DebtView} "Cancelled debt"
// @Failure 409 {object} ErrorResponseBody "Debt already paid"
// @Security BearerAuth
// @Router /debts/{id}/cancel [post]
func (h *DebtHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid debt ID")
		return
	}

	debt, err := h.debtService.Cancel(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, debt)
}

// SendReminders handles POST /api/v1/debts/reminders
// @Summary Send overdue reminders
// @Description Email the creators of orders with overdue debts (admin/manager only)
// @Tags debts
// @Produce json
// @Success 200 {object} Response{data=MessageResponse} "Reminder count"
// @Security BearerAuth
// @Router /debts/reminders [post]
func (h *DebtHandler) SendReminders(c *gin.Context) {
	if !h.reminderCfg.Enabled {
		RespondError(c, http.StatusConflict, "REMINDERS_DISABLED", "overdue reminders are disabled")
		return
	}

	sent, err := h.debtService.SendOverdueReminders(c.Request.Context(), h.reminderCfg.BatchLimit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": fmt.Sprintf("%d reminders sent", sent)})
}

// ExportAging handles GET /api/v1/debts/export
// @Summary Export debt aging report
// @Description Download outstanding debts as an xlsx workbook
// @Tags debts
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary "Aging workbook"
// @Security BearerAuth
// @Router /debts/export [get]
func (h *DebtHandler) ExportAging(c *gin.Context) {
	data, err := h.debtService.ExportAging(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("debt-aging-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
