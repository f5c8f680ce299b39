package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/splitledger/internal/core/domain"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/SscSPs/splitledger/internal/middleware"
)

// settlementHandler handles HTTP requests that retire debt.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
	expenseService    portssvc.ExpenseSvcFacade
	resolver          memberResolver
}

func newSettlementHandler(ss portssvc.SettlementSvcFacade, es portssvc.ExpenseSvcFacade, gs portssvc.GroupReaderSvc) *settlementHandler {
	return &settlementHandler{settlementService: ss, expenseService: es, resolver: memberResolver{groups: gs}}
}

func registerSettlementRoutes(rg *gin.RouterGroup, ss portssvc.SettlementSvcFacade, es portssvc.ExpenseSvcFacade, gs portssvc.GroupReaderSvc) {
	h := newSettlementHandler(ss, es, gs)

	rg.POST("/groups/:group_id/settlements", h.settleBatch)
	rg.GET("/groups/:group_id/payments", h.listGroupPayments)
	rg.POST("/expenses/:expense_id/pay", h.markSinglePaid)
}

// settleBatch godoc
// @Summary Settle debt to a creditor
// @Description Retires the caller's unpaid shares owed to the creditor, earliest expense first,
// @Description skipping any share that no longer fits under the outstanding amount.
// @Tags settlements
// @Accept  json
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   settlement body dto.SettleRequest true "Creditor and payment method"
// @Success 200 {object} dto.SettlementResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "No debt, or debt disagrees with the expense log"
// @Security BearerAuth
// @Router /groups/{group_id}/settlements [post]
func (h *settlementHandler) settleBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	var req dto.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SettleBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	debtor, ok := callerID(c, logger)
	if !ok {
		return
	}
	creditor, err := h.resolver.resolveOne(c.Request.Context(), groupID, req.Creditor)
	if err != nil {
		respondError(c, logger, err, "settle debt")
		return
	}

	result, err := h.settlementService.SettleBatch(c.Request.Context(), groupID, debtor, creditor, domain.PaymentMethod(req.Method))
	if err != nil {
		respondError(c, logger, err, "settle debt")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementResponse(result))
}

// markSinglePaid godoc
// @Summary Pay one expense share
// @Description Marks the caller's share of one expense as paid. The creditor defaults to the expense payer.
// @Tags settlements
// @Accept  json
// @Produce  json
// @Param   expense_id path int true "Expense ID"
// @Param   payment body dto.PayExpenseRequest false "Creditor and payment method"
// @Success 200 {object} dto.SettlementResponse
// @Failure 400 {object} map[string]string "Caller is not a participant"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 409 {object} map[string]string "Already settled, or debt smaller than the share"
// @Security BearerAuth
// @Router /expenses/{expense_id}/pay [post]
func (h *settlementHandler) markSinglePaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID, ok := expenseIDParam(c)
	if !ok {
		return
	}

	var req dto.PayExpenseRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for MarkSinglePaid", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	debtor, ok := callerID(c, logger)
	if !ok {
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), expenseID)
	if err != nil {
		respondError(c, logger, err, "pay expense")
		return
	}
	creditor := expense.Payer
	if req.Creditor != "" {
		if creditor, err = h.resolver.resolveOne(c.Request.Context(), expense.GroupID, req.Creditor); err != nil {
			respondError(c, logger, err, "pay expense")
			return
		}
	}

	result, err := h.settlementService.MarkSinglePaid(c.Request.Context(), expenseID, debtor, creditor, domain.PaymentMethod(req.Method))
	if err != nil {
		respondError(c, logger, err, "pay expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementResponse(result))
}

// listGroupPayments godoc
// @Summary List a group's payments
// @Tags settlements
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Success 200 {object} dto.ListPaymentsResponse
// @Security BearerAuth
// @Router /groups/{group_id}/payments [get]
func (h *settlementHandler) listGroupPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	payments, err := h.settlementService.ListGroupPayments(c.Request.Context(), c.Param("group_id"))
	if err != nil {
		respondError(c, logger, err, "list payments")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPaymentsResponse(payments))
}
