package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/SscSPs/splitledger/internal/middleware"
)

const defaultPageSize = 50

// expenseHandler handles HTTP requests related to expenses.
type expenseHandler struct {
	expenseService    portssvc.ExpenseSvcFacade
	settlementService portssvc.SettlementSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade, ss portssvc.SettlementSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es, settlementService: ss}
}

func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade, settlementService portssvc.SettlementSvcFacade) {
	h := newExpenseHandler(expenseService, settlementService)

	groupExpenses := rg.Group("/groups/:group_id/expenses")
	{
		groupExpenses.POST("", h.addExpense)
		groupExpenses.GET("", h.listGroupExpenses)
	}

	expenses := rg.Group("/expenses/:expense_id")
	{
		expenses.GET("", h.getExpense)
		expenses.GET("/payments", h.listExpensePayments)
	}
}

// addExpense godoc
// @Summary Record an expense
// @Description Records an expense paid by the caller and charges every other current member one share.
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 403 {object} map[string]string "Caller is not a member"
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /groups/{group_id}/expenses [post]
func (h *expenseHandler) addExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	payer, ok := callerID(c, logger)
	if !ok {
		return
	}

	expense, err := h.expenseService.AddExpense(c.Request.Context(), req.ToNewExpense(groupID, payer))
	if err != nil {
		respondError(c, logger, err, "add expense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listGroupExpenses godoc
// @Summary List a group's expenses
// @Description Returns the whole expense log unless limit or next_token is given.
// @Tags expenses
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   limit query int false "Page size (1-200)"
// @Param   next_token query string false "Cursor returned with the previous page"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} map[string]string "Invalid paging parameters"
// @Security BearerAuth
// @Router /groups/{group_id}/expenses [get]
func (h *expenseHandler) listGroupExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for ListExpenses", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	if params.Paged() {
		limit := params.Limit
		if limit == 0 {
			limit = defaultPageSize
		}
		page, err := h.expenseService.ListGroupExpensesPage(c.Request.Context(), groupID, limit, params.NextToken)
		if err != nil {
			respondError(c, logger, err, "list expenses")
			return
		}
		c.JSON(http.StatusOK, dto.ToExpensePageResponse(page))
		return
	}

	expenses, err := h.expenseService.GetGroupExpenses(c.Request.Context(), groupID)
	if err != nil {
		respondError(c, logger, err, "list expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExpensesResponse(expenses))
}

// getExpense godoc
// @Summary Get an expense
// @Tags expenses
// @Produce  json
// @Param   expense_id path int true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} map[string]string "Expense not found"
// @Security BearerAuth
// @Router /expenses/{expense_id} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID, ok := expenseIDParam(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), expenseID)
	if err != nil {
		respondError(c, logger, err, "get expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// listExpensePayments godoc
// @Summary List payments against an expense
// @Tags expenses
// @Produce  json
// @Param   expense_id path int true "Expense ID"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 404 {object} map[string]string "Expense not found"
// @Security BearerAuth
// @Router /expenses/{expense_id}/payments [get]
func (h *expenseHandler) listExpensePayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID, ok := expenseIDParam(c)
	if !ok {
		return
	}

	payments, err := h.settlementService.ListExpensePayments(c.Request.Context(), expenseID)
	if err != nil {
		respondError(c, logger, err, "list expense payments")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPaymentsResponse(payments))
}

func expenseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("expense_id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expense_id must be a positive integer"})
		return 0, false
	}
	return id, true
}
