package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/splitledger/internal/core/identity"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/SscSPs/splitledger/internal/middleware"
)

// debtHandler serves the derived debt views: single edges, per-member listings and balances.
type debtHandler struct {
	debtService    portssvc.DebtSvcFacade
	balanceService portssvc.BalanceSvcFacade
	resolver       memberResolver
}

func registerDebtRoutes(rg *gin.RouterGroup, ds portssvc.DebtSvcFacade, bs portssvc.BalanceSvcFacade, gs portssvc.GroupReaderSvc) {
	h := &debtHandler{debtService: ds, balanceService: bs, resolver: memberResolver{groups: gs}}

	group := rg.Group("/groups/:group_id")
	{
		group.GET("/debts/:debtor/:creditor", h.getDebt)
		group.GET("/accounts/:account/debts", h.getUserDebts)
		group.GET("/accounts/:account/credits", h.getUserCredits)
		group.GET("/accounts/:account/balance", h.getBalance)
	}
}

// getDebt godoc
// @Summary Get one debt edge
// @Tags debts
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   debtor path string true "Debtor address, full or shortened"
// @Param   creditor path string true "Creditor address, full or shortened"
// @Success 200 {object} dto.DebtResponse
// @Failure 400 {object} map[string]string "Unresolvable account"
// @Security BearerAuth
// @Router /groups/{group_id}/debts/{debtor}/{creditor} [get]
func (h *debtHandler) getDebt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	ids, err := h.resolver.resolve(c.Request.Context(), groupID, c.Param("debtor"), c.Param("creditor"))
	if err != nil {
		respondError(c, logger, err, "get debt")
		return
	}
	debtor, creditor := ids[0], ids[1]

	amount, err := h.debtService.GetDebt(c.Request.Context(), groupID, debtor, creditor)
	if err != nil {
		respondError(c, logger, err, "get debt")
		return
	}
	c.JSON(http.StatusOK, dto.DebtResponse{
		GroupID:  groupID,
		Debtor:   identity.Checksum(debtor),
		Creditor: identity.Checksum(creditor),
		Amount:   amount,
	})
}

// getUserDebts godoc
// @Summary List what an account owes
// @Tags debts
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   account path string true "Account address, full or shortened"
// @Success 200 {object} dto.CounterpartiesResponse
// @Security BearerAuth
// @Router /groups/{group_id}/accounts/{account}/debts [get]
func (h *debtHandler) getUserDebts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	accountID, err := h.resolver.resolveOne(c.Request.Context(), groupID, c.Param("account"))
	if err != nil {
		respondError(c, logger, err, "list debts")
		return
	}
	debts, err := h.debtService.GetUserDebts(c.Request.Context(), groupID, accountID)
	if err != nil {
		respondError(c, logger, err, "list debts")
		return
	}
	c.JSON(http.StatusOK, dto.ToCounterpartiesResponse(groupID, accountID, debts))
}

// getUserCredits godoc
// @Summary List what is owed to an account
// @Tags debts
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   account path string true "Account address, full or shortened"
// @Success 200 {object} dto.CounterpartiesResponse
// @Security BearerAuth
// @Router /groups/{group_id}/accounts/{account}/credits [get]
func (h *debtHandler) getUserCredits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	accountID, err := h.resolver.resolveOne(c.Request.Context(), groupID, c.Param("account"))
	if err != nil {
		respondError(c, logger, err, "list credits")
		return
	}
	credits, err := h.debtService.GetUserCredits(c.Request.Context(), groupID, accountID)
	if err != nil {
		respondError(c, logger, err, "list credits")
		return
	}
	c.JSON(http.StatusOK, dto.ToCounterpartiesResponse(groupID, accountID, credits))
}

// getBalance godoc
// @Summary Get an account's balance in a group
// @Description Lists debts and credits with totals. Service accounts configured on the server are
// @Description always left out, as is every account passed in exclude.
// @Tags debts
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   account path string true "Account address, full or shortened"
// @Param   exclude query []string false "Accounts to leave out" collectionFormat(multi)
// @Success 200 {object} dto.BalanceResponse
// @Security BearerAuth
// @Router /groups/{group_id}/accounts/{account}/balance [get]
func (h *debtHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	accountID, err := h.resolver.resolveOne(c.Request.Context(), groupID, c.Param("account"))
	if err != nil {
		respondError(c, logger, err, "get balance")
		return
	}

	var exclude []string
	if raw := c.QueryArray("exclude"); len(raw) > 0 {
		if exclude, err = h.resolver.resolve(c.Request.Context(), groupID, raw...); err != nil {
			respondError(c, logger, err, "get balance")
			return
		}
	}

	info, err := h.balanceService.GetUserBalanceInfo(c.Request.Context(), groupID, accountID, exclude)
	if err != nil {
		respondError(c, logger, err, "get balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(info))
}
