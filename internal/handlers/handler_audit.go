package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/SscSPs/splitledger/internal/middleware"
)

type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := &auditHandler{auditService: auditService}
	rg.GET("/groups/:group_id/audit", h.auditGroup)
}

// auditGroup godoc
// @Summary Audit a group's debt edges
// @Description Recomputes every debt edge from the expense and payment logs and lists the edges whose stored amount differs.
// @Tags audit
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Success 200 {object} dto.AuditResponse
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /groups/{group_id}/audit [get]
func (h *auditHandler) auditGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	report, err := h.auditService.AuditGroup(c.Request.Context(), c.Param("group_id"))
	if err != nil {
		respondError(c, logger, err, "audit group")
		return
	}
	c.JSON(http.StatusOK, dto.ToAuditResponse(report))
}
