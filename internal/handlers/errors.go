package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/identity"
	"github.com/SscSPs/splitledger/internal/middleware"
)

// respondError maps a service error onto an HTTP status and writes it. Caller
// errors are logged at warn level, everything else at error level.
func respondError(c *gin.Context, logger *slog.Logger, err error, action string) {
	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError && status != http.StatusGatewayTimeout {
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		body = gin.H{"error": "Failed to " + action}
	} else {
		logger.Warn("Rejected request to "+action, slog.String("error", err.Error()), slog.Int("status", status))
	}
	c.JSON(status, body)
}

func errorResponse(err error) (int, gin.H) {
	var ledgerErr *apperrors.LedgerError
	if errors.As(err, &ledgerErr) {
		body := gin.H{
			"error":       ledgerErr.Err.Error(),
			"groupID":     ledgerErr.GroupID,
			"debtor":      identity.Checksum(ledgerErr.Debtor),
			"creditor":    identity.Checksum(ledgerErr.Creditor),
			"outstanding": ledgerErr.Outstanding,
		}
		if ledgerErr.Requested != 0 {
			body["requested"] = ledgerErr.Requested
		}
		return http.StatusConflict, body
	}

	switch {
	case errors.Is(err, apperrors.ErrCreationTimedOut):
		return http.StatusGatewayTimeout, gin.H{"error": err.Error()}
	case errors.Is(err, apperrors.ErrNoDebt),
		errors.Is(err, apperrors.ErrNoMatchingExpenses),
		errors.Is(err, apperrors.ErrDebtMismatch),
		errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict, gin.H{"error": err.Error()}
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, gin.H{"error": err.Error()}
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, gin.H{"error": err.Error()}
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, gin.H{"error": err.Error()}
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 500 {
		return appErr.Code, gin.H{"error": appErr.Message}
	}
	return http.StatusInternalServerError, gin.H{"error": "internal error"}
}

// callerID returns the authenticated account or writes 401.
func callerID(c *gin.Context, logger *slog.Logger) (string, bool) {
	id, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return id, true
}
