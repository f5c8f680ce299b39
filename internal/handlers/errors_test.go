package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/splitledger/internal/apperrors"
)

func TestErrorResponse_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"already exists", apperrors.ErrAlreadyExists, http.StatusConflict},
		{"invalid members", fmt.Errorf("%w: empty", apperrors.ErrInvalidMembers), http.StatusBadRequest},
		{"timed out", apperrors.ErrCreationTimedOut, http.StatusGatewayTimeout},
		{"not a member", apperrors.ErrNotAMember, http.StatusForbidden},
		{"invalid amount", apperrors.ErrInvalidAmount, http.StatusBadRequest},
		{"no debt", apperrors.ErrNoDebt, http.StatusConflict},
		{"already settled", apperrors.ErrAlreadySettled, http.StatusConflict},
		{"expense not found", apperrors.ErrExpenseNotFound, http.StatusNotFound},
		{"app error", apperrors.NewAppError(http.StatusTooManyRequests, "slow down", nil), http.StatusTooManyRequests},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := errorResponse(tc.err)
			assert.Equal(t, tc.want, status)
		})
	}
}

func TestErrorResponse_LedgerErrorCarriesEdge(t *testing.T) {
	err := apperrors.NewLedgerError(apperrors.ErrDebtMismatch, "G1",
		"0xa11ce00000000000000000000000000000000001", "0xb0b0000000000000000000000000000000000002", 400, 1000)

	status, body := errorResponse(fmt.Errorf("settle: %w", err))

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "G1", body["groupID"])
	assert.Equal(t, int64(400), body["outstanding"])
	assert.Equal(t, int64(1000), body["requested"])
	assert.Equal(t, apperrors.ErrDebtMismatch.Error(), body["error"])
}
