package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrInternal is returned when an unexpected infrastructure failure occurs.
var ErrInternal = errors.New("internal error")

// Group registry failures.
var (
	ErrAlreadyExists     = fmt.Errorf("%w: group already exists", ErrDuplicate)
	ErrInvalidMembers    = fmt.Errorf("%w: invalid group members", ErrValidation)
	ErrCreationTimedOut  = errors.New("group creation not confirmed in time")
	ErrGroupNotFound     = fmt.Errorf("%w: group", ErrNotFound)
	ErrUnresolvedAccount = fmt.Errorf("%w: account identifier could not be resolved", ErrValidation)
)

// Expense store failures.
var (
	ErrNotAMember      = fmt.Errorf("%w: account is not a group member", ErrForbidden)
	ErrInvalidAmount   = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrNoParticipants  = fmt.Errorf("%w: expense has no participants besides the payer", ErrValidation)
	ErrExpenseNotFound = fmt.Errorf("%w: expense", ErrNotFound)
)

// Settlement failures. ErrNoMatchingExpenses and ErrDebtMismatch are consistency
// violations: the derived debt disagrees with the expense and payment logs.
var (
	ErrNoDebt             = errors.New("no outstanding debt")
	ErrNoMatchingExpenses = errors.New("outstanding debt has no matching unpaid expenses")
	ErrDebtMismatch       = errors.New("outstanding debt is smaller than the amount being settled")
	ErrAlreadySettled     = fmt.Errorf("%w: expense already settled for this debtor", ErrDuplicate)
	ErrNotAParticipant    = fmt.Errorf("%w: debtor is not a participant of the expense owed to creditor", ErrValidation)
)

// AppError wraps an underlying error with an HTTP-ish status code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates a not-found AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewConflictError creates a conflict AppError that matches ErrDuplicate.
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrDuplicate}
}

// NewValidationFailedError creates a validation AppError that matches ErrValidation.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// LedgerError describes a failure on a single debt edge. It carries the amounts
// involved so callers can render an actionable message.
type LedgerError struct {
	Err         error
	GroupID     string
	Debtor      string
	Creditor    string
	Outstanding int64
	Requested   int64
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("%v (group=%s debtor=%s creditor=%s outstanding=%d requested=%d)",
		e.Err, e.GroupID, e.Debtor, e.Creditor, e.Outstanding, e.Requested)
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError builds a LedgerError for the given edge.
func NewLedgerError(err error, groupID, debtor, creditor string, outstanding, requested int64) *LedgerError {
	return &LedgerError{
		Err:         err,
		GroupID:     groupID,
		Debtor:      debtor,
		Creditor:    creditor,
		Outstanding: outstanding,
		Requested:   requested,
	}
}

// IsConsistencyViolation reports whether err signals derived state disagreeing
// with the append-only logs.
func IsConsistencyViolation(err error) bool {
	return errors.Is(err, ErrDebtMismatch) || errors.Is(err, ErrNoMatchingExpenses)
}
