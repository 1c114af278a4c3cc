package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientFunds = 4001
	CodeInvalidAmount     = 4002
	CodeInvalidRequest    = 4003
	CodeSelfTransfer      = 4004
	CodeInvalidInvite     = 4005
	CodeAccountNotFound   = 4040
	CodeNotFound          = 4041
	CodeConflict          = 4090

	// 5xxx - Server errors
	CodeInternalServer   = 5000
	CodeStoreUnavailable = 5030
)

// Base error types
var (
	// ErrInsufficientFunds is returned when the sender cannot cover the transfer amount
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount is returned when the transfer amount format is invalid
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when the transfer amount is negative or zero
	ErrNegativeAmount = errors.New("amount must be positive")

	// ErrAmountOverflow is returned when the amount is too large and would cause overflow
	ErrAmountOverflow = errors.New("amount is too large and would cause overflow")

	// ErrInvalidRequest is returned when a required field is missing or malformed
	ErrInvalidRequest = errors.New("invalid request")

	// ErrSelfTransfer is returned when sender and receiver are the same account
	ErrSelfTransfer = errors.New("sender and receiver must differ")

	// ErrMissingIdempotencyKey is returned when a transfer carries no idempotency key
	ErrMissingIdempotencyKey = errors.New("idempotency key cannot be empty")

	// ErrAccountNotFound is returned when the requested account doesn't exist
	ErrAccountNotFound = errors.New("account not found")

	// ErrTransferNotFound is returned when the requested transfer record doesn't exist
	ErrTransferNotFound = errors.New("transfer not found")

	// ErrInvalidInvite is returned when an invite code is absent or already used
	ErrInvalidInvite = errors.New("invite code is invalid or already used")

	// ErrConflict is returned when the atomic commit lost a race and the caller may retry
	ErrConflict = errors.New("operation conflicted with a concurrent request")

	// ErrStoreUnavailable is returned when the durable store could not be reached
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrDuplicateAccountNumber is returned when a generated account number collides
	ErrDuplicateAccountNumber = errors.New("account number already exists")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount), errors.Is(err, ErrAmountOverflow):
		return CodeInvalidAmount
	case errors.Is(err, ErrSelfTransfer):
		return CodeSelfTransfer
	case errors.Is(err, ErrInvalidInvite):
		return CodeInvalidInvite
	case errors.Is(err, ErrAccountNotFound):
		return CodeAccountNotFound
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrTransferNotFound):
		return CodeNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicateAccountNumber):
		return CodeConflict
	case errors.Is(err, ErrStoreUnavailable):
		return CodeStoreUnavailable
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrMissingIdempotencyKey):
		return CodeInvalidRequest
	default:
		return CodeInternalServer
	}
}

// IsRetryable reports whether the caller may safely retry the same request.
// Only conflicts and store outages qualify; every other kind is terminal
// for the given input.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrStoreUnavailable)
}

// InsufficientFundsError provides detailed error information for a rejected debit
type InsufficientFundsError struct {
	AccountNumber string
	Amount        string
	CurrBalance   string
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds on account %s: required %s, available %s",
		e.AccountNumber, e.Amount, e.CurrBalance)
}

// Is checks if the target error is an ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_funds",
		"account_number":  e.AccountNumber,
		"amount":          e.Amount,
		"current_balance": e.CurrBalance,
		"error_code":      CodeInsufficientFunds,
	}
}

// NewInsufficientFundsError creates a new detailed insufficient funds error
func NewInsufficientFundsError(accountNumber, amount, currentBalance string) error {
	return &InsufficientFundsError{
		AccountNumber: accountNumber,
		Amount:        amount,
		CurrBalance:   currentBalance,
	}
}

// TransferError represents an error raised while committing a transfer
type TransferError struct {
	IdempotencyKey string
	Sender         string
	Receiver       string
	Amount         string
	Reason         string
	Err            error
}

// Error implements the error interface for TransferError
func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer %s -> %s of %s failed (key %s): %s - %v",
		e.Sender, e.Receiver, e.Amount, e.IdempotencyKey, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *TransferError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *TransferError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "transfer_error",
		"idempotency_key": e.IdempotencyKey,
		"sender":          e.Sender,
		"receiver":        e.Receiver,
		"amount":          e.Amount,
		"reason":          e.Reason,
		"error":           e.Err.Error(),
		"error_code":      ErrorCode(e.Err),
	}
}

// NewTransferError creates a detailed transfer error
func NewTransferError(idempotencyKey, sender, receiver, amount, reason string, err error) error {
	return &TransferError{
		IdempotencyKey: idempotencyKey,
		Sender:         sender,
		Receiver:       receiver,
		Amount:         amount,
		Reason:         reason,
		Err:            err,
	}
}

// InviteError provides detailed information about a rejected invite code
type InviteError struct {
	Code   string
	Reason string
}

// Error implements the error interface
func (e *InviteError) Error() string {
	return fmt.Sprintf("invite code %q rejected: %s", e.Code, e.Reason)
}

// Is checks if the target error is an ErrInvalidInvite
func (e *InviteError) Is(target error) bool {
	return target == ErrInvalidInvite
}

// LogFields returns a map of fields for structured logging
func (e *InviteError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "invalid_invite",
		"invite_code": e.Code,
		"reason":      e.Reason,
		"error_code":  CodeInvalidInvite,
	}
}

// NewInviteError creates a new detailed invite error
func NewInviteError(code, reason string) error {
	return &InviteError{Code: code, Reason: reason}
}

// IsInsufficientFundsError checks if the error is related to insufficient funds
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsAccountNotFoundError checks if the error is an account not found error
func IsAccountNotFoundError(err error) bool {
	return errors.Is(err, ErrAccountNotFound)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrTransferNotFound)
}

// IsInvalidInviteError checks if the error is an invite rejection
func IsInvalidInviteError(err error) bool {
	return errors.Is(err, ErrInvalidInvite)
}

// IsConflictError checks if the error is a transient commit conflict
func IsConflictError(err error) bool {
	return errors.Is(err, ErrConflict)
}
