package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/account-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/account-ledger/internal/domain/port/core"
)

// Account represents a provisioned account holding a balance.
// The balance is private and only mutated through Credit/Debit so the
// non-negativity invariant cannot be bypassed from outside the package.
type Account struct {
	ID            uint64
	AccountNumber string // public-facing identifier, immutable, unique
	FirstName     string
	LastName      string
	Gender        string
	PasswordHash  string // opaque credential, never rendered in any view
	balance       int64  // cents
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewAccount creates an account with the given profile and initial balance
func NewAccount(accountNumber, firstName, lastName, gender, passwordHash string, initialBalance string, timeProvider coreport.TimeProvider) (*Account, error) {
	if accountNumber == "" || firstName == "" || lastName == "" || gender == "" {
		return nil, errs.ErrInvalidRequest
	}

	balanceCents, err := ParseAmount(initialBalance)
	if err != nil {
		return nil, err
	}

	now := timeProvider.Now()
	return &Account{
		AccountNumber: accountNumber,
		FirstName:     firstName,
		LastName:      lastName,
		Gender:        gender,
		PasswordHash:  passwordHash,
		balance:       balanceCents,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Balance returns the current balance in cents
func (a *Account) Balance() int64 {
	return a.balance
}

// FormattedBalance returns the balance as a string with 2 decimal places
func (a *Account) FormattedBalance() string {
	return CentsToString(a.balance)
}

// SetBalance updates the balance directly (for repository hydration only)
func (a *Account) SetBalance(balanceCents int64) {
	a.balance = balanceCents
}

// CanDebit reports whether the account covers the given amount
func (a *Account) CanDebit(amountCents int64) bool {
	return a.balance >= amountCents
}

// Debit subtracts the amount from the balance.
// Returns ErrInsufficientFunds instead of ever going negative.
func (a *Account) Debit(amountCents int64, timeProvider coreport.TimeProvider) error {
	if a.balance < amountCents {
		return errs.NewInsufficientFundsError(a.AccountNumber, CentsToString(amountCents), a.FormattedBalance())
	}

	a.balance -= amountCents
	a.UpdatedAt = timeProvider.Now()
	return nil
}

// Credit adds the amount to the balance
func (a *Account) Credit(amountCents int64, timeProvider coreport.TimeProvider) {
	a.balance += amountCents
	a.UpdatedAt = timeProvider.Now()
}

// DisplayName returns the holder's name as rendered in transfer descriptions
func (a *Account) DisplayName() string {
	return a.FirstName + " " + a.LastName
}
