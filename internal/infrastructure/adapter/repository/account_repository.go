package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/account-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/account-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/account-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/account-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// AccountRepository implements the account store using GORM
type AccountRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts an account model to an entity
func modelToAccount(m *model.Account) *entity.Account {
	account := &entity.Account{
		ID:            m.ID,
		AccountNumber: m.AccountNumber,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Gender:        m.Gender,
		PasswordHash:  m.PasswordHash,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	account.SetBalance(m.Balance)
	return account
}

// handleDatabaseError standardizes database error handling
func (r *AccountRepository) handleDatabaseError(operation string, err error, accountNumber string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("Account not found", map[string]any{
			"account_number": accountNumber,
			"operation":      operation,
		})
		return errs.ErrAccountNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"account_number": accountNumber,
		"error":          err.Error(),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateAccountNumber
	}
	if r.errorClassifier.IsSerializationError(err) {
		return errs.ErrConflict
	}

	return fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, err.Error())
}

// GetByID retrieves an account by internal id
func (r *AccountRepository) GetByID(ctx context.Context, id uint64) (*entity.Account, error) {
	var m model.Account
	result := r.db.WithContext(ctx).First(&m, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting account by id", result.Error, fmt.Sprintf("id=%d", id))
	}
	return modelToAccount(&m), nil
}

// GetByNumber retrieves an account by its public account number
func (r *AccountRepository) GetByNumber(ctx context.Context, accountNumber string) (*entity.Account, error) {
	var m model.Account
	result := r.db.WithContext(ctx).Where("account_number = ?", accountNumber).First(&m)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting account by number", result.Error, accountNumber)
	}
	return modelToAccount(&m), nil
}

// GetPairForUpdate loads both transfer parties under exclusive row locks,
// always locking the lower account number first. Two opposite transfers on
// the same pair then acquire locks in the same order and cannot deadlock.
func (r *AccountRepository) GetPairForUpdate(ctx context.Context, senderNumber, receiverNumber string) (*entity.Account, *entity.Account, error) {
	first, second := senderNumber, receiverNumber
	if second < first {
		first, second = second, first
	}

	firstAccount, err := r.lockByNumber(ctx, first)
	if err != nil {
		return nil, nil, err
	}
	secondAccount, err := r.lockByNumber(ctx, second)
	if err != nil {
		return nil, nil, err
	}

	if firstAccount.AccountNumber == senderNumber {
		return firstAccount, secondAccount, nil
	}
	return secondAccount, firstAccount, nil
}

// lockByNumber acquires an exclusive row lock on a single account
func (r *AccountRepository) lockByNumber(ctx context.Context, accountNumber string) (*entity.Account, error) {
	var m model.Account
	result := r.db.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		Where("account_number = ?", accountNumber).
		First(&m)
	if result.Error != nil {
		return nil, r.handleDatabaseError("locking account", result.Error, accountNumber)
	}
	return modelToAccount(&m), nil
}

// Exists reports whether an account with the public number exists
func (r *AccountRepository) Exists(ctx context.Context, accountNumber string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("account_number = ?", accountNumber).
		Count(&count)
	if result.Error != nil {
		return false, r.handleDatabaseError("checking account existence", result.Error, accountNumber)
	}
	return count > 0, nil
}

// Create inserts a new account row
func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	m := model.Account{
		AccountNumber: account.AccountNumber,
		FirstName:     account.FirstName,
		LastName:      account.LastName,
		Gender:        account.Gender,
		PasswordHash:  account.PasswordHash,
		Balance:       account.Balance(),
		CreatedAt:     account.CreatedAt,
		UpdatedAt:     account.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		return r.handleDatabaseError("creating account", result.Error, account.AccountNumber)
	}

	account.ID = m.ID

	r.logger.Info("Account created", map[string]any{
		"account_number": account.AccountNumber,
	})
	return nil
}

// Debit decrements the balance with the non-negativity guard in the same
// statement. A zero row count means the guard rejected the decrement (or the
// account vanished, which the existence probe distinguishes).
func (r *AccountRepository) Debit(ctx context.Context, accountNumber string, amountCents int64) error {
	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("account_number = ? AND balance >= ?", accountNumber, amountCents).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance - ?", amountCents),
			"updated_at": r.timeProvider.Now(),
		})

	if result.Error != nil {
		return r.handleDatabaseError("debiting account", result.Error, accountNumber)
	}

	if result.RowsAffected == 0 {
		exists, err := r.Exists(ctx, accountNumber)
		if err != nil {
			return err
		}
		if !exists {
			return errs.ErrAccountNotFound
		}
		r.logger.Warn("Debit rejected by balance guard", map[string]any{
			"account_number": accountNumber,
			"amount":         entity.CentsToString(amountCents),
		})
		return errs.ErrInsufficientFunds
	}

	return nil
}

// Credit increments the balance as a single atomic update
func (r *AccountRepository) Credit(ctx context.Context, accountNumber string, amountCents int64) error {
	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("account_number = ?", accountNumber).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", amountCents),
			"updated_at": r.timeProvider.Now(),
		})

	if result.Error != nil {
		return r.handleDatabaseError("crediting account", result.Error, accountNumber)
	}

	if result.RowsAffected == 0 {
		return errs.ErrAccountNotFound
	}

	return nil
}
