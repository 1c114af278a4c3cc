package handler

import (
	"net/http"

	domainerr "github.com/amirhossein-jamali/account-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/account-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/account-ledger/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/account-ledger/internal/domain/usecase/view"
	"github.com/amirhossein-jamali/account-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/account-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/account-ledger/internal/infrastructure/adapter/auth"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles registration and account view HTTP requests
type AccountHandler struct {
	engine *ledger.Engine
	views  *view.Builder
	hasher *auth.PasswordHasher
	logger coreport.Logger
}

// NewAccountHandler creates a new account handler instance
func NewAccountHandler(engine *ledger.Engine, views *view.Builder, hasher *auth.PasswordHasher, logger coreport.Logger) *AccountHandler {
	return &AccountHandler{
		engine: engine,
		views:  views,
		hasher: hasher,
		logger: logger,
	}
}

// Register handles the POST /register endpoint. The password is hashed here
// so plaintext never crosses into the domain layer.
func (h *AccountHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid register request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	passwordHash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.logger.Error("Failed to hash password", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInternalServer),
			Message: "Internal server error",
		})
		return
	}

	result, err := h.engine.Register(c.Request.Context(), ledger.RegisterRequest{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Gender:       req.Gender,
		InviteCode:   req.InviteCode,
		PasswordHash: passwordHash,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		AccountNumber: result.Account.AccountNumber,
		FirstName:     result.Account.FirstName,
		LastName:      result.Account.LastName,
		CreatedAt:     result.ConsumedAt,
	})
}

// GetAccount handles the GET /account endpoint, returning the consistent
// snapshot for the authenticated account
func (h *AccountHandler) GetAccount(c *gin.Context) {
	accountNumber := c.GetString(middleware.AccountNumberKey)
	if accountNumber == "" {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Not authenticated",
		})
		return
	}

	snapshot, err := h.views.GetView(c.Request.Context(), accountNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.AccountViewResponse{
		AccountNumber: snapshot.AccountNumber,
		FirstName:     snapshot.FirstName,
		LastName:      snapshot.LastName,
		Gender:        snapshot.Gender,
		Balance:       snapshot.Balance,
		History:       make([]dto.HistoryEntryResponse, 0, len(snapshot.History)),
	}

	if snapshot.Card != nil {
		resp.Card = &dto.CardResponse{
			MaskedNumber: snapshot.Card.MaskedNumber,
			ExpiryMonth:  snapshot.Card.ExpiryMonth,
			ExpiryYear:   snapshot.Card.ExpiryYear,
		}
	}

	for _, entry := range snapshot.History {
		resp.History = append(resp.History, dto.HistoryEntryResponse{
			TransferID:   entry.TransferID,
			Counterpart:  entry.Counterpart,
			Amount:       entry.Amount,
			PersonalType: string(entry.PersonalType),
			Description:  entry.Description,
			Timestamp:    entry.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	c.JSON(http.StatusOK, resp)
}
