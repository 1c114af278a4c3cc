package handler

import (
	"net/http"

	domainerr "github.com/amirhossein-jamali/account-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/account-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/account-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/account-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/account-ledger/internal/infrastructure/adapter/auth"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles session HTTP requests
type AuthHandler struct {
	uow      persistence.UnitOfWork
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenManager
	tokenTTL int64
	logger   coreport.Logger
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(uow persistence.UnitOfWork, hasher *auth.PasswordHasher, tokens *auth.TokenManager, tokenTTLSeconds int64, logger coreport.Logger) *AuthHandler {
	return &AuthHandler{
		uow:      uow,
		hasher:   hasher,
		tokens:   tokens,
		tokenTTL: tokenTTLSeconds,
		logger:   logger,
	}
}

// Login handles the POST /login endpoint. Unknown accounts and wrong
// passwords get the same answer so the endpoint does not leak which
// account numbers exist.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	account, err := h.uow.AccountRepository(c.Request.Context()).GetByNumber(c.Request.Context(), req.AccountNumber)
	if err != nil {
		if domainerr.IsAccountNotFoundError(err) {
			h.rejectCredentials(c)
			return
		}
		respondError(c, err)
		return
	}

	if !h.hasher.Verify(account.PasswordHash, req.Password) {
		h.rejectCredentials(c)
		return
	}

	token, err := h.tokens.Issue(account.AccountNumber)
	if err != nil {
		h.logger.Error("Failed to issue session token", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInternalServer),
			Message: "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:         token,
		AccountNumber: account.AccountNumber,
		ExpiresIn:     h.tokenTTL,
	})
}

func (h *AuthHandler) rejectCredentials(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
		Message: "Invalid account number or password",
	})
}
