package handler

import (
	"net/http"

	domainerr "github.com/amirhossein-jamali/account-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/account-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/account-ledger/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/account-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/account-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// TransferHandler handles transfer-related HTTP requests
type TransferHandler struct {
	engine *ledger.Engine
	logger coreport.Logger
}

// NewTransferHandler creates a new transfer handler instance
func NewTransferHandler(engine *ledger.Engine, logger coreport.Logger) *TransferHandler {
	return &TransferHandler{
		engine: engine,
		logger: logger,
	}
}

// Transfer handles the POST /transfer endpoint. The sender is always the
// authenticated account; a client can never move funds it does not own.
func (h *TransferHandler) Transfer(c *gin.Context) {
	sender := c.GetString(middleware.AccountNumberKey)
	if sender == "" {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Not authenticated",
		})
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid transfer request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	// Header wins over the body field; the engine rejects a missing key
	idempotencyKey := c.GetHeader("Idempotency-Key")
	if idempotencyKey == "" {
		idempotencyKey = req.IdempotencyKey
	}

	record, err := h.engine.Transfer(c.Request.Context(), ledger.TransferRequest{
		SenderNumber:   sender,
		ReceiverNumber: req.ReceiverAccountNumber,
		Amount:         req.Amount,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TransferResponse{
		TransferID:            record.ID,
		IdempotencyKey:        record.IdempotencyKey,
		SenderAccountNumber:   record.SenderAccountNumber,
		ReceiverAccountNumber: record.ReceiverAccountNumber,
		Amount:                record.Amount,
		Description:           record.Description,
		CreatedAt:             record.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}
