package dto

// TransferRequest represents the API request for moving funds. The
// idempotency key normally travels in the Idempotency-Key header; the body
// field is a fallback for clients that cannot set headers.
type TransferRequest struct {
	ReceiverAccountNumber string `json:"receiverAccountNumber" binding:"required,len=10"`
	Amount                string `json:"amount" binding:"required"`
	IdempotencyKey        string `json:"idempotencyKey"`
}

// TransferResponse represents the API response for a committed transfer
type TransferResponse struct {
	TransferID            uint64 `json:"transferId"`
	IdempotencyKey        string `json:"idempotencyKey"`
	SenderAccountNumber   string `json:"senderAccountNumber"`
	ReceiverAccountNumber string `json:"receiverAccountNumber"`
	Amount                string `json:"amount"`
	Description           string `json:"description"`
	CreatedAt             string `json:"createdAt"`
}
