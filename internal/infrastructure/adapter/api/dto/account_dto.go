package dto

// RegisterRequest represents the API request for provisioning an account
type RegisterRequest struct {
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	Gender     string `json:"gender" binding:"required"`
	InviteCode string `json:"inviteCode" binding:"required"`
	Password   string `json:"password" binding:"required,min=8"`
}

// RegisterResponse represents the API response for a provisioned account
type RegisterResponse struct {
	AccountNumber string `json:"accountNumber"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	CreatedAt     string `json:"createdAt"`
}

// CardResponse is the masked projection of a linked card
type CardResponse struct {
	MaskedNumber string `json:"maskedNumber"`
	ExpiryMonth  int    `json:"expiryMonth"`
	ExpiryYear   int    `json:"expiryYear"`
}

// HistoryEntryResponse is one transfer as seen from the queried account
type HistoryEntryResponse struct {
	TransferID   uint64 `json:"transferId"`
	Counterpart  string `json:"counterpart"`
	Amount       string `json:"amount"`
	PersonalType string `json:"personalType"`
	Description  string `json:"description"`
	Timestamp    string `json:"timestamp"`
}

// AccountViewResponse represents the consistent account snapshot
type AccountViewResponse struct {
	AccountNumber string                 `json:"accountNumber"`
	FirstName     string                 `json:"firstName"`
	LastName      string                 `json:"lastName"`
	Gender        string                 `json:"gender"`
	Balance       string                 `json:"balance"`
	Card          *CardResponse          `json:"card"`
	History       []HistoryEntryResponse `json:"history"`
}
