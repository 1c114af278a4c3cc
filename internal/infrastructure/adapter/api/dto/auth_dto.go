package dto

// LoginRequest represents the API request for opening a session
type LoginRequest struct {
	AccountNumber string `json:"accountNumber" binding:"required,len=10"`
	Password      string `json:"password" binding:"required"`
}

// LoginResponse carries the session token for subsequent requests
type LoginResponse struct {
	Token         string `json:"token"`
	AccountNumber string `json:"accountNumber"`
	ExpiresIn     int64  `json:"expiresIn"` // seconds
}
