package auth

import (
	"fmt"
	"time"

	coreport "github.com/amirhossein-jamali/account-ledger/internal/domain/port/core"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the account identity inside a session token
type Claims struct {
	AccountNumber string `json:"account_number"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 session tokens
type TokenManager struct {
	secret       []byte
	ttl          time.Duration
	issuer       string
	timeProvider coreport.TimeProvider
}

// NewTokenManager creates a new token manager
func NewTokenManager(secret string, ttl time.Duration, issuer string, timeProvider coreport.TimeProvider) *TokenManager {
	return &TokenManager{
		secret:       []byte(secret),
		ttl:          ttl,
		issuer:       issuer,
		timeProvider: timeProvider,
	}
}

// Issue creates a signed token bound to the account number
func (t *TokenManager) Issue(accountNumber string) (string, error) {
	now := t.timeProvider.Now()

	claims := Claims{
		AccountNumber: accountNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   accountNumber,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses the token and returns the account number it is bound to
func (t *TokenManager) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithIssuer(t.issuer), jwt.WithTimeFunc(t.timeProvider.Now))
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	if !token.Valid || claims.AccountNumber == "" {
		return "", fmt.Errorf("invalid token claims")
	}
	return claims.AccountNumber, nil
}
