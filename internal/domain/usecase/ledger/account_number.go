package ledger

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// AccountNumberLength is the number of digits in a public account number
const AccountNumberLength = 10

// maxNumberAttempts bounds the retry budget when a generated number collides
const maxNumberAttempts = 5

// AccountNumberGenerator draws public account numbers from a space large
// enough that collisions are negligible; the registry still collision-checks
// each candidate and retries within the budget.
type AccountNumberGenerator struct{}

// NewAccountNumberGenerator creates a new AccountNumberGenerator
func NewAccountNumberGenerator() *AccountNumberGenerator {
	return &AccountNumberGenerator{}
}

// Generate returns a fresh 10-digit account number with a non-zero first digit
func (g *AccountNumberGenerator) Generate() (string, error) {
	// First digit 1-9, the rest 0-9
	first, err := rand.Int(rand.Reader, big.NewInt(9))
	if err != nil {
		return "", fmt.Errorf("failed to generate account number: %w", err)
	}

	digits := make([]byte, AccountNumberLength)
	digits[0] = byte('1' + first.Int64())

	for i := 1; i < AccountNumberLength; i++ {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate account number: %w", err)
		}
		digits[i] = byte('0' + d.Int64())
	}

	return string(digits), nil
}
