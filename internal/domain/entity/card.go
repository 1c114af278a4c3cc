package entity

// Card is an auxiliary payment instrument linked to at most one account.
// It only exists for the read-optimized view; the ledger never touches it.
type Card struct {
	ID          uint64
	AccountID   uint64
	CardNumber  string
	ExpiryMonth int
	ExpiryYear  int
}

// MaskedNumber renders the card number with all but the last four digits hidden
func (c *Card) MaskedNumber() string {
	if len(c.CardNumber) <= 4 {
		return c.CardNumber
	}
	masked := make([]byte, len(c.CardNumber))
	for i := range masked {
		masked[i] = '*'
	}
	copy(masked[len(masked)-4:], c.CardNumber[len(c.CardNumber)-4:])
	return string(masked)
}
