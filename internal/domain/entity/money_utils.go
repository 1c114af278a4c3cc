package entity

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/amirhossein-jamali/account-ledger/internal/domain/error"
)

// Monetary amounts travel as strings with at most two decimal places and are
// stored as int64 cents. Floats never touch a balance.

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

// ParseAmount validates and converts a string amount into cents.
// Accepts "10", "10.5" and "10.50"; rejects negatives, empty values and
// anything with more than two decimal places.
func ParseAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	if strings.HasPrefix(amount, "-") {
		return 0, errs.ErrNegativeAmount
	}

	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%w: invalid number format", errs.ErrInvalidAmount)
	}

	var digits string
	if len(parts) == 1 {
		digits = parts[0] + "00"
	} else {
		switch len(parts[1]) {
		case 0:
			digits = parts[0] + "00"
		case 1:
			digits = parts[0] + parts[1] + "0"
		case 2:
			digits = parts[0] + parts[1]
		default:
			return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
		}
	}

	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		if strings.Contains(err.Error(), "out of range") {
			return 0, errs.ErrAmountOverflow
		}
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}

	return value, nil
}

// ParsePositiveAmount is ParseAmount with a strictly-positive requirement,
// used for transfer amounts where zero has no meaning.
func ParsePositiveAmount(amount string) (int64, error) {
	cents, err := ParseAmount(amount)
	if err != nil {
		return 0, err
	}
	if cents == 0 {
		return 0, errs.ErrNegativeAmount
	}
	return cents, nil
}

// CentsToString converts an integer amount of cents to a decimal string.
// 1015 becomes "10.15", 1000 becomes "10.00".
func CentsToString(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	s := strconv.FormatInt(cents, 10)
	for len(s) < 3 {
		s = "0" + s
	}

	split := len(s) - 2
	result := s[:split] + "." + s[split:]
	if negative {
		return "-" + result
	}
	return result
}
