package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrTooManyDecimals = errors.New("amount has too many decimal places")
)

// ParseMinor converts a user-supplied decimal string into minor units
// (cents). At most two fractional digits are accepted.
func ParseMinor(input string) (int64, error) {
	parsed, err := decimal.NewFromString(input)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if parsed.Exponent() < -2 {
		return 0, ErrTooManyDecimals
	}
	return parsed.Shift(2).IntPart(), nil
}

// ParsePositiveMinor is ParseMinor restricted to amounts strictly above zero.
func ParsePositiveMinor(input string) (int64, error) {
	minor, err := ParseMinor(input)
	if err != nil {
		return 0, err
	}
	if minor <= 0 {
		return 0, ErrInvalidAmount
	}
	return minor, nil
}

// FormatMinor renders minor units as a plain decimal string, e.g. -1250 -> "-12.50".
func FormatMinor(value int64) string {
	negative := value < 0
	if negative {
		value = -value
	}
	formatted := fmt.Sprintf("%d.%02d", value/100, value%100)
	if negative {
		return "-" + formatted
	}
	return formatted
}

// FormatSignedMinor always carries an explicit sign, for per-account history
// views where direction matters more than magnitude.
func FormatSignedMinor(value int64) string {
	if value >= 0 {
		return "+" + FormatMinor(value)
	}
	return FormatMinor(value)
}
