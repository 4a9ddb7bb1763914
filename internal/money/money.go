// Package money holds the canonical monetary representation used across the
// ledger and the conversions between it and the display forms.
package money

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Symbol is the currency prefix of display strings.
const Symbol = "R$"

var ErrInvalidAmount = errors.New("invalid amount")

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
	printer  = message.NewPrinter(language.BrazilianPortuguese)
)

// Amount is a monetary value in cents.
type Amount int64

func FromCents(cents int64) Amount {
	return Amount(cents)
}

func (a Amount) Cents() int64 {
	return int64(a)
}

// Decimal returns the amount in whole currency units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

func (a Amount) Add(b Amount) Amount {
	return a + b
}

func (a Amount) Sub(b Amount) Amount {
	return a - b
}

// Mul multiplies the amount by a quantity.
func (a Amount) Mul(qty int) Amount {
	return a * Amount(qty)
}

// MulChecked is Mul reporting false when the product does not fit in an Amount.
func (a Amount) MulChecked(qty int) (Amount, bool) {
	return fromDecimalOK(a.Decimal().Mul(decimal.NewFromInt(int64(qty))))
}

// AddChecked is Add reporting false when the sum does not fit in an Amount.
func (a Amount) AddChecked(b Amount) (Amount, bool) {
	return fromDecimalOK(a.Decimal().Add(b.Decimal()))
}

// Abs returns the magnitude of a, reporting false for the one negative value
// with no positive counterpart.
func (a Amount) Abs() (Amount, bool) {
	if a >= 0 {
		return a, true
	}

	if a == math.MinInt64 {
		return 0, false
	}

	return -a, true
}

func (a Amount) IsNegative() bool {
	return a < 0
}

// Sum adds up the given amounts.
func Sum(amounts ...Amount) Amount {
	var total Amount
	for _, a := range amounts {
		total += a
	}

	return total
}

// String renders the amount as a display string, e.g. "R$ 1.500,00".
func (a Amount) String() string {
	return Format(a)
}

// Plain renders the amount with '.' as decimal separator and no grouping, e.g. "1500.00".
func (a Amount) Plain() string {
	return a.Decimal().StringFixed(2)
}

// Format renders an amount with two decimal places, Brazilian digit grouping
// and the currency symbol. Digits come from the integer cents, so every
// representable amount formats exactly.
func Format(a Amount) string {
	cents := int64(a)

	sign := ""
	mag := uint64(cents)

	if cents < 0 {
		sign = "-"
		mag = -mag // two's complement keeps MinInt64 exact
	}

	return fmt.Sprintf("%s%s %s,%02d", sign, Symbol, printer.Sprintf("%d", mag/100), mag%100)
}

// Parse normalizes a monetary value that may be a native number, a plain
// decimal string ("80.00") or a display string ("R$ 1.500,00").
func Parse(v any) (Amount, error) {
	switch x := v.(type) {
	case Amount:
		return x, nil
	case int:
		return fromDecimal(decimal.NewFromInt(int64(x)))
	case int32:
		return fromDecimal(decimal.NewFromInt32(x))
	case int64:
		return fromDecimal(decimal.NewFromInt(x))
	case float32:
		return parseFloat(float64(x))
	case float64:
		return parseFloat(x)
	case decimal.Decimal:
		return fromDecimal(x)
	case json.Number:
		return ParseString(string(x))
	case string:
		return ParseString(x)
	case nil:
		return 0, fmt.Errorf("%w: missing value", ErrInvalidAmount)
	}

	return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidAmount, v)
}

// ParseString parses a plain or display-formatted monetary string.
//
// Strings carrying the currency symbol are unwrapped by dropping every
// character that is not a digit, a separator or a minus sign. When a comma is
// present it is the decimal separator and '.' groups thousands; otherwise '.'
// is the decimal separator.
func ParseString(s string) (Amount, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}

	clean := raw
	if strings.Contains(raw, Symbol) {
		clean = strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
				return r
			}

			return -1
		}, raw)
	}

	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return fromDecimal(d)
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(v any) Amount {
	a, err := Parse(v)
	if err != nil {
		panic(err)
	}

	return a
}

func parseFloat(f float64) (Amount, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, f)
	}

	return fromDecimal(decimal.NewFromFloat(f))
}

// fromDecimal converts whole units to cents, rejecting values outside the
// int64 range instead of wrapping.
func fromDecimal(d decimal.Decimal) (Amount, error) {
	cents := d.Mul(hundred).Round(0)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return 0, fmt.Errorf("%w: %s out of range", ErrInvalidAmount, d.String())
	}

	return Amount(cents.IntPart()), nil
}

func fromDecimalOK(d decimal.Decimal) (Amount, bool) {
	a, err := fromDecimal(d)
	return a, err == nil
}

// MarshalJSON encodes the amount as a JSON number with two decimals.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Plain()), nil
}

// UnmarshalJSON accepts a JSON number or any string Parse understands.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidAmount, s)
		}

		s = unquoted
	}

	parsed, err := ParseString(s)
	if err != nil {
		return err
	}

	*a = parsed

	return nil
}
