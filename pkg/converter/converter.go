// Package converter computes conversions and renders their display text.
package converter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/amirasaad/converter/pkg/catalog"
	"github.com/amirasaad/converter/pkg/domain"
	"github.com/amirasaad/converter/pkg/rates"
	"github.com/shopspring/decimal"
)

// ResultPlaces is the number of decimals shown for a converted value.
const ResultPlaces = 2

// exactDigits is enough fractional digits that a float64 which is not
// exactly halfway between two cents never reads as a tie.
const exactDigits = 30

// Result is a completed conversion.
type Result struct {
	Category  catalog.Category
	Operation string
	Amount    float64
	Value     float64
	Text      string
}

// Convert applies operation of category to amount. Currency operations read
// their rates from table; missing entries fall back to the fixed constants.
func Convert(
	category catalog.Category,
	operation string,
	amount float64,
	table rates.Table,
) (*Result, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	op, err := catalog.Lookup(category, operation)
	if err != nil {
		return nil, err
	}
	value, err := op.Formula(amount, table)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op.Label, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("%w: result of %s is out of range", domain.ErrValidation, op.Label)
	}
	return &Result{
		Category:  category,
		Operation: op.Label,
		Amount:    amount,
		Value:     value,
		Text:      FormatAmount(amount) + op.FromUnit + " = " + FormatValue(value) + op.ToUnit,
	}, nil
}

// ValidateAmount rejects negative and non-finite amounts.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: amount must be a finite number", domain.ErrValidation)
	}
	if amount < 0 {
		return fmt.Errorf("%w: amount cannot be negative", domain.ErrValidation)
	}
	return nil
}

// FormatValue renders v with exactly two decimals. Rounding works on the
// binary value of v, not its shortest decimal form, and exact ties go to
// even: 0.125 is "0.12" and 2.675 (really 2.67499...) is "2.67".
func FormatValue(v float64) string {
	d, err := decimal.NewFromString(strconv.FormatFloat(v, 'f', exactDigits, 64))
	if err != nil {
		return strconv.FormatFloat(v, 'f', ResultPlaces, 64)
	}
	s := d.RoundBank(ResultPlaces).StringFixed(ResultPlaces)
	if math.Signbit(v) && !strings.HasPrefix(s, "-") {
		s = "-" + s
	}
	return s
}

// FormatAmount echoes the amount the way it was understood: the shortest
// digits that round-trip, always with a fractional part ("10" -> "10.0"),
// switching to exponent form below 1e-4 and from 1e16 up.
func FormatAmount(a float64) string {
	abs := math.Abs(a)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(a, 'e', -1, 64)
	}
	s := strconv.FormatFloat(a, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
