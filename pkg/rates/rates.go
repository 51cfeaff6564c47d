// Package rates holds the USD-relative exchange rate table and the state of the last fetch.
package rates

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/amirasaad/converter/pkg/domain"
)

// Currency codes used by the conversion catalog.
const (
	KES = "kes"
	EUR = "eur"
	GBP = "gbp"
	UGX = "ugx"
)

// DefaultMaxAge is how long fetched rates are trusted before a refresh.
const DefaultMaxAge = 24 * time.Hour

var fallback = Table{
	KES: 129,
	EUR: 1.0 / 170,
	GBP: 1.0 / 100,
	UGX: 25 * 129,
}

// Table maps a lowercase currency code to units of that currency per 1 USD.
type Table map[string]float64

// Fallback returns a copy of the fixed table used when live rates are unavailable.
func Fallback() Table {
	return maps.Clone(fallback)
}

// FallbackRate returns the fixed constant for code, if there is one.
func FallbackRate(code string) (float64, bool) {
	r, ok := fallback[strings.ToLower(code)]
	return r, ok
}

// Valid reports whether r can be used as an exchange rate.
func Valid(r float64) bool {
	return r > 0 && !math.IsNaN(r) && !math.IsInf(r, 0)
}

// Rate returns the rate for code. A missing or invalid entry falls back to the
// fixed constant; codes without one yield domain.ErrRateUnavailable.
func (t Table) Rate(code string) (float64, error) {
	code = strings.ToLower(code)
	if r, ok := t[code]; ok && Valid(r) {
		return r, nil
	}
	if r, ok := FallbackRate(code); ok {
		return r, nil
	}
	return 0, fmt.Errorf("%w: %s", domain.ErrRateUnavailable, code)
}

// Sanitize returns a copy of t with lowercase keys and without invalid rates.
func (t Table) Sanitize() Table {
	out := make(Table, len(t))
	for code, r := range t {
		if !Valid(r) {
			continue
		}
		out[strings.ToLower(code)] = r
	}
	return out
}

// Invalid reports every entry Sanitize would drop, each wrapping
// domain.ErrInvalidRate, in code order. It returns nil when all rates are usable.
func (t Table) Invalid() error {
	var errs []error
	for _, code := range slices.Sorted(maps.Keys(t)) {
		if r := t[code]; !Valid(r) {
			errs = append(errs, fmt.Errorf("%w: %s=%v", domain.ErrInvalidRate, strings.ToLower(code), r))
		}
	}
	return errors.Join(errs...)
}

// FetchState is the rate table currently in use and when it was fetched.
// FetchedAt is the time of the last live fetch, zero if there has not been one.
type FetchState struct {
	Rates     Table
	FetchedAt time.Time
}

// IsStale reports whether the rates should be refreshed before a currency conversion.
func (s FetchState) IsStale(now time.Time, maxAge time.Duration) bool {
	if len(s.Rates) == 0 {
		return true
	}
	if s.FetchedAt.IsZero() {
		return false
	}
	return now.Sub(s.FetchedAt) > maxAge
}
