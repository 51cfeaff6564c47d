package provider

import (
	"context"
	"time"

	"github.com/amirasaad/converter/pkg/rates"
)

// Outcome tells whether a fetch produced live rates or fell back to the fixed table.
type Outcome int

const (
	// Success means Rates came from the remote source.
	Success Outcome = iota
	// UsedFallback means the remote fetch failed and Rates is the fallback table.
	UsedFallback
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case UsedFallback:
		return "used_fallback"
	default:
		return "unknown"
	}
}

// Snapshot is the raw result of a remote rate request
type Snapshot struct {
	Base      string      `json:"base"`
	Date      string      `json:"date,omitempty"`
	Rates     rates.Table `json:"rates"`
	FetchedAt time.Time   `json:"fetched_at"`
	Source    string      `json:"source"`
}

// Result is what a Rates provider hands to the session.
// FetchedAt is zero and Reason is set when Outcome is UsedFallback.
type Result struct {
	Rates     rates.Table
	FetchedAt time.Time
	Outcome   Outcome
	Reason    error
	Source    string
}

// State converts the result into the session's fetch state.
func (r Result) State() rates.FetchState {
	return rates.FetchState{Rates: r.Rates, FetchedAt: r.FetchedAt}
}

// Fetcher performs a single remote rate request.
type Fetcher interface {
	// FetchRates gets every rate published for the base currency.
	FetchRates(ctx context.Context) (*Snapshot, error)

	// Name returns the provider's name for logging and identification.
	Name() string
}

// Rates obtains a rate table, never failing: errors surface as UsedFallback.
type Rates interface {
	// Fetch makes one attempt at live rates.
	Fetch(ctx context.Context) Result

	// Name returns the provider's name for logging and identification.
	Name() string
}
