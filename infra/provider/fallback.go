package provider

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/converter/pkg/domain"
	"github.com/amirasaad/converter/pkg/provider"
	"github.com/amirasaad/converter/pkg/rates"
)

// FallbackProvider makes one attempt with its fetcher and substitutes the
// fixed rate table on any failure. It never retries.
type FallbackProvider struct {
	fetcher provider.Fetcher
	logger  *slog.Logger
}

// NewFallbackProvider wraps fetcher.
func NewFallbackProvider(fetcher provider.Fetcher, logger *slog.Logger) *FallbackProvider {
	return &FallbackProvider{fetcher: fetcher, logger: logger}
}

// Fetch implements provider.Rates.
func (p *FallbackProvider) Fetch(ctx context.Context) provider.Result {
	snap, err := p.fetcher.FetchRates(ctx)
	if err != nil {
		p.logger.Warn("Failed to fetch exchange rates, using fallback",
			"provider", p.fetcher.Name(),
			"error", err,
		)
		return provider.Result{
			Rates:   rates.Fallback(),
			Outcome: provider.UsedFallback,
			Reason:  fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err),
			Source:  "fallback",
		}
	}
	return provider.Result{
		Rates:     snap.Rates,
		FetchedAt: snap.FetchedAt,
		Outcome:   provider.Success,
		Source:    snap.Source,
	}
}

// Name returns the wrapped fetcher's name
func (p *FallbackProvider) Name() string {
	return p.fetcher.Name()
}

var _ provider.Rates = (*FallbackProvider)(nil)
