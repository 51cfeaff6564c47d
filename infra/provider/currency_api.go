package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/amirasaad/converter/pkg/config"
	"github.com/amirasaad/converter/pkg/provider"
	"github.com/amirasaad/converter/pkg/rates"
	"golang.org/x/sync/singleflight"
)

const currencyAPIName = "currency-api"

// CurrencyAPIProvider fetches USD-relative rates from the fawazahmed0 currency-api
// JSON documents. The document is keyed by the base code:
//
//	{ "date": "2024-05-01", "usd": { "kes": 129.5, "eur": 0.93, ... } }
type CurrencyAPIProvider struct {
	url        string
	base       string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
	group      singleflight.Group
}

// NewCurrencyAPIProvider creates a provider from config. The HTTP timeout is
// applied to the whole request.
func NewCurrencyAPIProvider(cfg *config.ExchangeRate, logger *slog.Logger) *CurrencyAPIProvider {
	return &CurrencyAPIProvider{
		url:  cfg.ApiUrl,
		base: cfg.Base,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger,
		now:    time.Now,
	}
}

// FetchRates implements provider.Fetcher. Concurrent callers share one request.
func (p *CurrencyAPIProvider) FetchRates(ctx context.Context) (*provider.Snapshot, error) {
	v, err, shared := p.group.Do(p.base, func() (any, error) {
		return p.fetch(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		p.logger.Debug("Shared in-flight exchange rate request", "base", p.base)
	}
	return v.(*provider.Snapshot), nil
}

func (p *CurrencyAPIProvider) fetch(ctx context.Context) (*provider.Snapshot, error) {
	p.logger.Info("Fetching exchange rates from API", "url", p.url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var doc map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	raw, ok := doc[p.base]
	if !ok {
		return nil, fmt.Errorf("response has no %q rates", p.base)
	}
	var table rates.Table
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("failed to decode %q rates: %w", p.base, err)
	}
	valid := table.Sanitize()
	invalid := table.Invalid()
	if invalid != nil {
		p.logger.Warn("Dropped invalid exchange rates",
			"count", len(table)-len(valid),
			"error", invalid,
		)
	}
	if len(valid) == 0 {
		if invalid != nil {
			return nil, fmt.Errorf("response has no usable %q rates: %w", p.base, invalid)
		}
		return nil, fmt.Errorf("response has no usable %q rates", p.base)
	}

	var date string
	if rawDate, ok := doc["date"]; ok {
		_ = json.Unmarshal(rawDate, &date)
	}

	p.logger.Info("Exchange rates fetched", "base", p.base, "date", date, "count", len(valid))
	return &provider.Snapshot{
		Base:      p.base,
		Date:      date,
		Rates:     valid,
		FetchedAt: p.now(),
		Source:    currencyAPIName,
	}, nil
}

// Name returns the provider's name
func (p *CurrencyAPIProvider) Name() string {
	return currencyAPIName
}

var _ provider.Fetcher = (*CurrencyAPIProvider)(nil)
