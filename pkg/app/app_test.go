package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/converter/pkg/config"
	"github.com/amirasaad/converter/pkg/provider"
	"github.com/amirasaad/converter/pkg/rates"
	"github.com/amirasaad/converter/pkg/session"
	"github.com/stretchr/testify/assert"
)

type fixedRates struct {
	result provider.Result
}

func (f fixedRates) Fetch(context.Context) provider.Result { return f.result }
func (f fixedRates) Name() string                        { return "fixed" }

func TestNew_WiresSession(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	deps := &Deps{
		RateProvider: fixedRates{result: provider.Result{
			Rates:     rates.Table{"kes": 129.5},
			FetchedAt: now.Add(-2 * time.Hour),
			Outcome:   provider.Success,
		}},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: &config.App{ExchangeRate: &config.ExchangeRate{MaxAge: time.Hour}},
	}

	a := New(deps, session.WithClock(func() time.Time { return now }))
	assert.Same(t, deps.Config, a.Config)
	assert.Equal(t, session.RatesLoading, a.Session.State())

	a.Session.Start(context.Background())
	assert.Equal(t, session.Ready, a.Session.State())
	// configured max age of one hour makes two-hour-old rates stale
	assert.True(t, a.Session.FetchState().IsStale(now, time.Hour))
}

func TestNew_FallbackStatus(t *testing.T) {
	deps := &Deps{
		RateProvider: fixedRates{result: provider.Result{
			Rates:   rates.Fallback(),
			Outcome: provider.UsedFallback,
			Reason:  errors.New("dial tcp: connection refused"),
		}},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	a := New(deps)
	a.Session.Start(context.Background())
	status, ok := a.Session.Status()
	assert.True(t, ok)
	assert.Equal(t, session.Error, status.Severity)
	assert.Contains(t, status.Message, "Using fallback rates.")
	assert.Equal(t, session.ErrorDisplay, a.Session.State())
}
