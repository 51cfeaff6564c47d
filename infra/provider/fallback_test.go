package provider

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/converter/pkg/domain"
	"github.com/amirasaad/converter/pkg/provider"
	"github.com/amirasaad/converter/pkg/rates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFetcher is a mock implementation for testing
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchRates(ctx context.Context) (*provider.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Snapshot), args.Error(1)
}

func (m *MockFetcher) Name() string {
	args := m.Called()
	return args.String(0)
}

func TestFallbackProvider_Success(t *testing.T) {
	fetchedAt := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	fetcher := new(MockFetcher)
	fetcher.On("FetchRates", mock.Anything).Return(&provider.Snapshot{
		Base:      "usd",
		Rates:     rates.Table{"kes": 130},
		FetchedAt: fetchedAt,
		Source:    "mock",
	}, nil).Once()

	p := NewFallbackProvider(fetcher, slog.New(slog.NewTextHandler(io.Discard, nil)))
	res := p.Fetch(context.Background())

	assert.Equal(t, provider.Success, res.Outcome)
	assert.NoError(t, res.Reason)
	assert.Equal(t, rates.Table{"kes": 130}, res.Rates)
	assert.Equal(t, fetchedAt, res.FetchedAt)
	assert.Equal(t, rates.FetchState{Rates: rates.Table{"kes": 130}, FetchedAt: fetchedAt}, res.State())
	fetcher.AssertExpectations(t)
}

func TestFallbackProvider_FailureUsesFixedTable(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Name").Return("mock")
	fetcher.On("FetchRates", mock.Anything).Return(nil, errors.New("dial tcp: no route to host")).Once()

	p := NewFallbackProvider(fetcher, slog.New(slog.NewTextHandler(io.Discard, nil)))
	res := p.Fetch(context.Background())

	assert.Equal(t, provider.UsedFallback, res.Outcome)
	require.ErrorIs(t, res.Reason, domain.ErrNetworkFailure)
	assert.Contains(t, res.Reason.Error(), "no route to host")
	assert.Equal(t, rates.Table{"kes": 129, "eur": 1.0 / 170, "gbp": 1.0 / 100, "ugx": 3225}, res.Rates)
	assert.True(t, res.FetchedAt.IsZero())
	// exactly one attempt
	fetcher.AssertNumberOfCalls(t, "FetchRates", 1)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "success", provider.Success.String())
	assert.Equal(t, "used_fallback", provider.UsedFallback.String())
	assert.Equal(t, "unknown", provider.Outcome(7).String())
}
