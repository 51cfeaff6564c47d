package initializer

import (
	"errors"
	"io"

	infra_provider "github.com/amirasaad/converter/infra/provider"
	"github.com/amirasaad/converter/pkg/app"
	"github.com/amirasaad/converter/pkg/config"
)

// InitializeDependencies builds the logger and the rate provider. Log output
// goes to logOut, which the caller chooses so it never fights the form for the terminal.
func InitializeDependencies(cfg *config.App, logOut io.Writer) (deps *app.Deps, err error) {
	if cfg == nil || cfg.Log == nil || cfg.ExchangeRate == nil {
		return nil, errors.New("incomplete configuration")
	}
	deps = &app.Deps{Config: cfg}
	logger := SetupLogger(cfg.Log, logOut)
	deps.Logger = logger

	fetcher := infra_provider.NewCurrencyAPIProvider(cfg.ExchangeRate, logger)
	deps.RateProvider = infra_provider.NewFallbackProvider(fetcher, logger)

	logger.Info("Dependencies initialized",
		"env", cfg.Env,
		"rate_provider", deps.RateProvider.Name(),
		"http_timeout", cfg.ExchangeRate.HTTPTimeout,
	)
	return deps, nil
}
