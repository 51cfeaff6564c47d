package app

import (
	"log/slog"

	"github.com/amirasaad/converter/pkg/config"
	"github.com/amirasaad/converter/pkg/provider"
	"github.com/amirasaad/converter/pkg/session"
)

// Deps contains everything a session needs from the outside world
type Deps struct {
	RateProvider provider.Rates
	Logger       *slog.Logger
	Config       *config.App
}

type App struct {
	Deps    *Deps
	Config  *config.App
	Session *session.Controller
}

// New wires a session controller from deps. The controller starts in
// RatesLoading; the presentation surface calls Start once it is on screen.
func New(deps *Deps, opts ...session.Option) *App {
	cfg := deps.Config
	base := []session.Option{session.WithLogger(deps.Logger)}
	if cfg != nil && cfg.ExchangeRate != nil {
		base = append(base, session.WithMaxAge(cfg.ExchangeRate.MaxAge))
	}
	return &App{
		Deps:    deps,
		Config:  cfg,
		Session: session.New(deps.RateProvider, append(base, opts...)...),
	}
}
