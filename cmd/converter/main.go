package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirasaad/converter/infra/initializer"
	"github.com/amirasaad/converter/pkg/app"
	"github.com/amirasaad/converter/pkg/config"
	"github.com/amirasaad/converter/tui"
	log "github.com/charmbracelet/log"
	"github.com/fatih/color"
	"golang.org/x/term"
)

var errNoTerminal = errors.New("converter needs an interactive terminal")

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		color.New(color.FgYellow).Fprintln(os.Stderr, "Run converter from a terminal, not a pipe or redirect.")
		return errNoTerminal
	}

	// Load configuration
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	view := tui.New()

	// Logs go to the form's log pane while it owns the screen
	deps, err := initializer.InitializeDependencies(cfg, view.LogWriter())
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		view.Stop()
	}()

	a := app.New(deps)
	deps.Logger.Info("Starting converter", "env", cfg.Env, "provider", deps.RateProvider.Name())
	view.Bind(ctx, a.Session)

	if err := view.Run(); err != nil {
		return fmt.Errorf("terminal UI stopped: %w", err)
	}

	color.New(color.FgGreen).Println("Goodbye!")
	return nil
}
