package initializer

import (
	"io"
	"log/slog"
	"time"

	"github.com/amirasaad/converter/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lmittmann/tint"
)

// SetupLogger builds the slog logger described by cfg, writing to w, and makes it the default.
func SetupLogger(cfg *config.Log, w io.Writer) *slog.Logger {
	var handler slog.Handler
	if cfg.Format == "tint" {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      slog.Level(cfg.Level),
			TimeFormat: cfg.TimeFormat,
		})
	} else {
		handler = charmHandler(cfg, w)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func charmHandler(cfg *config.Log, w io.Writer) *log.Logger {
	styles := log.DefaultStyles()
	infoTxtColor := lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warnTxtColor := lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	errorTxtColor := lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}
	debugTxtColor := lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#7E57C2"}

	levels := map[log.Level]struct {
		label string
		color lipgloss.AdaptiveColor
	}{
		log.ErrorLevel: {"ERR", errorTxtColor},
		log.WarnLevel:  {"WRN", warnTxtColor},
		log.InfoLevel:  {"INF", infoTxtColor},
		log.DebugLevel: {"DBG", debugTxtColor},
	}
	for level, s := range levels {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(s.label).
			Bold(true).
			Padding(0, 1).
			Foreground(s.color)
	}

	styles.Keys["error"] = lipgloss.NewStyle().Foreground(errorTxtColor)
	styles.Values["error"] = lipgloss.NewStyle().Bold(true)
	styles.Keys["session"] = lipgloss.NewStyle().Foreground(debugTxtColor)
	styles.Keys["outcome"] = lipgloss.NewStyle().Foreground(infoTxtColor)
	styles.Values["outcome"] = lipgloss.NewStyle().Bold(true)

	formattersMap := map[string]log.Formatter{
		"json":   log.JSONFormatter,
		"logfmt": log.LogfmtFormatter,
		"text":   log.TextFormatter,
	}
	formatter := log.TextFormatter
	if f, ok := formattersMap[cfg.Format]; ok {
		formatter = f
	}

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = time.TimeOnly
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      timeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(styles)
	return logger
}
