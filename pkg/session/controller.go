// Package session drives one interactive conversion session as an explicit
// state machine. Events come in from the presentation surface; display
// commands go back out. A Controller is not safe for concurrent use: every
// call is expected on the UI goroutine.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/amirasaad/converter/pkg/catalog"
	"github.com/amirasaad/converter/pkg/converter"
	"github.com/amirasaad/converter/pkg/domain"
	"github.com/amirasaad/converter/pkg/provider"
	"github.com/amirasaad/converter/pkg/rates"
	"github.com/google/uuid"
)

// Status messages
const (
	MsgRatesFetched     = "Exchange rates fetched successfully!"
	MsgInvalidNumber    = "Please enter a valid number!"
	MsgNegativeAmount   = "Amount cannot be negative!"
	MsgRateUnavailable  = "Currency rate unavailable!"
	MsgResultOutOfRange = "Result is too large to display!"
	MsgUnknownOperation = "Please select a conversion!"
	MsgUnknownCategory  = "Please select a conversion type!"
)

// Controller owns the session state: selection, fetched rates and what is on screen.
type Controller struct {
	provider  provider.Rates
	logger    *slog.Logger
	now       func() time.Time
	maxAge    time.Duration
	sessionID string

	state     State
	selection Selection
	fetch     rates.FetchState
	status    *SetStatus
	result    string
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces time.Now for staleness checks.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithMaxAge sets how old fetched rates may get before a currency conversion refreshes them.
func WithMaxAge(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.maxAge = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithSessionID overrides the generated session id attached to every log line.
func WithSessionID(id string) Option {
	return func(c *Controller) { c.sessionID = id }
}

// New creates a controller in the RatesLoading state. Call Start to fetch rates.
func New(rp provider.Rates, opts ...Option) *Controller {
	c := &Controller{
		provider: rp,
		logger:   slog.Default(),
		now:      time.Now,
		maxAge:   rates.DefaultMaxAge,
		state:    RatesLoading,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sessionID == "" {
		c.sessionID = uuid.NewString()
	}
	c.logger = c.logger.With("session", c.sessionID)
	c.selection = defaultSelection(catalog.Currency)
	return c
}

// Start performs the initial rate fetch and renders the default Currency category.
// It only has an effect in the RatesLoading state.
func (c *Controller) Start(ctx context.Context) []Command {
	if c.state != RatesLoading {
		c.logger.Warn("Session already started", "state", c.state)
		return nil
	}
	status := c.refresh(ctx)
	c.state = Ready
	c.logger.Info("Session ready", "provider", c.provider.Name())

	cmds := c.selectCategory(catalog.Currency)
	return append(cmds, c.setStatus(status.Message, status.Severity))
}

// Transition applies ev and returns the display updates it causes. Events
// received before Start are ignored.
func (c *Controller) Transition(ctx context.Context, ev Event) []Command {
	if c.state != Ready {
		c.logger.Warn("Event ignored before session is ready", "state", c.state, "event", fmt.Sprintf("%T", ev))
		return nil
	}
	switch ev := ev.(type) {
	case CategoryChanged:
		return c.onCategoryChanged(ev)
	case OperationSelected:
		return c.onOperationSelected(ev)
	case ConvertRequested:
		return c.onConvertRequested(ctx, ev)
	default:
		c.logger.Warn("Unknown event", "event", fmt.Sprintf("%T", ev))
		return nil
	}
}

// State reports the current state. ErrorDisplay is Ready with an error status shown.
func (c *Controller) State() State {
	if c.state == Ready && c.status != nil && c.status.Severity == Error {
		return ErrorDisplay
	}
	return c.state
}

// Selection returns the current category and operation.
func (c *Controller) Selection() Selection {
	return c.selection
}

// FetchState returns the rates in use and when they were fetched.
func (c *Controller) FetchState() rates.FetchState {
	return c.fetch
}

// Status returns the status message on screen, if any.
func (c *Controller) Status() (SetStatus, bool) {
	if c.status == nil {
		return SetStatus{}, false
	}
	return *c.status, true
}

// Result returns the result text on screen.
func (c *Controller) Result() string {
	return c.result
}

func (c *Controller) onCategoryChanged(ev CategoryChanged) []Command {
	if _, ok := catalog.DefaultOperation(ev.Category); !ok {
		c.logger.Warn("Unknown category selected", "category", ev.Category)
		return []Command{c.setStatus(MsgUnknownCategory, Error)}
	}
	cmds := c.selectCategory(ev.Category)
	c.logger.Debug("Category changed", "category", ev.Category, "operation", c.selection.Operation)
	return append(cmds, c.clearStatus(), c.setResult(""))
}

func (c *Controller) onOperationSelected(ev OperationSelected) []Command {
	if ev.Label == c.selection.Operation {
		return nil
	}
	if _, err := catalog.Lookup(c.selection.Category, ev.Label); err != nil {
		c.logger.Warn("Rejected operation", "category", c.selection.Category, "operation", ev.Label)
		return []Command{c.setStatus(MsgUnknownOperation, Error)}
	}
	c.selection.Operation = ev.Label
	c.logger.Debug("Operation selected", "operation", ev.Label)
	return nil
}

func (c *Controller) onConvertRequested(ctx context.Context, ev ConvertRequested) []Command {
	amount, msg := parseAmount(ev.AmountText)
	if msg != "" {
		c.logger.Debug("Rejected amount", "input", ev.AmountText, "reason", msg)
		return []Command{c.setStatus(msg, Error)}
	}

	var status *SetStatus
	if c.selection.Category == catalog.Currency && c.fetch.IsStale(c.now(), c.maxAge) {
		c.logger.Info("Exchange rates are stale, refreshing",
			"fetched_at", c.fetch.FetchedAt,
			"max_age", c.maxAge,
		)
		s := c.refresh(ctx)
		status = &s
	}

	res, err := converter.Convert(c.selection.Category, c.selection.Operation, amount, c.fetch.Rates)
	if err != nil {
		c.logger.Warn("Conversion failed",
			"category", c.selection.Category,
			"operation", c.selection.Operation,
			"error", err,
		)
		return []Command{c.setStatus(errorMessage(err), Error)}
	}

	c.logger.Info("Converted",
		"category", res.Category,
		"operation", res.Operation,
		"amount", res.Amount,
		"value", res.Value,
	)
	var cmds []Command
	if status != nil {
		cmds = append(cmds, c.setStatus(status.Message, status.Severity))
	} else {
		cmds = append(cmds, c.clearStatus())
	}
	return append(cmds, c.setResult(res.Text))
}

// refresh makes one provider attempt and stores whatever table it yields.
// A failed attempt keeps the time of the last live fetch, so rates that were
// already stale stay stale and the next currency conversion tries again.
func (c *Controller) refresh(ctx context.Context) SetStatus {
	res := c.provider.Fetch(ctx)
	lastLive := c.fetch.FetchedAt
	c.fetch = res.State()
	if res.Outcome == provider.UsedFallback {
		c.fetch.FetchedAt = lastLive
	}
	c.logger.Info("Exchange rates loaded",
		"outcome", res.Outcome,
		"source", res.Source,
		"count", len(res.Rates),
	)
	if res.Outcome == provider.UsedFallback {
		return SetStatus{
			Message:  fmt.Sprintf("Error fetching rates: %v. Using fallback rates.", res.Reason),
			Severity: Error,
		}
	}
	return SetStatus{Message: MsgRatesFetched, Severity: Info}
}

func (c *Controller) selectCategory(category catalog.Category) []Command {
	c.selection = defaultSelection(category)
	return []Command{SetOperations{
		Category: category,
		Prompt:   catalog.Prompt(category),
		Labels:   catalog.Labels(category),
		Selected: 0,
	}}
}

func (c *Controller) setStatus(msg string, sev Severity) Command {
	c.status = &SetStatus{Message: msg, Severity: sev}
	return *c.status
}

func (c *Controller) clearStatus() Command {
	c.status = nil
	return ClearStatus{}
}

func (c *Controller) setResult(text string) Command {
	c.result = text
	return SetResult{Text: text}
}

func defaultSelection(category catalog.Category) Selection {
	sel := Selection{Category: category}
	if op, ok := catalog.DefaultOperation(category); ok {
		sel.Operation = op.Label
	}
	return sel
}

// parseAmount returns the amount or the message explaining why the text was rejected.
// Only decimal notation is accepted; ParseFloat would also read hex floats.
func parseAmount(text string) (float64, string) {
	text = strings.TrimSpace(text)
	if strings.ContainsAny(text, "xX") {
		return 0, MsgInvalidNumber
	}
	amount, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(amount) {
		return 0, MsgInvalidNumber
	}
	if amount < 0 {
		return 0, MsgNegativeAmount
	}
	if math.IsInf(amount, 0) {
		return 0, MsgInvalidNumber
	}
	return amount, ""
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrRateUnavailable):
		return MsgRateUnavailable
	case errors.Is(err, domain.ErrUnknownOperation):
		return MsgUnknownOperation
	case errors.Is(err, domain.ErrValidation):
		return MsgResultOutOfRange
	default:
		return err.Error()
	}
}
