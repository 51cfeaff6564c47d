package session

import "github.com/amirasaad/converter/pkg/catalog"

// State of a session.
type State int

const (
	// Idle is the zero value of an unconstructed controller.
	Idle State = iota
	// RatesLoading lasts from construction until Start has fetched rates.
	RatesLoading
	// Ready accepts category, operation and convert events.
	Ready
	// ErrorDisplay is Ready with an error status on screen. It accepts the same events.
	ErrorDisplay
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case RatesLoading:
		return "rates_loading"
	case Ready:
		return "ready"
	case ErrorDisplay:
		return "error_display"
	default:
		return "unknown"
	}
}

// Severity of a status message.
type Severity int

const (
	Info Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "info"
}

// Selection is the current category and one of its operations.
type Selection struct {
	Category  catalog.Category
	Operation string
}

// Event is sent by the presentation surface into the controller.
type Event interface {
	isEvent()
}

// CategoryChanged is sent when the user picks a conversion type.
type CategoryChanged struct {
	Category catalog.Category
}

// OperationSelected is sent when the user picks a conversion within the current type.
type OperationSelected struct {
	Label string
}

// ConvertRequested is sent when the user asks for a conversion of the raw amount text.
type ConvertRequested struct {
	AmountText string
}

func (CategoryChanged) isEvent()   {}
func (OperationSelected) isEvent() {}
func (ConvertRequested) isEvent()  {}

// Command is a declarative update for the presentation surface.
type Command interface {
	isCommand()
}

// SetOperations replaces the operation selector contents and selects Labels[Selected].
type SetOperations struct {
	Category catalog.Category
	Prompt   string
	Labels   []string
	Selected int
}

// SetStatus shows a status message.
type SetStatus struct {
	Message  string
	Severity Severity
}

// ClearStatus removes any status message.
type ClearStatus struct{}

// SetResult replaces the result text. An empty Text clears it.
type SetResult struct {
	Text string
}

func (SetOperations) isCommand() {}
func (SetStatus) isCommand()     {}
func (ClearStatus) isCommand()   {}
func (SetResult) isCommand()     {}
