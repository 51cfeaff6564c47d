// Package tui is the terminal presentation surface: a form with a conversion
// type selector, a conversion selector, an amount field and a Convert button.
// It renders session commands and turns widget callbacks into session events.
package tui

import (
	"context"
	"io"

	"github.com/amirasaad/converter/pkg/catalog"
	"github.com/amirasaad/converter/pkg/session"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	title         = "Conversion App"
	categoryLabel = "Select Conversion Type:"
	amountLabel   = "Enter Amount:"
	convertLabel  = "Convert"
)

// Session is the controller side of the form.
type Session interface {
	Start(ctx context.Context) []session.Command
	Transition(ctx context.Context, ev session.Event) []session.Command
}

// Form owns the tview widgets. All methods run on the UI goroutine.
type Form struct {
	app       *tview.Application
	root      *tview.Flex
	form      *tview.Form
	category  *tview.DropDown
	operation *tview.DropDown
	amount    *tview.InputField
	status    *tview.TextView
	result    *tview.TextView
	logs      *tview.TextView

	ctx     context.Context
	session Session
}

// New lays out the form. Nothing is interactive until Bind.
func New() *Form {
	f := &Form{
		app: tview.NewApplication(),
		ctx: context.Background(),
	}

	names := make([]string, 0, len(catalog.Categories()))
	for _, c := range catalog.Categories() {
		names = append(names, c.String())
	}
	f.category = tview.NewDropDown().
		SetLabel(categoryLabel).
		SetOptions(names, nil).
		SetCurrentOption(0)
	f.operation = tview.NewDropDown().
		SetLabel(catalog.Prompt(catalog.Currency))
	f.amount = tview.NewInputField().
		SetLabel(amountLabel).
		SetFieldWidth(20)

	f.form = tview.NewForm().
		AddFormItem(f.category).
		AddFormItem(f.operation).
		AddFormItem(f.amount).
		AddButton(convertLabel, f.convert)
	f.form.SetCancelFunc(f.app.Stop)

	header := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetText(title)
	f.status = tview.NewTextView().SetDynamicColors(true)
	f.result = tview.NewTextView().SetDynamicColors(true)
	f.logs = tview.NewTextView().SetScrollable(true)
	f.logs.SetBorder(true).SetTitle(" log ")
	f.logs.SetChangedFunc(func() { f.logs.ScrollToEnd() })

	f.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(f.form, 9, 0, true).
		AddItem(f.status, 2, 0, false).
		AddItem(f.result, 2, 0, false).
		AddItem(f.logs, 0, 1, false)
	return f
}

// LogWriter is where log lines should go while the form owns the terminal.
func (f *Form) LogWriter() io.Writer {
	return f.logs
}

// Bind starts s, renders the initial commands and wires widget callbacks to it.
func (f *Form) Bind(ctx context.Context, s Session) {
	f.ctx = ctx
	f.session = s
	f.Apply(s.Start(ctx)...)

	f.category.SetSelectedFunc(func(text string, _ int) {
		c, err := catalog.ParseCategory(text)
		if err != nil {
			return
		}
		f.dispatch(session.CategoryChanged{Category: c})
	})
	f.amount.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			f.convert()
		}
	})
}

// Run blocks until the user quits (Esc or Ctrl-C).
func (f *Form) Run() error {
	return f.app.SetRoot(f.root, true).SetFocus(f.form).Run()
}

// Stop ends Run.
func (f *Form) Stop() {
	f.app.Stop()
}

func (f *Form) convert() {
	f.dispatch(session.ConvertRequested{AmountText: f.amount.GetText()})
}

func (f *Form) dispatch(ev session.Event) {
	if f.session == nil {
		return
	}
	f.Apply(f.session.Transition(f.ctx, ev)...)
}

// Apply renders commands in order.
func (f *Form) Apply(cmds ...session.Command) {
	for _, cmd := range cmds {
		switch cmd := cmd.(type) {
		case session.SetOperations:
			f.operation.SetLabel(cmd.Prompt)
			f.operation.SetOptions(cmd.Labels, func(text string, _ int) {
				f.dispatch(session.OperationSelected{Label: text})
			})
			if cmd.Selected >= 0 && cmd.Selected < len(cmd.Labels) {
				f.operation.SetCurrentOption(cmd.Selected)
			}
		case session.SetStatus:
			color := "[green]"
			if cmd.Severity == session.Error {
				color = "[red]"
			}
			f.status.SetText(color + tview.Escape(cmd.Message))
		case session.ClearStatus:
			f.status.Clear()
		case session.SetResult:
			f.result.SetText(tview.Escape(cmd.Text))
		}
	}
}
