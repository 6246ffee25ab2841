package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/personavault/vaultshell/internal/bridge"
	"github.com/personavault/vaultshell/internal/logging"
	"github.com/personavault/vaultshell/internal/prefs"
	"github.com/personavault/vaultshell/internal/result"
)

// Title is the heading rendered above the result.
const Title = "PersonaVault Test"

var errNoInvoker = errors.New("no bridge invoker configured")

// Options configure a ResultView.
type Options struct {
	Context   context.Context
	Invoker   bridge.Invoker
	Operation string
	Logger    *slog.Logger
	ThemeName string
	PrefsPath string // empty disables saving preferences
	ShowHelp  bool
}

// ResultView renders the outcome of one bridge call. The call is issued by
// Init and its outcome is applied once; copies of a ResultView share the
// same lifetime and result.
type ResultView struct {
	ctx     context.Context
	invoker bridge.Invoker
	op      string
	logger  *slog.Logger

	scope *scope
	cell  *result.Cell

	theme     Theme
	keys      keyMap
	help      help.Model
	spinner   spinner.Model
	prefsPath string

	width  int
	height int
}

// resultMsg carries the call outcome back to the view that issued it.
type resultMsg struct {
	scope *scope
	text  string
	err   error
}

// NewResultView creates an unmounted view in the Loading state.
func NewResultView(opts Options) ResultView {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.New("ui")
	}

	theme := GetTheme(opts.ThemeName)

	h := help.New()
	h.ShowAll = opts.ShowHelp

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.Styles().Spinner

	return ResultView{
		ctx:       ctx,
		invoker:   opts.Invoker,
		op:        opts.Operation,
		logger:    logger,
		scope:     &scope{},
		cell:      &result.Cell{},
		theme:     theme,
		keys:      DefaultKeyMap(),
		help:      h,
		spinner:   s,
		prefsPath: opts.PrefsPath,
	}
}

// Init implements tea.Model. It mounts the view and issues the bridge call;
// later calls return nil.
func (v ResultView) Init() tea.Cmd {
	if !v.scope.enter() {
		return nil
	}
	return tea.Batch(v.invokeCmd(), v.spinner.Tick)
}

// Update implements tea.Model.
func (v ResultView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		v.applyResult(msg)
		return v, nil

	case spinner.TickMsg:
		if v.cell.Resolved() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.help.Width = msg.Width
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

// View implements tea.Model.
func (v ResultView) View() string {
	styles := v.theme.Styles()
	current := v.cell.Current()

	heading := styles.Title.Render(Title)
	if !current.Terminal() {
		heading = lipgloss.JoinHorizontal(lipgloss.Top, heading, " ", v.spinner.View())
	}
	body := styles.ResultStyle(current).Render(current.DisplayText())
	content := styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Center, heading, body))
	footer := styles.Footer.Render(v.help.View(v.keys))

	if v.width <= 0 || v.height <= 0 {
		return content + "\n" + footer
	}

	footerHeight := lipgloss.Height(footer)
	main := lipgloss.Place(v.width, max(v.height-footerHeight, 1), lipgloss.Center, lipgloss.Center, content)
	return main + "\n" + footer
}

// DisplayText returns the text of the current state.
func (v ResultView) DisplayText() string {
	return v.cell.Current().DisplayText()
}

// Result returns the current state.
func (v ResultView) Result() result.Result {
	return v.cell.Current()
}

// Unmount ends the view's lifetime. A call still in flight is left to finish
// and its outcome is dropped.
func (v ResultView) Unmount() {
	v.scope.exit()
}

func (v ResultView) invokeCmd() tea.Cmd {
	ctx, invoker, op, sc := v.ctx, v.invoker, v.op, v.scope
	return func() tea.Msg {
		var (
			text string
			err  error
		)
		if invoker == nil {
			err = &bridge.CallError{Op: op, Err: errNoInvoker}
		} else {
			text, err = invoker.Invoke(ctx, op)
		}
		if !sc.active() {
			return nil
		}
		return resultMsg{scope: sc, text: text, err: err}
	}
}

func (v ResultView) applyResult(msg resultMsg) {
	if msg.scope != v.scope || !v.scope.active() {
		return
	}
	if !v.cell.Resolve(result.FromOutcome(msg.text, msg.err)) {
		v.logger.Debug("ignoring result for settled view", "op", v.op)
		return
	}
	if msg.err != nil {
		v.logger.Error("bridge call failed", "op", v.op, "error", msg.err)
		return
	}
	v.logger.Debug("bridge call succeeded", "op", v.op, "bytes", len(msg.text))
}

func (v ResultView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		v.Unmount()
		return v, tea.Quit

	case key.Matches(msg, v.keys.Help):
		v.help.ShowAll = !v.help.ShowAll
		v.savePrefs()
		return v, nil

	case key.Matches(msg, v.keys.CycleTheme):
		v.theme = GetTheme(NextTheme(v.theme.Name))
		v.spinner.Style = v.theme.Styles().Spinner
		v.savePrefs()
		return v, nil
	}
	return v, nil
}

func (v ResultView) savePrefs() {
	if strings.TrimSpace(v.prefsPath) == "" {
		return
	}
	p := prefs.Prefs{Theme: v.theme.Name, ShowHelp: v.help.ShowAll}
	if err := prefs.Save(v.prefsPath, p); err != nil {
		v.logger.Warn("save preferences failed", "error", err)
	}
}
