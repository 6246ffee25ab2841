package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/personavault/vaultshell/internal/result"
)

// Run starts the Bubble Tea program and blocks until the user quits or ctx is
// cancelled. It returns the state the view held when it closed.
func Run(ctx context.Context, opts Options) (result.Result, error) {
	if opts.Context == nil {
		opts.Context = ctx
	}
	view := NewResultView(opts)
	defer view.Unmount()

	p := tea.NewProgram(view, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return view.Result(), fmt.Errorf("run ui: %w", err)
	}
	return view.Result(), nil
}
