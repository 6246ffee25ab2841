package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/personavault/vaultshell/internal/result"
)

// RenderPlain renders the heading and display text without styling.
func RenderPlain(r result.Result) string {
	return Title + "\n\n" + r.DisplayText() + "\n"
}

// Resolve mounts v outside a Bubble Tea program, waits for the bridge call
// and returns the view with its outcome applied.
func Resolve(v ResultView) ResultView {
	for _, msg := range collect(v.Init()) {
		if rm, ok := msg.(resultMsg); ok {
			next, _ := v.Update(rm)
			v = next.(ResultView)
		}
	}
	return v
}

// collect runs cmd and any batched commands it yields, in order.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}
