package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/actionshrimp/gitlad"
)

// Compile-time interface verification.
var _ gitlad.Viewer = (*Viewer)(nil)

// Viewer runs the status buffer model as a full-screen Bubble Tea program.
type Viewer struct {
	model *Model
	opts  []tea.ProgramOption
}

// NewViewer wraps a model for running. Extra program options are appended
// after the defaults, so callers can override them.
func NewViewer(model *Model, opts ...tea.ProgramOption) *Viewer {
	return &Viewer{model: model, opts: opts}
}

// View displays the buffer and blocks until the user quits or the context
// is canceled.
func (v *Viewer) View(ctx context.Context) error {
	opts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	}, v.opts...)
	_, err := tea.NewProgram(v.model, opts...).Run()
	return err
}
