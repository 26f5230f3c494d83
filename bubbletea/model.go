// Package bubbletea implements the interactive status buffer as a Bubble
// Tea program.
package bubbletea

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/actionshrimp/gitlad"
	"github.com/actionshrimp/gitlad/patch"
	"github.com/actionshrimp/gitlad/pending"
	"github.com/actionshrimp/gitlad/render"
)

// refreshedMsg carries the result of an asynchronous snapshot load. The
// sequence number lets the session discard results that were overtaken by
// a newer refresh.
type refreshedMsg struct {
	seq  uint64
	snap *gitlad.Snapshot
	err  error
}

// appliedMsg carries the result of an asynchronous patch application.
type appliedMsg struct {
	path    string
	mode    gitlad.SynthesisMode
	err     error
	release func()
}

// Model is the Bubble Tea model for the status buffer. It owns the render
// session, drives loads and patch applications as commands, and maps key
// presses onto staging selections through the row reverse index.
type Model struct {
	session  *render.Session
	loader   gitlad.Loader
	applier  gitlad.Applier
	registry *pending.Registry
	root     string

	tokenizer gitlad.Tokenizer
	detector  gitlad.LanguageDetector
	renderer  *lipgloss.Renderer
	styles    styles

	keys     keyMap
	viewport viewport.Model
	spinner  spinner.Model

	rows     []gitlad.Row
	cursor   int
	status   string
	width    int
	height   int
	ready    bool
	quitting bool
}

// Option configures a Model.
type Option func(*Model)

// WithRenderer sets the lipgloss renderer used for styling. This is
// primarily useful in tests, which need a renderer decoupled from global
// terminal detection.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(m *Model) {
		m.renderer = r
	}
}

// WithTokenizer enables syntax highlighting of diff line content.
func WithTokenizer(t gitlad.Tokenizer) Option {
	return func(m *Model) {
		m.tokenizer = t
	}
}

// WithLanguageDetector sets the detector used to pick a language for each
// file's diff lines.
func WithLanguageDetector(d gitlad.LanguageDetector) Option {
	return func(m *Model) {
		m.detector = d
	}
}

// WithRegistry shares a pending-operation registry with the model. Without
// this option the model owns a private registry.
func WithRegistry(reg *pending.Registry) Option {
	return func(m *Model) {
		m.registry = reg
	}
}

// NewModel creates the status buffer model for one repository. The root is
// the repository root path used to scope pending operations.
func NewModel(loader gitlad.Loader, applier gitlad.Applier, root string, opts ...Option) *Model {
	m := &Model{
		session:  render.NewSession(),
		loader:   loader,
		applier:  applier,
		registry: pending.NewRegistry(),
		root:     root,
		renderer: lipgloss.DefaultRenderer(),
		keys:     defaultKeyMap(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		viewport: viewport.New(0, 0),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.styles = newStyles(m.renderer)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refreshCmd())
}

// refreshCmd starts an asynchronous snapshot load tagged with a fresh
// sequence number.
func (m *Model) refreshCmd() tea.Cmd {
	seq := m.session.BeginRefresh()
	loader := m.loader
	return func() tea.Msg {
		snap, err := loader.Load(context.Background())
		return refreshedMsg{seq: seq, snap: snap, err: err}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 1
		m.ready = true
		m.syncViewport()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case refreshedMsg:
		if msg.err != nil {
			m.status = "refresh failed: " + msg.err.Error()
			return m, nil
		}
		if m.session.ApplyRefresh(msg.seq, msg.snap) {
			m.rebuildRows()
		}
		return m, nil

	case appliedMsg:
		msg.release()
		m.rebuildRows()
		if msg.err != nil {
			if errors.Is(msg.err, gitlad.ErrPatchRejected) {
				m.status = fmt.Sprintf("%s %s: state changed underneath, refreshing", msg.mode, msg.path)
			} else {
				m.status = fmt.Sprintf("%s %s: %s", msg.mode, msg.path, msg.err)
			}
		}
		return m, m.refreshCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		m.toggleAtCursor()
		return m, nil

	case key.Matches(msg, m.keys.Expand):
		if row, ok := m.session.Resolve(m.rows, m.cursor); ok && row.Path != "" {
			m.session.ExpandFully(row.Path)
			m.rebuildRows()
		}
		return m, nil

	case key.Matches(msg, m.keys.Stage):
		return m, m.applyAtCursor(gitlad.Stage)

	case key.Matches(msg, m.keys.Unstage):
		return m, m.applyAtCursor(gitlad.Unstage)

	case key.Matches(msg, m.keys.Discard):
		return m, m.applyAtCursor(gitlad.Discard)

	case key.Matches(msg, m.keys.Refresh):
		m.status = ""
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.Level1):
		m.setVisibility(render.VisibilitySections)
		return m, nil
	case key.Matches(msg, m.keys.Level2):
		m.setVisibility(render.VisibilityFiles)
		return m, nil
	case key.Matches(msg, m.keys.Level3):
		m.setVisibility(render.VisibilityHunks)
		return m, nil
	case key.Matches(msg, m.keys.Level4):
		m.setVisibility(render.VisibilityAll)
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) setVisibility(level int) {
	m.session.SetVisibility(level)
	m.rebuildRows()
}

// toggleAtCursor cycles the expansion of the file under the cursor, or
// folds a single hunk when the cursor sits on a hunk header.
func (m *Model) toggleAtCursor() {
	row, ok := m.session.Resolve(m.rows, m.cursor)
	if !ok || row.Path == "" {
		return
	}
	if row.Kind == gitlad.RowHunkHeader {
		m.session.ToggleHunk(row.Path, row.Hunk)
	} else {
		m.session.Toggle(row.Path)
	}
	m.rebuildRows()
}

// applyAtCursor synthesizes a patch for the entity under the cursor and
// returns a command that feeds it to the applier. Guards that reject the
// action outright surface as a status message instead of a command.
func (m *Model) applyAtCursor(mode gitlad.SynthesisMode) tea.Cmd {
	row, ok := m.session.Resolve(m.rows, m.cursor)
	if !ok || !row.Addressable() {
		return nil
	}
	if row.Pending {
		m.status = "an operation is already in flight for " + row.Path
		return nil
	}
	if row.Section == gitlad.SectionConflicts {
		m.status = "resolve conflicts in " + row.Path + " first"
		return nil
	}

	switch mode {
	case gitlad.Stage:
		if row.Section == gitlad.SectionStaged {
			m.status = row.Path + " is already staged"
			return nil
		}
	case gitlad.Unstage:
		if row.Section != gitlad.SectionStaged {
			m.status = "nothing staged under the cursor"
			return nil
		}
	case gitlad.Discard:
		if row.Section == gitlad.SectionStaged {
			m.status = fmt.Sprintf("cannot discard %s: %s", row.Path, gitlad.ErrStagedChanges)
			return nil
		}
	}

	f := m.session.Snapshot().File(row.Section, row.Path)
	if f == nil {
		return nil
	}

	var patchText string
	var err error
	switch row.Kind {
	case gitlad.RowFileEntry:
		patchText, err = patch.SynthesizeFile(f, mode)
	case gitlad.RowHunkHeader:
		patchText, err = patch.Synthesize(f, row.Hunk, gitlad.WholeHunk(&f.Hunks[row.Hunk]), mode)
	case gitlad.RowDiffLine:
		patchText, err = patch.Synthesize(f, row.Hunk, gitlad.Selection{First: row.Line, Last: row.Line}, mode)
	}
	if err != nil {
		m.status = err.Error()
		return nil
	}

	release := m.registry.Register(row.Path, pendingKind(mode, f, row), mode.String(), m.root)
	m.rebuildRows()

	applier := m.applier
	target := mode.Target()
	path := row.Path
	return func() tea.Msg {
		err := applier.Apply(context.Background(), patchText, target)
		return appliedMsg{path: path, mode: mode, err: err, release: release}
	}
}

// pendingKind picks the overlay kind for an in-flight operation: staging an
// untracked file will create an index entry, discarding a whole untracked
// file will remove it from disk.
func pendingKind(mode gitlad.SynthesisMode, f *gitlad.FileDiff, row gitlad.Row) gitlad.PendingKind {
	if f.State != gitlad.FileUntracked {
		return gitlad.PendingGeneric
	}
	switch {
	case mode == gitlad.Stage:
		return gitlad.PendingAdd
	case mode == gitlad.Discard && row.Kind == gitlad.RowFileEntry:
		return gitlad.PendingDelete
	default:
		return gitlad.PendingGeneric
	}
}

// rebuildRows reprojects the session into display rows and re-anchors the
// cursor and viewport.
func (m *Model) rebuildRows() {
	m.rows = m.session.Rows(m.registry.All(m.root))
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.syncViewport()
}

// moveCursor advances the cursor by delta, skipping blank rows.
func (m *Model) moveCursor(delta int) {
	for i := m.cursor + delta; i >= 0 && i < len(m.rows); i += delta {
		if m.rows[i].Kind != gitlad.RowBlank {
			m.cursor = i
			break
		}
	}
	m.syncViewport()
}

// syncViewport refreshes the viewport content and keeps the cursor row in
// view.
func (m *Model) syncViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.contentView())
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}
