package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/actionshrimp/gitlad"
)

// styles holds the per-row-kind lipgloss styles. All styles are created
// through the model's renderer so tests can force a color profile.
type styles struct {
	branch  lipgloss.Style
	section lipgloss.Style
	file    lipgloss.Style
	hunk    lipgloss.Style
	added   lipgloss.Style
	removed lipgloss.Style
	context lipgloss.Style
	commit  lipgloss.Style
	pending lipgloss.Style
	cursor  lipgloss.Style
	bar     lipgloss.Style
	barMsg  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		branch:  r.NewStyle().Bold(true),
		section: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#61afef")),
		file:    r.NewStyle(),
		hunk:    r.NewStyle().Foreground(lipgloss.Color("#56b6c2")),
		added:   r.NewStyle().Foreground(lipgloss.Color("#98c379")),
		removed: r.NewStyle().Foreground(lipgloss.Color("#e06c75")),
		context: r.NewStyle(),
		commit:  r.NewStyle().Faint(true),
		pending: r.NewStyle().Faint(true).Italic(true),
		cursor:  r.NewStyle().Bold(true),
		bar:     r.NewStyle().Background(lipgloss.Color("#333333")).Foreground(lipgloss.Color("#abb2bf")),
		barMsg:  r.NewStyle().Background(lipgloss.Color("#333333")).Foreground(lipgloss.Color("#e5c07b")),
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.spinner.View() + " loading repository state"
	}
	return m.viewport.View() + "\n" + m.statusBar()
}

// contentView renders all rows, with a cursor marker in a two-cell gutter.
func (m *Model) contentView() string {
	if len(m.rows) == 0 {
		return "  nothing to show yet"
	}
	lines := make([]string, len(m.rows))
	for i, row := range m.rows {
		gutter := "  "
		if i == m.cursor {
			gutter = m.styles.cursor.Render("❯ ")
		}
		lines[i] = gutter + m.renderRow(row)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderRow(row gitlad.Row) string {
	if row.Pending {
		return m.styles.pending.Render(row.Text)
	}
	switch row.Kind {
	case gitlad.RowBranchHeader:
		return m.styles.branch.Render(row.Text)
	case gitlad.RowSectionHeader:
		return m.styles.section.Render(row.Text)
	case gitlad.RowFileEntry:
		return m.styles.file.Render(row.Text)
	case gitlad.RowHunkHeader:
		return m.styles.hunk.Render(row.Text)
	case gitlad.RowDiffLine:
		return m.renderDiffLine(row)
	case gitlad.RowCommitEntry:
		return m.styles.commit.Render(row.Text)
	case gitlad.RowPhantom:
		return m.styles.pending.Render(row.Text)
	default:
		return row.Text
	}
}

// renderDiffLine styles one diff line. The marker always carries the
// add/remove color; the content gets syntax highlighting when a tokenizer
// and detector are configured and the language is recognized.
func (m *Model) renderDiffLine(row gitlad.Row) string {
	text := ExpandTabs(row.Text)
	marker, content := text[:1], text[1:]

	base := m.styles.context
	switch marker {
	case "+":
		base = m.styles.added
	case "-":
		base = m.styles.removed
	}

	tokens := m.highlight(row.Path, content)
	if tokens == nil {
		return base.Render(text)
	}

	var b strings.Builder
	b.WriteString(base.Render(marker))
	for _, tok := range tokens {
		st := m.renderer.NewStyle()
		if tok.Style.Foreground != "" {
			st = st.Foreground(lipgloss.Color(tok.Style.Foreground))
		}
		if tok.Style.Bold {
			st = st.Bold(true)
		}
		b.WriteString(st.Render(strings.TrimSuffix(tok.Text, "\n")))
	}
	return b.String()
}

func (m *Model) highlight(path, content string) []gitlad.Token {
	if m.tokenizer == nil || m.detector == nil {
		return nil
	}
	language := m.detector.DetectFromPath(path)
	if language == "" {
		return nil
	}
	tokens := m.tokenizer.Tokenize(language, content)
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

func (m *Model) statusBar() string {
	segments := []string{"s stage", "u unstage", "x discard", "tab fold", "1-4 zoom", "g refresh", "q quit"}
	bar := m.styles.bar.Render(" " + strings.Join(segments, " · ") + " ")

	if pending := len(m.registry.All(m.root)); pending > 0 {
		bar = m.styles.bar.Render(" "+m.spinner.View()+" ") + bar
	}
	if m.status != "" {
		bar += m.styles.barMsg.Render(" " + m.status + " ")
	}

	if pad := m.width - lipgloss.Width(bar); pad > 0 {
		bar += m.styles.bar.Render(strings.Repeat(" ", pad))
	}
	return bar
}
