package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// tabWidth is the standard terminal tab stop interval.
const tabWidth = 8

// ExpandTabs replaces tab characters with spaces up to the next tab stop,
// so diff content aligns the same way it does in a terminal pager.
// lipgloss measures tabs as zero-width, which would otherwise skew both
// width calculations and background padding.
func ExpandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			next := ((col / tabWidth) + 1) * tabWidth
			b.WriteString(strings.Repeat(" ", next-col))
			col = next
			continue
		}
		b.WriteRune(r)
		col += lipgloss.Width(string(r))
	}
	return b.String()
}

// DisplayWidth returns the terminal cell width of s after tab expansion.
func DisplayWidth(s string) int {
	return lipgloss.Width(ExpandTabs(s))
}
