package gitlad

// Section identifies one region of the status buffer.
type Section int

// Buffer sections, in render order.
const (
	SectionNone Section = iota
	SectionUntracked
	SectionUnstaged
	SectionStaged
	SectionConflicts
	SectionRecent
)

// Title returns the display heading for the section.
func (s Section) Title() string {
	switch s {
	case SectionUntracked:
		return "Untracked files"
	case SectionUnstaged:
		return "Unstaged changes"
	case SectionStaged:
		return "Staged changes"
	case SectionConflicts:
		return "Conflicts"
	case SectionRecent:
		return "Recent commits"
	default:
		return ""
	}
}

// RowKind classifies one display row of the rendered buffer.
type RowKind int

// Row kinds.
const (
	RowBlank RowKind = iota
	RowBranchHeader
	RowSectionHeader
	RowFileEntry
	RowHunkHeader
	RowDiffLine
	RowCommitEntry
	RowPhantom
)

// Row is one display line of the status buffer together with the reverse
// index back to its originating entity. Hunk and Line are -1 when the row
// does not address that granularity.
type Row struct {
	Kind    RowKind
	Text    string
	Section Section
	Path    string
	Hunk    int // index into the file's Hunks
	Line    int // index into the hunk's Lines
	Pending bool
}

// Addressable reports whether the row can anchor a staging selection.
func (r Row) Addressable() bool {
	switch r.Kind {
	case RowFileEntry, RowHunkHeader, RowDiffLine:
		return true
	default:
		return false
	}
}
