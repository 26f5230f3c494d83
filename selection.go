package gitlad

// Selection is a contiguous run of lines within exactly one hunk, expressed
// as inclusive indices into Hunk.Lines in display order. A single line is
// the degenerate one-line selection. Selections never span hunks or files;
// cross-boundary requests are rejected when the selection is validated.
type Selection struct {
	First int
	Last  int
}

// WholeHunk returns the selection covering every line of h. File-level and
// hunk-level staging reduce to synthesizing with this selection.
func WholeHunk(h *Hunk) Selection {
	return Selection{First: 0, Last: len(h.Lines) - 1}
}

// Contains reports whether the line index i falls inside the selection.
func (s Selection) Contains(i int) bool {
	return i >= s.First && i <= s.Last
}

// Validate checks the selection against a hunk. It rejects empty or
// out-of-range selections and selections containing no Add or Remove lines
// (a context-only selection has nothing to stage or discard).
func (s Selection) Validate(h *Hunk) error {
	if len(h.Lines) == 0 {
		return &SelectionError{Reason: "hunk has no lines"}
	}
	if s.First > s.Last {
		return &SelectionError{Reason: "selection is empty"}
	}
	if s.First < 0 || s.Last >= len(h.Lines) {
		return &SelectionError{Reason: "selection crosses hunk boundary"}
	}
	for i := s.First; i <= s.Last; i++ {
		if h.Lines[i].Kind != LineContext {
			return nil
		}
	}
	return &SelectionError{Reason: "selection contains only context lines"}
}

// SynthesisMode controls which lines of a hunk are treated as the change
// versus context when synthesizing a sub-patch.
type SynthesisMode int

// Synthesis modes.
const (
	// Stage emits a patch applied to the index (apply --cached).
	Stage SynthesisMode = iota
	// Unstage emits a patch reverse-applied to the index (apply --cached -R).
	Unstage
	// Discard emits a patch reverse-applied to the worktree (apply -R).
	Discard
)

// String returns the lowercase display name of the mode.
func (m SynthesisMode) String() string {
	switch m {
	case Stage:
		return "stage"
	case Unstage:
		return "unstage"
	case Discard:
		return "discard"
	default:
		return "unknown"
	}
}

// Target returns the apply target matching the mode.
func (m SynthesisMode) Target() ApplyTarget {
	switch m {
	case Unstage:
		return ApplyIndexReverse
	case Discard:
		return ApplyWorktreeReverse
	default:
		return ApplyIndex
	}
}
