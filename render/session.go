// Package render projects a repository snapshot into a flat, cursor
// addressable sequence of display rows, and owns the per-buffer UI state
// that must survive asynchronous refreshes: expansion memory, visibility
// levels, and the refresh sequence guard.
package render

import (
	"github.com/actionshrimp/gitlad"
)

// Expansion is the per-file display state.
type Expansion int

// Expansion states, cycled by a single toggle action.
const (
	Collapsed Expansion = iota
	HeadersOnly
	FullyExpanded
)

// Visibility levels for bulk-set operations.
const (
	// VisibilitySections shows section headers only.
	VisibilitySections = 1
	// VisibilityFiles shows file entries with files collapsed.
	VisibilityFiles = 2
	// VisibilityHunks expands every file to hunk headers.
	VisibilityHunks = 3
	// VisibilityAll fully expands every file.
	VisibilityAll = 4
)

// fileState is the remembered display state for one path. It is keyed by
// path rather than object identity so it survives snapshot replacement.
type fileState struct {
	expansion  Expansion
	overridden bool         // manual toggle outrules the global default
	closed     map[int]bool // hunks explicitly closed while fully expanded
	remembered map[int]bool // closed set captured before a collapse
}

// Session owns the render state for one buffer. The parsed snapshot is
// exclusively owned by its session; no two buffers share one.
type Session struct {
	snapshot   *gitlad.Snapshot
	visibility int
	files      map[string]*fileState

	issued  uint64
	applied uint64
}

// NewSession creates a session with the default visibility level.
func NewSession() *Session {
	return &Session{
		visibility: VisibilityHunks,
		files:      make(map[string]*fileState),
	}
}

// Snapshot returns the most recently applied snapshot, or nil before the
// first refresh completes.
func (s *Session) Snapshot() *gitlad.Snapshot { return s.snapshot }

// Visibility returns the current global visibility level.
func (s *Session) Visibility() int { return s.visibility }

// BeginRefresh hands out the next refresh sequence number. Every staging
// action triggers an asynchronous re-parse, so two refreshes may be in
// flight at once; the sequence number is how stale results are told apart.
func (s *Session) BeginRefresh() uint64 {
	s.issued++
	return s.issued
}

// ApplyRefresh installs a completed refresh. It reports false, leaving all
// state untouched, when a newer result has already been applied; the caller
// must discard the stale snapshot rather than render it.
func (s *Session) ApplyRefresh(seq uint64, snap *gitlad.Snapshot) bool {
	if seq <= s.applied {
		return false
	}
	s.applied = seq
	s.snapshot = snap
	s.prune()
	return true
}

// prune drops expansion entries for paths no longer present in the tree.
// Refresh races make dangling entries routine, so they are discarded
// silently instead of erroring.
func (s *Session) prune() {
	for path := range s.files {
		if !s.pathPresent(path) {
			delete(s.files, path)
		}
	}
}

func (s *Session) pathPresent(path string) bool {
	if s.snapshot == nil {
		return false
	}
	for _, section := range []gitlad.Section{gitlad.SectionUntracked, gitlad.SectionUnstaged, gitlad.SectionStaged} {
		if s.snapshot.File(section, path) != nil {
			return true
		}
	}
	return false
}

// state returns the tracked state for path, creating it at the global
// default on first use.
func (s *Session) state(path string) *fileState {
	if st, ok := s.files[path]; ok {
		return st
	}
	st := &fileState{expansion: s.defaultExpansion()}
	s.files[path] = st
	return st
}

func (s *Session) defaultExpansion() Expansion {
	switch s.visibility {
	case VisibilityAll:
		return FullyExpanded
	case VisibilityHunks:
		return HeadersOnly
	default:
		return Collapsed
	}
}

// Toggle cycles the file through Collapsed, HeadersOnly, FullyExpanded and
// back. Leaving FullyExpanded captures which hunks were open so a later
// re-expansion restores exactly that set.
func (s *Session) Toggle(path string) {
	st := s.state(path)
	st.overridden = true
	switch st.expansion {
	case Collapsed:
		st.expansion = HeadersOnly
	case HeadersOnly:
		st.expansion = FullyExpanded
		st.closed = cloneSet(st.remembered)
	default:
		st.remembered = cloneSet(st.closed)
		st.closed = nil
		st.expansion = Collapsed
	}
}

// ExpandFully jumps straight to FullyExpanded with every hunk open,
// recording the prior per-hunk visibility for restoration.
func (s *Session) ExpandFully(path string) {
	st := s.state(path)
	st.overridden = true
	if st.expansion == FullyExpanded {
		st.remembered = cloneSet(st.closed)
	}
	st.closed = nil
	st.expansion = FullyExpanded
}

// ToggleHunk opens or closes a single hunk body of a fully expanded file.
func (s *Session) ToggleHunk(path string, hunk int) {
	st := s.state(path)
	if st.expansion != FullyExpanded {
		return
	}
	if st.closed == nil {
		st.closed = make(map[int]bool)
	}
	if st.closed[hunk] {
		delete(st.closed, hunk)
	} else {
		st.closed[hunk] = true
	}
}

// SetVisibility bulk-sets the global default policy and clears every
// per-file manual override.
func (s *Session) SetVisibility(level int) {
	if level < VisibilitySections {
		level = VisibilitySections
	}
	if level > VisibilityAll {
		level = VisibilityAll
	}
	s.visibility = level
	for _, st := range s.files {
		st.overridden = false
		st.expansion = s.defaultExpansion()
		st.closed = nil
	}
}

// expansion resolves the effective expansion for a path: the manual toggle
// if one is live, otherwise the global default.
func (s *Session) expansion(path string) (Expansion, map[int]bool) {
	if st, ok := s.files[path]; ok && st.overridden {
		return st.expansion, st.closed
	}
	if st, ok := s.files[path]; ok {
		return st.expansion, st.closed
	}
	return s.defaultExpansion(), nil
}

func cloneSet(m map[int]bool) map[int]bool {
	if len(m) == 0 {
		return nil
	}
	out := make(map[int]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
