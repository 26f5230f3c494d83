// Package gitlad provides domain types for an interactive git porcelain:
// parsed diffs, line selections, synthesized patches, render rows, and
// pending operations.
package gitlad

import (
	"fmt"
	"strings"
)

// FileDiff represents the full change to a single file.
type FileDiff struct {
	Path     string   // current path, "b/" prefix stripped
	OldPath  string   // previous path for renames, otherwise equal to Path
	State    FileState
	IsBinary bool // binary files have no hunks
	Hunks    []Hunk
}

// FileState represents the kind of change a file underwent.
type FileState int

// File states.
const (
	FileModified FileState = iota
	FileAdded
	FileDeleted
	FileRenamed
	FileUntracked
)

// String returns the lowercase display name of the state.
func (s FileState) String() string {
	switch s {
	case FileModified:
		return "modified"
	case FileAdded:
		return "added"
	case FileDeleted:
		return "deleted"
	case FileRenamed:
		return "renamed"
	case FileUntracked:
		return "untracked"
	default:
		return "unknown"
	}
}

// Hunk represents one contiguous change region within a file.
// Hunks are immutable once parsed; a refresh replaces them wholesale.
type Hunk struct {
	OldStart int    // From @@ -X,...
	OldCount int    // From @@ -X,Y ...
	NewStart int    // From @@ ...,+X
	NewCount int    // From @@ ...,+X,Y
	Section  string // Optional function context after the closing @@
	Lines    []Line
}

// Header returns the @@ header for the hunk, omitting a count of 1 as git
// does, so that re-serialized hunks match git's own output byte-for-byte.
func (h *Hunk) Header() string {
	var b strings.Builder
	b.WriteString("@@ -")
	writeRange(&b, h.OldStart, h.OldCount)
	b.WriteString(" +")
	writeRange(&b, h.NewStart, h.NewCount)
	b.WriteString(" @@")
	if h.Section != "" {
		b.WriteByte(' ')
		b.WriteString(h.Section)
	}
	return b.String()
}

func writeRange(b *strings.Builder, start, count int) {
	fmt.Fprintf(b, "%d", start)
	if count != 1 {
		fmt.Fprintf(b, ",%d", count)
	}
}

// Text returns the hunk as diff text: header line followed by marked body
// lines, including no-newline markers.
func (h *Hunk) Text() string {
	var b strings.Builder
	b.WriteString(h.Header())
	b.WriteByte('\n')
	for _, l := range h.Lines {
		b.WriteByte(l.Kind.Marker())
		b.WriteString(l.Content)
		b.WriteByte('\n')
		if l.NoNewline {
			b.WriteString("\\ No newline at end of file\n")
		}
	}
	return b.String()
}

// Line represents a single row of a hunk body.
type Line struct {
	Kind      LineKind
	Content   string // without the leading +/-/space marker
	OldLineNo int    // 0 when Kind == LineAdded
	NewLineNo int    // 0 when Kind == LineRemoved
	NoNewline bool   // the line is not newline-terminated in its file
}

// LineKind classifies a diff line.
type LineKind int

// Line kinds.
const (
	LineContext LineKind = iota
	LineAdded
	LineRemoved
)

// Marker returns the unified-diff marker byte for the kind.
func (k LineKind) Marker() byte {
	switch k {
	case LineAdded:
		return '+'
	case LineRemoved:
		return '-'
	default:
		return ' '
	}
}

// Commit is one entry of the recent-commit log.
type Commit struct {
	ShortHash string
	Subject   string
}

// Snapshot is a complete, immutable view of repository state as rendered in
// the status buffer. It is rebuilt from scratch on every refresh.
type Snapshot struct {
	Root        string // repository root path
	Branch      string // empty when HEAD is detached
	Upstream    string
	Ahead       int
	Behind      int
	HeadSubject string

	Untracked []FileDiff // synthetic all-add diffs
	Unstaged  []FileDiff
	Staged    []FileDiff
	Conflicts []string

	RecentCommits []Commit
}

// HasChanges reports whether any section of the snapshot is non-empty.
func (s *Snapshot) HasChanges() bool {
	return len(s.Untracked) > 0 || len(s.Unstaged) > 0 || len(s.Staged) > 0 || len(s.Conflicts) > 0
}

// File looks up a file diff by path within one section.
func (s *Snapshot) File(section Section, path string) *FileDiff {
	var files []FileDiff
	switch section {
	case SectionUntracked:
		files = s.Untracked
	case SectionUnstaged:
		files = s.Unstaged
	case SectionStaged:
		files = s.Staged
	default:
		return nil
	}
	for i := range files {
		if files[i].Path == path {
			return &files[i]
		}
	}
	return nil
}
