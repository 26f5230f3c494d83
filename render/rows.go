package render

import (
	"fmt"

	"github.com/actionshrimp/gitlad"
)

// Rows projects the current snapshot and the given pending operations into
// the flat display sequence. Rendering is total: inconsistent state is
// dropped, never surfaced as an error, because refresh races are expected
// and must not take the buffer down with them.
func (s *Session) Rows(ops []gitlad.PendingOp) []gitlad.Row {
	var rows []gitlad.Row
	if s.snapshot == nil {
		return rows
	}
	snap := s.snapshot

	rows = append(rows, branchRows(snap)...)

	pendingByPath := make(map[string]gitlad.PendingOp, len(ops))
	for _, op := range ops {
		pendingByPath[op.Path] = op
	}

	rows = s.appendConflicts(rows, snap)
	rows = s.appendFileSection(rows, gitlad.SectionUntracked, snap.Untracked, pendingByPath)
	rows = s.appendFileSection(rows, gitlad.SectionUnstaged, snap.Unstaged, pendingByPath)
	rows = s.appendFileSection(rows, gitlad.SectionStaged, snap.Staged, pendingByPath)
	rows = s.appendRecent(rows, snap)
	return rows
}

// Resolve maps a cursor position back to its originating entity. It is the
// reverse index keybinding handlers use to build selections.
func (s *Session) Resolve(rows []gitlad.Row, pos int) (gitlad.Row, bool) {
	if pos < 0 || pos >= len(rows) {
		return gitlad.Row{}, false
	}
	return rows[pos], true
}

func branchRows(snap *gitlad.Snapshot) []gitlad.Row {
	branch := snap.Branch
	if branch == "" {
		branch = "(detached)"
	}
	rows := []gitlad.Row{{
		Kind: gitlad.RowBranchHeader,
		Text: fmt.Sprintf("Head:     %s %s", branch, snap.HeadSubject),
	}}
	if snap.Upstream != "" {
		text := fmt.Sprintf("Merge:    %s", snap.Upstream)
		if snap.Ahead > 0 || snap.Behind > 0 {
			text += fmt.Sprintf(" (ahead %d, behind %d)", snap.Ahead, snap.Behind)
		}
		rows = append(rows, gitlad.Row{Kind: gitlad.RowBranchHeader, Text: text})
	}
	return rows
}

func (s *Session) appendConflicts(rows []gitlad.Row, snap *gitlad.Snapshot) []gitlad.Row {
	if len(snap.Conflicts) == 0 {
		return rows
	}
	rows = append(rows, gitlad.Row{Kind: gitlad.RowBlank})
	rows = append(rows, gitlad.Row{
		Kind:    gitlad.RowSectionHeader,
		Section: gitlad.SectionConflicts,
		Text:    fmt.Sprintf("%s (%d)", gitlad.SectionConflicts.Title(), len(snap.Conflicts)),
	})
	if s.visibility == VisibilitySections {
		return rows
	}
	for _, path := range snap.Conflicts {
		rows = append(rows, gitlad.Row{
			Kind:    gitlad.RowFileEntry,
			Section: gitlad.SectionConflicts,
			Path:    path,
			Hunk:    -1,
			Line:    -1,
			Text:    "unmerged   " + path,
		})
	}
	return rows
}

func (s *Session) appendFileSection(rows []gitlad.Row, section gitlad.Section, files []gitlad.FileDiff, pending map[string]gitlad.PendingOp) []gitlad.Row {
	phantoms := s.phantomRows(section, files, pending)
	if len(files) == 0 && len(phantoms) == 0 {
		return rows
	}

	rows = append(rows, gitlad.Row{Kind: gitlad.RowBlank})
	rows = append(rows, gitlad.Row{
		Kind:    gitlad.RowSectionHeader,
		Section: section,
		Text:    fmt.Sprintf("%s (%d)", section.Title(), len(files)),
	})
	if s.visibility == VisibilitySections && len(phantoms) == 0 {
		return rows
	}

	for i := range files {
		rows = s.appendFile(rows, section, &files[i], pending)
	}
	return append(rows, phantoms...)
}

func (s *Session) appendFile(rows []gitlad.Row, section gitlad.Section, f *gitlad.FileDiff, pending map[string]gitlad.PendingOp) []gitlad.Row {
	_, isPending := pending[f.Path]
	rows = append(rows, gitlad.Row{
		Kind:    gitlad.RowFileEntry,
		Section: section,
		Path:    f.Path,
		Hunk:    -1,
		Line:    -1,
		Text:    fileEntryText(f),
		Pending: isPending,
	})

	if s.visibility == VisibilitySections {
		return rows
	}
	expansion, closed := s.expansion(f.Path)
	if expansion == Collapsed || f.IsBinary {
		return rows
	}

	for hi := range f.Hunks {
		h := &f.Hunks[hi]
		rows = append(rows, gitlad.Row{
			Kind:    gitlad.RowHunkHeader,
			Section: section,
			Path:    f.Path,
			Hunk:    hi,
			Line:    -1,
			Text:    h.Header(),
			Pending: isPending,
		})
		if expansion != FullyExpanded || closed[hi] {
			continue
		}
		for li := range h.Lines {
			l := &h.Lines[li]
			rows = append(rows, gitlad.Row{
				Kind:    gitlad.RowDiffLine,
				Section: section,
				Path:    f.Path,
				Hunk:    hi,
				Line:    li,
				Text:    string(l.Kind.Marker()) + l.Content,
				Pending: isPending,
			})
		}
	}
	return rows
}

// phantomRows builds rows for pending targets that do not yet exist in the
// section's file list, such as a worktree still being created. A phantom
// forces its section to render even when the section is otherwise empty.
func (s *Session) phantomRows(section gitlad.Section, files []gitlad.FileDiff, pending map[string]gitlad.PendingOp) []gitlad.Row {
	var rows []gitlad.Row
	for path, op := range pending {
		if phantomSection(op.Kind) != section {
			continue
		}
		present := false
		for i := range files {
			if files[i].Path == path {
				present = true
				break
			}
		}
		if present {
			continue
		}
		rows = append(rows, gitlad.Row{
			Kind:    gitlad.RowPhantom,
			Section: section,
			Path:    path,
			Hunk:    -1,
			Line:    -1,
			Text:    fmt.Sprintf("%s (%s)", path, op.Message),
			Pending: true,
		})
	}
	return rows
}

func phantomSection(kind gitlad.PendingKind) gitlad.Section {
	if kind == gitlad.PendingAdd {
		return gitlad.SectionUntracked
	}
	return gitlad.SectionUnstaged
}

func (s *Session) appendRecent(rows []gitlad.Row, snap *gitlad.Snapshot) []gitlad.Row {
	if len(snap.RecentCommits) == 0 {
		return rows
	}
	rows = append(rows, gitlad.Row{Kind: gitlad.RowBlank})
	rows = append(rows, gitlad.Row{
		Kind:    gitlad.RowSectionHeader,
		Section: gitlad.SectionRecent,
		Text:    gitlad.SectionRecent.Title(),
	})
	if s.visibility == VisibilitySections {
		return rows
	}
	for _, c := range snap.RecentCommits {
		rows = append(rows, gitlad.Row{
			Kind:    gitlad.RowCommitEntry,
			Section: gitlad.SectionRecent,
			Text:    c.ShortHash + " " + c.Subject,
		})
	}
	return rows
}

func fileEntryText(f *gitlad.FileDiff) string {
	if f.State == gitlad.FileRenamed && f.OldPath != f.Path {
		return fmt.Sprintf("%-10s %s -> %s", f.State, f.OldPath, f.Path)
	}
	return fmt.Sprintf("%-10s %s", f.State, f.Path)
}
