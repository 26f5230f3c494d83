package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actionshrimp/gitlad"
	"github.com/actionshrimp/gitlad/render"
)

func twoHunkFile(path string) gitlad.FileDiff {
	return gitlad.FileDiff{
		Path:    path,
		OldPath: path,
		State:   gitlad.FileModified,
		Hunks: []gitlad.Hunk{
			{
				OldStart: 1, OldCount: 1, NewStart: 1, NewCount: 1,
				Lines: []gitlad.Line{
					{Kind: gitlad.LineRemoved, Content: "line1", OldLineNo: 1},
					{Kind: gitlad.LineAdded, Content: "line1 modified", NewLineNo: 1},
				},
			},
			{
				OldStart: 10, OldCount: 1, NewStart: 10, NewCount: 1,
				Lines: []gitlad.Line{
					{Kind: gitlad.LineRemoved, Content: "line10", OldLineNo: 10},
					{Kind: gitlad.LineAdded, Content: "line10 modified", NewLineNo: 10},
				},
			},
		},
	}
}

func testSnapshot() *gitlad.Snapshot {
	return &gitlad.Snapshot{
		Root:        "/repo",
		Branch:      "main",
		Upstream:    "origin/main",
		Ahead:       1,
		HeadSubject: "initial commit",
		Unstaged:    []gitlad.FileDiff{twoHunkFile("file.go")},
		Staged:      []gitlad.FileDiff{twoHunkFile("staged.go")},
		RecentCommits: []gitlad.Commit{
			{ShortHash: "abc1234", Subject: "initial commit"},
		},
	}
}

func applySnapshot(t *testing.T, s *render.Session, snap *gitlad.Snapshot) {
	t.Helper()
	seq := s.BeginRefresh()
	require.True(t, s.ApplyRefresh(seq, snap))
}

func rowTexts(rows []gitlad.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Text
	}
	return out
}

func findRow(rows []gitlad.Row, kind gitlad.RowKind, text string) (gitlad.Row, bool) {
	for _, r := range rows {
		if r.Kind == kind && r.Text == text {
			return r, true
		}
	}
	return gitlad.Row{}, false
}

func TestSession_RowsEmptyBeforeFirstRefresh(t *testing.T) {
	t.Parallel()

	s := render.NewSession()
	assert.Empty(t, s.Rows(nil))
}

func TestSession_StaleRefreshIsDiscarded(t *testing.T) {
	t.Parallel()

	s := render.NewSession()
	first := s.BeginRefresh()
	second := s.BeginRefresh()

	newer := testSnapshot()
	require.True(t, s.ApplyRefresh(second, newer))

	// The older in-flight result must not clobber the newer one.
	older := &gitlad.Snapshot{Branch: "stale"}
	assert.False(t, s.ApplyRefresh(first, older))
	assert.Equal(t, newer, s.Snapshot())
}

func TestSession_BranchAndSectionRows(t *testing.T) {
	t.Parallel()

	s := render.NewSession()
	applySnapshot(t, s, testSnapshot())

	rows := s.Rows(nil)
	texts := rowTexts(rows)

	assert.Contains(t, texts, "Head:     main initial commit")
	assert.Contains(t, texts, "Merge:    origin/main (ahead 1, behind 0)")
	assert.Contains(t, texts, "Unstaged changes (1)")
	assert.Contains(t, texts, "Staged changes (1)")
	assert.Contains(t, texts, "Recent commits")
	assert.Contains(t, texts, "abc1234 initial commit")

	// Empty sections are hidden entirely.
	assert.NotContains(t, texts, "Untracked files (0)")
	assert.NotContains(t, texts, "Conflicts (0)")
}

func TestSession_DefaultVisibilityShowsHunkHeaders(t *testing.T) {
	t.Parallel()

	s := render.NewSession()
	applySnapshot(t, s, testSnapshot())

	rows := s.Rows(nil)

	header, ok := findRow(rows, gitlad.RowHunkHeader, "@@ -1 +1 @@")
	require.True(t, ok)
	assert.Equal(t, "file.go", header.Path)
	assert.Equal(t, 0, header.Hunk)

	// Hunk bodies stay hidden at the default level.
	_, ok = findRow(rows, gitlad.RowDiffLine, "+line1 modified")
	assert.False(t, ok)
}

func TestSession_SetVisibilityBulkBehavior(t *testing.T) {
	t.Parallel()

	s := render.NewSession()
	applySnapshot(t, s, testSnapshot())

	s.SetVisibility(render.VisibilityAll)
	rows := s.Rows(nil)
	row, ok := findRow(rows, gitlad.RowDiffLine, "+line1 modified")
	require.True(t, ok)
	assert.Equal(t, gitlad.SectionUnstaged, row.Section)
	assert.Equal(t, 0, row.Hunk)
	assert.Equal(t, 1, row.Line)

	s.SetVisibility(render.VisibilitySections)
	rows = s.Rows(nil)
	for _, r := range rows {
		assert.NotEqual(t, gitlad.RowDiffLine, r.Kind)
		assert.NotEqual(t, gitlad.RowHunkHeader, r.Kind)
		assert.NotEqual(t, gitlad.RowFileEntry, r.Kind)
	}

	s.SetVisibility(render.VisibilityFiles)
	rows = s.Rows(nil)
	_, ok = findRow(rows, gitlad.RowFileEntry, "modified   file.go")
	assert.True(t, ok)
	_, ok = findRow(rows, gitlad.RowHunkHeader, "@@ -1 +1 @@")
	assert.False(t, ok)
}

func TestSession_ManualToggleOverridesGlobalDefault(t *testing.T) {
	t.Parallel()

	s := render.NewSession()
	applySnapshot(t, s, testSnapshot())

	// HeadersOnly -> FullyExpanded.
	s.Toggle("file.go")
	rows := s.Rows(nil)
	_, ok := findRow(rows, gitlad.RowDiffLine, "+line1 modified")
	assert.True(t, ok)

	// The next bulk-set clears the override.
	s.SetVisibility(render.VisibilityHunks)
	rows = s.Rows(nil)
	_, ok = findRow(rows, gitlad.RowDiffLine, "+line1 modified")
	assert.False(t, ok)
}

func TestSession_ToggleCycles(t *testing.T) {
	t.Parallel()

	s := render.NewSession()
	applySnapshot(t, s, testSnapshot())

	// Default is HeadersOnly; a full cycle returns there.
	s.Toggle("file.go") // FullyExpanded
	s.Toggle("file.go") // Collapsed
	rows := s.Rows(nil)
	_, ok := findRow(rows, gitlad.RowHunkHeader, "@@ -1 +1 @@")
	assert.False(t, ok)

	s.Toggle("file.go") // HeadersOnly
	rows = s.Rows(nil)
	_, ok = findRow(rows, gitlad.RowHunkHeader, "@@ -1 +1 @@")
	assert.True(t, ok)
	_, ok = findRow(rows, gitlad.RowDiffLine, "+line1 modified")
	assert.False(t, ok)
}

func TestSession_ExpansionMemoryRestoresHunkSet(t *testing.T) {
	t.Parallel()

	s := render.NewSession()
	applySnapshot(t, s, testSnapshot())

	s.Toggle("file.go") // FullyExpanded, all hunks open
	s.ToggleHunk("file.go", 0)
	rows := s.Rows(nil)
	_, ok := findRow(rows, gitlad.RowDiffLine, "+line1 modified")
	require.False(t, ok)
	_, ok = findRow(rows, gitlad.RowDiffLine, "+line10 modified")
	require.True(t, ok)

	// Collapse, then cycle back to FullyExpanded: exactly the previously
	// visible hunk set comes back.
	s.Toggle("file.go") // Collapsed
	s.Toggle("file.go") // HeadersOnly
	s.Toggle("file.go") // FullyExpanded
	rows = s.Rows(nil)
	_, ok = findRow(rows, gitlad.RowDiffLine, "+line1 modified")
	assert.False(t, ok)
	_, ok = findRow(rows, gitlad.RowDiffLine, "+line10 modified")
	assert.True(t, ok)
}

func TestSession_ExpandFullyOpensEverything(t *testing.T) {
	t.Parallel()

	s := render.NewSession()
	applySnapshot(t, s, testSnapshot())

	s.Toggle("file.go")
	s.ToggleHunk("file.go", 0)
	s.ExpandFully("file.go")

	rows := s.Rows(nil)
	_, ok := findRow(rows, gitlad.RowDiffLine, "+line1 modified")
	assert.True(t, ok)
	_, ok = findRow(rows, gitlad.RowDiffLine, "+line10 modified")
	assert.True(t, ok)
}

func TestSession_ExpansionSurvivesRefresh(t *testing.T) {
	t.Parallel()

	s := render.NewSession()
	applySnapshot(t, s, testSnapshot())
	s.Toggle("file.go") // FullyExpanded

	// A state-changing action rebuilds the snapshot from scratch; the
	// expansion state is keyed by path and must carry over.
	applySnapshot(t, s, testSnapshot())
	rows := s.Rows(nil)
	_, ok := findRow(rows, gitlad.RowDiffLine, "+line1 modified")
	assert.True(t, ok)
}

func TestSession_StaleExpansionEntriesAreDropped(t *testing.T) {
	t.Parallel()

	s := render.NewSession()
	applySnapshot(t, s, testSnapshot())
	s.Toggle("file.go")

	// file.go vanished from the tree; rendering must not error and a
	// reappearing file starts from the global default.
	applySnapshot(t, s, &gitlad.Snapshot{Branch: "main"})
	assert.NotEmpty(t, s.Rows(nil))

	applySnapshot(t, s, testSnapshot())
	rows := s.Rows(nil)
	_, ok := findRow(rows, gitlad.RowDiffLine, "+line1 modified")
	assert.False(t, ok)
}

func TestSession_PhantomRowForcesSection(t *testing.T) {
	t.Parallel()

	s := render.NewSession()
	applySnapshot(t, s, &gitlad.Snapshot{Branch: "main"})

	ops := []gitlad.PendingOp{{
		Path:    "worktrees/feature",
		Kind:    gitlad.PendingAdd,
		Message: "creating worktree",
		Root:    "/repo",
	}}

	rows := s.Rows(ops)
	texts := rowTexts(rows)
	assert.Contains(t, texts, "Untracked files (0)")

	row, ok := findRow(rows, gitlad.RowPhantom, "worktrees/feature (creating worktree)")
	require.True(t, ok)
	assert.True(t, row.Pending)
	assert.Equal(t, gitlad.SectionUntracked, row.Section)
}

func TestSession_PendingDecoratesExistingRows(t *testing.T) {
	t.Parallel()

	s := render.NewSession()
	applySnapshot(t, s, testSnapshot())

	ops := []gitlad.PendingOp{{
		Path: "file.go", Kind: gitlad.PendingGeneric, Message: "staging", Root: "/repo",
	}}

	rows := s.Rows(ops)
	row, ok := findRow(rows, gitlad.RowFileEntry, "modified   file.go")
	require.True(t, ok)
	assert.True(t, row.Pending)

	// Decorated, not duplicated: no phantom for an existing target.
	for _, r := range rows {
		assert.NotEqual(t, gitlad.RowPhantom, r.Kind)
	}
}

func TestSession_Resolve(t *testing.T) {
	t.Parallel()

	s := render.NewSession()
	applySnapshot(t, s, testSnapshot())
	s.SetVisibility(render.VisibilityAll)
	rows := s.Rows(nil)

	_, ok := s.Resolve(rows, -1)
	assert.False(t, ok)
	_, ok = s.Resolve(rows, len(rows))
	assert.False(t, ok)

	for i, want := range rows {
		got, ok := s.Resolve(rows, i)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}
