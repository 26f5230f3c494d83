package gitdiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actionshrimp/gitlad"
	"github.com/actionshrimp/gitlad/gitdiff"
)

func TestUntracked_SyntheticHunk(t *testing.T) {
	t.Parallel()

	fd := gitdiff.Untracked("notes.txt", []byte("one\ntwo\nthree\n"))

	assert.Equal(t, "notes.txt", fd.Path)
	assert.Equal(t, gitlad.FileUntracked, fd.State)
	require.Len(t, fd.Hunks, 1)

	h := fd.Hunks[0]
	assert.Equal(t, 0, h.OldStart)
	assert.Equal(t, 0, h.OldCount)
	assert.Equal(t, 1, h.NewStart)
	assert.Equal(t, 3, h.NewCount)
	require.Len(t, h.Lines, 3)
	for i, line := range h.Lines {
		assert.Equal(t, gitlad.LineAdded, line.Kind)
		assert.Equal(t, i+1, line.NewLineNo)
		assert.Equal(t, 0, line.OldLineNo)
		assert.False(t, line.NoNewline)
	}
	assert.Equal(t, "one", h.Lines[0].Content)
	assert.Equal(t, "three", h.Lines[2].Content)
}

func TestUntracked_MissingFinalNewline(t *testing.T) {
	t.Parallel()

	fd := gitdiff.Untracked("notes.txt", []byte("one\ntwo"))

	require.Len(t, fd.Hunks, 1)
	h := fd.Hunks[0]
	require.Len(t, h.Lines, 2)
	assert.False(t, h.Lines[0].NoNewline)
	assert.True(t, h.Lines[1].NoNewline)
	assert.Equal(t, 2, h.NewCount)
}

func TestUntracked_EmptyFile(t *testing.T) {
	t.Parallel()

	fd := gitdiff.Untracked("empty.txt", nil)

	assert.Equal(t, gitlad.FileUntracked, fd.State)
	assert.Empty(t, fd.Hunks)
	assert.False(t, fd.IsBinary)
}

func TestUntracked_BinaryContent(t *testing.T) {
	t.Parallel()

	fd := gitdiff.Untracked("blob.bin", []byte{0x89, 0x50, 0x00, 0x47})

	assert.True(t, fd.IsBinary)
	assert.Empty(t, fd.Hunks)
}
