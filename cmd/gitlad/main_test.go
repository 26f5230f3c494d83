package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actionshrimp/gitlad"
	main "github.com/actionshrimp/gitlad/cmd/gitlad"
	"github.com/actionshrimp/gitlad/git"
	"github.com/actionshrimp/gitlad/mock"
)

// mockViewer implements gitlad.Viewer for testing.
type mockViewer struct {
	ViewFn func(ctx context.Context) error
}

func (v *mockViewer) View(ctx context.Context) error {
	return v.ViewFn(ctx)
}

func TestApp_Run_StatusSummary(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	app := &main.App{
		Status: true,
		Output: &out,
		Loader: &mock.Loader{
			LoadFn: func(_ context.Context) (*gitlad.Snapshot, error) {
				return &gitlad.Snapshot{
					Branch:      "main",
					HeadSubject: "initial commit",
					Untracked: []gitlad.FileDiff{
						{Path: "notes.txt", State: gitlad.FileUntracked},
					},
					Unstaged: []gitlad.FileDiff{
						{Path: "file.go", State: gitlad.FileModified},
					},
				}, nil
			},
		},
		Applier: &mock.Applier{},
	}

	require.NoError(t, app.Run(context.Background()))

	assert.Contains(t, out.String(), "## main initial commit")
	assert.Contains(t, out.String(), "Untracked files (1)")
	assert.Contains(t, out.String(), "untracked  notes.txt")
	assert.Contains(t, out.String(), "Unstaged changes (1)")
	assert.Contains(t, out.String(), "modified   file.go")
}

func TestApp_Run_StatusCleanTree(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	app := &main.App{
		Status: true,
		Output: &out,
		Loader: &mock.Loader{
			LoadFn: func(_ context.Context) (*gitlad.Snapshot, error) {
				return &gitlad.Snapshot{Branch: "main", HeadSubject: "tidy"}, nil
			},
		},
		Applier: &mock.Applier{},
	}

	require.NoError(t, app.Run(context.Background()))
	assert.Contains(t, out.String(), "nothing to commit, working tree clean")
}

func TestApp_Run_LoadError(t *testing.T) {
	t.Parallel()

	app := &main.App{
		Status: true,
		Loader: &mock.Loader{
			LoadFn: func(_ context.Context) (*gitlad.Snapshot, error) {
				return nil, errors.New("git exploded")
			},
		},
		Applier: &mock.Applier{},
	}

	err := app.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git exploded")
}

func TestApp_Run_NotARepository(t *testing.T) {
	t.Parallel()

	app := &main.App{
		Dir:    t.TempDir(),
		Status: true,
	}

	err := app.Run(context.Background())
	assert.ErrorIs(t, err, git.ErrNotRepository)
}

func TestApp_Run_UsesInjectedViewer(t *testing.T) {
	t.Parallel()

	viewed := false
	app := &main.App{
		Loader:  &mock.Loader{},
		Applier: &mock.Applier{},
		Viewer: &mockViewer{
			ViewFn: func(_ context.Context) error {
				viewed = true
				return nil
			},
		},
	}

	require.NoError(t, app.Run(context.Background()))
	assert.True(t, viewed)
}
