// Package git shells out to the git binary for repository state and patch
// application. All output interpretation happens here; callers only see
// domain types and the error taxonomy of the root package.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNotRepository indicates the path is not inside a git repository.
var ErrNotRepository = errors.New("not a git repository")

// Repo is a handle on one repository root. It carries no mutable state;
// every query runs a fresh git process.
type Repo struct {
	root string
}

// Open opens the repository rooted at path. The path must contain a .git
// directory or worktree pointer file.
func Open(path string) (*Repo, error) {
	gitDir := filepath.Join(path, ".git")
	info, err := os.Stat(gitDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotRepository
		}
		return nil, fmt.Errorf("stat .git: %w", err)
	}

	if !info.IsDir() {
		// Linked worktrees store a "gitdir:" pointer file instead.
		content, err := os.ReadFile(gitDir)
		if err != nil {
			return nil, fmt.Errorf("read .git file: %w", err)
		}
		if !bytes.HasPrefix(content, []byte("gitdir:")) {
			return nil, ErrNotRepository
		}
	}

	return &Repo{root: path}, nil
}

// Discover walks up from path until it finds a repository root.
func Discover(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}

	current := abs
	for {
		if _, err := os.Stat(filepath.Join(current, ".git")); err == nil {
			return Open(current)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return nil, ErrNotRepository
		}
		current = parent
	}
}

// Root returns the repository root path.
func (r *Repo) Root() string { return r.root }

// run executes a git command in the repository and returns stdout. A
// non-zero exit surfaces trimmed stderr as the error text.
func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.root

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// runLines executes a git command and splits stdout into lines.
func (r *Repo) runLines(ctx context.Context, args ...string) ([]string, error) {
	out, err := r.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	out = strings.TrimSuffix(out, "\n")
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}
