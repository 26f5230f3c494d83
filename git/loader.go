package git

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/actionshrimp/gitlad"
	"github.com/actionshrimp/gitlad/fs"
	"github.com/actionshrimp/gitlad/gitdiff"
)

// Compile-time interface verification.
var _ gitlad.Loader = (*Loader)(nil)

// defaultLogLimit bounds the recent-commits section.
const defaultLogLimit = 10

// untrackedCap bounds how much of an untracked file is rendered; anything
// larger is shown as a bare entry without a synthetic hunk body.
const untrackedCap = 1 << 20

// Loader builds snapshots by running git status, diff, and log.
type Loader struct {
	repo     *Repo
	parser   gitlad.Parser
	logLimit int
}

// NewLoader creates a loader for the repository using the given diff parser.
func NewLoader(repo *Repo, parser gitlad.Parser) *Loader {
	return &Loader{repo: repo, parser: parser, logLimit: defaultLogLimit}
}

// Load builds a fresh snapshot. The independent git invocations run
// concurrently; the first failure cancels the rest. Log queries are best
// effort so an empty repository still renders.
func (l *Loader) Load(ctx context.Context) (*gitlad.Snapshot, error) {
	snap := &gitlad.Snapshot{Root: l.repo.root}

	g, ctx := errgroup.WithContext(ctx)

	var untrackedPaths []string
	g.Go(func() error {
		paths, err := l.loadStatus(ctx, snap)
		if err != nil {
			return err
		}
		untrackedPaths = paths
		return nil
	})

	g.Go(func() error {
		files, err := l.loadDiff(ctx, false)
		if err != nil {
			return err
		}
		snap.Unstaged = files
		return nil
	})

	g.Go(func() error {
		files, err := l.loadDiff(ctx, true)
		if err != nil {
			return err
		}
		snap.Staged = files
		return nil
	})

	g.Go(func() error {
		snap.HeadSubject, snap.RecentCommits = l.loadLog(ctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, path := range untrackedPaths {
		snap.Untracked = append(snap.Untracked, l.loadUntracked(path))
	}
	return snap, nil
}

// loadStatus parses `status --porcelain=v2 --branch` for branch headers,
// conflict paths, and untracked paths. Tracked changes come from the diff
// queries instead, so ordinary entries are not consumed here.
func (l *Loader) loadStatus(ctx context.Context, snap *gitlad.Snapshot) ([]string, error) {
	lines, err := l.repo.runLines(ctx, "status", "--porcelain=v2", "--branch", "--untracked-files=all")
	if err != nil {
		return nil, err
	}

	var untracked []string
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "# branch.head "):
			head := strings.TrimPrefix(line, "# branch.head ")
			if head != "(detached)" {
				snap.Branch = head
			}
		case strings.HasPrefix(line, "# branch.upstream "):
			snap.Upstream = strings.TrimPrefix(line, "# branch.upstream ")
		case strings.HasPrefix(line, "# branch.ab "):
			parts := strings.Fields(strings.TrimPrefix(line, "# branch.ab "))
			if len(parts) == 2 {
				snap.Ahead, _ = strconv.Atoi(strings.TrimPrefix(parts[0], "+"))
				snap.Behind, _ = strconv.Atoi(strings.TrimPrefix(parts[1], "-"))
			}
		case strings.HasPrefix(line, "u "):
			if path := unmergedPath(line); path != "" {
				snap.Conflicts = append(snap.Conflicts, path)
			}
		case strings.HasPrefix(line, "? "):
			untracked = append(untracked, line[2:])
		}
	}
	return untracked, nil
}

// unmergedPath extracts the path of a porcelain v2 unmerged entry:
// u <XY> <sub> <m1> <m2> <m3> <mW> <h1> <h2> <h3> <path>
func unmergedPath(line string) string {
	fields := strings.SplitN(line, " ", 11)
	if len(fields) < 11 {
		return ""
	}
	return fields[10]
}

func (l *Loader) loadDiff(ctx context.Context, staged bool) ([]gitlad.FileDiff, error) {
	args := []string{"diff", "-M"}
	if staged {
		args = append(args, "--cached")
	}
	out, err := l.repo.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return l.parser.Parse(strings.NewReader(out))
}

// loadUntracked reads raw file bytes and normalizes them into the same
// hunk model as diff output. Unreadable or oversized files degrade to a
// bare entry rather than failing the refresh.
func (l *Loader) loadUntracked(path string) gitlad.FileDiff {
	content, err := fs.ReadCapped(l.repo.root, path, untrackedCap)
	if err != nil {
		return gitlad.FileDiff{Path: path, OldPath: path, State: gitlad.FileUntracked}
	}
	return gitdiff.Untracked(path, content)
}

// loadLog fetches the HEAD subject and the recent-commit section. Both are
// best effort: a repository with no commits yet simply renders without them.
func (l *Loader) loadLog(ctx context.Context) (string, []gitlad.Commit) {
	lines, err := l.repo.runLines(ctx, "log", "--format=%h\x1f%s", "-n", strconv.Itoa(l.logLimit))
	if err != nil {
		return "", nil
	}

	var subject string
	var commits []gitlad.Commit
	for i, line := range lines {
		hash, subj, ok := strings.Cut(line, "\x1f")
		if !ok {
			continue
		}
		if i == 0 {
			subject = subj
		}
		commits = append(commits, gitlad.Commit{ShortHash: hash, Subject: subj})
	}
	return subject, commits
}
