package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/actionshrimp/gitlad"
)

// Compile-time interface verification.
var _ gitlad.Applier = (*Applier)(nil)

// Applier feeds synthesized patches to `git apply`.
type Applier struct {
	repo *Repo
}

// NewApplier creates an applier for the repository.
func NewApplier(repo *Repo) *Applier {
	return &Applier{repo: repo}
}

// Apply runs the patch against the target with the matching flag set. A
// "does not apply" failure means the underlying file changed since the
// diff was parsed; it surfaces as gitlad.ErrPatchRejected and the caller
// must refresh and re-derive its selection. Anything else is a
// *gitlad.ApplyError carrying stderr verbatim.
func (a *Applier) Apply(ctx context.Context, patch string, target gitlad.ApplyTarget) error {
	args := []string{"apply"}
	switch target {
	case gitlad.ApplyIndex:
		args = append(args, "--cached")
	case gitlad.ApplyIndexReverse:
		args = append(args, "--cached", "-R")
	case gitlad.ApplyWorktreeReverse:
		args = append(args, "-R")
	}
	args = append(args, "-")

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = a.repo.root
	cmd.Stdin = strings.NewReader(patch)

	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if strings.Contains(msg, "does not apply") ||
			strings.Contains(msg, "does not match index") ||
			strings.Contains(msg, "patch failed") {
			return fmt.Errorf("%w: %s", gitlad.ErrPatchRejected, msg)
		}
		return &gitlad.ApplyError{Stderr: msg, Err: err}
	}
	return nil
}
