package gitlad

import "context"

// ApplyTarget selects the flag set for the external patch-apply primitive.
type ApplyTarget int

// Apply targets.
const (
	// ApplyIndex applies the patch to the index only (apply --cached).
	ApplyIndex ApplyTarget = iota
	// ApplyIndexReverse reverse-applies against the index (apply --cached -R).
	ApplyIndexReverse
	// ApplyWorktreeReverse reverse-applies against the worktree (apply -R).
	ApplyWorktreeReverse
)

// Applier feeds synthesized patches to the external apply primitive.
type Applier interface {
	// Apply runs the patch against the target. It returns ErrPatchRejected
	// when the patch no longer matches on-disk or index state, and an
	// *ApplyError for any other failure.
	Apply(ctx context.Context, patch string, target ApplyTarget) error
}
