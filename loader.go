package gitlad

import "context"

// Loader builds a fresh Snapshot of repository state. Implementations shell
// out to git; the snapshot is rebuilt from scratch on every call rather than
// patched in place, which sidesteps stale-hunk bugs across refreshes.
type Loader interface {
	Load(ctx context.Context) (*Snapshot, error)
}
