package gitlad

import (
	"errors"
	"fmt"
)

// ErrPatchRejected indicates a synthesized patch no longer matches the index
// or worktree state it was derived from. The caller must refresh and build a
// new selection; retrying the same patch can never succeed.
var ErrPatchRejected = errors.New("patch does not apply, refresh and retry")

// ErrStagedChanges indicates a discard was refused because the target has
// staged changes that a worktree revert would silently orphan.
var ErrStagedChanges = errors.New("file has staged changes, unstage before discarding")

// ParseError indicates malformed diff input. It is fatal to the refresh that
// produced it but never to the process.
type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse diff: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("parse diff: %s", e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SelectionError indicates an invalid user selection. It is recovered
// locally: the buffer state is unchanged and a warning is shown.
type SelectionError struct {
	Reason string
}

func (e *SelectionError) Error() string {
	return "invalid selection: " + e.Reason
}

// ApplyError indicates the external apply primitive failed for a reason
// other than patch rejection. Stderr is carried verbatim and not parsed.
type ApplyError struct {
	Stderr string
	Err    error
}

func (e *ApplyError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("git apply: %v: %s", e.Err, e.Stderr)
	}
	return fmt.Sprintf("git apply: %v", e.Err)
}

func (e *ApplyError) Unwrap() error { return e.Err }
