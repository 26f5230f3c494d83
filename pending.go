package gitlad

import "time"

// PendingKind classifies an in-flight long-running operation.
type PendingKind int

// Pending operation kinds.
const (
	PendingGeneric PendingKind = iota
	PendingAdd
	PendingDelete
)

// PendingOp is a registered in-flight action. It drives overlay rendering
// and blocks destructive concurrent actions on the same target.
type PendingOp struct {
	Path      string // target path, relative to the repository root
	Kind      PendingKind
	Message   string
	Root      string // repository root the operation belongs to
	CreatedAt time.Time
}
