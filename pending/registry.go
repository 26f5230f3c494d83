// Package pending tracks in-flight long-running actions keyed by target
// path, driving overlay rendering and blocking duplicate concurrent actions.
package pending

import (
	"sync"
	"time"

	"github.com/actionshrimp/gitlad"
)

type key struct {
	root string
	path string
}

type entry struct {
	op gitlad.PendingOp
}

// Registry is process-wide shared state: any buffer's render session reads
// it and any action initiator writes it. Registrations are independent and
// never deduped; distinct callers may race distinct operations on the same
// target (a delete followed immediately by a recreate) and each completion
// must fire before the key clears.
type Registry struct {
	mu      sync.Mutex
	entries map[key][]*entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[key][]*entry)}
}

// Register records an in-flight operation and returns its completion
// closure. Calling the closure is the only way to clear the registration;
// it is safe to call more than once, and only the first call has effect.
func (r *Registry) Register(path string, kind gitlad.PendingKind, message, root string) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := &entry{
		op: gitlad.PendingOp{
			Path:      path,
			Kind:      kind,
			Message:   message,
			Root:      root,
			CreatedAt: time.Now(),
		},
	}
	k := key{root: root, path: path}
	r.entries[k] = append(r.entries[k], e)

	var once sync.Once
	return func() {
		once.Do(func() {
			r.complete(k, e)
		})
	}
}

func (r *Registry) complete(k key, target *entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	live := r.entries[k][:0]
	for _, e := range r.entries[k] {
		if e != target {
			live = append(live, e)
		}
	}
	if len(live) == 0 {
		delete(r.entries, k)
		return
	}
	r.entries[k] = live
}

// All returns every live operation for the given repository root. When a
// target carries stacked registrations, the most recent one wins for
// display and is the one returned.
func (r *Registry) All(root string) []gitlad.PendingOp {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ops []gitlad.PendingOp
	for k, entries := range r.entries {
		if k.root != root || len(entries) == 0 {
			continue
		}
		ops = append(ops, entries[len(entries)-1].op)
	}
	return ops
}

// Has reports whether the target path has any live operation.
func (r *Registry) Has(path, root string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries[key{root: root, path: path}]) > 0
}

// ClearAll drops every registration. Emergency reset for teardown use;
// outstanding completion closures become no-ops.
func (r *Registry) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[key][]*entry)
}
