package gitlad

import "context"

// Viewer presents the interactive status buffer to the user.
type Viewer interface {
	// View displays the buffer and blocks until the user quits.
	View(ctx context.Context) error
}
