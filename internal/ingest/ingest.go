// Package ingest turns external drag payloads into shelf entries. Payload
// resolution is asynchronous relative to the drop gesture; every resulting
// shelf mutation is marshaled back onto the single UI-mutation context
// through the dispatcher.
package ingest

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"

	"github.com/dropdock/dropdock/internal/logging"
	"github.com/dropdock/dropdock/internal/shelf"
)

// Ingestor receives drop batches from the drop target surface and feeds the
// shelf store. Drops always target the shelf's root entries regardless of
// the current browse state.
type Ingestor struct {
	store    *shelf.Store
	dispatch shelf.Dispatcher
	logger   *logging.Logger
}

// NewIngestor creates an ingestor for the store.
func NewIngestor(store *shelf.Store, dispatch shelf.Dispatcher) *Ingestor {
	return &Ingestor{
		store:    store,
		dispatch: dispatch,
		logger:   logging.NewLogger("ingest"),
	}
}

// Drop processes one drop gesture. It reports whether the gesture was
// accepted, which is true as soon as at least one payload began processing;
// individual payloads may still fail to resolve or deduplicate away later.
// "Accepted the gesture" and "changed state" deliberately diverge.
func (in *Ingestor) Drop(uris []fyne.URI) bool {
	if len(uris) == 0 {
		return false
	}

	in.logger.Debug().Int("payloads", len(uris)).Msg("Drop received")
	for _, uri := range uris {
		go in.resolve(uri)
	}
	return true
}

// resolve maps one payload to a filesystem path off the UI context, then
// marshals the shelf mutation back onto it. Unresolvable payloads are
// skipped with a warning; they never abort the rest of the batch.
func (in *Ingestor) resolve(uri fyne.URI) {
	path, err := PathForURI(uri)
	if err != nil {
		in.logger.Warn().Err(err).Msg("Skipping payload that cannot resolve to a path")
		return
	}

	in.dispatch.Do(func() {
		in.store.AddRoot(path)
	})
}

// PathForURI resolves a drag payload to an absolute filesystem path.
// Only file-scheme payloads are resolvable.
func PathForURI(uri fyne.URI) (string, error) {
	if uri == nil {
		return "", fmt.Errorf("nil payload")
	}
	if uri.Scheme() != "file" {
		return "", fmt.Errorf("payload scheme %q does not resolve to a path", uri.Scheme())
	}

	path := uri.Path()
	if path == "" {
		return "", fmt.Errorf("payload has an empty path")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot absolutize %q: %w", path, err)
	}
	return filepath.Clean(abs), nil
}
