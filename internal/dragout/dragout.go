// Package dragout coordinates dragging entries out of the panel and their
// removal from the shelf.
//
// The OS drag transport gives no reliable end-of-drag callback for drags
// that leave the application, so completion is approximated: when the app
// later regains foreground focus, the entry marked as dragging out is
// treated as successfully moved and removed. This heuristic is explicitly
// best-effort: it can false-positive on an aborted drag and it never
// confirms that the target application actually accepted the file. Only one
// entry is tracked at a time.
package dragout

import (
	"sync"

	"github.com/dropdock/dropdock/internal/events"
	"github.com/dropdock/dropdock/internal/logging"
	"github.com/dropdock/dropdock/internal/shelf"
)

// Coordinator tracks the single in-flight outbound drag and applies the
// removal rules. Explicit deletion is deterministic and independent of any
// drag state.
type Coordinator struct {
	mu       sync.Mutex
	dragging string // Entry id currently dragging out; "" when idle

	store  *shelf.Store
	bus    *events.EventBus
	logger *logging.Logger
}

// NewCoordinator creates a coordinator for the store.
func NewCoordinator(store *shelf.Store, bus *events.EventBus) *Coordinator {
	return &Coordinator{
		store:  store,
		bus:    bus,
		logger: logging.NewLogger("dragout"),
	}
}

// BeginDrag marks an entry as dragging out. Returns false if another drag is
// already in flight or the entry is not currently displayed.
func (c *Coordinator) BeginDrag(id string) bool {
	entry, ok := c.store.FindDisplayed(id)
	if !ok {
		return false
	}

	c.mu.Lock()
	if c.dragging != "" {
		c.mu.Unlock()
		return false
	}
	c.dragging = id
	c.mu.Unlock()

	c.logger.Debug().Str("path", entry.Path).Msg("Outbound drag started")
	if c.bus != nil {
		c.bus.Publish(events.NewDragStartedEvent(id))
	}
	return true
}

// CancelDrag clears the drag flag without removing anything, for drags that
// demonstrably ended inside the panel.
func (c *Coordinator) CancelDrag(id string) {
	c.mu.Lock()
	if c.dragging != id {
		c.mu.Unlock()
		return
	}
	c.dragging = ""
	c.mu.Unlock()

	c.logger.Debug().Str("id", id).Msg("Outbound drag cancelled")
	if c.bus != nil {
		c.bus.Publish(events.NewDragFinishedEvent(id, false))
	}
}

// ForegroundRegained handles the app-reactivation signal: an entry still
// marked as dragging out is treated as moved and removed. Clearing an
// already-cleared flag is a no-op, so repeated signals are harmless.
func (c *Coordinator) ForegroundRegained() {
	c.mu.Lock()
	id := c.dragging
	c.dragging = ""
	c.mu.Unlock()

	if id == "" {
		return
	}

	removed := c.store.Remove(id)
	c.logger.Info().Str("id", id).Bool("removed", removed).Msg("Drag-out resolved on foreground reactivation")
	if c.bus != nil {
		c.bus.Publish(events.NewDragFinishedEvent(id, removed))
	}
}

// Delete removes an entry explicitly and deterministically, independent of
// drag state. A pending drag flag for the same entry is cleared so the next
// foreground signal does not act on a stale id.
func (c *Coordinator) Delete(id string) bool {
	c.mu.Lock()
	if c.dragging == id {
		c.dragging = ""
	}
	c.mu.Unlock()

	return c.store.Remove(id)
}

// Dragging returns the id of the in-flight drag, or "" when idle.
func (c *Coordinator) Dragging() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragging
}
