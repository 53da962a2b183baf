// Package events provides a typed publish/subscribe event bus used to keep
// the presentation layer decoupled from the shelf state. State containers
// publish; widgets subscribe and refresh.
package events

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/dropdock/dropdock/internal/constants"
)

// EventType defines the types of events that can be emitted
type EventType string

const (
	// EventShelfChanged fires when the set of dropped top-level items changes
	// (an entry was added or removed from the shelf).
	EventShelfChanged EventType = "shelf_changed"

	// EventDisplayChanged fires whenever the displayed list is recomputed.
	EventDisplayChanged EventType = "display_changed"

	// EventNavigationChanged fires when the navigation stack is pushed or
	// popped (entering or leaving a folder).
	EventNavigationChanged EventType = "navigation_changed"

	// EventListingFailed fires when a directory listing fails. The display
	// falls back to empty; this event keeps the failure diagnosable as
	// distinct from a genuinely empty folder.
	EventListingFailed EventType = "listing_failed"

	// EventDragStarted fires when the user begins dragging an entry out of
	// the panel toward another application.
	EventDragStarted EventType = "drag_started"

	// EventDragFinished fires when an outbound drag is resolved, whether the
	// entry was removed or the drag was written off.
	EventDragFinished EventType = "drag_finished"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
	Timestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	EventType EventType
	Time      time.Time
}

func (e BaseEvent) Type() EventType      { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }

// ShelfChangedEvent reports a mutation of the shelf's root entries.
type ShelfChangedEvent struct {
	BaseEvent
	Count int    // Entries on the shelf after the change
	Path  string // Path that was added or removed
	Added bool   // True for add, false for remove
}

// DisplayChangedEvent reports that the displayed list was recomputed.
type DisplayChangedEvent struct {
	BaseEvent
	Count  int
	AtRoot bool
	Folder string // Open folder path; empty at root
}

// NavigationChangedEvent reports a navigation stack change.
type NavigationChangedEvent struct {
	BaseEvent
	Depth  int
	Folder string // Open folder path; empty at root
}

// ListingFailedEvent reports a failed directory listing.
type ListingFailedEvent struct {
	BaseEvent
	Folder string
	Err    error
}

// DragEvent reports outbound drag lifecycle changes.
type DragEvent struct {
	BaseEvent
	EntryID string
	Removed bool // Only meaningful for EventDragFinished
}

// NewShelfChangedEvent creates a ShelfChangedEvent.
func NewShelfChangedEvent(count int, path string, added bool) *ShelfChangedEvent {
	return &ShelfChangedEvent{
		BaseEvent: BaseEvent{EventType: EventShelfChanged, Time: time.Now()},
		Count:     count,
		Path:      path,
		Added:     added,
	}
}

// NewDisplayChangedEvent creates a DisplayChangedEvent.
func NewDisplayChangedEvent(count int, atRoot bool, folder string) *DisplayChangedEvent {
	return &DisplayChangedEvent{
		BaseEvent: BaseEvent{EventType: EventDisplayChanged, Time: time.Now()},
		Count:     count,
		AtRoot:    atRoot,
		Folder:    folder,
	}
}

// NewNavigationChangedEvent creates a NavigationChangedEvent.
func NewNavigationChangedEvent(depth int, folder string) *NavigationChangedEvent {
	return &NavigationChangedEvent{
		BaseEvent: BaseEvent{EventType: EventNavigationChanged, Time: time.Now()},
		Depth:     depth,
		Folder:    folder,
	}
}

// NewListingFailedEvent creates a ListingFailedEvent.
func NewListingFailedEvent(folder string, err error) *ListingFailedEvent {
	return &ListingFailedEvent{
		BaseEvent: BaseEvent{EventType: EventListingFailed, Time: time.Now()},
		Folder:    folder,
		Err:       err,
	}
}

// NewDragStartedEvent creates a DragEvent for a beginning drag.
func NewDragStartedEvent(entryID string) *DragEvent {
	return &DragEvent{
		BaseEvent: BaseEvent{EventType: EventDragStarted, Time: time.Now()},
		EntryID:   entryID,
	}
}

// NewDragFinishedEvent creates a DragEvent for a resolved drag.
func NewDragFinishedEvent(entryID string, removed bool) *DragEvent {
	return &DragEvent{
		BaseEvent: BaseEvent{EventType: EventDragFinished, Time: time.Now()},
		EntryID:   entryID,
		Removed:   removed,
	}
}

// EventBus provides publish/subscribe event distribution
type EventBus struct {
	subscribers   map[EventType][]chan Event
	all           []chan Event // Subscribers to all events
	mu            sync.RWMutex
	bufferSize    int
	closed        bool
	droppedEvents atomic.Int64 // Count of dropped events due to full buffers
}

// NewEventBus creates a new event bus with specified buffer size
func NewEventBus(bufferSize int) *EventBus {
	if bufferSize <= 0 {
		bufferSize = constants.EventBusDefaultBuffer
	}
	if bufferSize > constants.EventBusMaxBuffer {
		bufferSize = constants.EventBusMaxBuffer
	}
	return &EventBus{
		subscribers: make(map[EventType][]chan Event),
		all:         make([]chan Event, 0),
		bufferSize:  bufferSize,
	}
}

// Subscribe creates a subscription to a specific event type
func (eb *EventBus) Subscribe(eventType EventType) <-chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, eb.bufferSize)
	eb.subscribers[eventType] = append(eb.subscribers[eventType], ch)
	return ch
}

// SubscribeAll creates a subscription to all events
func (eb *EventBus) SubscribeAll() <-chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, eb.bufferSize)
	eb.all = append(eb.all, ch)
	return ch
}

// Publish sends an event to all subscribers. Publish never blocks: a
// subscriber with a full buffer misses the event and the drop is counted.
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		return
	}

	for _, ch := range eb.subscribers[event.Type()] {
		select {
		case ch <- event:
		default:
			eb.droppedEvents.Add(1)
		}
	}

	for _, ch := range eb.all {
		select {
		case ch <- event:
		default:
			eb.droppedEvents.Add(1)
		}
	}
}

// Unsubscribe removes a subscription channel from a specific event type.
// This prevents memory leaks from abandoned subscriptions.
func (eb *EventBus) Unsubscribe(eventType EventType, ch <-chan Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return
	}

	subscribers := eb.subscribers[eventType]
	for i, subCh := range subscribers {
		if subCh == ch {
			subscribers[i] = subscribers[len(subscribers)-1]
			eb.subscribers[eventType] = subscribers[:len(subscribers)-1]
			break
		}
	}
}

// UnsubscribeAll removes a subscription channel from all event types.
func (eb *EventBus) UnsubscribeAll(ch <-chan Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return
	}

	for eventType, subscribers := range eb.subscribers {
		for i, subCh := range subscribers {
			if subCh == ch {
				subscribers[i] = subscribers[len(subscribers)-1]
				eb.subscribers[eventType] = subscribers[:len(subscribers)-1]
				break
			}
		}
	}

	for i, subCh := range eb.all {
		if subCh == ch {
			eb.all[i] = eb.all[len(eb.all)-1]
			eb.all = eb.all[:len(eb.all)-1]
			break
		}
	}
}

// Close shuts down the event bus and closes all channels
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return
	}

	eb.closed = true

	for _, channels := range eb.subscribers {
		for _, ch := range channels {
			close(ch)
		}
	}

	for _, ch := range eb.all {
		close(ch)
	}
}

// DroppedEventCount returns the total number of events dropped due to full
// buffers. Useful for detecting if buffer sizes need adjustment.
func (eb *EventBus) DroppedEventCount() int64 {
	return eb.droppedEvents.Load()
}
