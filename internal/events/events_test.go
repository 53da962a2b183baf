package events

import (
	"errors"
	"testing"
	"time"
)

func TestSubscribeReceivesPublishedEvent(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	ch := bus.Subscribe(EventShelfChanged)
	bus.Publish(NewShelfChangedEvent(3, "/tmp/a.txt", true))

	select {
	case ev := <-ch:
		shelfEv, ok := ev.(*ShelfChangedEvent)
		if !ok {
			t.Fatalf("got %T, want *ShelfChangedEvent", ev)
		}
		if shelfEv.Count != 3 {
			t.Errorf("Count = %d, want 3", shelfEv.Count)
		}
		if shelfEv.Path != "/tmp/a.txt" {
			t.Errorf("Path = %q, want %q", shelfEv.Path, "/tmp/a.txt")
		}
		if !shelfEv.Added {
			t.Error("Added = false, want true")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestSubscribeFiltersByType(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	ch := bus.Subscribe(EventNavigationChanged)
	bus.Publish(NewShelfChangedEvent(1, "/tmp/a.txt", true))
	bus.Publish(NewNavigationChangedEvent(1, "/tmp/dir"))

	select {
	case ev := <-ch:
		if ev.Type() != EventNavigationChanged {
			t.Errorf("got event type %q, want %q", ev.Type(), EventNavigationChanged)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestSubscribeAllReceivesEverything(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	ch := bus.SubscribeAll()
	bus.Publish(NewDisplayChangedEvent(0, true, ""))
	bus.Publish(NewListingFailedEvent("/gone", errors.New("permission denied")))

	types := make(map[EventType]bool)
	for i := 0; i < 2; i++ {
		select {
		case ev := <-ch:
			types[ev.Type()] = true
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for events")
		}
	}

	if !types[EventDisplayChanged] || !types[EventListingFailed] {
		t.Errorf("got types %v, want both display_changed and listing_failed", types)
	}
}

func TestPublishDoesNotBlockOnFullBuffer(t *testing.T) {
	bus := NewEventBus(1)
	defer bus.Close()

	_ = bus.Subscribe(EventDragStarted) // Never drained

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			bus.Publish(NewDragStartedEvent("id"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full subscriber buffer")
	}

	if bus.DroppedEventCount() == 0 {
		t.Error("expected dropped events to be counted")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	ch := bus.Subscribe(EventShelfChanged)
	bus.Unsubscribe(EventShelfChanged, ch)
	bus.Publish(NewShelfChangedEvent(1, "/tmp/x", true))

	select {
	case ev := <-ch:
		t.Errorf("received %v after unsubscribe", ev.Type())
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPublishAfterCloseIsNoOp(t *testing.T) {
	bus := NewEventBus(10)
	ch := bus.Subscribe(EventShelfChanged)
	bus.Close()

	// Must not panic on closed channels.
	bus.Publish(NewShelfChangedEvent(1, "/tmp/x", true))

	if _, open := <-ch; open {
		t.Error("subscriber channel still open after Close")
	}
}

func TestSubscribeAfterCloseReturnsClosedChannel(t *testing.T) {
	bus := NewEventBus(10)
	bus.Close()

	ch := bus.Subscribe(EventShelfChanged)
	if _, open := <-ch; open {
		t.Error("expected closed channel from Subscribe after Close")
	}
}
