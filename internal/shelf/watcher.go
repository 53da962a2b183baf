package shelf

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dropdock/dropdock/internal/constants"
	"github.com/dropdock/dropdock/internal/events"
	"github.com/dropdock/dropdock/internal/logging"
)

// Watcher keeps the browse view live: while a folder is open it watches that
// folder and refreshes the display when the filesystem changes underneath
// it. At root the watcher is idle; the shelf itself only changes through
// drops and removals.
//
// Watch failures are non-fatal. A folder that cannot be watched simply
// behaves as before: the view refreshes on the next navigation.
type Watcher struct {
	store    *Store
	bus      *events.EventBus
	dispatch Dispatcher
	logger   *logging.Logger

	fsw *fsnotify.Watcher

	mu       sync.Mutex
	current  string // Currently watched folder; "" when idle
	debounce *time.Timer
	closed   bool

	navCh <-chan events.Event
	done  chan struct{}
}

// NewWatcher creates a folder watcher bound to the store and bus. Call Start
// to begin watching and Close to release the underlying OS watches.
func NewWatcher(store *Store, bus *events.EventBus, dispatch Dispatcher) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		store:    store,
		bus:      bus,
		dispatch: dispatch,
		logger:   logging.NewLogger("watcher"),
		fsw:      fsw,
		done:     make(chan struct{}),
	}, nil
}

// Start subscribes to navigation changes and begins processing filesystem
// events.
func (w *Watcher) Start() {
	w.navCh = w.bus.Subscribe(events.EventNavigationChanged)

	go w.navLoop()
	go w.fsLoop()
}

// Close stops the watcher and releases OS resources.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	if w.navCh != nil {
		w.bus.Unsubscribe(events.EventNavigationChanged, w.navCh)
	}
	return w.fsw.Close()
}

// navLoop retargets the watch whenever the open folder changes.
func (w *Watcher) navLoop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.navCh:
			if !ok {
				return
			}
			nav, ok := ev.(*events.NavigationChangedEvent)
			if !ok {
				continue
			}
			w.retarget(nav.Folder)
		}
	}
}

// retarget swaps the watched folder. An empty folder means root view: watch
// nothing.
func (w *Watcher) retarget(folder string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || folder == w.current {
		return
	}

	if w.current != "" {
		// Remove may fail if the folder vanished; the watch is gone either way.
		_ = w.fsw.Remove(w.current)
	}
	w.current = folder

	if folder == "" {
		return
	}
	if err := w.fsw.Add(folder); err != nil {
		w.logger.Warn().Err(err).Str("folder", folder).Msg("Cannot watch folder, live refresh disabled")
		w.current = ""
	}
}

// fsLoop reacts to filesystem events in the watched folder with a debounced
// display refresh, so event bursts collapse into one re-listing.
func (w *Watcher) fsLoop() {
	for {
		select {
		case <-w.done:
			return
		case _, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.scheduleRefresh()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("Folder watch error")
		}
	}
}

func (w *Watcher) scheduleRefresh() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(constants.WatcherDebounce, func() {
		w.dispatch.Do(w.store.Refresh)
	})
}
