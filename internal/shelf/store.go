package shelf

import (
	"path/filepath"
	"sync"

	"golang.org/x/text/collate"

	"github.com/dropdock/dropdock/internal/events"
	"github.com/dropdock/dropdock/internal/icons"
	"github.com/dropdock/dropdock/internal/localfs"
	"github.com/dropdock/dropdock/internal/logging"
)

// Dispatcher marshals a closure onto the single UI-mutation context. The GUI
// wires fyne.Do; tests run the closure synchronously.
type Dispatcher interface {
	Do(fn func())
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(fn func())

// Do implements Dispatcher.
func (f DispatcherFunc) Do(fn func()) { f(fn) }

// Options configures a Store.
type Options struct {
	// ShowHidden includes hidden entries when listing folder contents.
	ShowHidden bool

	// Collator orders same-kind entries by name. Nil uses the detected
	// user locale (see NewCollator).
	Collator *collate.Collator
}

// Store owns the shelf state: the user-dropped root entries, the navigation
// stack, and the derived displayed list.
//
// All mutations are expected to arrive on the single UI-mutation context; the
// internal lock only protects reads from the render layer, which always
// observe a fully-formed displayed snapshot.
type Store struct {
	mu sync.RWMutex

	lister localfs.Lister
	icons  icons.Provider
	bus    *events.EventBus
	logger *logging.Logger

	collator   *collate.Collator
	showHidden bool

	root      []Entry  // Unique by Path, insertion-ordered
	stack     []string // Folder paths; empty means root view
	displayed []Entry  // Derived; recomputed, never patched
}

// NewStore creates a shelf store backed by the given collaborators.
func NewStore(lister localfs.Lister, iconProvider icons.Provider, bus *events.EventBus, opts Options) *Store {
	collator := opts.Collator
	if collator == nil {
		collator = NewCollator("")
	}

	return &Store{
		lister:     lister,
		icons:      iconProvider,
		bus:        bus,
		logger:     logging.NewLogger("shelf"),
		collator:   collator,
		showHidden: opts.ShowHidden,
	}
}

// AddRoot constructs an entry for the path and appends it to the shelf.
// A path already on the shelf is silently deduplicated. Returns true if the
// shelf changed.
func (s *Store) AddRoot(path string) bool {
	s.mu.Lock()

	for _, existing := range s.root {
		if existing.Path == path {
			s.mu.Unlock()
			s.logger.Debug().Str("path", path).Msg("Duplicate drop ignored")
			return false
		}
	}

	entry := s.buildEntry(path)
	s.root = append(s.root, entry)
	atRoot := len(s.stack) == 0
	count := len(s.root)

	var disp displayUpdate
	if atRoot {
		disp = s.recomputeLocked()
	}
	s.mu.Unlock()

	s.logger.Info().Str("path", path).Bool("dir", entry.IsDir).Msg("Added entry to shelf")
	if s.bus != nil {
		s.bus.Publish(events.NewShelfChangedEvent(count, path, true))
	}
	if atRoot {
		s.publishDisplay(disp)
	}
	return true
}

// buildEntry stats the path for its directory flag and resolves the icon
// once. A failed stat still yields an entry: the payload resolved to a real
// path moments ago, so the gesture is honored and the entry is treated as a
// plain file.
func (s *Store) buildEntry(path string) Entry {
	name := filepath.Base(path)
	isDir := false

	if fe, err := s.lister.StatEntry(path); err == nil {
		name = fe.Name
		isDir = fe.IsDir
	} else {
		s.logger.Debug().Err(err).Str("path", path).Msg("Stat failed for dropped path")
	}

	icon := s.icons.Icon(path, isDir)
	return NewEntry(path, name, isDir, icon)
}

// Remove removes the entry with the given id from the displayed list. At
// root it also removes the path-equal entry from the shelf itself; while
// browsing a folder it only hides the entry from the current view, which
// reappears on the next listing unless the filesystem changed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()

	idx := -1
	for i, e := range s.displayed {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return false
	}

	removed := s.displayed[idx]
	s.displayed = append(s.displayed[:idx], s.displayed[idx+1:]...)

	atRoot := len(s.stack) == 0
	count := len(s.root)
	if atRoot {
		for i, e := range s.root {
			if e.Path == removed.Path {
				s.root = append(s.root[:i], s.root[i+1:]...)
				break
			}
		}
		count = len(s.root)
	}
	dispCount := len(s.displayed)
	folder := s.currentFolderLocked()
	s.mu.Unlock()

	s.logger.Info().Str("path", removed.Path).Bool("atRoot", atRoot).Msg("Removed entry")
	if s.bus != nil {
		if atRoot {
			s.bus.Publish(events.NewShelfChangedEvent(count, removed.Path, false))
		}
		s.bus.Publish(events.NewDisplayChangedEvent(dispCount, atRoot, folder))
	}
	return true
}

// Refresh recomputes the displayed list from the current navigation state.
func (s *Store) Refresh() {
	s.mu.Lock()
	disp := s.recomputeLocked()
	s.mu.Unlock()
	s.publishDisplay(disp)
}

// SetShowHidden toggles hidden-file visibility and refreshes the display.
func (s *Store) SetShowHidden(show bool) {
	s.mu.Lock()
	s.showHidden = show
	disp := s.recomputeLocked()
	s.mu.Unlock()
	s.publishDisplay(disp)
}

// Displayed returns a snapshot of the displayed entries.
func (s *Store) Displayed() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]Entry, len(s.displayed))
	copy(result, s.displayed)
	return result
}

// Roots returns a snapshot of the shelf's top-level entries.
func (s *Store) Roots() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]Entry, len(s.root))
	copy(result, s.root)
	return result
}

// AtRoot reports whether the shelf itself is being displayed.
func (s *Store) AtRoot() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stack) == 0
}

// CurrentFolder returns the open folder path, or "" at root.
func (s *Store) CurrentFolder() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentFolderLocked()
}

// Depth returns the navigation stack depth.
func (s *Store) Depth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stack)
}

// FindDisplayed returns the displayed entry with the given id.
func (s *Store) FindDisplayed(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.displayed {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

func (s *Store) currentFolderLocked() string {
	if len(s.stack) == 0 {
		return ""
	}
	return s.stack[len(s.stack)-1]
}

// displayUpdate carries the result of a recompute out of the lock so events
// are published without holding it.
type displayUpdate struct {
	count   int
	atRoot  bool
	folder  string
	listErr error
}

// recomputeLocked rebuilds the displayed list. At root the display is a
// sorted copy of the shelf; in browse state it is a fresh listing of the
// open folder. Listing failures degrade to an empty display and are
// reported, never fatal. Caller must hold the write lock.
func (s *Store) recomputeLocked() displayUpdate {
	if len(s.stack) == 0 {
		s.displayed = make([]Entry, len(s.root))
		copy(s.displayed, s.root)
		sortEntries(s.displayed, s.collator)
		return displayUpdate{count: len(s.displayed), atRoot: true}
	}

	folder := s.stack[len(s.stack)-1]
	listed, err := s.lister.ListDirectory(folder, localfs.ListOptions{IncludeHidden: s.showHidden})
	if err != nil {
		s.displayed = nil
		return displayUpdate{folder: folder, listErr: err}
	}

	entries := make([]Entry, 0, len(listed))
	for _, fe := range listed {
		entries = append(entries, NewEntry(fe.Path, fe.Name, fe.IsDir, s.icons.Icon(fe.Path, fe.IsDir)))
	}
	sortEntries(entries, s.collator)
	s.displayed = entries

	return displayUpdate{count: len(entries), folder: folder}
}

func (s *Store) publishDisplay(disp displayUpdate) {
	if disp.listErr != nil {
		s.logger.Warn().Err(disp.listErr).Str("folder", disp.folder).Msg("Directory listing failed, showing empty view")
		if s.bus != nil {
			s.bus.Publish(events.NewListingFailedEvent(disp.folder, disp.listErr))
			s.bus.Publish(events.NewDisplayChangedEvent(0, false, disp.folder))
		}
		return
	}

	s.logger.Debug().Int("items", disp.count).Bool("atRoot", disp.atRoot).Str("folder", disp.folder).Msg("Display recomputed")
	if s.bus != nil {
		s.bus.Publish(events.NewDisplayChangedEvent(disp.count, disp.atRoot, disp.folder))
	}
}
