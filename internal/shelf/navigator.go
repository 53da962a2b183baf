package shelf

import (
	"fmt"

	"github.com/dropdock/dropdock/internal/events"
)

// Opener launches a path with the OS default handler. Implemented by
// internal/open; tests use fakes.
type Opener interface {
	OpenPath(path string) error
}

// Enter pushes a folder entry onto the navigation stack and lists its
// contents. Only directory entries can be entered.
func (s *Store) Enter(entry Entry) error {
	if !entry.IsDir {
		return fmt.Errorf("cannot enter %q: not a directory", entry.Path)
	}

	s.mu.Lock()
	s.stack = append(s.stack, entry.Path)
	depth := len(s.stack)
	disp := s.recomputeLocked()
	s.mu.Unlock()

	s.logger.Debug().Str("folder", entry.Path).Int("depth", depth).Msg("Entered folder")
	if s.bus != nil {
		s.bus.Publish(events.NewNavigationChangedEvent(depth, entry.Path))
	}
	s.publishDisplay(disp)
	return nil
}

// Back pops the navigation stack and recomputes the display. At root it is a
// no-op; repeated Back always terminates at the root view.
func (s *Store) Back() {
	s.mu.Lock()
	if len(s.stack) == 0 {
		s.mu.Unlock()
		return
	}
	s.stack = s.stack[:len(s.stack)-1]
	depth := len(s.stack)
	folder := s.currentFolderLocked()
	disp := s.recomputeLocked()
	s.mu.Unlock()

	s.logger.Debug().Int("depth", depth).Str("folder", folder).Msg("Navigated back")
	if s.bus != nil {
		s.bus.Publish(events.NewNavigationChangedEvent(depth, folder))
	}
	s.publishDisplay(disp)
}

// Activate handles a double-activation gesture on an entry: folders are
// entered, everything else is handed to the OS default handler. Open
// failures are logged and absorbed; they never affect shelf state.
func (s *Store) Activate(entry Entry, opener Opener) {
	if entry.IsDir {
		if err := s.Enter(entry); err != nil {
			s.logger.Warn().Err(err).Str("path", entry.Path).Msg("Enter failed")
		}
		return
	}

	if opener == nil {
		return
	}
	if err := opener.OpenPath(entry.Path); err != nil {
		s.logger.Warn().Err(err).Str("path", entry.Path).Msg("Failed to open with default handler")
	}
}
