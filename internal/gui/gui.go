// Package gui provides the graphical user interface for Dropdock: the
// floating shelf panel, its drop target surface, and the per-entry widgets.
package gui

import (
	"fmt"
	"os"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"

	"github.com/dropdock/dropdock/internal/config"
	"github.com/dropdock/dropdock/internal/constants"
	"github.com/dropdock/dropdock/internal/dragout"
	"github.com/dropdock/dropdock/internal/events"
	"github.com/dropdock/dropdock/internal/icons"
	"github.com/dropdock/dropdock/internal/ingest"
	"github.com/dropdock/dropdock/internal/localfs"
	"github.com/dropdock/dropdock/internal/logging"
	"github.com/dropdock/dropdock/internal/open"
	"github.com/dropdock/dropdock/internal/shelf"
)

// guiLogger is the package-level logger for GUI mode
var guiLogger *logging.Logger

// resolveLogLevel picks the console level for GUI mode. The CLI layer may
// have already lowered the global level to debug via --verbose/--debug;
// that choice wins over the quiet GUI default, as does DROPDOCK_DEBUG=1.
func resolveLogLevel(debugEnv bool, current zerolog.Level) zerolog.Level {
	if debugEnv {
		return zerolog.DebugLevel
	}
	if current <= zerolog.DebugLevel {
		return current
	}
	return zerolog.WarnLevel
}

// Launch assembles the shelf and runs the main window. It blocks until the
// window closes.
func Launch(cfg *config.Config) error {
	guiLogger = logging.NewLogger("gui")

	debugEnv := os.Getenv("DROPDOCK_DEBUG") != ""
	logging.SetGlobalLevel(resolveLogLevel(debugEnv, zerolog.GlobalLevel()))
	if debugEnv {
		guiLogger.Info().Msg("Debug logging enabled via DROPDOCK_DEBUG")
	}

	if runtime.GOOS == "linux" {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			return fmt.Errorf("no display detected: DISPLAY and WAYLAND_DISPLAY are not set")
		}
	}

	dockApp := app.NewWithID(constants.AppID)
	dockApp.Settings().SetTheme(&dockTheme{})

	window := dockApp.NewWindow(constants.AppName)
	window.SetMaster()

	bus := events.NewEventBus(0)
	defer bus.Close()

	store := shelf.NewStore(localfs.NewService(), icons.NewService(), bus, shelf.Options{
		ShowHidden: cfg.ShowHidden,
		Collator:   shelf.NewCollator(cfg.SortLocale),
	})

	// All shelf mutations funnel through the Fyne UI context.
	dispatch := shelf.DispatcherFunc(fyne.Do)

	ingestor := ingest.NewIngestor(store, dispatch)
	coordinator := dragout.NewCoordinator(store, bus)
	opener := open.NewService()

	// Live refresh of the open folder. A watcher that cannot start only
	// costs the live view; browsing still re-lists on every navigation.
	watcher, err := shelf.NewWatcher(store, bus, dispatch)
	if err != nil {
		guiLogger.Warn().Err(err).Msg("Folder watcher unavailable, live refresh disabled")
	} else {
		watcher.Start()
		defer watcher.Close()
	}

	view := NewShelfView(store, coordinator, opener, bus)
	view.Start()
	defer view.Stop()

	window.SetContent(view)

	// The whole window is the drop target. Drops always land on the shelf
	// root, independent of browse state.
	window.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		if ingestor.Drop(uris) {
			view.FlashTargeted()
		}
	})

	// Foreground reactivation approximates "outbound drag completed"; the
	// coordinator ignores the signal when no drag is in flight.
	dockApp.Lifecycle().SetOnEnteredForeground(func() {
		coordinator.ForegroundRegained()
	})

	window.Resize(fyne.NewSize(float32(cfg.WindowWidth), float32(cfg.WindowHeight)))
	window.ShowAndRun()
	return nil
}
