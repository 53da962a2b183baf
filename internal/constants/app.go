// Package constants provides application-wide constants for Dropdock.
package constants

import (
	"time"
)

// Application identity
const (
	// AppID is the Fyne application identifier.
	AppID = "io.dropdock.app"

	// AppName is the user-visible application name and window title.
	AppName = "Dropdock"
)

// Window geometry defaults. The panel is deliberately narrow: it acts as a
// shelf at the edge of the screen, not a full file manager.
const (
	DefaultWindowWidth  = 280
	DefaultWindowHeight = 480

	MinWindowWidth  = 200
	MinWindowHeight = 240
)

// Shelf UI strings. The two empty-state messages are distinct on purpose:
// one means "nothing was ever dropped", the other means "this folder has no
// visible entries".
const (
	// RootHeaderTitle is the header label when viewing the shelf itself.
	RootHeaderTitle = "Dropdock"

	// RootEmptyMessage is shown when the shelf has no dropped items.
	RootEmptyMessage = "Drag and drop files here"

	// FolderEmptyMessage is shown inside a folder with no visible entries.
	FolderEmptyMessage = "This folder is empty"
)

// Event bus buffer sizes
const (
	// EventBusDefaultBuffer is the default channel buffer for subscribers.
	EventBusDefaultBuffer = 256

	// EventBusMaxBuffer caps subscriber buffers to bound memory use.
	EventBusMaxBuffer = 4096
)

// Folder watcher settings
const (
	// WatcherDebounce coalesces bursts of filesystem events (e.g. an unzip
	// into the open folder) into a single re-listing.
	WatcherDebounce = 250 * time.Millisecond
)

// AppBundleExtension marks macOS application bundles. Paths with this
// extension are always treated as opaque launchable files, never as
// directories, regardless of what the filesystem reports.
const AppBundleExtension = ".app"
