// Package shelf implements the Dropdock core: the data and navigation model
// for dropped file references. The shelf tracks user-dropped top-level items,
// lets the user browse into dropped folders, and recomputes the displayed
// list whenever the root items or the navigation stack change.
package shelf

import (
	"fyne.io/fyne/v2"
	"github.com/google/uuid"

	"github.com/dropdock/dropdock/internal/localfs"
)

// Entry is one tracked file or folder reference. Entries are immutable after
// construction: the directory flag and icon are captured once and never
// re-fetched on refresh.
//
// Two entries are equal iff their Path values are equal. ID is UI identity
// only: it is distinct for every construction, even for the same path, so a
// re-listed folder always yields fresh widget identities and drag gesture
// recognizers re-arm per render cycle.
type Entry struct {
	ID    string
	Path  string
	Name  string
	IsDir bool
	Icon  fyne.Resource
}

// NewEntry constructs an Entry for a path. Application bundle paths are
// always classified as non-directories regardless of what the caller's
// lister reported.
func NewEntry(path, name string, isDir bool, icon fyne.Resource) Entry {
	if localfs.IsAppBundle(path) {
		isDir = false
	}
	return Entry{
		ID:    uuid.NewString(),
		Path:  path,
		Name:  name,
		IsDir: isDir,
		Icon:  icon,
	}
}

// SamePath reports path equality, the shelf's only notion of entry equality.
func (e Entry) SamePath(other Entry) bool {
	return e.Path == other.Path
}
