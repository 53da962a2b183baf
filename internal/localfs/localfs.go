// Package localfs provides local filesystem operations for Dropdock.
// It consolidates the listing and classification logic used by the shelf so
// the core can be tested against fake listers with identical semantics.
package localfs

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dropdock/dropdock/internal/constants"
)

// FileEntry represents a file or directory in the local filesystem.
type FileEntry struct {
	Path    string      // Full path to the file
	Name    string      // Base name of the file
	Size    int64       // Size in bytes (0 for directories)
	IsDir   bool        // True if this is a directory (never true for .app bundles)
	ModTime time.Time   // Last modification time
	Mode    fs.FileMode // File mode/permissions
}

// ListOptions configures the behavior of ListDirectory.
type ListOptions struct {
	// IncludeHidden includes hidden files (starting with .) in results.
	// Default is false (hidden files excluded).
	IncludeHidden bool
}

// Lister is the directory-listing capability the shelf depends on. The OS
// implementation is Service; tests inject fakes.
type Lister interface {
	ListDirectory(path string, opts ListOptions) ([]FileEntry, error)
	StatEntry(path string) (FileEntry, error)
}

// Service implements Lister against the real filesystem.
type Service struct{}

// NewService returns the OS-backed filesystem service.
func NewService() *Service {
	return &Service{}
}

// ListDirectory returns the contents of a directory, filtered by options.
// Entries that cannot be stat'd (permission issues, races with deletion) are
// skipped rather than failing the whole listing.
func (s *Service) ListDirectory(path string, opts ListOptions) ([]FileEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	result := make([]FileEntry, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()

		if !opts.IncludeHidden && IsHiddenName(name) {
			continue
		}

		// entry.Info() uses metadata cached by ReadDir; no extra stat call.
		info, err := entry.Info()
		if err != nil {
			continue
		}

		fullPath := filepath.Join(path, name)
		result = append(result, makeEntry(fullPath, name, info))
	}

	return result, nil
}

// StatEntry stats a single path and returns its FileEntry.
func (s *Service) StatEntry(path string) (FileEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileEntry{}, err
	}
	return makeEntry(path, filepath.Base(path), info), nil
}

func makeEntry(path, name string, info fs.FileInfo) FileEntry {
	isDir := info.IsDir()
	if IsAppBundle(path) {
		// Application bundles are directories on disk but are launched, not
		// browsed, so the shelf treats them as opaque files.
		isDir = false
	}

	size := info.Size()
	if isDir {
		size = 0
	}

	return FileEntry{
		Path:    path,
		Name:    name,
		Size:    size,
		IsDir:   isDir,
		ModTime: info.ModTime(),
		Mode:    info.Mode(),
	}
}

// IsAppBundle reports whether the path names a macOS application bundle.
// The check is extension-only and case-insensitive; it deliberately does not
// consult the filesystem.
func IsAppBundle(path string) bool {
	return strings.EqualFold(filepath.Ext(path), constants.AppBundleExtension)
}
