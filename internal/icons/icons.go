// Package icons resolves filesystem paths to display icons for the shelf.
// Resolution happens once per entry at construction time; entries keep the
// handle for their lifetime and never re-fetch on refresh.
package icons

import (
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/h2non/filetype"

	"github.com/dropdock/dropdock/internal/localfs"
)

// Provider is the icon-lookup capability injected into the shelf. Tests use
// fakes; the GUI uses the theme-backed Service.
type Provider interface {
	Icon(path string, isDir bool) fyne.Resource
}

// Service resolves icons from the file extension, with content sniffing as a
// fallback for extensionless files.
type Service struct{}

// NewService returns the default icon provider.
func NewService() *Service {
	return &Service{}
}

// Extension classes mapped to theme icons. Only broad categories: the shelf
// shows small icons and fine-grained file type art adds nothing.
var extensionClasses = map[string]func() fyne.Resource{
	// Images
	".png": theme.FileImageIcon, ".jpg": theme.FileImageIcon, ".jpeg": theme.FileImageIcon,
	".gif": theme.FileImageIcon, ".bmp": theme.FileImageIcon, ".svg": theme.FileImageIcon,
	".webp": theme.FileImageIcon, ".tiff": theme.FileImageIcon, ".heic": theme.FileImageIcon,
	// Audio
	".mp3": theme.FileAudioIcon, ".wav": theme.FileAudioIcon, ".flac": theme.FileAudioIcon,
	".ogg": theme.FileAudioIcon, ".m4a": theme.FileAudioIcon, ".aac": theme.FileAudioIcon,
	// Video
	".mp4": theme.FileVideoIcon, ".mov": theme.FileVideoIcon, ".mkv": theme.FileVideoIcon,
	".avi": theme.FileVideoIcon, ".webm": theme.FileVideoIcon,
	// Text and documents
	".txt": theme.FileTextIcon, ".md": theme.FileTextIcon, ".log": theme.FileTextIcon,
	".csv": theme.FileTextIcon, ".json": theme.FileTextIcon, ".yaml": theme.FileTextIcon,
	".yml": theme.FileTextIcon, ".xml": theme.FileTextIcon, ".pdf": theme.FileTextIcon,
	// Executables and bundles
	".app": theme.FileApplicationIcon, ".exe": theme.FileApplicationIcon,
	".dmg": theme.FileApplicationIcon, ".msi": theme.FileApplicationIcon,
}

// Icon returns the display icon for a path. Directories get the folder icon;
// files are classified by extension first, then by content sniffing, then
// fall back to the generic file icon.
func (s *Service) Icon(path string, isDir bool) fyne.Resource {
	if isDir {
		return theme.FolderIcon()
	}

	ext := strings.ToLower(filepath.Ext(path))
	if class, ok := extensionClasses[ext]; ok {
		return class()
	}

	if res := sniffIcon(path); res != nil {
		return res
	}

	return theme.FileIcon()
}

// sniffIcon classifies extensionless or unknown files by magic bytes.
// Any read error just means no classification; the caller falls back.
func sniffIcon(path string) fyne.Resource {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	// filetype needs at most the first 262 bytes.
	head := make([]byte, 262)
	n, err := f.Read(head)
	if err != nil || n == 0 {
		return nil
	}
	head = head[:n]

	switch {
	case filetype.IsImage(head):
		return theme.FileImageIcon()
	case filetype.IsAudio(head):
		return theme.FileAudioIcon()
	case filetype.IsVideo(head):
		return theme.FileVideoIcon()
	case filetype.IsArchive(head):
		return theme.FileApplicationIcon()
	}
	return nil
}

// ForEntry is a convenience wrapper resolving the icon for a listed entry.
func (s *Service) ForEntry(entry localfs.FileEntry) fyne.Resource {
	return s.Icon(entry.Path, entry.IsDir)
}
