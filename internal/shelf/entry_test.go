package shelf

import (
	"testing"

	"fyne.io/fyne/v2"
)

func testIcon() fyne.Resource {
	return fyne.NewStaticResource("test-icon", []byte{0x1})
}

func TestNewEntryAssignsDistinctIDs(t *testing.T) {
	a := NewEntry("/tmp/a.txt", "a.txt", false, testIcon())
	b := NewEntry("/tmp/a.txt", "a.txt", false, testIcon())

	if a.ID == b.ID {
		t.Error("two constructions of the same path must have distinct IDs")
	}
	if !a.SamePath(b) {
		t.Error("entries with equal paths must be path-equal")
	}
}

func TestNewEntryAppBundleNeverDirectory(t *testing.T) {
	tests := []struct {
		path  string
		isDir bool
		want  bool
	}{
		{"/Applications/Safari.app", true, false},  // Bundle reported as dir
		{"/Applications/Safari.app", false, false}, // Bundle reported as file
		{"/Applications/TOOL.APP", true, false},    // Case-insensitive
		{"/home/user/Documents", true, true},       // Real directory unaffected
		{"/home/user/a.txt", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			e := NewEntry(tt.path, "", tt.isDir, testIcon())
			if e.IsDir != tt.want {
				t.Errorf("NewEntry(%q, isDir=%v).IsDir = %v, want %v", tt.path, tt.isDir, e.IsDir, tt.want)
			}
		})
	}
}

func TestEntryIconCapturedAtConstruction(t *testing.T) {
	icon := testIcon()
	e := NewEntry("/tmp/a.txt", "a.txt", false, icon)
	if e.Icon != icon {
		t.Error("entry must keep the icon handle it was constructed with")
	}
}
