package shelf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2"

	"github.com/dropdock/dropdock/internal/events"
	"github.com/dropdock/dropdock/internal/localfs"
)

// fakeLister serves canned directory listings and stats.
type fakeLister struct {
	dirs  map[string][]localfs.FileEntry
	stats map[string]localfs.FileEntry
	errs  map[string]error
}

func newFakeLister() *fakeLister {
	return &fakeLister{
		dirs:  make(map[string][]localfs.FileEntry),
		stats: make(map[string]localfs.FileEntry),
		errs:  make(map[string]error),
	}
}

func (f *fakeLister) addFile(dir, name string) {
	path := filepath.Join(dir, name)
	fe := localfs.FileEntry{Path: path, Name: name}
	f.dirs[dir] = append(f.dirs[dir], fe)
	f.stats[path] = fe
}

func (f *fakeLister) addDir(dir, name string) string {
	path := filepath.Join(dir, name)
	fe := localfs.FileEntry{Path: path, Name: name, IsDir: true}
	f.dirs[dir] = append(f.dirs[dir], fe)
	f.stats[path] = fe
	if _, ok := f.dirs[path]; !ok {
		f.dirs[path] = nil
	}
	return path
}

func (f *fakeLister) ListDirectory(path string, opts localfs.ListOptions) ([]localfs.FileEntry, error) {
	if err, ok := f.errs[path]; ok {
		return nil, err
	}
	listing, ok := f.dirs[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	result := make([]localfs.FileEntry, 0, len(listing))
	for _, fe := range listing {
		if !opts.IncludeHidden && localfs.IsHiddenName(fe.Name) {
			continue
		}
		result = append(result, fe)
	}
	return result, nil
}

func (f *fakeLister) StatEntry(path string) (localfs.FileEntry, error) {
	if fe, ok := f.stats[path]; ok {
		return fe, nil
	}
	return localfs.FileEntry{}, os.ErrNotExist
}

// fakeIcons hands out one static resource for everything.
type fakeIcons struct{}

func (fakeIcons) Icon(path string, isDir bool) fyne.Resource {
	return fyne.NewStaticResource("fake", []byte{0x1})
}

func newTestStore(lister localfs.Lister, bus *events.EventBus) *Store {
	return NewStore(lister, fakeIcons{}, bus, Options{Collator: NewCollator("en")})
}

func paths(entries []Entry) []string {
	result := make([]string, len(entries))
	for i, e := range entries {
		result[i] = e.Path
	}
	return result
}

func TestAddRootDeduplicatesByPath(t *testing.T) {
	lister := newFakeLister()
	lister.addFile("/tmp", "a.txt")
	store := newTestStore(lister, nil)

	if !store.AddRoot("/tmp/a.txt") {
		t.Error("first add should report a change")
	}
	if store.AddRoot("/tmp/a.txt") {
		t.Error("second add of same path should be a silent no-op")
	}

	roots := store.Roots()
	if len(roots) != 1 {
		t.Fatalf("rootEntries has %d items, want 1", len(roots))
	}
	if roots[0].Path != "/tmp/a.txt" {
		t.Errorf("path = %q, want /tmp/a.txt", roots[0].Path)
	}
}

func TestAddRootOrderOfArrivalIrrelevantForDedup(t *testing.T) {
	lister := newFakeLister()
	lister.addFile("/tmp", "a.txt")
	lister.addFile("/tmp", "b.txt")
	store := newTestStore(lister, nil)

	for _, p := range []string{"/tmp/b.txt", "/tmp/a.txt", "/tmp/b.txt", "/tmp/a.txt"} {
		store.AddRoot(p)
	}

	if got := len(store.Roots()); got != 2 {
		t.Errorf("rootEntries has %d items, want 2", got)
	}
}

func TestAddRootStatFailureStillAdds(t *testing.T) {
	store := newTestStore(newFakeLister(), nil)

	if !store.AddRoot("/gone/phantom.txt") {
		t.Fatal("add should succeed even when stat fails")
	}

	roots := store.Roots()
	if len(roots) != 1 {
		t.Fatalf("rootEntries has %d items, want 1", len(roots))
	}
	if roots[0].IsDir {
		t.Error("unstattable path should be treated as a plain file")
	}
	if roots[0].Name != "phantom.txt" {
		t.Errorf("Name = %q, want phantom.txt", roots[0].Name)
	}
}

func TestDisplaySortedDirectoriesFirst(t *testing.T) {
	lister := newFakeLister()
	lister.addDir("/shelf", "Zeta")
	lister.addFile("/shelf", "alpha.txt")
	store := newTestStore(lister, nil)

	store.AddRoot("/shelf/alpha.txt")
	store.AddRoot("/shelf/Zeta")

	got := paths(store.Displayed())
	want := []string{"/shelf/Zeta", "/shelf/alpha.txt"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("displayed order = %v, want %v", got, want)
	}
}

func TestDisplaySortCaseInsensitiveWithinKind(t *testing.T) {
	lister := newFakeLister()
	for _, name := range []string{"gamma.txt", "Beta.txt", "alpha.txt"} {
		lister.addFile("/d", name)
	}
	store := newTestStore(lister, nil)
	for _, p := range []string{"/d/gamma.txt", "/d/Beta.txt", "/d/alpha.txt"} {
		store.AddRoot(p)
	}

	got := paths(store.Displayed())
	want := []string{"/d/alpha.txt", "/d/Beta.txt", "/d/gamma.txt"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("displayed order = %v, want %v", got, want)
		}
	}
}

func TestEnterListsFolderContents(t *testing.T) {
	lister := newFakeLister()
	folder := lister.addDir("/shelf", "docs")
	lister.addFile(folder, "b.txt")
	lister.addFile(folder, "a.txt")
	lister.addDir(folder, "sub")
	store := newTestStore(lister, nil)

	store.AddRoot(folder)
	folderEntry := store.Displayed()[0]
	if err := store.Enter(folderEntry); err != nil {
		t.Fatal(err)
	}

	if store.AtRoot() {
		t.Error("AtRoot = true after Enter")
	}
	if store.CurrentFolder() != folder {
		t.Errorf("CurrentFolder = %q, want %q", store.CurrentFolder(), folder)
	}

	got := paths(store.Displayed())
	want := []string{filepath.Join(folder, "sub"), filepath.Join(folder, "a.txt"), filepath.Join(folder, "b.txt")}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("displayed = %v, want %v", got, want)
		}
	}
}

func TestEnterRejectsFiles(t *testing.T) {
	lister := newFakeLister()
	lister.addFile("/tmp", "a.txt")
	store := newTestStore(lister, nil)
	store.AddRoot("/tmp/a.txt")

	entry := store.Displayed()[0]
	if err := store.Enter(entry); err == nil {
		t.Error("Enter on a file should fail")
	}
	if !store.AtRoot() {
		t.Error("failed Enter must not mutate the navigation stack")
	}
}

func TestEnterThenBackRoundTrip(t *testing.T) {
	lister := newFakeLister()
	folder := lister.addDir("/shelf", "docs")
	lister.addFile(folder, "inner.txt")
	lister.addFile("/shelf", "a.txt")
	store := newTestStore(lister, nil)

	store.AddRoot(folder)
	store.AddRoot("/shelf/a.txt")

	before := paths(store.Displayed())
	folderEntry := store.Displayed()[0]

	if err := store.Enter(folderEntry); err != nil {
		t.Fatal(err)
	}
	store.Back()

	if !store.AtRoot() {
		t.Error("stack should be empty after round trip")
	}
	after := paths(store.Displayed())
	if len(after) != len(before) {
		t.Fatalf("displayed count changed: %v vs %v", before, after)
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("displayed content changed: %v vs %v", before, after)
		}
	}
}

func TestBackAtRootIsNoOp(t *testing.T) {
	store := newTestStore(newFakeLister(), nil)
	store.Back()
	if !store.AtRoot() {
		t.Error("Back at root must leave the stack empty")
	}
}

func TestRemoveAtRootRemovesFromShelf(t *testing.T) {
	lister := newFakeLister()
	lister.addFile("/tmp", "a.txt")
	lister.addFile("/tmp", "b.txt")
	store := newTestStore(lister, nil)
	store.AddRoot("/tmp/a.txt")
	store.AddRoot("/tmp/b.txt")

	target := store.Displayed()[0]
	if !store.Remove(target.ID) {
		t.Fatal("Remove reported no change")
	}

	if len(store.Roots()) != 1 {
		t.Errorf("rootEntries has %d items, want 1", len(store.Roots()))
	}
	if len(store.Displayed()) != 1 {
		t.Errorf("displayedEntries has %d items, want 1", len(store.Displayed()))
	}
	for _, e := range store.Roots() {
		if e.Path == target.Path {
			t.Error("removed path still present in rootEntries")
		}
	}
}

func TestRemoveInFolderOnlyHidesFromView(t *testing.T) {
	lister := newFakeLister()
	folder := lister.addDir("/shelf", "docs")
	lister.addFile(folder, "inner.txt")
	store := newTestStore(lister, nil)
	store.AddRoot(folder)

	folderEntry := store.Displayed()[0]
	if err := store.Enter(folderEntry); err != nil {
		t.Fatal(err)
	}

	inner := store.Displayed()[0]
	if !store.Remove(inner.ID) {
		t.Fatal("Remove reported no change")
	}

	if len(store.Displayed()) != 0 {
		t.Error("entry should be hidden from the current view")
	}
	if len(store.Roots()) != 1 {
		t.Error("rootEntries must be unchanged by removal inside a folder")
	}

	// Re-entering the folder re-lists from the filesystem: the entry is back.
	store.Back()
	if err := store.Enter(store.Displayed()[0]); err != nil {
		t.Fatal(err)
	}
	if len(store.Displayed()) != 1 {
		t.Error("entry should reappear on next navigation into the folder")
	}
}

func TestRemoveUnknownIDIsNoOp(t *testing.T) {
	lister := newFakeLister()
	lister.addFile("/tmp", "a.txt")
	store := newTestStore(lister, nil)
	store.AddRoot("/tmp/a.txt")

	if store.Remove("no-such-id") {
		t.Error("Remove of unknown id should report no change")
	}
	if len(store.Roots()) != 1 {
		t.Error("shelf must be unchanged")
	}
}

func TestListingFailureYieldsEmptyDisplay(t *testing.T) {
	lister := newFakeLister()
	folder := lister.addDir("/shelf", "locked")
	lister.errs[folder] = errors.New("permission denied")

	bus := events.NewEventBus(10)
	defer bus.Close()
	failCh := bus.Subscribe(events.EventListingFailed)

	store := newTestStore(lister, bus)
	store.AddRoot(folder)

	folderEntry := store.Displayed()[0]
	if err := store.Enter(folderEntry); err != nil {
		t.Fatal(err)
	}

	if len(store.Displayed()) != 0 {
		t.Error("displayed should be empty after a listing failure")
	}
	if store.AtRoot() {
		t.Error("navigation stack must be untouched by the failure")
	}

	select {
	case ev := <-failCh:
		fail := ev.(*events.ListingFailedEvent)
		if fail.Folder != folder {
			t.Errorf("failure folder = %q, want %q", fail.Folder, folder)
		}
	case <-time.After(time.Second):
		t.Error("expected a ListingFailedEvent")
	}

	// Back still works.
	store.Back()
	if !store.AtRoot() {
		t.Error("Back should return to root after a failed listing")
	}
}

func TestHiddenEntriesExcludedByDefault(t *testing.T) {
	lister := newFakeLister()
	folder := lister.addDir("/shelf", "docs")
	lister.addFile(folder, ".secret")
	lister.addFile(folder, "visible.txt")
	store := newTestStore(lister, nil)
	store.AddRoot(folder)

	if err := store.Enter(store.Displayed()[0]); err != nil {
		t.Fatal(err)
	}
	if got := paths(store.Displayed()); len(got) != 1 || got[0] != filepath.Join(folder, "visible.txt") {
		t.Errorf("displayed = %v, want only visible.txt", got)
	}

	store.SetShowHidden(true)
	if got := len(store.Displayed()); got != 2 {
		t.Errorf("displayed has %d items with hidden shown, want 2", got)
	}
}

func TestIngestTargetsRootWhileBrowsing(t *testing.T) {
	lister := newFakeLister()
	folder := lister.addDir("/shelf", "docs")
	lister.addFile("/tmp", "late.txt")
	store := newTestStore(lister, nil)
	store.AddRoot(folder)

	if err := store.Enter(store.Displayed()[0]); err != nil {
		t.Fatal(err)
	}

	// A drop while browsing lands on the shelf, not in the open folder view.
	store.AddRoot("/tmp/late.txt")

	if len(store.Roots()) != 2 {
		t.Errorf("rootEntries has %d items, want 2", len(store.Roots()))
	}
	if len(store.Displayed()) != 0 {
		t.Error("browse view must not show the newly dropped item")
	}

	store.Back()
	if got := len(store.Displayed()); got != 2 {
		t.Errorf("root view has %d items after back, want 2", got)
	}
}

func TestShelfEventsPublished(t *testing.T) {
	lister := newFakeLister()
	lister.addFile("/tmp", "a.txt")

	bus := events.NewEventBus(10)
	defer bus.Close()
	shelfCh := bus.Subscribe(events.EventShelfChanged)

	store := newTestStore(lister, bus)
	store.AddRoot("/tmp/a.txt")

	select {
	case ev := <-shelfCh:
		change := ev.(*events.ShelfChangedEvent)
		if !change.Added || change.Count != 1 || change.Path != "/tmp/a.txt" {
			t.Errorf("unexpected event %+v", change)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a ShelfChangedEvent for the add")
	}

	store.Remove(store.Displayed()[0].ID)
	select {
	case ev := <-shelfCh:
		change := ev.(*events.ShelfChangedEvent)
		if change.Added || change.Count != 0 {
			t.Errorf("unexpected event %+v", change)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a ShelfChangedEvent for the remove")
	}
}
