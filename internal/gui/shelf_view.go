package gui

import (
	"fmt"
	"image/color"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/dropdock/dropdock/internal/constants"
	"github.com/dropdock/dropdock/internal/dragout"
	"github.com/dropdock/dropdock/internal/events"
	"github.com/dropdock/dropdock/internal/shelf"
)

// targetedFlashDuration is how long the drop highlight stays visible after a
// drop lands. The OS transport gives no hover callback at the window level,
// so the highlight flashes on drop instead of tracking the hover.
const targetedFlashDuration = 400 * time.Millisecond

// ShelfView is the main panel: header with back navigation, the entry list,
// the empty-state message, and a status line.
type ShelfView struct {
	widget.BaseWidget

	store       *shelf.Store
	coordinator *dragout.Coordinator
	opener      shelf.Opener
	bus         *events.EventBus

	mu      sync.RWMutex
	entries []shelf.Entry

	list        *widget.List
	backBtn     *widget.Button
	titleLabel  *widget.Label
	emptyLabel  *widget.Label
	statusLabel *widget.Label
	highlight   *canvas.Rectangle

	eventCh <-chan events.Event
	stopCh  chan struct{}
}

// NewShelfView creates the panel bound to the shelf collaborators.
func NewShelfView(store *shelf.Store, coordinator *dragout.Coordinator, opener shelf.Opener, bus *events.EventBus) *ShelfView {
	v := &ShelfView{
		store:       store,
		coordinator: coordinator,
		opener:      opener,
		bus:         bus,
		stopCh:      make(chan struct{}),
	}
	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget
func (v *ShelfView) CreateRenderer() fyne.WidgetRenderer {
	v.titleLabel = widget.NewLabel(constants.RootHeaderTitle)
	v.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	v.titleLabel.Alignment = fyne.TextAlignCenter
	v.titleLabel.Truncation = fyne.TextTruncateEllipsis

	v.backBtn = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), v.goBack)
	v.backBtn.Disable()

	header := container.NewBorder(nil, nil, v.backBtn, nil, v.titleLabel)

	v.emptyLabel = widget.NewLabel(constants.RootEmptyMessage)
	v.emptyLabel.Alignment = fyne.TextAlignCenter
	v.emptyLabel.Wrapping = fyne.TextWrapWord

	v.statusLabel = widget.NewLabel("")

	v.list = widget.NewList(
		func() int {
			v.mu.RLock()
			defer v.mu.RUnlock()
			return len(v.entries)
		},
		func() fyne.CanvasObject {
			return newEntryItem(v)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			v.mu.RLock()
			var entry shelf.Entry
			if id < len(v.entries) {
				entry = v.entries[id]
			}
			v.mu.RUnlock()
			obj.(*entryItem).SetEntry(entry)
		},
	)

	v.highlight = canvas.NewRectangle(color.Transparent)
	v.highlight.StrokeColor = theme.Color(theme.ColorNamePrimary)
	v.highlight.StrokeWidth = 2
	v.highlight.Hide()

	body := container.NewStack(
		v.list,
		container.NewCenter(v.emptyLabel),
		v.highlight,
	)
	content := container.NewBorder(header, v.statusLabel, nil, nil, body)

	v.refreshFromStore()

	return widget.NewSimpleRenderer(content)
}

// Start begins listening for shelf events and mirroring them into the UI.
func (v *ShelfView) Start() {
	v.eventCh = v.bus.SubscribeAll()
	go v.eventLoop()
}

// Stop ends event listening.
func (v *ShelfView) Stop() {
	close(v.stopCh)
	if v.eventCh != nil {
		v.bus.UnsubscribeAll(v.eventCh)
	}
}

func (v *ShelfView) eventLoop() {
	for {
		select {
		case <-v.stopCh:
			return
		case ev, ok := <-v.eventCh:
			if !ok {
				return
			}
			switch ev.Type() {
			case events.EventDisplayChanged, events.EventNavigationChanged, events.EventShelfChanged:
				fyne.Do(v.refreshFromStore)
			case events.EventListingFailed:
				// The display falls back to empty; the user sees the
				// empty-state text while the log carries the real cause.
				fyne.Do(v.refreshFromStore)
			}
		}
	}
}

// refreshFromStore re-reads the display snapshot and updates every surface.
// Must run on the UI context.
func (v *ShelfView) refreshFromStore() {
	entries := v.store.Displayed()
	atRoot := v.store.AtRoot()
	folder := v.store.CurrentFolder()

	v.mu.Lock()
	v.entries = entries
	v.mu.Unlock()

	if v.titleLabel != nil {
		if atRoot {
			v.titleLabel.SetText(constants.RootHeaderTitle)
		} else {
			v.titleLabel.SetText(filepath.Base(folder))
		}
	}

	if v.backBtn != nil {
		if atRoot {
			v.backBtn.Disable()
		} else {
			v.backBtn.Enable()
		}
	}

	if v.emptyLabel != nil {
		if len(entries) == 0 {
			if atRoot {
				v.emptyLabel.SetText(constants.RootEmptyMessage)
			} else {
				v.emptyLabel.SetText(constants.FolderEmptyMessage)
			}
			v.emptyLabel.Show()
		} else {
			v.emptyLabel.Hide()
		}
	}

	if v.statusLabel != nil {
		v.statusLabel.SetText(formatItemCount(len(entries)))
	}

	if v.list != nil {
		v.list.Refresh()
	}
}

// FlashTargeted briefly shows the drop highlight. Must run on the UI
// context; only the delayed hide hops back in from the timer goroutine.
func (v *ShelfView) FlashTargeted() {
	if v.highlight == nil {
		return
	}
	v.highlight.Show()
	v.highlight.Refresh()
	time.AfterFunc(targetedFlashDuration, func() {
		fyne.Do(func() {
			v.highlight.Hide()
			v.highlight.Refresh()
		})
	})
}

func (v *ShelfView) goBack() {
	v.store.Back()
}

func (v *ShelfView) activate(entry shelf.Entry) {
	v.store.Activate(entry, v.opener)
}

func (v *ShelfView) remove(id string) {
	v.coordinator.Delete(id)
}

// formatItemCount renders the status line text.
func formatItemCount(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}
