package gui

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/dropdock/dropdock/internal/shelf"
)

// entryItem is one row of the shelf list: icon, name, and a remove
// affordance. It carries the drag-out and double-activation gestures.
//
// Rows are recycled by the list; SetEntry rebinds a row to a new entry,
// which also re-arms its gesture state because the entry id changes on every
// re-listing.
type entryItem struct {
	widget.BaseWidget

	view *ShelfView

	mu    sync.RWMutex
	entry shelf.Entry

	icon      *widget.Icon
	name      *widget.Label
	removeBtn *widget.Button
}

var _ fyne.Draggable = (*entryItem)(nil)
var _ fyne.DoubleTappable = (*entryItem)(nil)

func newEntryItem(view *ShelfView) *entryItem {
	item := &entryItem{view: view}

	item.icon = widget.NewIcon(theme.FileIcon())
	item.name = widget.NewLabel("")
	item.name.Truncation = fyne.TextTruncateEllipsis
	item.removeBtn = widget.NewButtonWithIcon("", theme.CancelIcon(), func() {
		item.mu.RLock()
		id := item.entry.ID
		item.mu.RUnlock()
		if id != "" {
			view.remove(id)
		}
	})

	item.ExtendBaseWidget(item)
	return item
}

// CreateRenderer implements fyne.Widget
func (i *entryItem) CreateRenderer() fyne.WidgetRenderer {
	row := container.NewBorder(nil, nil, i.icon, i.removeBtn, i.name)
	return widget.NewSimpleRenderer(row)
}

// SetEntry rebinds the row to an entry.
func (i *entryItem) SetEntry(entry shelf.Entry) {
	i.mu.Lock()
	i.entry = entry
	i.mu.Unlock()

	if entry.Icon != nil {
		i.icon.SetResource(entry.Icon)
	}
	i.name.SetText(entry.Name)
}

// DoubleTapped enters folders and opens files with the default handler.
func (i *entryItem) DoubleTapped(_ *fyne.PointEvent) {
	i.mu.RLock()
	entry := i.entry
	i.mu.RUnlock()
	if entry.ID == "" {
		return
	}
	i.view.activate(entry)
}

// Dragged tracks an outbound drag gesture. The drag is armed for removal
// only while the pointer is outside the panel; dragging back inside disarms
// it. If the gesture ends outside, the armed flag is resolved later by the
// foreground-reactivation heuristic.
func (i *entryItem) Dragged(ev *fyne.DragEvent) {
	i.mu.RLock()
	entry := i.entry
	i.mu.RUnlock()
	if entry.ID == "" {
		return
	}

	cnv := fyne.CurrentApp().Driver().CanvasForObject(i)
	if cnv == nil {
		return
	}

	size := cnv.Size()
	pos := ev.AbsolutePosition
	outside := pos.X < 0 || pos.Y < 0 || pos.X > size.Width || pos.Y > size.Height

	if outside {
		i.view.coordinator.BeginDrag(entry.ID)
	} else {
		i.view.coordinator.CancelDrag(entry.ID)
	}
}

// DragEnd implements fyne.Draggable. A drag that ended inside the panel was
// already disarmed by the position tracking in Dragged; one that ended
// outside stays armed for the foreground heuristic. Nothing to do here.
func (i *entryItem) DragEnd() {}
