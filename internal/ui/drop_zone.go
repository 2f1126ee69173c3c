package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// DropZone is the file drop target. The window-level drop handler delivers
// the actual files; this widget provides the visual target, an "armed"
// highlight while the pointer is over it, and opens the file picker on tap.
type DropZone struct {
	widget.BaseWidget

	onTapped func()

	background *canvas.Rectangle
	hint       *widget.Label
	armed      bool
}

// NewDropZone creates a new drop zone with the given hint text
func NewDropZone(hint string, onTapped func()) *DropZone {
	dz := &DropZone{
		onTapped:   onTapped,
		background: canvas.NewRectangle(color.Transparent),
		hint:       widget.NewLabel(hint),
	}
	dz.background.StrokeColor = theme.Color(theme.ColorNameInputBorder)
	dz.background.StrokeWidth = 2
	dz.background.CornerRadius = 8
	dz.background.SetMinSize(fyne.NewSize(DropZoneMinWidth, DropZoneMinHeight))
	dz.hint.Alignment = fyne.TextAlignCenter
	dz.ExtendBaseWidget(dz)
	return dz
}

// CreateRenderer implements fyne.Widget
func (dz *DropZone) CreateRenderer() fyne.WidgetRenderer {
	content := container.NewStack(dz.background, container.NewCenter(dz.hint))
	return widget.NewSimpleRenderer(content)
}

// SetHint updates the hint text
func (dz *DropZone) SetHint(hint string) {
	dz.hint.SetText(hint)
}

// SetArmed toggles the drop-ready highlight
func (dz *DropZone) SetArmed(armed bool) {
	if dz.armed == armed {
		return
	}
	dz.armed = armed
	if armed {
		dz.background.FillColor = theme.Color(theme.ColorNameHover)
		dz.background.StrokeColor = theme.Color(theme.ColorNamePrimary)
	} else {
		dz.background.FillColor = color.Transparent
		dz.background.StrokeColor = theme.Color(theme.ColorNameInputBorder)
	}
	dz.background.Refresh()
}

// Tapped implements fyne.Tappable; a click opens the file picker
func (dz *DropZone) Tapped(_ *fyne.PointEvent) {
	if dz.onTapped != nil {
		dz.onTapped()
	}
}

// MouseIn implements desktop.Hoverable
func (dz *DropZone) MouseIn(_ *desktop.MouseEvent) {
	dz.SetArmed(true)
}

// MouseMoved implements desktop.Hoverable
func (dz *DropZone) MouseMoved(_ *desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable
func (dz *DropZone) MouseOut() {
	dz.SetArmed(false)
}
