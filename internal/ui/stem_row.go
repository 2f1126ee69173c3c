package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/FlamesIsCool/vocal-remover/internal/model"
)

// StemRow renders one stem of a separation result: its label, an inline
// play action, and a save action.
type StemRow struct {
	widget.BaseWidget

	stem model.Stem

	nameLabel *widget.Label
	playBtn   *widget.Button
	saveBtn   *widget.Button

	onPlay func(model.Stem)
	onSave func(model.Stem)
}

// NewStemRow creates a row for the given stem
func NewStemRow(stem model.Stem, localization *Localization, onPlay, onSave func(model.Stem)) *StemRow {
	row := &StemRow{
		stem:   stem,
		onPlay: onPlay,
		onSave: onSave,
	}

	row.nameLabel = widget.NewLabel(IconMusic + " " + stem.Label)
	row.nameLabel.TextStyle = fyne.TextStyle{Bold: !stem.Advanced}

	row.playBtn = widget.NewButton(IconPlay+" "+localization.GetText(KeyPlay), func() {
		if row.onPlay != nil {
			row.onPlay(row.stem)
		}
	})
	row.playBtn.Importance = widget.LowImportance

	row.saveBtn = widget.NewButton(IconSave+" "+localization.GetText(KeySave), func() {
		if row.onSave != nil {
			row.onSave(row.stem)
		}
	})
	row.saveBtn.Importance = widget.LowImportance

	row.ExtendBaseWidget(row)
	return row
}

// CreateRenderer implements fyne.Widget
func (sr *StemRow) CreateRenderer() fyne.WidgetRenderer {
	buttons := container.NewHBox(sr.playBtn, sr.saveBtn)
	content := container.NewBorder(nil, nil, sr.nameLabel, buttons)
	return widget.NewSimpleRenderer(content)
}
