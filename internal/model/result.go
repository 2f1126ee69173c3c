package model

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Stem keys in the order they are rendered
const (
	StemOriginal     = "original"
	StemVocals       = "vocals"
	StemInstrumental = "instrumental"
	StemDrums        = "drums"
	StemBass         = "bass"
	StemOther        = "other"
)

// SeparationResult is the payload returned by the server on a successful
// separation. All six stem URLs are mandatory; the server returns them as
// root-relative paths (e.g., "/outputs/<id>/htdemucs/<track>/vocals.wav").
type SeparationResult struct {
	ID           string `json:"id"`
	Original     string `json:"original" validate:"required,uri"`
	Vocals       string `json:"vocals" validate:"required,uri"`
	Instrumental string `json:"instrumental" validate:"required,uri"`
	Drums        string `json:"drums" validate:"required,uri"`
	Bass         string `json:"bass" validate:"required,uri"`
	Other        string `json:"other" validate:"required,uri"`
}

// Stem is one renderable item of a separation result
type Stem struct {
	Key      string
	Label    string
	URL      string
	Advanced bool // advanced stems render inside a collapsed group
}

var resultValidator = validator.New()

// Validate checks that every stem URL is present. A 2xx response missing a
// field is a server contract violation and is surfaced as an error instead of
// rendering broken players.
func (r *SeparationResult) Validate() error {
	if err := resultValidator.Struct(r); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return fmt.Errorf("incomplete separation result: missing or invalid field %q", errs[0].Field())
		}
		return fmt.Errorf("incomplete separation result: %w", err)
	}
	return nil
}

// Stems returns all six stems in display order. The first three are always
// visible; drums, bass and other are marked advanced.
func (r *SeparationResult) Stems() []Stem {
	return []Stem{
		{Key: StemOriginal, Label: "Original", URL: r.Original},
		{Key: StemVocals, Label: "Vocals", URL: r.Vocals},
		{Key: StemInstrumental, Label: "Instrumental", URL: r.Instrumental},
		{Key: StemDrums, Label: "Drums", URL: r.Drums, Advanced: true},
		{Key: StemBass, Label: "Bass", URL: r.Bass, Advanced: true},
		{Key: StemOther, Label: "Other", URL: r.Other, Advanced: true},
	}
}

// PrimaryStems returns the always-visible stems
func (r *SeparationResult) PrimaryStems() []Stem {
	var primary []Stem
	for _, s := range r.Stems() {
		if !s.Advanced {
			primary = append(primary, s)
		}
	}
	return primary
}

// AdvancedStems returns the stems rendered inside the collapsed group
func (r *SeparationResult) AdvancedStems() []Stem {
	var advanced []Stem
	for _, s := range r.Stems() {
		if s.Advanced {
			advanced = append(advanced, s)
		}
	}
	return advanced
}
