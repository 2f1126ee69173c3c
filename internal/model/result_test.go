package model

import "testing"

func completeResult() *SeparationResult {
	return &SeparationResult{
		ID:           "abc123",
		Original:     "/outputs/abc123/original.mp3",
		Vocals:       "/outputs/abc123/htdemucs/track/vocals.wav",
		Instrumental: "/outputs/abc123/htdemucs/track/instrumental.wav",
		Drums:        "/outputs/abc123/htdemucs/track/drums.wav",
		Bass:         "/outputs/abc123/htdemucs/track/bass.wav",
		Other:        "/outputs/abc123/htdemucs/track/other.wav",
	}
}

func TestSeparationResult_Validate(t *testing.T) {
	result := completeResult()
	if err := result.Validate(); err != nil {
		t.Errorf("Expected complete result to validate, got %v", err)
	}
}

func TestSeparationResult_Validate_MissingField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SeparationResult)
	}{
		{"missing original", func(r *SeparationResult) { r.Original = "" }},
		{"missing vocals", func(r *SeparationResult) { r.Vocals = "" }},
		{"missing instrumental", func(r *SeparationResult) { r.Instrumental = "" }},
		{"missing drums", func(r *SeparationResult) { r.Drums = "" }},
		{"missing bass", func(r *SeparationResult) { r.Bass = "" }},
		{"missing other", func(r *SeparationResult) { r.Other = "" }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := completeResult()
			test.mutate(result)
			if err := result.Validate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestSeparationResult_Stems(t *testing.T) {
	result := completeResult()
	stems := result.Stems()

	if len(stems) != 6 {
		t.Fatalf("Expected 6 stems, got %d", len(stems))
	}

	expectedOrder := []string{StemOriginal, StemVocals, StemInstrumental, StemDrums, StemBass, StemOther}
	for i, key := range expectedOrder {
		if stems[i].Key != key {
			t.Errorf("Expected stem %d to be '%s', got '%s'", i, key, stems[i].Key)
		}
	}

	for _, stem := range stems {
		if stem.URL == "" {
			t.Errorf("Expected stem '%s' to carry a URL", stem.Key)
		}
	}
}

func TestSeparationResult_StemGroups(t *testing.T) {
	result := completeResult()

	primary := result.PrimaryStems()
	if len(primary) != 3 {
		t.Fatalf("Expected 3 primary stems, got %d", len(primary))
	}
	for _, stem := range primary {
		if stem.Advanced {
			t.Errorf("Expected primary stem '%s' to not be advanced", stem.Key)
		}
	}

	advanced := result.AdvancedStems()
	if len(advanced) != 3 {
		t.Fatalf("Expected 3 advanced stems, got %d", len(advanced))
	}
	expected := []string{StemDrums, StemBass, StemOther}
	for i, key := range expected {
		if advanced[i].Key != key {
			t.Errorf("Expected advanced stem %d to be '%s', got '%s'", i, key, advanced[i].Key)
		}
	}
}
