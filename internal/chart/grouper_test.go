package chart

import (
	"testing"

	"github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/pitch"
)

func TestGroup(t *testing.T) {
	profile := DefaultProfile()

	t.Run("SteadyToneBecomesOneNote", func(t *testing.T) {
		var samples []pitch.Sample
		for i := 0; i <= 4; i++ {
			samples = append(samples, pitch.Sample{Time: float64(i) * 0.1, Frequency: 220, Confidence: 0.9})
		}

		notes := Group(samples, profile, DefaultGrouperConfig())
		if len(notes) != 1 {
			t.Fatalf("expected 1 note, got %d", len(notes))
		}
		if notes[0].Start != 0 {
			t.Errorf("start = %v, want 0", notes[0].Start)
		}
		if notes[0].Pitch != 9 {
			t.Errorf("pitch = %d, want 9", notes[0].Pitch)
		}
	})

	t.Run("PitchJumpSplits", func(t *testing.T) {
		var samples []pitch.Sample
		for i := 0; i <= 4; i++ {
			samples = append(samples, pitch.Sample{Time: float64(i) * 0.1, Frequency: 220, Confidence: 0.9})
		}
		for i := 5; i <= 9; i++ {
			samples = append(samples, pitch.Sample{Time: float64(i) * 0.1, Frequency: 440, Confidence: 0.9})
		}

		notes := Group(samples, profile, DefaultGrouperConfig())
		if len(notes) != 2 {
			t.Fatalf("expected 2 notes, got %d", len(notes))
		}
		if notes[0].Pitch != 9 || notes[1].Pitch != 21 {
			t.Errorf("pitches = %d, %d, want 9, 21", notes[0].Pitch, notes[1].Pitch)
		}
	})

	t.Run("LowConfidenceDropped", func(t *testing.T) {
		var samples []pitch.Sample
		for i := 0; i <= 9; i++ {
			samples = append(samples, pitch.Sample{Time: float64(i) * 0.1, Frequency: 220, Confidence: 0.1})
		}

		notes := Group(samples, profile, DefaultGrouperConfig())
		if len(notes) != 0 {
			t.Fatalf("expected no notes from low-confidence samples, got %d", len(notes))
		}
	})

	t.Run("ShortTrailingGroupDiscarded", func(t *testing.T) {
		samples := []pitch.Sample{
			{Time: 0.0, Frequency: 220, Confidence: 0.9},
			{Time: 0.1, Frequency: 220, Confidence: 0.9},
			{Time: 0.2, Frequency: 220, Confidence: 0.9},
			{Time: 0.6, Frequency: 440, Confidence: 0.9},
		}

		cfg := DefaultGrouperConfig()
		cfg.MinDuration = 0.2

		notes := Group(samples, profile, cfg)
		if len(notes) != 1 {
			t.Fatalf("expected exactly 1 note, got %d", len(notes))
		}
		if notes[0].Pitch != 9 {
			t.Errorf("pitch = %d, want 9", notes[0].Pitch)
		}
		if notes[0].Duration != 0.2 {
			t.Errorf("duration = %v, want 0.2", notes[0].Duration)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if notes := Group(nil, profile, DefaultGrouperConfig()); len(notes) != 0 {
			t.Fatalf("expected no notes, got %d", len(notes))
		}
	})
}
