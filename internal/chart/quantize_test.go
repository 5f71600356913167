package chart

import "testing"

func TestTimeToBeat(t *testing.T) {
	p := DefaultProfile()

	t.Run("CollapsesToZeroAtGap", func(t *testing.T) {
		if b := p.TimeToBeat(0.5, 120, 1000); b != 0 {
			t.Errorf("time before GAP should map to beat 0, got %d", b)
		}
		if b := p.TimeToBeat(1.0, 120, 1000); b != 0 {
			t.Errorf("time exactly at GAP should map to beat 0, got %d", b)
		}
	})

	t.Run("GridMath", func(t *testing.T) {
		// 1 second past the GAP at 120 BPM with a 4x grid is 8 grid beats
		if b := p.TimeToBeat(2.0, 120, 1000); b != 8 {
			t.Errorf("expected beat 8, got %d", b)
		}
	})

	t.Run("Monotonic", func(t *testing.T) {
		prev := -1
		for i := 0; i <= 500; i++ {
			tm := float64(i) * 0.01
			b := p.TimeToBeat(tm, 137.3, 750)
			if b < prev {
				t.Fatalf("beat decreased at t=%.2f: %d -> %d", tm, prev, b)
			}
			prev = b
		}
	})
}

func TestDurationToBeats(t *testing.T) {
	p := DefaultProfile()

	t.Run("MinimumLength", func(t *testing.T) {
		if b := p.DurationToBeats(0.01, 120); b != p.MinDurationBeats {
			t.Errorf("tiny duration should clamp to %d beats, got %d", p.MinDurationBeats, b)
		}
		if b := p.DurationToBeats(0, 120); b != p.MinDurationBeats {
			t.Errorf("zero duration should clamp to %d beats, got %d", p.MinDurationBeats, b)
		}
	})

	t.Run("GridMath", func(t *testing.T) {
		if b := p.DurationToBeats(1.0, 120); b != 8 {
			t.Errorf("expected 8 beats, got %d", b)
		}
	})
}

func TestFrequencyToIndex(t *testing.T) {
	p := DefaultProfile()

	t.Run("Reference", func(t *testing.T) {
		// A4 = MIDI 69, rebased on MIDI 48
		if idx := p.FrequencyToIndex(440); idx != 21 {
			t.Errorf("440 Hz should map to 21, got %d", idx)
		}
		if idx := p.FrequencyToIndex(220); idx != 9 {
			t.Errorf("220 Hz should map to 9, got %d", idx)
		}
	})

	t.Run("SilenceSentinel", func(t *testing.T) {
		if idx := p.FrequencyToIndex(0); idx != 0 {
			t.Errorf("zero frequency should map to 0, got %d", idx)
		}
		if idx := p.FrequencyToIndex(-5); idx != 0 {
			t.Errorf("negative frequency should map to 0, got %d", idx)
		}
	})

	t.Run("Clamped", func(t *testing.T) {
		if idx := p.FrequencyToIndex(10000); idx != p.PitchHi {
			t.Errorf("very high frequency should clamp to %d, got %d", p.PitchHi, idx)
		}
		if idx := p.FrequencyToIndex(30); idx != p.PitchLo {
			t.Errorf("very low frequency should clamp to %d, got %d", p.PitchLo, idx)
		}
	})

	t.Run("Monotone", func(t *testing.T) {
		prev := p.PitchLo - 1
		for f := 80.0; f <= 800.0; f += 5.0 {
			idx := p.FrequencyToIndex(f)
			if idx < prev {
				t.Fatalf("index decreased at %.0f Hz: %d -> %d", f, prev, idx)
			}
			prev = idx
		}
	})
}
