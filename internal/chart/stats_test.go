package chart

import "testing"

func TestSummarize(t *testing.T) {
	c := &Chart{
		Notes: []Note{
			{Kind: Sung, Beat: 0, Duration: 4, Pitch: 5},
			{Kind: Pause, Beat: 8},
			{Kind: Emphasized, Beat: 10, Duration: 6, Pitch: 30},
		},
	}

	st := Summarize(c)
	if st.SungNotes != 1 || st.EmphasizedNotes != 1 || st.Pauses != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1", st.SungNotes, st.EmphasizedNotes, st.Pauses)
	}
	if st.PitchMin != 5 || st.PitchMax != 30 {
		t.Errorf("pitch range = %d..%d, want 5..30", st.PitchMin, st.PitchMax)
	}
	if st.BeatMin != 0 || st.BeatMax != 16 {
		t.Errorf("beat range = %d..%d, want 0..16", st.BeatMin, st.BeatMax)
	}
	if st.TotalBeats != 16 {
		t.Errorf("total beats = %d, want 16", st.TotalBeats)
	}
}

func TestPitchPlausible(t *testing.T) {
	if !(Stats{PitchMin: 0, PitchMax: 36}).PitchPlausible() {
		t.Error("0..36 should be plausible")
	}
	if (Stats{PitchMin: 0, PitchMax: 55}).PitchPlausible() {
		t.Error("raw MIDI keys should not be plausible")
	}
	if (Stats{PitchMin: -12, PitchMax: 20}).PitchPlausible() {
		t.Error("negative minimum should not be plausible")
	}
}

func TestBPMPlausible(t *testing.T) {
	for _, tc := range []struct {
		bpm  float64
		want bool
	}{
		{120, true},
		{60, true},
		{250, true},
		{30, false},
		{400, false},
	} {
		if got := BPMPlausible(tc.bpm); got != tc.want {
			t.Errorf("BPMPlausible(%v) = %v, want %v", tc.bpm, got, tc.want)
		}
	}
}
