package chart

// Stats summarizes a chart for inspection
type Stats struct {
	SungNotes       int
	EmphasizedNotes int
	Pauses          int
	PitchMin        int
	PitchMax        int
	BeatMin         int
	BeatMax         int
	TotalBeats      int
}

// plausibility limits used when sanity-checking third-party charts
const (
	plausiblePitchMax = 40
	plausibleBPMMin   = 60
	plausibleBPMMax   = 250
)

// Summarize computes note statistics over a chart
func Summarize(c *Chart) Stats {
	st := Stats{}
	first := true
	for _, n := range c.Notes {
		switch n.Kind {
		case Pause:
			st.Pauses++
			continue
		case Emphasized:
			st.EmphasizedNotes++
		default:
			st.SungNotes++
		}
		if first {
			st.PitchMin, st.PitchMax = n.Pitch, n.Pitch
			st.BeatMin, st.BeatMax = n.Beat, n.Beat
			first = false
			continue
		}
		if n.Pitch < st.PitchMin {
			st.PitchMin = n.Pitch
		}
		if n.Pitch > st.PitchMax {
			st.PitchMax = n.Pitch
		}
		if n.Beat < st.BeatMin {
			st.BeatMin = n.Beat
		}
		if end := n.Beat + n.Duration; end > st.BeatMax {
			st.BeatMax = end
		}
	}
	st.TotalBeats = st.BeatMax - st.BeatMin
	return st
}

// PitchPlausible reports whether the pitch range looks like a real chart
// rather than raw MIDI keys that were never rebased
func (st Stats) PitchPlausible() bool {
	return st.PitchMin >= 0 && st.PitchMax <= plausiblePitchMax
}

// BPMPlausible reports whether a header tempo is in the range real charts use
func BPMPlausible(bpm float64) bool {
	return bpm >= plausibleBPMMin && bpm <= plausibleBPMMax
}
