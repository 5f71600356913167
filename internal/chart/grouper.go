package chart

import (
	"math"

	"github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/pitch"
)

// GrouperConfig holds the smoothing thresholds for note extraction
type GrouperConfig struct {
	MinConfidence float64 // samples below this are discarded
	MinDuration   float64 // seconds; shorter groups are dropped
	MaxGap        float64 // seconds; larger intra-note gaps split the group
	MaxJump       int     // semitones; larger mapped-pitch jumps split the group
}

// DefaultGrouperConfig returns the smoothing thresholds tuned for vocals
func DefaultGrouperConfig() GrouperConfig {
	return GrouperConfig{
		MinConfidence: 0.25,
		MinDuration:   0.4,
		MaxGap:        0.3,
		MaxJump:       2,
	}
}

// Group segments a time-ordered pitch sample stream into stable notes.
//
// Samples below the confidence threshold are dropped. The rest are scanned
// left to right: a sample extends the open group while it is close enough in
// time and in mapped pitch to the previously accumulated sample; otherwise
// the group is closed and a new one opened. Closed groups shorter than the
// minimum duration are discarded. The group's pitch is the confidence
// weighted average of its mapped indices. Single pass, no backtracking.
func Group(samples []pitch.Sample, profile Profile, cfg GrouperConfig) []RawNote {
	var notes []RawNote
	var group []groupedSample

	flush := func() {
		if note, ok := finalizeGroup(group, profile, cfg.MinDuration); ok {
			notes = append(notes, note)
		}
		group = group[:0]
	}

	for _, s := range samples {
		if s.Confidence < cfg.MinConfidence {
			continue
		}
		idx := profile.FrequencyToIndex(s.Frequency)

		if len(group) > 0 {
			last := group[len(group)-1]
			if s.Time-last.time > cfg.MaxGap || abs(idx-last.pitch) > cfg.MaxJump {
				flush()
			}
		}
		group = append(group, groupedSample{time: s.Time, pitch: idx, confidence: s.Confidence})
	}
	flush()

	return notes
}

type groupedSample struct {
	time       float64
	pitch      int
	confidence float64
}

// finalizeGroup turns an accumulated sample group into a note, or reports
// false when the group is empty or too short
func finalizeGroup(group []groupedSample, profile Profile, minDuration float64) (RawNote, bool) {
	if len(group) == 0 {
		return RawNote{}, false
	}

	start := group[0].time
	span := group[len(group)-1].time - start
	if span < minDuration {
		return RawNote{}, false
	}

	// Confidence weighting damps transient octave and formant misdetections
	var weighted, weights float64
	for _, s := range group {
		weighted += float64(s.pitch) * s.confidence
		weights += s.confidence
	}
	idx := group[0].pitch
	if weights > 0 {
		idx = int(math.Round(weighted / weights))
	}

	return RawNote{
		Start:    start,
		Duration: span,
		Pitch:    profile.clampPitch(idx),
	}, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
