package chart

import "math"

// Profile fixes the grid and pitch conventions for one output flavor.
// Two conventions exist in the wild (pitch 0..36 rebased on MIDI 48, and
// -10..40 rebased on MIDI 60); this implementation commits to the first and
// does not mix them.
type Profile struct {
	BeatFactor       int // grid beats per quarter note
	MinDurationBeats int // floor for quantized note lengths
	PitchLo          int // inclusive lower pitch bound
	PitchHi          int // inclusive upper pitch bound
	PitchRefMIDI     int // MIDI note mapped to pitch index 0
	PauseGapBeats    int // insert a pause when notes are further apart than this
	PauseOffsetBeats int // pause beat = previous end + this offset
	TildeStride      int // every Nth unsynced note gets a "~" once lyrics run out
}

// DefaultProfile returns the UltraStar Deluxe profile (pitch 0..36, C3 zero)
func DefaultProfile() Profile {
	return Profile{
		BeatFactor:       4,
		MinDurationBeats: 2,
		PitchLo:          0,
		PitchHi:          36,
		PitchRefMIDI:     48,
		PauseGapBeats:    10,
		PauseOffsetBeats: 1,
		TildeStride:      20,
	}
}

// TimeToBeat quantizes an absolute timestamp onto the beat grid.
// Anything at or before the GAP reference collapses to beat 0. The result is
// monotonic non-decreasing in t for fixed bpm/gap: the pre-rounding value is
// strictly increasing in t and math.Round is non-decreasing.
func (p Profile) TimeToBeat(t, bpm float64, gapMS int) int {
	ms := t * 1000
	if ms <= float64(gapMS) {
		return 0
	}
	beats := (ms - float64(gapMS)) * bpm / (60000 / float64(p.BeatFactor))
	b := int(math.Round(beats))
	if b < 0 {
		return 0
	}
	return b
}

// DurationToBeats quantizes a duration onto the grid, floor-clamped so no
// serialized note has zero or negative length
func (p Profile) DurationToBeats(d, bpm float64) int {
	beats := d * 1000 * bpm / (60000 / float64(p.BeatFactor))
	b := int(math.Round(beats))
	if b < p.MinDurationBeats {
		return p.MinDurationBeats
	}
	return b
}

// FrequencyToIndex maps a frequency in Hz to the profile's pitch index.
// Non-positive frequencies are the silence sentinel 0. The mapping is the
// standard semitone count relative to A440, rebased onto PitchRefMIDI and
// clamped into [PitchLo, PitchHi].
func (p Profile) FrequencyToIndex(f float64) int {
	if f <= 0 {
		return 0
	}
	midi := 69 + 12*math.Log2(f/440.0)
	idx := int(math.Round(midi - float64(p.PitchRefMIDI)))
	if idx < p.PitchLo {
		return p.PitchLo
	}
	if idx > p.PitchHi {
		return p.PitchHi
	}
	return idx
}

// clampPitch clamps an already-mapped index back into the profile bounds
func (p Profile) clampPitch(idx int) int {
	if idx < p.PitchLo {
		return p.PitchLo
	}
	if idx > p.PitchHi {
		return p.PitchHi
	}
	return idx
}
