package chart

import (
	"sort"

	apperrors "github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/errors"
)

// GapLeadInMS is subtracted from the first note's start when deriving the
// GAP header, so the chart starts slightly before the first sung note.
const GapLeadInMS = 500

// emphasis thresholds: long or high notes become golden notes
const (
	emphasisDurationBeats = 6
	emphasisPitchIndex    = 25
)

// Chart is a fully assembled chart, ready for serialization
type Chart struct {
	Meta  Metadata
	Notes []Note // ascending beat order, pauses interleaved
}

// Build quantizes raw notes onto the beat grid, derives the GAP and END
// headers, interleaves pauses and assigns lyric syllables.
//
// GAP is the first note's start time minus a short lead-in. Notes are
// quantized with TimeToBeat/DurationToBeats and sorted by start beat; the
// serialized output relies on that monotonic order.
func Build(raw []RawNote, syllables []string, meta Metadata, profile Profile) (*Chart, error) {
	if len(raw) == 0 {
		return nil, apperrors.ErrNoNotes
	}

	gapMS := int(raw[0].Start*1000) - GapLeadInMS
	if gapMS < 0 {
		gapMS = 0
	}
	meta.GapMS = gapMS

	last := raw[len(raw)-1]
	meta.EndMS = int((last.Start + last.Duration) * 1000)

	quantized := make([]Note, 0, len(raw))
	for _, n := range raw {
		beat := profile.TimeToBeat(n.Start, meta.BPM, gapMS)
		dur := profile.DurationToBeats(n.Duration, meta.BPM)

		kind := Sung
		if dur > emphasisDurationBeats || n.Pitch > emphasisPitchIndex {
			kind = Emphasized
		}

		quantized = append(quantized, Note{
			Kind:     kind,
			Beat:     beat,
			Duration: dur,
			Pitch:    n.Pitch,
		})
	}
	sort.SliceStable(quantized, func(i, j int) bool {
		return quantized[i].Beat < quantized[j].Beat
	})

	notes := assignLyricsAndPauses(quantized, syllables, profile)

	return &Chart{Meta: meta, Notes: notes}, nil
}

// assignLyricsAndPauses walks the quantized notes in beat order, attaching
// the next unused syllable to each note and inserting a pause line wherever
// the gap to the previous note's end exceeds the profile threshold. The
// pause beat sits just after the previous note's end so it never coincides
// with a note's timestamp. Once syllables run out, every TildeStride'th note
// gets the sustain placeholder and the rest stay empty.
func assignLyricsAndPauses(quantized []Note, syllables []string, profile Profile) []Note {
	notes := make([]Note, 0, len(quantized)+len(quantized)/4)

	syllableIdx := 0
	lastEnd := 0
	for i, n := range quantized {
		if n.Beat-lastEnd > profile.PauseGapBeats {
			notes = append(notes, Note{Kind: Pause, Beat: lastEnd + profile.PauseOffsetBeats})
		}

		if syllableIdx < len(syllables) {
			n.Text = syllables[syllableIdx]
			syllableIdx++
		} else if profile.TildeStride > 0 && i%profile.TildeStride == 0 {
			n.Text = Placeholder
		}

		notes = append(notes, n)
		lastEnd = n.Beat + n.Duration
	}

	return notes
}
