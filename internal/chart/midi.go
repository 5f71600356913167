package chart

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const ticksPerQuarter = 960

// WriteMIDI exports the chart's sung notes as a single-track MIDI file for
// checking the transcription in a DAW or piano-roll editor. Pitch indices
// are rebased back onto real MIDI keys via the profile reference note.
// Overlapping notes are truncated at the next note's start; the chart grid
// is monophonic so nothing audible is lost.
func WriteMIDI(path string, c *Chart, profile Profile) error {
	if c.Meta.BPM <= 0 {
		return fmt.Errorf("invalid BPM %.1f", c.Meta.BPM)
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(c.Meta.Title))
	tr.Add(0, smf.MetaTempo(c.Meta.BPM))

	ticksPerBeat := uint32(ticksPerQuarter / profile.BeatFactor)

	var sung []Note
	for _, n := range c.Notes {
		if n.Kind != Pause {
			sung = append(sung, n)
		}
	}

	cursor := uint32(0)
	for i, n := range sung {
		start := uint32(n.Beat) * ticksPerBeat
		end := uint32(n.Beat+n.Duration) * ticksPerBeat
		if i+1 < len(sung) {
			next := uint32(sung[i+1].Beat) * ticksPerBeat
			if next < end {
				end = next
			}
		}
		if end <= start {
			continue
		}

		key := uint8(profile.PitchRefMIDI + n.Pitch)
		velocity := uint8(96)
		if n.Kind == Emphasized {
			velocity = 120
		}

		if n.Text != "" && n.Text != Placeholder {
			tr.Add(start-cursor, smf.MetaLyric(n.Text))
			cursor = start
		}
		tr.Add(start-cursor, midi.NoteOn(0, key, velocity))
		tr.Add(end-start, midi.NoteOff(0, key))
		cursor = end
	}
	tr.Close(0)

	if err := s.Add(tr); err != nil {
		return fmt.Errorf("add midi track: %w", err)
	}
	if err := s.WriteFile(path); err != nil {
		return fmt.Errorf("write midi file: %w", err)
	}
	return nil
}
