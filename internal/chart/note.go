// Package chart converts detected audio events onto the UltraStar beat/pitch
// grid and serializes them into the player's line-oriented text format.
package chart

// Kind is the note type in the UltraStar notation
type Kind int

const (
	// Sung is a regular note (":" line)
	Sung Kind = iota
	// Emphasized is a golden note ("*" line)
	Emphasized
	// Pause is a line break ("-" line); it carries only a beat number
	Pause
)

// Tag returns the one-character line prefix for the kind
func (k Kind) Tag() string {
	switch k {
	case Emphasized:
		return "*"
	case Pause:
		return "-"
	default:
		return ":"
	}
}

// Note is a quantized musical event on the integer beat grid
type Note struct {
	Kind     Kind
	Beat     int    // start beat, >= 0
	Duration int    // beats, > 0 for sung/emphasized, unused for pauses
	Pitch    int    // semitone index relative to the profile's reference note
	Text     string // syllable; empty means "no syllable available"
}

// Metadata is the chart header. Set once before serialization.
type Metadata struct {
	Title  string
	Artist string
	MP3    string  // source audio filename as referenced by the player
	BPM    float64 // beats per minute, > 0
	GapMS  int     // milliseconds from file start to beat 0, >= 0
	EndMS  int     // optional end marker in milliseconds, 0 means unset
}

// RawNote is a note before beat quantization: seconds and mapped pitch index
type RawNote struct {
	Start    float64 // seconds
	Duration float64 // seconds
	Pitch    int     // mapped index, already clamped to the profile bounds
}
