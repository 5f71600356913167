package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Placeholder marks a sustained tone with no syllable of its own
const Placeholder = "~"

// EmptyTextPolicy decides what happens to sung notes that end up with no
// lyric text at serialization time
type EmptyTextPolicy int

const (
	// PlaceholderEmpty emits the note with the sustain placeholder. This is
	// the default: dropping the note silently desynchronizes timing for the
	// player.
	PlaceholderEmpty EmptyTextPolicy = iota
	// DropEmpty skips the note entirely, reproducing the behavior of older
	// generators byte for byte.
	DropEmpty
)

// Serializer writes a chart in the UltraStar text layout
type Serializer struct {
	EmptyText EmptyTextPolicy
}

// Serialize writes the chart to w: header lines, a blank separator, one line
// per note in beat order, and the end-of-song marker. Serialization is pure
// formatting; calling it twice on the same chart yields identical bytes.
func (s Serializer) Serialize(w io.Writer, c *Chart) error {
	var b strings.Builder

	fmt.Fprintf(&b, "#TITLE:%s\n", c.Meta.Title)
	fmt.Fprintf(&b, "#ARTIST:%s\n", c.Meta.Artist)
	fmt.Fprintf(&b, "#MP3:%s\n", c.Meta.MP3)
	fmt.Fprintf(&b, "#BPM:%.1f\n", c.Meta.BPM)
	fmt.Fprintf(&b, "#GAP:%d\n", c.Meta.GapMS)
	if c.Meta.EndMS > 0 {
		fmt.Fprintf(&b, "#END:%d\n", c.Meta.EndMS)
	}
	b.WriteString("\n")

	for _, n := range c.Notes {
		if n.Kind == Pause {
			fmt.Fprintf(&b, "- %d\n", n.Beat)
			continue
		}
		text := n.Text
		if text == "" {
			if s.EmptyText == DropEmpty {
				continue
			}
			text = Placeholder
		}
		fmt.Fprintf(&b, "%s %d %d %d %s\n", n.Kind.Tag(), n.Beat, n.Duration, n.Pitch, text)
	}

	b.WriteString("E\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteFile serializes the chart to path atomically: the content goes to a
// temp file in the same directory first and is renamed into place, so a
// failed run never leaves a partial chart behind.
func (s Serializer) WriteFile(path string, c *Chart) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".chart-*.txt")
	if err != nil {
		return fmt.Errorf("create temp chart: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := s.Serialize(tmp, c); err != nil {
		tmp.Close()
		return fmt.Errorf("write chart: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close chart: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename chart into place: %w", err)
	}
	return nil
}

// OutputName builds the conventional chart filename from metadata
func OutputName(meta Metadata) string {
	return fmt.Sprintf("%s - %s.txt", meta.Title, meta.Artist)
}
