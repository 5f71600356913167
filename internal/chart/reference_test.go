package chart

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempChart(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ref.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write reference chart: %v", err)
	}
	return path
}

func TestInferBeatFactor(t *testing.T) {
	t.Run("InfersFromNoteInterval", func(t *testing.T) {
		// 8 beats between notes at 120 BPM: only a 4x grid puts the
		// interval in the plausible syllable range
		path := writeTempChart(t, `#TITLE:Ref
#ARTIST:Ref
#BPM:120.0
#GAP:0

: 0 4 9 la
: 8 4 9 la
E
`)
		if f := InferBeatFactor(path, 1); f != 4 {
			t.Errorf("inferred factor = %d, want 4", f)
		}
	})

	t.Run("FallbackOnMissingFile", func(t *testing.T) {
		if f := InferBeatFactor(filepath.Join(t.TempDir(), "nope.txt"), 4); f != 4 {
			t.Errorf("missing file should use fallback, got %d", f)
		}
	})

	t.Run("FallbackOnSingleNote", func(t *testing.T) {
		path := writeTempChart(t, `#BPM:120.0

: 0 4 9 la
E
`)
		if f := InferBeatFactor(path, 4); f != 4 {
			t.Errorf("single-note chart should use fallback, got %d", f)
		}
	})

	t.Run("FallbackOnMissingBPM", func(t *testing.T) {
		path := writeTempChart(t, `#TITLE:Ref

: 0 4 9 la
: 8 4 9 la
E
`)
		if f := InferBeatFactor(path, 4); f != 4 {
			t.Errorf("chart without BPM should use fallback, got %d", f)
		}
	})
}
