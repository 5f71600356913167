package chart

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteMIDI(t *testing.T) {
	t.Run("WritesFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "preview.mid")
		if err := WriteMIDI(path, testChart(), DefaultProfile()); err != nil {
			t.Fatalf("WriteMIDI: %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat midi file: %v", err)
		}
		if info.Size() == 0 {
			t.Error("midi file is empty")
		}
	})

	t.Run("RejectsInvalidBPM", func(t *testing.T) {
		c := testChart()
		c.Meta.BPM = 0
		path := filepath.Join(t.TempDir(), "preview.mid")
		if err := WriteMIDI(path, c, DefaultProfile()); err == nil {
			t.Error("expected error for zero BPM")
		}
	})
}
