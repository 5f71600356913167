package audio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/errors"
)

func writeTestFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("write test file: %v", err)
	}
	return path
}

func TestValidateInput(t *testing.T) {
	t.Run("WAVMagic", func(t *testing.T) {
		header := append([]byte("RIFF"), 0, 0, 0, 0)
		header = append(header, []byte("WAVE")...)
		path := writeTestFile(t, "song.bin", header)

		format, err := ValidateInput(path)
		if err != nil {
			t.Fatalf("ValidateInput: %v", err)
		}
		if format != FormatWAV {
			t.Errorf("format = %v, want %v", format, FormatWAV)
		}
	})

	t.Run("MP3ID3Tag", func(t *testing.T) {
		path := writeTestFile(t, "song.bin", []byte("ID3\x04\x00\x00\x00\x00\x00\x00\x00\x00"))

		format, err := ValidateInput(path)
		if err != nil {
			t.Fatalf("ValidateInput: %v", err)
		}
		if format != FormatMP3 {
			t.Errorf("format = %v, want %v", format, FormatMP3)
		}
	})

	t.Run("MP3FrameSync", func(t *testing.T) {
		path := writeTestFile(t, "song.bin", []byte{0xFF, 0xFB, 0x90, 0x00, 0, 0, 0, 0, 0, 0, 0, 0})

		format, err := ValidateInput(path)
		if err != nil {
			t.Fatalf("ValidateInput: %v", err)
		}
		if format != FormatMP3 {
			t.Errorf("format = %v, want %v", format, FormatMP3)
		}
	})

	t.Run("OGGMagic", func(t *testing.T) {
		path := writeTestFile(t, "song.bin", []byte("OggS\x00\x02\x00\x00\x00\x00\x00\x00"))

		format, err := ValidateInput(path)
		if err != nil {
			t.Fatalf("ValidateInput: %v", err)
		}
		if format != FormatOGG {
			t.Errorf("format = %v, want %v", format, FormatOGG)
		}
	})

	t.Run("ExtensionFallback", func(t *testing.T) {
		path := writeTestFile(t, "song.wav", []byte("not really audio"))

		format, err := ValidateInput(path)
		if err != nil {
			t.Fatalf("ValidateInput: %v", err)
		}
		if format != FormatWAV {
			t.Errorf("format = %v, want %v", format, FormatWAV)
		}
	})

	t.Run("UnsupportedFormat", func(t *testing.T) {
		path := writeTestFile(t, "song.xyz", []byte("plain text, no magic"))

		_, err := ValidateInput(path)
		if !errors.Is(err, apperrors.ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := ValidateInput(filepath.Join(t.TempDir(), "nope.wav"))
		if !errors.Is(err, apperrors.ErrFileNotFound) {
			t.Errorf("expected ErrFileNotFound, got %v", err)
		}
	})
}
