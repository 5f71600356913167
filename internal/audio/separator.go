package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/errors"
	"github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/exec"
)

// SeparationMethod selects how vocals are isolated from the mix
type SeparationMethod string

const (
	// MethodAuto lets separate.py pick Demucs when installed, HPSS otherwise
	MethodAuto SeparationMethod = "auto"
	// MethodDemucs forces the neural two-stem model (fails if not installed)
	MethodDemucs SeparationMethod = "demucs"
	// MethodHPSS forces harmonic/percussive separation with vocal-band gating
	MethodHPSS SeparationMethod = "hpss"
)

// SeparationResult contains the outcome of a vocal separation run
type SeparationResult struct {
	VocalsPath string // Path to the isolated vocals file
	Method     string // Method actually used ("demucs" or "hpss")
}

// VocalSeparator isolates the vocal stem from a mixed audio file.
// The heavy lifting happens in separate.py; this wrapper only shells out
// and locates the result.
type VocalSeparator struct {
	runner *exec.Runner
}

// NewVocalSeparator creates a new vocal separator
func NewVocalSeparator(runner *exec.Runner) *VocalSeparator {
	return &VocalSeparator{runner: runner}
}

// Separate extracts the vocal stem from an audio file into outputDir
func (s *VocalSeparator) Separate(ctx context.Context, inputPath, outputDir string, method SeparationMethod) (*SeparationResult, error) {
	if method == "" {
		method = MethodAuto
	}

	result, err := s.runner.RunScript(ctx, "separate.py", inputPath, outputDir, "--method", string(method))
	if err != nil {
		if result != nil && result.ExitCode != 0 {
			return nil, apperrors.NewProcessError("demucs", "vocal_separation", result.ExitCode, result.Stderr, err)
		}
		return nil, fmt.Errorf("vocal separation: %w", err)
	}

	sepResult := &SeparationResult{Method: "hpss"}

	candidates := []string{
		filepath.Join(outputDir, "vocals.wav"),
		filepath.Join(outputDir, "vocals.mp3"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			sepResult.VocalsPath = path
			break
		}
	}
	if sepResult.VocalsPath == "" {
		return nil, fmt.Errorf("vocals stem not found in %s", outputDir)
	}

	// separate.py writes a marker file naming the method it ended up using
	if data, err := os.ReadFile(filepath.Join(outputDir, "method.txt")); err == nil {
		if m := strings.TrimSpace(string(data)); m != "" {
			sepResult.Method = m
		}
	}

	return sepResult, nil
}
