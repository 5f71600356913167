// Package pitch wraps the external pitch estimator. The estimator does the
// signal processing (piptrack + YIN fusion over the vocal stem); this side
// only shells out and reshapes its JSON into sample tuples.
package pitch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	apperrors "github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/errors"
	"github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/exec"
)

// Sample is one pitch estimator output frame
type Sample struct {
	Time       float64 `json:"time"`       // seconds from file start
	Frequency  float64 `json:"frequency"`  // Hz, 0 means unvoiced
	Confidence float64 `json:"confidence"` // 0..1
}

// Detector runs pitch detection on an audio file
type Detector struct {
	runner *exec.Runner
}

// NewDetector creates a new pitch detector
func NewDetector(runner *exec.Runner) *Detector {
	return &Detector{runner: runner}
}

// Detect runs pitch.py on the audio file and returns the sample stream
// in time order
func (d *Detector) Detect(ctx context.Context, audioPath, outputPath string) ([]Sample, error) {
	result, err := d.runner.RunScript(ctx, "pitch.py", audioPath, outputPath)
	if err != nil {
		stderr := ""
		exit := 0
		if result != nil {
			stderr = result.Stderr
			exit = result.ExitCode
		}
		return nil, apperrors.NewProcessError("librosa", "pitch_detection", exit, stderr, err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, fmt.Errorf("read pitch results: %w", err)
	}

	var samples []Sample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("parse pitch results: %w", err)
	}

	if len(samples) == 0 {
		return nil, apperrors.ErrNoPitchData
	}

	return samples, nil
}
