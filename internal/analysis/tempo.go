package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	apperrors "github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/errors"
	"github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/exec"
)

// rawEstimate is what tempo.py writes: one BPM per detection method
type rawEstimate struct {
	BeatTrackBPM float64 `json:"beat_track_bpm"`
	OnsetBPM     float64 `json:"onset_bpm"`
}

// Result contains the selected tempo and the candidates it won against
type Result struct {
	BPM        float64
	Candidates []Candidate
}

// Candidate is one scored BPM candidate
type Candidate struct {
	BPM   float64
	Score int
}

// TempoEstimator wraps the external beat tracker and selects a chart tempo
// from its raw estimates
type TempoEstimator struct {
	runner *exec.Runner
	scorer Scorer
}

// NewTempoEstimator creates a tempo estimator with the given scorer
func NewTempoEstimator(runner *exec.Runner, scorer Scorer) *TempoEstimator {
	return &TempoEstimator{runner: runner, scorer: scorer}
}

// Estimate runs tempo.py on the audio file and picks the best BPM candidate
func (e *TempoEstimator) Estimate(ctx context.Context, audioPath, outputPath string) (*Result, error) {
	result, err := e.runner.RunScript(ctx, "tempo.py", audioPath, outputPath)
	if err != nil {
		stderr := ""
		exit := 0
		if result != nil {
			stderr = result.Stderr
			exit = result.ExitCode
		}
		return nil, apperrors.NewProcessError("librosa", "tempo_estimation", exit, stderr, err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, fmt.Errorf("read tempo results: %w", err)
	}

	var raw rawEstimate
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse tempo results: %w", err)
	}

	return Select([]float64{raw.BeatTrackBPM, raw.OnsetBPM}, e.scorer)
}

// multipliers covers common half/double-time confusions of beat trackers
var multipliers = [...]float64{0.25, 0.5, 1.0, 2.0, 4.0}

// Select fans every base estimate out across tempo multipliers, keeps the
// candidates inside the scorer's valid range and returns the highest scoring
// one. Candidates are reported in scoring order for diagnostics.
func Select(baseEstimates []float64, scorer Scorer) (*Result, error) {
	var candidates []Candidate
	for _, base := range baseEstimates {
		if base <= 0 || math.IsNaN(base) {
			continue
		}
		for _, m := range multipliers {
			bpm := base * m
			if bpm < scorer.MinBPM || bpm > scorer.MaxBPM {
				continue
			}
			candidates = append(candidates, Candidate{BPM: bpm, Score: scorer.Score(bpm)})
		}
	}

	if len(candidates) == 0 {
		return nil, apperrors.ErrNoTempo
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score > best.Score {
			best = c
		}
	}

	return &Result{BPM: best.BPM, Candidates: candidates}, nil
}
