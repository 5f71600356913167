package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/analysis"
	"github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/audio"
	"github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/chart"
	apperrors "github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/errors"
	"github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/exec"
	"github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/lyrics"
	"github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/pitch"
	"github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/progress"
	"github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/workspace"
)

// Config holds pipeline configuration
type Config struct {
	InputPath     string
	LyricsPath    string // optional lyric text file
	ReferencePath string // optional reference chart for beat factor inference
	OutputDir     string
	MIDIOutPath   string // optional debug MIDI export
	Title         string
	Artist        string

	Separation audio.SeparationMethod
	Profile    chart.Profile
	Grouper    chart.GrouperConfig
	EmptyText  chart.EmptyTextPolicy

	SeparateTimeout time.Duration
	DetectTimeout   time.Duration

	// OnProgress, when set, receives every stage transition in addition to
	// the writer-based reporter. The web front end hangs its job updates
	// off this.
	OnProgress progress.Func
}

// DefaultConfig returns default pipeline configuration
func DefaultConfig() Config {
	return Config{
		OutputDir:       "output",
		Separation:      audio.MethodAuto,
		Profile:         chart.DefaultProfile(),
		Grouper:         chart.DefaultGrouperConfig(),
		EmptyText:       chart.PlaceholderEmpty,
		SeparateTimeout: 10 * time.Minute,
		DetectTimeout:   5 * time.Minute,
	}
}

// Result contains all pipeline outputs
type Result struct {
	OutputPath       string
	BPM              float64
	BeatFactor       int
	GapMS            int
	EndMS            int
	PitchSamples     int
	Notes            int
	Syllables        int
	SeparationMethod string
}

// Orchestrator coordinates the full conversion pipeline
type Orchestrator struct {
	runner    *exec.Runner
	separator *audio.VocalSeparator
	tempo     *analysis.TempoEstimator
	detector  *pitch.Detector
	progress  *progress.Reporter
}

// NewOrchestrator creates a new pipeline orchestrator
func NewOrchestrator(scriptsDir string, out io.Writer, verbose bool) *Orchestrator {
	runner := exec.NewRunner("", scriptsDir)
	return &Orchestrator{
		runner:    runner,
		separator: audio.NewVocalSeparator(runner),
		tempo:     analysis.NewTempoEstimator(runner, analysis.DefaultScorer()),
		detector:  pitch.NewDetector(runner),
		progress:  progress.NewReporter(out, verbose),
	}
}

// Execute runs the full pipeline: validate, separate vocals, estimate tempo,
// detect pitches, group into notes, assemble and write the chart. A failed
// or slow external call aborts the run; no partial chart is ever written.
func (o *Orchestrator) Execute(ctx context.Context, cfg Config) (*Result, error) {
	ws, err := workspace.Create()
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	defer ws.Cleanup()

	// Stage 1: Validate input
	o.startStage(cfg, progress.StageValidate)
	format, err := audio.ValidateInput(cfg.InputPath)
	if err != nil {
		return nil, err
	}
	if err := o.runner.CheckPythonDependency(ctx, "librosa"); err != nil {
		return nil, fmt.Errorf("%w: librosa (pip install -r scripts/python/requirements.txt)", apperrors.ErrToolNotInstalled)
	}
	o.progress.StageComplete("Valid %s file", format)

	title, artist := resolveMetadata(cfg)
	o.progress.Update("Track: %s - %s", title, artist)

	// Reference chart, when given, overrides the default beat factor
	profile := cfg.Profile
	if cfg.ReferencePath != "" {
		inferred := chart.InferBeatFactor(cfg.ReferencePath, profile.BeatFactor)
		if inferred != profile.BeatFactor {
			o.progress.Update("Beat factor %d inferred from reference chart", inferred)
			profile.BeatFactor = inferred
		}
	}

	// Stage 2: Vocal separation
	o.startStage(cfg, progress.StageSeparate)
	sepCtx, sepCancel := context.WithTimeout(ctx, cfg.SeparateTimeout)
	defer sepCancel()

	sep, err := o.separator.Separate(sepCtx, cfg.InputPath, ws.SeparateOut(), cfg.Separation)
	if err != nil {
		return nil, fmt.Errorf("vocal separation: %w", err)
	}
	o.progress.StageComplete("Vocals isolated (%s)", sep.Method)

	// Stage 3: Tempo estimation
	o.startStage(cfg, progress.StageTempo)
	tempoResult, err := o.tempo.Estimate(ctx, sep.VocalsPath, ws.TempoJSON())
	if err != nil {
		return nil, fmt.Errorf("tempo estimation: %w", err)
	}
	o.progress.StageComplete("Selected BPM: %.1f (%d candidates)", tempoResult.BPM, len(tempoResult.Candidates))

	// Stage 4: Pitch detection
	o.startStage(cfg, progress.StagePitch)
	detectCtx, detectCancel := context.WithTimeout(ctx, cfg.DetectTimeout)
	defer detectCancel()

	samples, err := o.detector.Detect(detectCtx, sep.VocalsPath, ws.PitchJSON())
	if err != nil {
		return nil, fmt.Errorf("pitch detection: %w", err)
	}
	o.progress.StageComplete("%d pitch samples detected", len(samples))

	// Stage 5: Note grouping
	o.startStage(cfg, progress.StageNotes)
	raw := chart.Group(samples, profile, cfg.Grouper)
	if len(raw) == 0 {
		return nil, fmt.Errorf("note grouping: %w", apperrors.ErrNoNotes)
	}
	o.progress.StageComplete("%d pitch samples -> %d notes", len(samples), len(raw))

	// Lyrics are optional; a missing path was already caught by the CLI
	var syllables []string
	if cfg.LyricsPath != "" {
		syllables, err = lyrics.ParseFile(cfg.LyricsPath)
		if err != nil {
			return nil, err
		}
		o.progress.StageComplete("%d lyric words loaded", len(syllables))
	}

	// Stage 6: Chart assembly + write
	o.startStage(cfg, progress.StageChart)

	meta := chart.Metadata{
		Title:  title,
		Artist: artist,
		MP3:    filepath.Base(cfg.InputPath),
		BPM:    tempoResult.BPM,
	}

	c, err := chart.Build(raw, syllables, meta, profile)
	if err != nil {
		return nil, fmt.Errorf("chart assembly: %w", err)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	outputPath := filepath.Join(cfg.OutputDir, chart.OutputName(c.Meta))

	ser := chart.Serializer{EmptyText: cfg.EmptyText}
	if err := ser.WriteFile(outputPath, c); err != nil {
		return nil, err
	}
	o.progress.StageComplete("Chart written: %s", outputPath)

	if cfg.MIDIOutPath != "" {
		if err := chart.WriteMIDI(cfg.MIDIOutPath, c, profile); err != nil {
			o.progress.Warning("MIDI export failed: %v", err)
		} else {
			o.progress.StageComplete("MIDI export written: %s", cfg.MIDIOutPath)
		}
	}

	return &Result{
		OutputPath:       outputPath,
		BPM:              tempoResult.BPM,
		BeatFactor:       profile.BeatFactor,
		GapMS:            c.Meta.GapMS,
		EndMS:            c.Meta.EndMS,
		PitchSamples:     len(samples),
		Notes:            len(raw),
		Syllables:        len(syllables),
		SeparationMethod: sep.Method,
	}, nil
}

// startStage fans a stage transition out to both the CLI reporter and the
// optional progress callback
func (o *Orchestrator) startStage(cfg Config, stage progress.Stage) {
	o.progress.StartStage(stage)
	if cfg.OnProgress != nil {
		cfg.OnProgress(stage, stage.Description)
	}
}

// resolveMetadata fills title/artist from the input filename when flags are
// missing. "Artist - Title.mp3" splits on the first dash; anything else
// becomes the title with an unknown artist.
func resolveMetadata(cfg Config) (title, artist string) {
	title = cfg.Title
	artist = cfg.Artist

	if title == "" {
		stem := strings.TrimSuffix(filepath.Base(cfg.InputPath), filepath.Ext(cfg.InputPath))
		if a, t, ok := strings.Cut(stem, " - "); ok && artist == "" {
			artist = strings.TrimSpace(a)
			title = strings.TrimSpace(t)
		} else {
			title = stem
		}
	}
	if artist == "" {
		artist = "Unknown Artist"
	}
	return title, artist
}
