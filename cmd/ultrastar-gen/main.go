package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/audio"
	"github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/chart"
	"github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/pipeline"
	"github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/server"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ultrastar-gen",
	Short: "Generate UltraStar Deluxe song charts from audio",
	Long: `ultrastar-gen turns a song recording into a playable UltraStar Deluxe
.txt chart: it isolates the vocals, estimates tempo, tracks the sung
pitch, and writes quantized notes with lyric syllables attached.

Pipeline: audio → vocal separation → tempo + pitch analysis → chart`,
	Version: version,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a chart from an audio file",
	Long: `Generate an UltraStar Deluxe .txt chart from an audio file,
optionally attaching lyrics from a text or LRC file.

Examples:
  ultrastar-gen generate --input song.mp3
  ultrastar-gen generate -i song.wav -l lyrics.txt -o charts/
  ultrastar-gen generate -i "Artist - Title.mp3" --reference other_chart.txt`,
	RunE: runGenerate,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web interface",
	Long: `Start the web interface for uploading songs and downloading
finished charts.

Example:
  ultrastar-gen serve --port 8080`,
	RunE: runServe,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <chart.txt>",
	Short: "Inspect an existing chart file",
	Long: `Parse an UltraStar chart and print note statistics and
plausibility checks. Useful for debugging generated output.

Examples:
  ultrastar-gen inspect "Title - Artist.txt"
  ultrastar-gen inspect chart.txt --plot notes.png`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

var (
	// generate flags
	inputPath     string
	lyricsPath    string
	referencePath string
	outputDir     string
	midiOutput    string
	titleFlag     string
	artistFlag    string
	separation    string
	dropEmpty     bool
	verbose       bool

	// serve flags
	port int

	// inspect flags
	plotPath string
)

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(inspectCmd)

	generateCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input audio file (WAV, MP3 or OGG)")
	generateCmd.Flags().StringVarP(&lyricsPath, "lyrics", "l", "", "Lyrics file (plain text or LRC)")
	generateCmd.Flags().StringVar(&referencePath, "reference", "", "Existing chart to infer beat resolution from")
	generateCmd.Flags().StringVarP(&outputDir, "output", "o", "output", "Output directory for the chart")
	generateCmd.Flags().StringVar(&midiOutput, "midi-out", "", "Also write a MIDI preview of the notes")
	generateCmd.Flags().StringVarP(&titleFlag, "title", "t", "", "Song title (default: from filename)")
	generateCmd.Flags().StringVarP(&artistFlag, "artist", "a", "", "Song artist (default: from filename)")
	generateCmd.Flags().StringVarP(&separation, "separation", "s", "auto", "Vocal separation method (auto, demucs, hpss)")
	generateCmd.Flags().BoolVar(&dropEmpty, "drop-empty", false, "Drop notes without lyric text instead of writing a placeholder")
	generateCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	generateCmd.MarkFlagRequired("input")

	serveCmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")

	inspectCmd.Flags().StringVar(&plotPath, "plot", "", "Write a pitch/beat plot PNG to this path")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	method := audio.SeparationMethod(separation)
	switch method {
	case audio.MethodAuto, audio.MethodDemucs, audio.MethodHPSS:
	default:
		return fmt.Errorf("invalid separation method: %s (must be auto, demucs, or hpss)", separation)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nInterrupted, cleaning up...")
		cancel()
	}()

	orch := pipeline.NewOrchestrator(findScriptsDir(), os.Stdout, verbose)

	cfg := pipeline.DefaultConfig()
	cfg.InputPath = inputPath
	cfg.LyricsPath = lyricsPath
	cfg.ReferencePath = referencePath
	cfg.OutputDir = outputDir
	cfg.MIDIOutPath = midiOutput
	cfg.Title = titleFlag
	cfg.Artist = artistFlag
	cfg.Separation = method
	if dropEmpty {
		cfg.EmptyText = chart.DropEmpty
	}

	result, err := orch.Execute(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	fmt.Println("")
	fmt.Println("========================================")
	fmt.Println("Done! Chart generated:")
	fmt.Printf("  %s\n", result.OutputPath)
	fmt.Printf("  %.1f BPM, GAP %d ms, %d notes", result.BPM, result.GapMS, result.Notes)
	if result.Syllables > 0 {
		fmt.Printf(", %d lyric words", result.Syllables)
	}
	fmt.Println()
	fmt.Printf("  Vocals isolated via %s\n", result.SeparationMethod)
	fmt.Println("========================================")

	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := server.Config{
		Port:       port,
		ScriptsDir: findScriptsDir(),
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	return srv.Run()
}

func runInspect(cmd *cobra.Command, args []string) error {
	c, err := chart.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("parse chart: %w", err)
	}

	st := chart.Summarize(c)

	fmt.Printf("Title:   %s\n", c.Meta.Title)
	fmt.Printf("Artist:  %s\n", c.Meta.Artist)
	fmt.Printf("BPM:     %.1f", c.Meta.BPM)
	if !chart.BPMPlausible(c.Meta.BPM) {
		fmt.Print("  (outside the usual karaoke range)")
	}
	fmt.Println()
	fmt.Printf("GAP:     %d ms\n", c.Meta.GapMS)
	if c.Meta.EndMS > 0 {
		fmt.Printf("END:     %d ms\n", c.Meta.EndMS)
	}
	fmt.Println()
	fmt.Printf("Notes:   %d sung, %d golden, %d pauses\n", st.SungNotes, st.EmphasizedNotes, st.Pauses)
	fmt.Printf("Beats:   %d .. %d (%d total)\n", st.BeatMin, st.BeatMax, st.TotalBeats)
	fmt.Printf("Pitches: %d .. %d", st.PitchMin, st.PitchMax)
	if !st.PitchPlausible() {
		fmt.Print("  (outside the usual sung range)")
	}
	fmt.Println()

	if plotPath != "" {
		if err := chart.RenderPlot(plotPath, c, chart.DefaultProfile()); err != nil {
			return fmt.Errorf("render plot: %w", err)
		}
		fmt.Printf("\nPlot written: %s\n", plotPath)
	}

	return nil
}

// findScriptsDir locates the Python scripts directory
func findScriptsDir() string {
	// Check relative to executable
	exe, err := os.Executable()
	if err == nil {
		dir := filepath.Join(filepath.Dir(exe), "scripts", "python")
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}

	// Check common development locations
	candidates := []string{
		"scripts/python",
		"../scripts/python",
		"../../scripts/python",
	}

	for _, c := range candidates {
		if dirExists(c) {
			return c
		}
	}

	return "scripts/python"
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
