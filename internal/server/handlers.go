package server

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/chart"
)

const maxUploadSize = 100 * 1024 * 1024 // 100MB

// handleIndex serves the main upload page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index.html", nil)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleUpload accepts the audio file plus optional lyrics and metadata,
// then starts a background conversion job
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.renderError(w, "File too large. Maximum size is 100MB.", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		s.renderError(w, "Please upload an audio file.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".wav" && ext != ".mp3" && ext != ".ogg" {
		s.renderError(w, "Unsupported format. Please upload a WAV, MP3 or OGG file.", http.StatusBadRequest)
		return
	}

	job := s.jobs.Create()

	inputPath := filepath.Join(job.WorkDir, "input"+ext)
	if err := saveUpload(file, inputPath); err != nil {
		s.renderError(w, "Failed to save file.", http.StatusInternalServerError)
		return
	}
	job.InputPath = inputPath
	job.Filename = header.Filename
	job.Title = r.FormValue("title")
	job.Artist = r.FormValue("artist")

	// Lyrics file is optional
	if lyricsFile, lyricsHeader, err := r.FormFile("lyrics"); err == nil {
		defer lyricsFile.Close()
		lyricsPath := filepath.Join(job.WorkDir, "lyrics"+filepath.Ext(lyricsHeader.Filename))
		if err := saveUpload(lyricsFile, lyricsPath); err != nil {
			s.renderError(w, "Failed to save lyrics file.", http.StatusInternalServerError)
			return
		}
		job.LyricsPath = lyricsPath
	}

	go s.jobs.Process(job)

	s.render(w, "processing.html", map[string]any{
		"JobID":    job.ID,
		"Filename": header.Filename,
	})
}

// handleStatus streams job progress via SSE
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")
	job := s.jobs.Get(jobID)

	if job == nil {
		s.renderError(w, "Job not found.", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case update := <-job.Updates:
			fmt.Fprintf(w, "event: progress\n")
			fmt.Fprintf(w, "data: %s\n\n", update)
			flusher.Flush()

			if job.Status == StatusComplete || job.Status == StatusFailed {
				fmt.Fprintf(w, "event: done\n")
				fmt.Fprintf(w, "data: %s\n\n", job.Status)
				flusher.Flush()
				return
			}
		}
	}
}

// handleResult returns the final result page
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")
	job := s.jobs.Get(jobID)

	if job == nil {
		s.renderError(w, "Job not found.", http.StatusNotFound)
		return
	}

	if job.Status == StatusFailed {
		s.render(w, "error.html", map[string]any{
			"Error": job.Error,
		})
		return
	}

	if job.Status != StatusComplete {
		s.render(w, "processing.html", map[string]any{
			"JobID":    job.ID,
			"Filename": job.Filename,
			"Stage":    job.Stage,
		})
		return
	}

	chartText := ""
	if data, err := os.ReadFile(job.Result.OutputPath); err == nil {
		chartText = string(data)
	}

	s.render(w, "result.html", map[string]any{
		"JobID":      job.ID,
		"Filename":   job.Filename,
		"BPM":        fmt.Sprintf("%.1f", job.Result.BPM),
		"GapMS":      job.Result.GapMS,
		"Notes":      job.Result.Notes,
		"Syllables":  job.Result.Syllables,
		"Separation": job.Result.SeparationMethod,
		"ChartText":  chartText,
	})
}

// handleDownloadChart serves the generated chart file
func (s *Server) handleDownloadChart(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")
	job := s.jobs.Get(jobID)

	if job == nil || job.Status != StatusComplete {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(job.Result.OutputPath)))
	http.ServeFile(w, r, job.Result.OutputPath)
}

// handleDownloadMIDI serves a MIDI rendering of the generated chart
func (s *Server) handleDownloadMIDI(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")
	job := s.jobs.Get(jobID)

	if job == nil || job.Status != StatusComplete {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	midiPath := filepath.Join(job.WorkDir, "chart.mid")
	if _, err := os.Stat(midiPath); os.IsNotExist(err) {
		c, err := chart.ParseFile(job.Result.OutputPath)
		if err != nil {
			http.Error(w, "MIDI file not available", http.StatusNotFound)
			return
		}
		if err := chart.WriteMIDI(midiPath, c, chart.DefaultProfile()); err != nil {
			http.Error(w, "MIDI file not available", http.StatusNotFound)
			return
		}
	}

	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", job.Filename+".mid"))
	http.ServeFile(w, r, midiPath)
}

// render renders a template
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("template error", "template", name, "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

// renderError renders an error message
func (s *Server) renderError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	s.templates.ExecuteTemplate(w, "error.html", map[string]any{
		"Error": message,
	})
}

// saveUpload copies an uploaded file to disk
func saveUpload(src io.Reader, path string) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
