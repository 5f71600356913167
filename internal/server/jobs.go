package server

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/pipeline"
	"github.com/Thallion/Ultrastar-Deluxe-TXT-file-Creator/internal/progress"
)

// Job status constants
type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusProcessing JobStatus = "processing"
	StatusComplete   JobStatus = "complete"
	StatusFailed     JobStatus = "failed"
)

// Job represents one conversion run started from the web UI
type Job struct {
	ID         string
	Status     JobStatus
	Stage      string
	Filename   string
	InputPath  string
	LyricsPath string
	Title      string
	Artist     string
	WorkDir    string
	Result     *pipeline.Result
	Error      string
	Updates    chan string
	CreatedAt  time.Time
}

// JobManager manages conversion jobs
type JobManager struct {
	jobs       map[string]*Job
	mu         sync.RWMutex
	scriptsDir string
}

// NewJobManager creates a new job manager
func NewJobManager(scriptsDir string) *JobManager {
	return &JobManager{
		jobs:       make(map[string]*Job),
		scriptsDir: scriptsDir,
	}
}

// Create creates a new job with an isolated work directory
func (m *JobManager) Create() *Job {
	m.mu.Lock()
	defer m.mu.Unlock()

	workDir, _ := os.MkdirTemp("", "ultrastar-gen-job-*")

	job := &Job{
		ID:        uuid.NewString(),
		Status:    StatusPending,
		Stage:     "Uploading...",
		WorkDir:   workDir,
		Updates:   make(chan string, 16),
		CreatedAt: time.Now(),
	}

	m.jobs[job.ID] = job
	return job
}

// Get retrieves a job by ID
func (m *JobManager) Get(id string) *Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.jobs[id]
}

// Process runs the conversion pipeline for a job. It is the single worker
// goroutine for the job; progress flows back through the Updates channel,
// never by touching the front end directly.
func (m *JobManager) Process(job *Job) {
	defer close(job.Updates)
	defer func() {
		// Cleanup after 10 minutes
		time.AfterFunc(10*time.Minute, func() {
			os.RemoveAll(job.WorkDir)
			m.mu.Lock()
			delete(m.jobs, job.ID)
			m.mu.Unlock()
		})
	}()

	job.Status = StatusProcessing
	ctx := context.Background()

	cfg := pipeline.DefaultConfig()
	cfg.InputPath = job.InputPath
	cfg.LyricsPath = job.LyricsPath
	cfg.Title = job.Title
	cfg.Artist = job.Artist
	cfg.OutputDir = job.WorkDir
	cfg.OnProgress = func(stage progress.Stage, message string) {
		job.Stage = message
		select {
		case job.Updates <- fmt.Sprintf("[%d/%d] %s", stage.Number, stage.Total, message):
		default:
			// a slow SSE consumer must not stall the pipeline
		}
	}

	orch := pipeline.NewOrchestrator(m.scriptsDir, os.Stdout, false)
	result, err := orch.Execute(ctx, cfg)
	if err != nil {
		job.Status = StatusFailed
		job.Error = err.Error()
		job.Updates <- "failed: " + job.Error
		return
	}

	job.Result = result
	job.Status = StatusComplete
	job.Updates <- "complete"
}
