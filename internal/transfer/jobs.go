package transfer

import (
	"sync"
	"time"
)

type JobState string

const (
	JobQueued   JobState = "queued"
	JobSending  JobState = "sending"
	JobComplete JobState = "complete"
	JobFailed   JobState = "failed"
)

// Job records one artifact push. Jobs live in memory only; they exist so
// the fire-and-forget transfer has an observable state, not as durable
// resumption state.
type Job struct {
	JobID      string    `json:"job_id"`
	ResourceID string    `json:"resource_id"`
	ArtifactID string    `json:"artifact_id"`
	Endpoint   string    `json:"consumer_endpoint"`
	State      JobState  `json:"transfer_status"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Tracker struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

func NewTracker() *Tracker {
	return &Tracker{jobs: make(map[string]*Job)}
}

func (t *Tracker) Add(job *Job) {
	t.mu.Lock()
	defer t.mu.Unlock()
	job.StartedAt = time.Now()
	job.UpdatedAt = job.StartedAt
	t.jobs[job.JobID] = job
}

func (t *Tracker) SetState(jobID string, state JobState, errMsg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if job, ok := t.jobs[jobID]; ok {
		job.State = state
		job.Error = errMsg
		job.UpdatedAt = time.Now()
	}
}

// Get returns a copy so callers never observe a job mid-update.
func (t *Tracker) Get(jobID string) (Job, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	job, ok := t.jobs[jobID]
	if !ok {
		return Job{}, false
	}
	return *job, true
}
