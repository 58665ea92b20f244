package pipeline

import (
	"sync"
	"time"
)

// RunStatus represents the state of a generation run.
type RunStatus string

const (
	StatusQueued      RunStatus = "queued"
	StatusExtracting  RunStatus = "extracting"
	StatusSegmenting  RunStatus = "segmenting"
	StatusGenerating  RunStatus = "generating"
	StatusRendering   RunStatus = "rendering"
	StatusCompleted   RunStatus = "completed"
	StatusNoQuestions RunStatus = "no_questions"
	StatusFailed      RunStatus = "failed"
)

// Job tracks the state of one generation run.
type Job struct {
	mu sync.Mutex

	ID      string    `json:"run_id"`
	Status  RunStatus `json:"status"`
	Subject string    `json:"subject"`
	Mode    string    `json:"mode"`

	QuestionCount    int `json:"question_count"`
	AnswersDone      int `json:"answers_done"`
	PlaceholderCount int `json:"placeholder_count"`

	Error      string    `json:"error,omitempty"`
	OutputPath string    `json:"output_path,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Internal: not serialized.
	result *Result
}

func (j *Job) SetStatus(s RunStatus) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = s
	j.UpdatedAt = time.Now()
}

func (j *Job) SetProgress(done, placeholders int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.AnswersDone = done
	j.PlaceholderCount = placeholders
	j.UpdatedAt = time.Now()
}

func (j *Job) Fail(msg string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = StatusFailed
	j.Error = msg
	j.UpdatedAt = time.Now()
}

// Complete stores the finished result on the job.
func (j *Job) Complete(res *Result) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = StatusCompleted
	j.QuestionCount = len(res.Questions)
	j.OutputPath = res.OutputPath
	j.result = res
	j.UpdatedAt = time.Now()
}

// Result returns the stored run result, nil until completion.
func (j *Job) Result() *Result {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// Snapshot returns a copy safe to serialize without holding the lock.
func (j *Job) Snapshot() Job {
	j.mu.Lock()
	defer j.mu.Unlock()
	return Job{
		ID:               j.ID,
		Status:           j.Status,
		Subject:          j.Subject,
		Mode:             j.Mode,
		QuestionCount:    j.QuestionCount,
		AnswersDone:      j.AnswersDone,
		PlaceholderCount: j.PlaceholderCount,
		Error:            j.Error,
		OutputPath:       j.OutputPath,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
	}
}

// JobStore is a thread-safe in-memory run registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup evicts jobs whose last update is older than the TTL.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-s.ttl)
	for id, job := range s.jobs {
		snap := job.Snapshot()
		if snap.UpdatedAt.Before(cutoff) {
			delete(s.jobs, id)
		}
	}
}
