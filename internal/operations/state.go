package operations

import (
	"sync"
	"time"

	"github.com/namitajha/Diabetes-data-Namita/internal/dataprocessing"
)

// RunStatusValue represents the overall run status enum
type RunStatusValue string

const (
	RunStatusPending   RunStatusValue = "pending"
	RunStatusRunning   RunStatusValue = "running"
	RunStatusCompleted RunStatusValue = "completed"
	RunStatusFailed    RunStatusValue = "failed"
)

// Results holds everything a run computes. Each field is filled by the
// Step that owns it and read by the steps after it.
type Results struct {
	Profiles            []dataprocessing.ColumnProfile
	SuggestedExclusions []string
	PreFrequencies      []*dataprocessing.FrequencyTable

	Info            dataprocessing.DatasetInfo
	Descriptions    []*dataprocessing.Description
	PostFrequencies []*dataprocessing.FrequencyTable

	Frequencies []*dataprocessing.FrequencyTable
	CrossTabs   []*dataprocessing.CrossTab
	Subsets     []*dataprocessing.SubsetSummary
}

// RunState represents the complete state of one analysis run. The dataset
// fields hold each stage's output so later stages take it explicitly.
type RunState struct {
	mu sync.RWMutex

	ID        string
	InputPath string
	Status    RunStatusValue
	StartTime time.Time
	EndTime   *time.Time

	// Step states in execution order
	Steps []*StepState

	Raw     *dataprocessing.Dataset
	Pruned  *dataprocessing.Dataset
	Cleaned *dataprocessing.Dataset

	ReplacedCells int
	Results       Results
	Manifest      *RunManifest

	Error error
}

// NewRunState creates a new run state
func NewRunState(id, inputPath string) *RunState {
	return &RunState{
		ID:        id,
		InputPath: inputPath,
		Status:    RunStatusPending,
		StartTime: time.Now(),
		Manifest:  NewRunManifest(id, inputPath),
	}
}

// Start marks the run as running
func (r *RunState) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Status = RunStatusRunning
}

// Complete marks the run as completed
func (r *RunState) Complete() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.EndTime = &now
	r.Status = RunStatusCompleted
}

// Fail marks the run as failed
func (r *RunState) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.EndTime = &now
	r.Status = RunStatusFailed
	r.Error = err
}

// AddStep appends the state of a Step about to run
func (r *RunState) AddStep(s *StepState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Steps = append(r.Steps, s)
}

// GetStep returns the state of the Step with the given ID
func (r *RunState) GetStep(id string) *StepState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.Steps {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Current returns the most recent dataset produced by the run
func (r *RunState) Current() *dataprocessing.Dataset {
	switch {
	case r.Cleaned != nil:
		return r.Cleaned
	case r.Pruned != nil:
		return r.Pruned
	default:
		return r.Raw
	}
}

// Duration returns how long the run took, or has taken so far
func (r *RunState) Duration() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.EndTime != nil {
		return r.EndTime.Sub(r.StartTime)
	}
	return time.Since(r.StartTime)
}
