package operations

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/namitajha/Diabetes-data-Namita/internal/errors"
	"github.com/namitajha/Diabetes-data-Namita/pkg/contracts"
)

// Artifact kinds
const (
	ArtifactChart    = "chart"
	ArtifactTable    = "table"
	ArtifactWorkbook = "workbook"
	ArtifactMetrics  = "metrics"
)

// RunManifest is the record of a run written next to its artifacts
type RunManifest struct {
	mu sync.RWMutex `json:"-"`

	// Identity
	FormatVersion string    `json:"format_version"`
	RunID         string    `json:"run_id"`
	ToolVersion   string    `json:"tool_version"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`

	Input InputInfo `json:"input"`

	// Shape before and after cleaning
	RowsBefore          int      `json:"rows_before"`
	ColumnsBefore       int      `json:"columns_before"`
	RowsAfter           int      `json:"rows_after"`
	ColumnsAfter        int      `json:"columns_after"`
	DroppedColumns      []string `json:"dropped_columns"`
	ReplacedCells       int      `json:"replaced_cells"`
	SuggestedExclusions []string `json:"suggested_exclusions,omitempty"`

	// Execution tracking
	Stages    []StageExecution `json:"stages"`
	Artifacts []Artifact       `json:"artifacts"`

	Status      string    `json:"status"` // "pending", "running", "completed", "failed"
	LastUpdated time.Time `json:"last_updated"`
	Error       string    `json:"error,omitempty"`
}

// InputInfo identifies the dataset a run read
type InputInfo struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
	// BLAKE2b-256 of the file contents, hex encoded
	Digest string `json:"digest"`
}

// StageExecution tracks the execution of a single stage
type StageExecution struct {
	StageID    string                 `json:"stage_id"`
	StageName  string                 `json:"stage_name"`
	StartTime  time.Time              `json:"start_time"`
	EndTime    time.Time              `json:"end_time"`
	Duration   string                 `json:"duration"`
	DurationMS int64                  `json:"duration_ms"`
	Status     string                 `json:"status"` // "running", "completed", "failed"
	Error      string                 `json:"error,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// Artifact is one file produced by a run
type Artifact struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// NewRunManifest creates a new run manifest
func NewRunManifest(runID, inputPath string) *RunManifest {
	now := time.Now()
	return &RunManifest{
		FormatVersion: contracts.ManifestFormatVersion,
		RunID:         runID,
		ToolVersion:   contracts.Version,
		StartTime:     now,
		Input:         InputInfo{Path: inputPath},
		Stages:        []StageExecution{},
		Artifacts:     []Artifact{},
		Status:        "pending",
		LastUpdated:   now,
	}
}

// RecordStageStart records the start of a stage execution
func (m *RunManifest) RecordStageStart(stageID, stageName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Stages = append(m.Stages, StageExecution{
		StageID:   stageID,
		StageName: stageName,
		StartTime: time.Now(),
		Status:    "running",
	})
	m.Status = "running"
	m.LastUpdated = time.Now()
}

// RecordStageCompletion records the completion of a stage
func (m *RunManifest) RecordStageCompletion(stageID string, metadata map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s := m.stage(stageID); s != nil {
		s.finish("completed")
		if len(metadata) > 0 {
			s.Metadata = metadata
		}
	}
	m.LastUpdated = time.Now()
}

// RecordStageFailure records a stage failure
func (m *RunManifest) RecordStageFailure(stageID string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s := m.stage(stageID); s != nil {
		s.finish("failed")
		s.Error = err.Error()
	}
	m.Status = "failed"
	m.Error = fmt.Sprintf("Stage %s failed: %v", stageID, err)
	m.LastUpdated = time.Now()
}

// IsStageCompleted checks if a stage has been completed
func (m *RunManifest) IsStageCompleted(stageID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, stage := range m.Stages {
		if stage.StageID == stageID && stage.Status == "completed" {
			return true
		}
	}
	return false
}

// AddArtifact records a produced file
func (m *RunManifest) AddArtifact(kind, name, path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Artifacts = append(m.Artifacts, Artifact{Kind: kind, Name: name, Path: path})
	m.LastUpdated = time.Now()
}

// ArtifactsOf returns the artifacts of one kind
func (m *RunManifest) ArtifactsOf(kind string) []Artifact {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Artifact
	for _, a := range m.Artifacts {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

// Finish marks the manifest completed
func (m *RunManifest) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.EndTime = time.Now()
	m.Status = "completed"
	m.LastUpdated = m.EndTime
}

// SaveToFile saves the manifest to a JSON file
func (m *RunManifest) SaveToFile(path string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewStorageError("write manifest file", err).WithContext("path", path)
	}

	return nil
}

// LoadManifestFromFile loads a manifest from a JSON file
func LoadManifestFromFile(path string) (*RunManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	var manifest RunManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	return &manifest, nil
}

func (m *RunManifest) stage(id string) *StageExecution {
	for i := len(m.Stages) - 1; i >= 0; i-- {
		if m.Stages[i].StageID == id {
			return &m.Stages[i]
		}
	}
	return nil
}

func (s *StageExecution) finish(status string) {
	s.EndTime = time.Now()
	d := s.EndTime.Sub(s.StartTime)
	s.Duration = d.String()
	s.DurationMS = d.Milliseconds()
	s.Status = status
}

// DigestFile returns the size and hex BLAKE2b-256 digest of the file at path
func DigestFile(path string) (int64, string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, "", errors.NewFileNotFoundError(path, err)
		}
		return 0, "", errors.NewStorageError("open input for digest", err).WithContext("path", path)
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return 0, "", fmt.Errorf("create digest: %w", err)
	}
	n, err := io.Copy(h, f)
	if err != nil {
		return 0, "", errors.NewStorageError("read input for digest", err).WithContext("path", path)
	}
	return n, hex.EncodeToString(h.Sum(nil)), nil
}
