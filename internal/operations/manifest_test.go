package operations

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/namitajha/Diabetes-data-Namita/internal/errors"
	"github.com/namitajha/Diabetes-data-Namita/pkg/contracts"
)

func TestRunManifestStages(t *testing.T) {
	m := NewRunManifest("run-1", "in.csv")
	assert.Equal(t, contracts.ManifestFormatVersion, m.FormatVersion)
	assert.Equal(t, "pending", m.Status)

	m.RecordStageStart(StageIDLoad, StageNameLoad)
	assert.Equal(t, "running", m.Status)
	assert.False(t, m.IsStageCompleted(StageIDLoad))

	m.RecordStageCompletion(StageIDLoad, map[string]interface{}{MetaRows: 10})
	assert.True(t, m.IsStageCompleted(StageIDLoad))
	assert.Equal(t, 10, m.Stages[0].Metadata[MetaRows])

	m.RecordStageStart(StageIDPrune, StageNamePrune)
	m.RecordStageFailure(StageIDPrune, errors.New("column missing"))
	assert.False(t, m.IsStageCompleted(StageIDPrune))
	assert.Equal(t, "failed", m.Status)
	assert.Equal(t, "failed", m.Stages[1].Status)
	assert.Equal(t, "column missing", m.Stages[1].Error)
	assert.Contains(t, m.Error, "prune")
}

func TestRunManifestArtifacts(t *testing.T) {
	m := NewRunManifest("run-1", "in.csv")
	m.AddArtifact(ArtifactChart, "freq_gender", "/out/charts/freq_gender.png")
	m.AddArtifact(ArtifactTable, "freq_gender", "/out/tables/freq_gender.csv")
	m.AddArtifact(ArtifactChart, "freq_race", "/out/charts/freq_race.png")

	charts := m.ArtifactsOf(ArtifactChart)
	require.Len(t, charts, 2)
	assert.Equal(t, "freq_race", charts[1].Name)
	assert.Empty(t, m.ArtifactsOf(ArtifactWorkbook))
}

func TestRunManifestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")

	m := NewRunManifest("run-1", "in.csv")
	m.RowsBefore = 10
	m.ColumnsBefore = 29
	m.DroppedColumns = []string{"weight"}
	m.AddArtifact(ArtifactWorkbook, "analysis.xlsx", "/out/analysis.xlsx")
	m.Finish()

	require.NoError(t, m.SaveToFile(path))

	loaded, err := LoadManifestFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "run-1", loaded.RunID)
	assert.Equal(t, "completed", loaded.Status)
	assert.Equal(t, 10, loaded.RowsBefore)
	assert.Equal(t, 29, loaded.ColumnsBefore)
	assert.Equal(t, []string{"weight"}, loaded.DroppedColumns)
	assert.Len(t, loaded.Artifacts, 1)
	assert.False(t, loaded.EndTime.IsZero())
}

func TestRunManifestSaveUnwritable(t *testing.T) {
	m := NewRunManifest("run-1", "in.csv")
	err := m.SaveToFile(filepath.Join(t.TempDir(), "missing", "manifest.json"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeStorage, apperrors.TypeOf(err))
}

func TestDigestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0644))

	size, digest, err := DigestFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(3), size)
	// BLAKE2b-256("abc")
	assert.Equal(t, "bddd813c634239723171ef3fee98579b94964e3bb1cb3e427262c8c068d52319", digest)

	_, _, err = DigestFile(filepath.Join(dir, "absent.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
}
