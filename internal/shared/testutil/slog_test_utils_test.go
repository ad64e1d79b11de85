package testutil

import (
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("dataset loaded", slog.String("path", "diabetic_data.csv"))
		logger.Error("load failed", slog.Int("line", 7))

		assert.Len(t, handler.GetRecords(), 2)
		assert.True(t, handler.ContainsMessage("dataset loaded"))
		assert.True(t, handler.ContainsAttr("path", "diabetic_data.csv"))
		assert.True(t, handler.ContainsAttr("line", 7))
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug msg")
		logger.Info("info msg")
		logger.Warn("warn msg")
		logger.Error("error msg")

		assert.Len(t, handler.GetRecordsByLevel(slog.LevelInfo), 1)
		assert.Len(t, handler.GetRecordsByLevel(slog.LevelError), 1)
		AssertLogContains(t, handler, slog.LevelWarn, "warn")
	})

	t.Run("keeps attrs from With", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With("component", "loader").Info("row read")

		AssertLogAttr(t, handler, "component", "loader")
		assert.Equal(t, 1, handler.Count())
	})

	t.Run("clear", func(t *testing.T) {
		logger, handler := NewTestLogger(t)
		logger.Info("one")
		handler.Clear()
		assert.Equal(t, 0, handler.Count())
		AssertNoErrors(t, handler)
	})
}

func TestFixtures(t *testing.T) {
	path := WriteFile(t, "sample.csv", ReadmissionCSV)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ReadmissionCSV, string(content))

	lines := strings.Split(strings.TrimSpace(EncounterCSV), "\n")
	header := strings.Split(lines[0], ",")
	for i, line := range lines[1:] {
		assert.Len(t, strings.Split(line, ","), len(header), "row %d", i+1)
	}
}
