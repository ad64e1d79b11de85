package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namitajha/Diabetes-data-Namita/internal/errors"
	"github.com/namitajha/Diabetes-data-Namita/internal/shared/testutil"
)

func TestFileValidator_ValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("a\n1\n"), 0644))
		return path
	}

	tests := []struct {
		name     string
		path     string
		wantType errors.ErrorType
	}{
		{name: "csv", path: write("diabetic_data.csv")},
		{name: "upper case xlsx", path: write("DIABETIC_DATA.XLSX")},
		{name: "missing", path: filepath.Join(dir, "absent.csv"), wantType: errors.ErrTypeNotFound},
		{name: "directory", path: dir, wantType: errors.ErrTypeValidation},
		{name: "unsupported extension", path: write("data.json"), wantType: errors.ErrTypeValidation},
		{name: "excel lock file", path: write("~$data.xlsx"), wantType: errors.ErrTypeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, handler := testutil.NewTestLogger(t)
			v := NewFileValidator(logger)

			err := v.ValidateInputFile(tt.path)
			if tt.wantType == "" {
				require.NoError(t, err)
				testutil.AssertNoErrors(t, handler)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantType, errors.TypeOf(err))
			assert.Equal(t, tt.path, errors.ContextOf(err)["path"])
		})
	}

	t.Run("missing is matchable", func(t *testing.T) {
		err := NewFileValidator(nil).ValidateInputFile(filepath.Join(dir, "absent.csv"))
		assert.ErrorIs(t, err, errors.ErrFileNotFound)
	})
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	v := NewFileValidator(nil)

	t.Run("creates nested directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out", "run")
		require.NoError(t, v.ValidateOutputDirectory(dir))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries, "probe file removed")
	})

	t.Run("path is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, nil, 0644))

		err := v.ValidateOutputDirectory(filepath.Join(file, "out"))
		require.Error(t, err)
		assert.Equal(t, errors.ErrTypeStorage, errors.TypeOf(err))
	})
}
