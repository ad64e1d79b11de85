package contracts

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionStrings(t *testing.T) {
	assert.Equal(t, "diabetes-eda v"+Version, GetVersionString())

	full := GetFullVersionString()
	assert.Contains(t, full, GetVersionString())
	assert.Contains(t, full, runtime.Version())

	info := GetVersionInfo()
	assert.Equal(t, ManifestFormatVersion, info.ManifestFormat)
	assert.Equal(t, runtime.GOOS, info.OS)
}
