package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// UpdateEnv names the environment variable that rewrites golden files
// instead of comparing against them.
const UpdateEnv = "HOUSEHOLD_UPDATE_GOLDEN"

// Golden compares rendered screen output with testdata/<name>.golden.
func Golden(t *testing.T, name string, got []byte) {
	t.Helper()

	path := filepath.Join("testdata", name+".golden")
	if os.Getenv(UpdateEnv) != "" {
		require.NoError(t, os.MkdirAll("testdata", 0o755))
		require.NoError(t, os.WriteFile(path, got, 0o644), "update %s", path)
		return
	}

	want, err := os.ReadFile(path)
	require.NoError(t, err, "read golden file %s (set %s=1 to create it)", path, UpdateEnv)
	assert.Equal(t, string(want), string(got), "screen %s", name)
}
