package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_EnvironmentOverridesDefault(t *testing.T) {
	// An invalid format from the environment must be caught the same way
	// as one from the flag.
	t.Setenv("MVBENCH_FORMAT", "xml")

	_, err := execute(t, "verify")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestConfig_EnvironmentDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "env.db")
	t.Setenv("MVBENCH_DB", db)

	_, err := execute(t, "bench", "--csv", writeTestPlan(t))
	require.NoError(t, err)

	_, statErr := os.Stat(db)
	assert.NoError(t, statErr, "database should have been created from MVBENCH_DB")
}

func TestConfig_FlagBeatsEnvironment(t *testing.T) {
	t.Setenv("MVBENCH_FORMAT", "xml")

	// Explicit flag wins over the bad env value.
	_, err := execute(t, "--format", "text", "verify")
	require.NoError(t, err)
}

func TestConfig_File(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: json\n"), 0o644))

	out, err := execute(t, "--config-file", cfgPath, "verify")
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "ok"`)
}

func TestConfig_MissingFileFails(t *testing.T) {
	_, err := execute(t, "--config-file", filepath.Join(t.TempDir(), "nope.yaml"), "verify")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
