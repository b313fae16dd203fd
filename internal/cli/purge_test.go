package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLog(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("log line\n"), 0644))
	return path
}

// runCommand executes the root command with args against a config file
// that does not exist, so the defaults apply.
func runCommand(t *testing.T, args ...string) error {
	t.Helper()

	// Flag variables survive across Execute calls; start clean.
	purgeDir, purgeModule, purgeKeep, purgeDryRun = "", "", -1, false
	sessionsDir, sessionsModule = "", ""

	cmd := GetRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.json")}, args...))
	return cmd.Execute()
}

func TestPurgeCommand(t *testing.T) {
	t.Run("deletes oldest beyond keep", func(t *testing.T) {
		tmpDir := t.TempDir()
		for day := 1; day <= 4; day++ {
			writeLog(t, tmpDir, fmt.Sprintf("svc_2024-01-%02d_00-00-00.log", day))
		}

		err := runCommand(t, "purge", "--dir", tmpDir, "--keep", "2")
		require.NoError(t, err)

		matches, err := filepath.Glob(filepath.Join(tmpDir, "*.log"))
		require.NoError(t, err)
		assert.Len(t, matches, 2)

		_, err = os.Stat(filepath.Join(tmpDir, "svc_2024-01-04_00-00-00.log"))
		assert.NoError(t, err)
	})

	t.Run("scoped to module", func(t *testing.T) {
		tmpDir := t.TempDir()
		other := writeLog(t, tmpDir, "other_2023-01-01_00-00-00.log")
		writeLog(t, tmpDir, "svc_2024-01-01_00-00-00.log")
		writeLog(t, tmpDir, "svc_2024-01-02_00-00-00.log")

		err := runCommand(t, "purge", "--dir", tmpDir, "--keep", "1", "--module", "svc")
		require.NoError(t, err)

		_, err = os.Stat(other)
		assert.NoError(t, err)

		_, err = os.Stat(filepath.Join(tmpDir, "svc_2024-01-01_00-00-00.log"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("dry run deletes nothing", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeLog(t, tmpDir, "svc_2024-01-01_00-00-00.log")
		writeLog(t, tmpDir, "svc_2024-01-02_00-00-00.log")

		err := runCommand(t, "purge", "--dir", tmpDir, "--keep", "1", "--dry-run")
		require.NoError(t, err)

		matches, err := filepath.Glob(filepath.Join(tmpDir, "*.log"))
		require.NoError(t, err)
		assert.Len(t, matches, 2)
	})

	t.Run("empty directory succeeds", func(t *testing.T) {
		err := runCommand(t, "purge", "--dir", t.TempDir(), "--keep", "5")
		assert.NoError(t, err)
	})
}

func TestSessionsCommand(t *testing.T) {
	t.Run("empty directory", func(t *testing.T) {
		err := runCommand(t, "sessions", "--dir", t.TempDir())
		assert.NoError(t, err)
	})

	t.Run("lists files", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeLog(t, tmpDir, "svc_2024-01-01_00-00-00.log")

		err := runCommand(t, "sessions", "--dir", tmpDir)
		assert.NoError(t, err)
	})
}
