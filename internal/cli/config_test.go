package cli_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gitmerge.dev/gitmerge/testhelpers"
)

func TestConfigCommand(t *testing.T) {
	t.Parallel()

	t.Run("get returns defaults", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)

		output, err := testhelpers.RunBinary(t, scene.Dir, "", "config", "get", "strategy")
		require.NoError(t, err, output)
		require.Equal(t, "fast-forward", strings.TrimSpace(output))
	})

	t.Run("set then list", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)

		output, err := testhelpers.RunBinary(t, scene.Dir, "", "config", "set", "strategy", "merge")
		require.NoError(t, err, output)
		require.Contains(t, output, "strategy set to merge")

		output, err = testhelpers.RunBinary(t, scene.Dir, "", "config", "set", "fetch", "false")
		require.NoError(t, err, output)

		output, err = testhelpers.RunBinary(t, scene.Dir, "", "config", "list")
		require.NoError(t, err, output)
		require.Contains(t, output, "trunk: main\n")
		require.Contains(t, output, "remote: origin\n")
		require.Contains(t, output, "strategy: merge\n")
		require.Contains(t, output, "fetch: false\n")
	})

	t.Run("invalid values are reported", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)

		output, err := testhelpers.RunBinary(t, scene.Dir, "", "config", "set", "fetch", "maybe")
		require.Error(t, err)
		require.Contains(t, output, "invalid value for fetch")

		output, err = testhelpers.RunBinary(t, scene.Dir, "", "config", "get", "colour")
		require.Error(t, err)
		require.Contains(t, output, "unknown configuration key")
	})
	t.Run("works inside a linked worktree", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		wtDir := filepath.Join(t.TempDir(), "linked")
		require.NoError(t, scene.Repo.AddWorktree(wtDir, "other"))

		output, err := testhelpers.RunBinary(t, wtDir, "", "config", "set", "trunk", "develop")
		require.NoError(t, err, output)

		output, err = testhelpers.RunBinary(t, wtDir, "", "config", "get", "trunk")
		require.NoError(t, err, output)
		require.Equal(t, "develop", strings.TrimSpace(output))
		require.NoFileExists(t, filepath.Join(wtDir, ".git", ".gitmerge_config"))
	})
}
