package git_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	gmerrors "gitmerge.dev/gitmerge/internal/errors"
	"gitmerge.dev/gitmerge/internal/git"
	"gitmerge.dev/gitmerge/testhelpers"
)

func openScene(t *testing.T, scene *testhelpers.Scene) *git.Repository {
	t.Helper()
	repo, err := git.OpenRepository(scene.Dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestOpenRepository(t *testing.T) {
	t.Parallel()

	t.Run("finds the root from a subdirectory", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		sub := filepath.Join(scene.Dir, "nested", "dir")
		require.NoError(t, os.MkdirAll(sub, 0o755))

		repo, err := git.OpenRepository(sub)
		require.NoError(t, err)
		defer func() { _ = repo.Close() }()
		require.Equal(t, scene.Dir, repo.GetRepoRoot())
	})

	t.Run("reports a missing repository", func(t *testing.T) {
		t.Parallel()
		_, err := git.OpenRepository(t.TempDir())
		require.ErrorIs(t, err, gmerrors.ErrNotARepository)
	})
}

func TestGetGitDir(t *testing.T) {
	t.Parallel()

	t.Run("main checkout uses .git", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)

		repo := openScene(t, scene)
		require.Equal(t, filepath.Join(scene.Dir, ".git"), repo.GetGitDir())
	})

	t.Run("linked worktree uses its own git dir", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		wtDir := filepath.Join(t.TempDir(), "linked")
		require.NoError(t, scene.Repo.AddWorktree(wtDir, "other"))

		linked := testhelpers.GitRepo{Dir: wtDir}
		want, err := linked.RunGitCommandAndGetOutput("rev-parse", "--absolute-git-dir")
		require.NoError(t, err)

		repo, err := git.OpenRepository(wtDir)
		require.NoError(t, err)
		defer func() { _ = repo.Close() }()

		require.Equal(t, wtDir, repo.GetRepoRoot())
		require.Equal(t, evalPath(t, want), evalPath(t, repo.GetGitDir()))

		info, err := os.Stat(repo.GetGitDir())
		require.NoError(t, err)
		require.True(t, info.IsDir())

		// Branches live in the common dir
		current, err := repo.GetCurrentBranch()
		require.NoError(t, err)
		require.Equal(t, "other", current)
		require.True(t, repo.BranchExists("main"))
	})
}

func evalPath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return resolved
}

func TestGetCurrentBranch(t *testing.T) {
	t.Parallel()

	t.Run("returns the checked out branch", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateAndCheckoutBranch("add-feature"))

		repo := openScene(t, scene)
		name, err := repo.GetCurrentBranch()
		require.NoError(t, err)
		require.Equal(t, "add-feature", name)
	})

	t.Run("fails on detached HEAD", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CheckoutDetached("HEAD"))

		repo := openScene(t, scene)
		_, err := repo.GetCurrentBranch()
		require.ErrorIs(t, err, gmerrors.ErrDetachedHead)
	})
}

func TestGetBranch(t *testing.T) {
	t.Parallel()
	scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
	sha, err := scene.Repo.GetBranchSHA("main")
	require.NoError(t, err)

	repo := openScene(t, scene)

	branch, err := repo.GetBranch("main")
	require.NoError(t, err)
	require.Equal(t, "main", branch.Name)
	require.Equal(t, git.LocalBranch, branch.Kind)
	require.Equal(t, sha, branch.Hash.String())

	require.True(t, repo.BranchExists("main"))
	require.False(t, repo.BranchExists("missing"))

	_, err = repo.GetBranch("missing")
	require.Error(t, err)
}

func TestCheckoutBranch(t *testing.T) {
	t.Parallel()

	t.Run("switches to an existing branch", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateAndCheckoutBranch("add-feature"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("feature", "feature"))

		repo := openScene(t, scene)
		branch, err := repo.CheckoutBranch("main")
		require.NoError(t, err)
		require.Equal(t, "main", branch.Name)

		current, err := scene.Repo.CurrentBranchName()
		require.NoError(t, err)
		require.Equal(t, "main", current)
		require.NoFileExists(t, filepath.Join(scene.Dir, "feature_test.txt"))
	})

	t.Run("reports a missing integration branch", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)

		repo := openScene(t, scene)
		_, err := repo.CheckoutBranch("develop")
		require.ErrorIs(t, err, gmerrors.ErrIntegrationBranchNotFound)

		var notFound *gmerrors.IntegrationBranchNotFoundError
		require.ErrorAs(t, err, &notFound)
		require.Equal(t, "develop", notFound.BranchName)
	})

	t.Run("refuses to switch with local modifications", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateAndCheckoutBranch("add-feature"))
		require.NoError(t, scene.Repo.CreateChange("edited", "1", true))

		repo := openScene(t, scene)
		_, err := repo.CheckoutBranch("main")
		require.ErrorIs(t, err, gmerrors.ErrDirtyWorktree)

		current, err := scene.Repo.CurrentBranchName()
		require.NoError(t, err)
		require.Equal(t, "add-feature", current)
	})

	t.Run("ignores untracked files", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateAndCheckoutBranch("add-feature"))
		require.NoError(t, scene.Repo.CreateChange("scratch", "untracked", true))

		repo := openScene(t, scene)
		dirty, err := repo.HasUncommittedChanges()
		require.NoError(t, err)
		require.False(t, dirty)

		_, err = repo.CheckoutBranch("main")
		require.NoError(t, err)
	})
}

func TestDeleteLocalBranch(t *testing.T) {
	t.Parallel()

	t.Run("deletes a branch that is not checked out", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateBranch("add-feature"))

		repo := openScene(t, scene)
		require.NoError(t, repo.DeleteLocalBranch("add-feature"))

		branches, err := scene.Repo.GetLocalBranches()
		require.NoError(t, err)
		require.Equal(t, []string{"main"}, branches)
	})

	t.Run("refuses to delete the checked out branch", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateAndCheckoutBranch("add-feature"))

		repo := openScene(t, scene)
		err := repo.DeleteLocalBranch("add-feature")
		require.ErrorIs(t, err, gmerrors.ErrLocalDeleteFailed)
		require.True(t, repo.BranchExists("add-feature"))
	})

	t.Run("fails for a missing branch", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)

		repo := openScene(t, scene)
		err := repo.DeleteLocalBranch("missing")
		require.ErrorIs(t, err, gmerrors.ErrLocalDeleteFailed)
	})
}

func TestListNames(t *testing.T) {
	t.Parallel()
	scene := testhelpers.NewSceneParallel(t, testhelpers.FeatureSceneSetup)
	require.NoError(t, scene.Repo.RunGitCommand("remote", "add", "backup", scene.Dir+"-origin.git"))

	repo := openScene(t, scene)

	branches, err := repo.ListBranchNames()
	require.NoError(t, err)
	require.Equal(t, []string{"add-feature", "main"}, branches)

	remotes, err := repo.ListRemoteNames()
	require.NoError(t, err)
	require.Equal(t, []string{"backup", "origin"}, remotes)
}
