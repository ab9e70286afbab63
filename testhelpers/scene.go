// Package testhelpers provides testing utilities for gitmerge,
// including a scene system and Git repository helpers.
package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// Scene represents a test scene with a temporary directory and Git repository.
type Scene struct {
	Dir  string
	Repo *GitRepo
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewSceneParallel creates a scene without changing the working directory,
// so it is safe to use from parallel tests.
func NewSceneParallel(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	// Resolve symlinks so paths compare equal to what git reports (macOS /var -> /private/var)
	tmpDir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}
	dir := filepath.Join(tmpDir, "repo")

	repo, err := NewGitRepo(dir)
	if err != nil {
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{
		Dir:  dir,
		Repo: repo,
	}

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}

	return scene
}

// NewScene creates a scene and changes into its directory for the duration of the test.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	scene := NewSceneParallel(t, setup)

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}
	if err := os.Chdir(scene.Dir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldDir)
	})

	return scene
}

// BasicSceneSetup creates a single commit on main.
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("1", "1")
}

// RemoteSceneSetup creates a commit on main, an "origin" bare remote, and pushes main to it.
func RemoteSceneSetup(scene *Scene) error {
	if err := BasicSceneSetup(scene); err != nil {
		return err
	}
	if _, err := scene.Repo.CreateBareRemote("origin"); err != nil {
		return err
	}
	return scene.Repo.PushBranch("origin", "main")
}

// FeatureSceneSetup builds on RemoteSceneSetup with a pushed "add-feature" branch
// one commit ahead of main, left checked out.
func FeatureSceneSetup(scene *Scene) error {
	if err := RemoteSceneSetup(scene); err != nil {
		return err
	}
	if err := scene.Repo.CreateAndCheckoutBranch("add-feature"); err != nil {
		return err
	}
	if err := scene.Repo.CreateChangeAndCommit("feature", "feature"); err != nil {
		return err
	}
	return scene.Repo.PushBranch("origin", "add-feature")
}
