package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntegrationBranchNotFoundError(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("switch failed: %w", NewIntegrationBranchNotFoundError("main"))

	require.ErrorIs(t, err, ErrIntegrationBranchNotFound)
	require.NotErrorIs(t, err, ErrMergeConflict)
	require.Equal(t, "switch failed: integration branch main does not exist", err.Error())

	var target *IntegrationBranchNotFoundError
	require.True(t, errors.As(err, &target))
	require.Equal(t, "main", target.BranchName)
}

func TestMergeConflictError(t *testing.T) {
	t.Parallel()

	err := NewMergeConflictError("add-feature", []string{"a.txt", "b.txt"})
	require.ErrorIs(t, err, ErrMergeConflict)
	require.Equal(t, "merging add-feature produced conflicts in: a.txt, b.txt", err.Error())

	bare := NewMergeConflictError("add-feature", nil)
	require.Equal(t, "merging add-feature produced conflicts", bare.Error())
}

func TestGitCommandError(t *testing.T) {
	t.Parallel()
	cause := errors.New("exit status 1")
	err := &GitCommandError{
		Command: "git",
		Args:    []string{"merge", "--no-ff"},
		Stderr:  "fatal: refusing",
		Err:     cause,
	}

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "git command failed: git [merge --no-ff]")
	require.Contains(t, err.Error(), "stderr: fatal: refusing")
}
