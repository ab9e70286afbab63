// Package errors provides sentinel errors and custom error types for the gitmerge application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrNotARepository indicates that no repository metadata was found at the path
	ErrNotARepository = errors.New("not a git repository")

	// ErrDetachedHead indicates that HEAD is not on a branch
	ErrDetachedHead = errors.New("HEAD is not on a branch")

	// ErrIntegrationBranchNotFound indicates that the integration branch does not exist
	ErrIntegrationBranchNotFound = errors.New("integration branch not found")

	// ErrTrunkOperation indicates an attempt to merge the integration branch into itself
	ErrTrunkOperation = errors.New("invalid operation on trunk branch")

	// ErrDirtyWorktree indicates that switching branches would overwrite local modifications
	ErrDirtyWorktree = errors.New("worktree contains unstaged changes")

	// ErrNotFastForward indicates that the histories have diverged and only a
	// fast-forward was allowed. It is a refusal, not a failure.
	ErrNotFastForward = errors.New("not a fast-forward")

	// ErrMergeConflict indicates that a three-way merge left conflicted paths
	ErrMergeConflict = errors.New("merge conflict")

	// ErrAuthenticationFailed indicates that no usable credential could be produced
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrPushRejected indicates that the remote refused the update
	ErrPushRejected = errors.New("push rejected")

	// ErrRemoteDeleteFailed indicates that the feature branch could not be deleted on the remote
	ErrRemoteDeleteFailed = errors.New("remote branch deletion failed")

	// ErrLocalDeleteFailed indicates that the local feature branch could not be deleted
	ErrLocalDeleteFailed = errors.New("local branch deletion failed")
)

// IntegrationBranchNotFoundError represents a missing integration branch
type IntegrationBranchNotFoundError struct {
	BranchName string
}

func (e *IntegrationBranchNotFoundError) Error() string {
	return fmt.Sprintf("integration branch %s does not exist", e.BranchName)
}

// Is returns true if the target error is ErrIntegrationBranchNotFound
func (e *IntegrationBranchNotFoundError) Is(target error) bool {
	return target == ErrIntegrationBranchNotFound
}

// NewIntegrationBranchNotFoundError creates a new IntegrationBranchNotFoundError
func NewIntegrationBranchNotFoundError(branchName string) *IntegrationBranchNotFoundError {
	return &IntegrationBranchNotFoundError{BranchName: branchName}
}

// MergeConflictError represents a three-way merge that stopped on conflicts.
// The repository is left with the merge in progress.
type MergeConflictError struct {
	BranchName string
	Paths      []string
}

func (e *MergeConflictError) Error() string {
	if len(e.Paths) > 0 {
		return fmt.Sprintf("merging %s produced conflicts in: %s", e.BranchName, strings.Join(e.Paths, ", "))
	}
	return fmt.Sprintf("merging %s produced conflicts", e.BranchName)
}

// Is returns true if the target error is ErrMergeConflict
func (e *MergeConflictError) Is(target error) bool {
	return target == ErrMergeConflict
}

// NewMergeConflictError creates a new MergeConflictError
func NewMergeConflictError(branchName string, paths []string) *MergeConflictError {
	return &MergeConflictError{
		BranchName: branchName,
		Paths:      paths,
	}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
