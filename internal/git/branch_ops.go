package git

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	gmerrors "gitmerge.dev/gitmerge/internal/errors"
)

// CheckoutBranch resolves an existing local branch and points HEAD at it,
// updating the worktree to the branch tip.
func (r *Repository) CheckoutBranch(branchName string) (*BranchRef, error) {
	branch, err := r.GetBranch(branchName)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, gmerrors.NewIntegrationBranchNotFoundError(branchName)
		}
		return nil, err
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	// go-git moves HEAD before it notices local changes, so check first
	dirty, err := r.HasUncommittedChanges()
	if err != nil {
		return nil, err
	}
	if dirty {
		return nil, fmt.Errorf("cannot switch to %s: %w", branchName, gmerrors.ErrDirtyWorktree)
	}

	err = wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branchName),
	})
	if err != nil {
		if errors.Is(err, git.ErrUnstagedChanges) {
			return nil, fmt.Errorf("cannot switch to %s: %w", branchName, gmerrors.ErrDirtyWorktree)
		}
		return nil, fmt.Errorf("failed to checkout branch %s: %w", branchName, err)
	}

	return branch, nil
}

// HasUncommittedChanges reports staged or unstaged modifications to tracked files.
// Untracked files are ignored.
func (r *Repository) HasUncommittedChanges() (bool, error) {
	wt, err := r.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to get worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("failed to get status: %w", err)
	}

	for _, file := range status {
		if file.Staging == git.Untracked && file.Worktree == git.Untracked {
			continue
		}
		if file.Staging != git.Unmodified || file.Worktree != git.Unmodified {
			return true, nil
		}
	}
	return false, nil
}

// DeleteLocalBranch removes refs/heads/<branchName> and its branch config section.
// The branch must not be checked out.
func (r *Repository) DeleteLocalBranch(branchName string) error {
	current, err := r.GetCurrentBranch()
	if err == nil && current == branchName {
		return fmt.Errorf("branch %s is checked out: %w", branchName, gmerrors.ErrLocalDeleteFailed)
	}

	refName := plumbing.NewBranchReferenceName(branchName)
	if _, err := r.Reference(refName, false); err != nil {
		return fmt.Errorf("branch %s: %w: %w", branchName, gmerrors.ErrLocalDeleteFailed, err)
	}

	if err := r.Storer.RemoveReference(refName); err != nil {
		return fmt.Errorf("failed to delete branch %s: %w: %w", branchName, gmerrors.ErrLocalDeleteFailed, err)
	}

	// Tracking configuration is optional; go-git reports its absence as ErrBranchNotFound
	if err := r.DeleteBranch(branchName); err != nil && !errors.Is(err, git.ErrBranchNotFound) {
		return fmt.Errorf("failed to remove config for branch %s: %w: %w", branchName, gmerrors.ErrLocalDeleteFailed, err)
	}

	return nil
}
