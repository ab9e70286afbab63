package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/filesystem"

	gmerrors "gitmerge.dev/gitmerge/internal/errors"
)

// mergeStateFiles are written by git next to MERGE_HEAD while a merge is in progress
var mergeStateFiles = []string{"MERGE_MSG", "MERGE_MODE", "AUTO_MERGE"}

// mergeHeadRef is the pseudo-ref marking a merge in progress
const mergeHeadRef = plumbing.ReferenceName("MERGE_HEAD")

// MergeMessage returns the message used for merge commits
func MergeMessage(branchName, integrationBranch string) string {
	return fmt.Sprintf("Merge %s into %s", branchName, integrationBranch)
}

// FastForward advances the checked-out branch to target and updates the worktree.
// It fails with ErrNotFastForward when the current tip is not an ancestor of target.
func (r *Repository) FastForward(branchName string, target plumbing.Hash) error {
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(branchName), target)
	if err := r.Merge(*ref, git.MergeOptions{Strategy: git.FastForwardMerge}); err != nil {
		if errors.Is(err, git.ErrFastForwardMergeNotPossible) {
			return fmt.Errorf("cannot fast-forward to %s: %w", branchName, gmerrors.ErrNotFastForward)
		}
		return fmt.Errorf("failed to fast-forward to %s: %w", branchName, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	// Merge only moves the ref; bring index and files along
	if err := wt.Reset(&git.ResetOptions{Commit: target, Mode: git.HardReset}); err != nil {
		return fmt.Errorf("failed to update worktree to %s: %w", target, err)
	}

	return nil
}

// ThreeWayMerge merges the feature tip into the checked-out integration branch
// and, when the result is clean, records a merge commit whose parents are the
// integration tip and the feature tip. On conflicts the merge is left in
// progress and a MergeConflictError is returned.
func (r *Repository) ThreeWayMerge(ctx context.Context, branchName string, integration, feature *BranchRef) (plumbing.Hash, error) {
	// Merge by hash so a tag sharing the branch name cannot shadow it
	_, mergeErr := r.runner.WithEnv("GIT_MERGE_AUTOEDIT=no").Run(ctx, "merge", "--no-ff", "--no-commit", feature.Hash.String())
	if !r.MergeInProgress() {
		if mergeErr != nil {
			return plumbing.ZeroHash, fmt.Errorf("failed to merge %s: %w", branchName, mergeErr)
		}
		return plumbing.ZeroHash, fmt.Errorf("merging %s left nothing to commit: %s already contains %s", branchName, integration.Name, feature.Hash)
	}

	conflicts, err := r.ConflictedPaths()
	if err != nil {
		return plumbing.ZeroHash, err
	}
	if len(conflicts) > 0 {
		return plumbing.ZeroHash, gmerrors.NewMergeConflictError(branchName, conflicts)
	}
	if mergeErr != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to merge %s: %w", branchName, mergeErr)
	}

	signature, err := r.Identity()
	if err != nil {
		return plumbing.ZeroHash, err
	}

	wt, err := r.Worktree()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to get worktree: %w", err)
	}

	hash, err := wt.Commit(MergeMessage(branchName, integration.Name), &git.CommitOptions{
		Author:            signature,
		Committer:         signature,
		Parents:           []plumbing.Hash{integration.Hash, feature.Hash},
		AllowEmptyCommits: true,
	})
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to create merge commit: %w", err)
	}

	if err := r.ClearMergeState(); err != nil {
		return hash, err
	}

	return hash, nil
}

// ConflictedPaths lists index entries that are not at stage 0.
// go-git decodes resolved entries as stage 0, not index.Merged.
func (r *Repository) ConflictedPaths() ([]string, error) {
	idx, err := r.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	seen := make(map[string]struct{})
	for _, entry := range idx.Entries {
		if entry.Stage != 0 {
			seen[entry.Name] = struct{}{}
		}
	}

	paths := make([]string, 0, len(seen))
	for path := range seen {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}

// MergeInProgress reports whether MERGE_HEAD is set
func (r *Repository) MergeInProgress() bool {
	_, err := r.Reference(mergeHeadRef, false)
	return err == nil
}

// ClearMergeState removes MERGE_HEAD and the files git keeps alongside it
func (r *Repository) ClearMergeState() error {
	if err := r.Storer.RemoveReference(mergeHeadRef); err != nil {
		return fmt.Errorf("failed to remove %s: %w", mergeHeadRef, err)
	}

	storage, ok := r.Storer.(*filesystem.Storage)
	if !ok {
		return nil
	}
	fs := storage.Filesystem()
	for _, name := range mergeStateFiles {
		if err := fs.Remove(name); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}
	return nil
}
