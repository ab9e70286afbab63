// Package integrate merges the current branch into the trunk, publishes the
// trunk and removes the merged branch locally and on the remote.
package integrate

import (
	"errors"
	"fmt"

	"gitmerge.dev/gitmerge/internal/config"
	gmerrors "gitmerge.dev/gitmerge/internal/errors"
	"gitmerge.dev/gitmerge/internal/git"
	"gitmerge.dev/gitmerge/internal/runtime"
	"gitmerge.dev/gitmerge/internal/tui"
)

// Action runs the confirm, switch, merge, push, cleanup sequence.
// Declining, an up-to-date branch and a refused fast-forward are not errors.
func Action(ctx *runtime.Context, opts Options) (*Result, error) {
	repo := ctx.Repo
	splog := ctx.Splog

	trunk := opts.Trunk
	if trunk == "" {
		trunk = config.DefaultTrunk
	}
	strategy := opts.Strategy
	if strategy == "" {
		strategy = config.StrategyFastForward
	}
	if opts.Confirmer == nil || opts.Publisher == nil {
		return nil, fmt.Errorf("integrate: confirmer and publisher are required")
	}

	// 1. Resolve the branch being merged
	branchName, err := repo.GetCurrentBranch()
	if err != nil {
		return nil, err
	}
	result := &Result{Branch: branchName, Trunk: trunk}

	if branchName == trunk {
		return result, fmt.Errorf("cannot merge %s into itself: %w", trunk, gmerrors.ErrTrunkOperation)
	}

	feature, err := repo.GetBranch(branchName)
	if err != nil {
		return result, err
	}

	// 2. Nothing is touched before the user agrees
	confirmed, err := opts.Confirmer.Confirm(tui.MergeConfirmationPrompt(branchName, trunk))
	if err != nil {
		return result, err
	}
	if !confirmed {
		splog.Info("🚫 Merge cancelled")
		result.Outcome = OutcomeAborted
		return result, nil
	}

	// Credentials are resolved once, ahead of any network traffic or checkout
	if err := opts.Publisher.Authenticate(ctx.Context); err != nil {
		return result, err
	}
	if opts.Fetch {
		splog.Debug("Fetching %s...", opts.Publisher.Remote())
		if err := opts.Publisher.Fetch(ctx.Context); err != nil {
			return result, err
		}
	}

	// 3. Switch to the trunk
	integration, err := repo.CheckoutBranch(trunk)
	if err != nil {
		return result, err
	}
	splog.Debug("Switched to %s at %s", trunk, integration.Hash)

	// 4. Analyze and apply the strategy
	analysis, err := repo.AnalyzeMerge(feature.Hash, integration.Hash)
	if err != nil {
		return result, err
	}
	splog.Debug("Merge analysis for %s into %s: %s", branchName, trunk, analysis)

	switch analysis {
	case git.MergeAnalysisUpToDate:
		splog.Info("👍 Branch %s is already up-to-date with %s", tui.ColorBranchName(branchName), trunk)
		result.Outcome = OutcomeUpToDate
		result.Commit = integration.Hash
		return result, nil

	case git.MergeAnalysisFastForward:
		if err := repo.FastForward(trunk, feature.Hash); err != nil {
			return result, err
		}
		splog.Info("🚀 Fast-forwarded %s to %s", trunk, shortHash(feature.Hash.String()))
		result.Outcome = OutcomeFastForwarded
		result.Commit = feature.Hash

	case git.MergeAnalysisDivergent:
		if strategy != config.StrategyMerge {
			splog.Warn("Merge of %s into %s is not a fast-forward", tui.ColorBranchName(branchName), trunk)
			splog.Tip("Rebase %s onto %s, or rerun with --strategy merge", branchName, trunk)
			result.Outcome = OutcomeNotFastForward
			return result, nil
		}

		if base, err := repo.GetMergeBase(feature.Hash, integration.Hash); err == nil {
			splog.Debug("Merge base of %s and %s: %s", branchName, trunk, base)
		}

		hash, err := repo.ThreeWayMerge(ctx.Context, branchName, integration, feature)
		if err != nil {
			if errors.Is(err, gmerrors.ErrMergeConflict) {
				splog.Warn("The merge is still in progress and needs manual resolution")
				splog.Tip("Resolve the conflicts and commit, or run 'git merge --abort' to give up")
			}
			return result, err
		}
		splog.Info("👍 Created merge commit %s", shortHash(hash.String()))
		result.Outcome = OutcomeMerged
		result.Commit = hash
	}

	// 5. Publish; nothing is deleted unless this succeeds
	splog.Info("Pushing %s to %s...", trunk, opts.Publisher.Remote())
	if err := opts.Publisher.PushBranch(ctx.Context, trunk); err != nil {
		return result, err
	}
	result.Pushed = true
	splog.Success("Pushed %s to %s", trunk, opts.Publisher.Remote())

	// 6. Remove the merged branch
	if err := cleanup(ctx, opts.Publisher, result); err != nil {
		return result, err
	}

	splog.Success("Merged %s into %s", tui.ColorBranchName(branchName), trunk)
	return result, nil
}

// cleanup deletes the remote branch, then the local one. A remote failure is
// recorded but does not prevent the local deletion.
func cleanup(ctx *runtime.Context, publisher Publisher, result *Result) error {
	splog := ctx.Splog
	branchName := result.Branch
	remote := publisher.Remote()

	var errs []error

	exists, err := publisher.RemoteBranchExists(ctx.Context, branchName)
	switch {
	case err != nil:
		errs = append(errs, remoteDeleteError(err))
		splog.Error("Deletion of branch %s at %s failed: %v", branchName, remote, err)
	case !exists:
		splog.Warn("Branch %s does not exist on %s, skipping remote deletion", branchName, remote)
	default:
		if err := publisher.DeleteRemoteBranch(ctx.Context, branchName); err != nil {
			errs = append(errs, remoteDeleteError(err))
			splog.Error("Deletion of branch %s at %s failed: %v", branchName, remote, err)
		} else {
			result.RemoteDeleted = true
			splog.Info("🗑️  Deleted %s on %s", branchName, remote)
		}
	}

	if err := ctx.Repo.DeleteLocalBranch(branchName); err != nil {
		errs = append(errs, err)
		splog.Error("Deletion of local branch %s failed: %v", branchName, err)
	} else {
		result.LocalDeleted = true
		splog.Info("🗑️  Deleted local branch %s", branchName)
	}

	return errors.Join(errs...)
}

func remoteDeleteError(err error) error {
	if errors.Is(err, gmerrors.ErrRemoteDeleteFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", gmerrors.ErrRemoteDeleteFailed, err)
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
