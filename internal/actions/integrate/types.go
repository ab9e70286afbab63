package integrate

import (
	"context"

	"github.com/go-git/go-git/v5/plumbing"

	"gitmerge.dev/gitmerge/internal/config"
	"gitmerge.dev/gitmerge/internal/tui"
)

// Publisher is the remote half of the workflow. *git.Publisher implements it.
type Publisher interface {
	Remote() string
	Authenticate(ctx context.Context) error
	Fetch(ctx context.Context) error
	PushBranch(ctx context.Context, branchName string) error
	RemoteBranchExists(ctx context.Context, branchName string) (bool, error)
	DeleteRemoteBranch(ctx context.Context, branchName string) error
}

// Options contains options for the integrate action
type Options struct {
	Strategy  config.Strategy
	Trunk     string
	Fetch     bool
	Confirmer tui.Confirmer
	Publisher Publisher
}

// Outcome is how a run ended
type Outcome int

const (
	// OutcomeFailed means the run stopped on an error before the trunk moved
	OutcomeFailed Outcome = iota
	// OutcomeAborted means the user declined the confirmation
	OutcomeAborted
	// OutcomeUpToDate means the trunk already contained the branch
	OutcomeUpToDate
	// OutcomeNotFastForward means the histories diverged under the fast-forward strategy
	OutcomeNotFastForward
	// OutcomeFastForwarded means the trunk pointer moved to the branch tip
	OutcomeFastForwarded
	// OutcomeMerged means a merge commit was created
	OutcomeMerged
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFailed:
		return "failed"
	case OutcomeAborted:
		return "aborted"
	case OutcomeUpToDate:
		return "up-to-date"
	case OutcomeNotFastForward:
		return "not-fast-forward"
	case OutcomeFastForwarded:
		return "fast-forwarded"
	case OutcomeMerged:
		return "merged"
	default:
		return "unknown"
	}
}

// Result describes what a run did
type Result struct {
	Outcome       Outcome
	Branch        string
	Trunk         string
	Commit        plumbing.Hash // trunk tip after the merge
	Pushed        bool
	RemoteDeleted bool
	LocalDeleted  bool
}
