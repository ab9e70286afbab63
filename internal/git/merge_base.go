package git

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
)

// MergeAnalysis classifies how a feature tip relates to the integration tip
type MergeAnalysis int

const (
	// MergeAnalysisUpToDate means the feature tip is already contained in the integration branch
	MergeAnalysisUpToDate MergeAnalysis = iota
	// MergeAnalysisFastForward means the integration tip is an ancestor of the feature tip
	MergeAnalysisFastForward
	// MergeAnalysisDivergent means neither tip contains the other
	MergeAnalysisDivergent
)

func (a MergeAnalysis) String() string {
	switch a {
	case MergeAnalysisUpToDate:
		return "up-to-date"
	case MergeAnalysisFastForward:
		return "fast-forward"
	case MergeAnalysisDivergent:
		return "divergent"
	default:
		return fmt.Sprintf("MergeAnalysis(%d)", int(a))
	}
}

// AnalyzeMerge compares the feature tip against the integration tip
func (r *Repository) AnalyzeMerge(featureHash, integrationHash plumbing.Hash) (MergeAnalysis, error) {
	if featureHash == integrationHash {
		return MergeAnalysisUpToDate, nil
	}

	featureCommit, err := r.CommitObject(featureHash)
	if err != nil {
		return 0, fmt.Errorf("failed to get feature commit: %w", err)
	}

	integrationCommit, err := r.CommitObject(integrationHash)
	if err != nil {
		return 0, fmt.Errorf("failed to get integration commit: %w", err)
	}

	contained, err := featureCommit.IsAncestor(integrationCommit)
	if err != nil {
		return 0, fmt.Errorf("failed to check ancestry: %w", err)
	}
	if contained {
		return MergeAnalysisUpToDate, nil
	}

	fastForward, err := integrationCommit.IsAncestor(featureCommit)
	if err != nil {
		return 0, fmt.Errorf("failed to check ancestry: %w", err)
	}
	if fastForward {
		return MergeAnalysisFastForward, nil
	}

	return MergeAnalysisDivergent, nil
}

// GetMergeBase returns the best common ancestor of two commits
func (r *Repository) GetMergeBase(hash1, hash2 plumbing.Hash) (plumbing.Hash, error) {
	commit1, err := r.CommitObject(hash1)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to get commit1: %w", err)
	}

	commit2, err := r.CommitObject(hash2)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to get commit2: %w", err)
	}

	mergeBases, err := commit1.MergeBase(commit2)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to find merge base: %w", err)
	}

	if len(mergeBases) == 0 {
		return plumbing.ZeroHash, fmt.Errorf("no merge base found")
	}

	return mergeBases[0].Hash, nil
}
