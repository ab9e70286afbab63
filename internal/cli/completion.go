package cli

import (
	"os"

	"github.com/spf13/cobra"

	"gitmerge.dev/gitmerge/internal/config"
	"gitmerge.dev/gitmerge/internal/git"
)

// openForCompletion opens the repository containing the working directory
func openForCompletion() (*git.Repository, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return git.OpenRepository(wd)
}

// completeBranches is a helper for RegisterFlagCompletionFunc
// that returns all local branch names in the repository.
func completeBranches(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	repo, err := openForCompletion()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer repo.Close()

	branches, err := repo.ListBranchNames()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return branches, cobra.ShellCompDirectiveNoFileComp
}

// completeRemotes returns the configured remote names
func completeRemotes(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	repo, err := openForCompletion()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer repo.Close()

	remotes, err := repo.ListRemoteNames()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return remotes, cobra.ShellCompDirectiveNoFileComp
}

func completeStrategies(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{string(config.StrategyFastForward), string(config.StrategyMerge)}, cobra.ShellCompDirectiveNoFileComp
}

// completeConfigKeys completes the first argument of config get/set
func completeConfigKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return config.Keys(), cobra.ShellCompDirectiveNoFileComp
}
