package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gitmerge.dev/gitmerge/internal/actions/integrate"
	"gitmerge.dev/gitmerge/internal/config"
	gmerrors "gitmerge.dev/gitmerge/internal/errors"
	"gitmerge.dev/gitmerge/internal/git"
	"gitmerge.dev/gitmerge/internal/runtime"
	"gitmerge.dev/gitmerge/internal/tui"
)

// rootFlags holds the flags of the root command
type rootFlags struct {
	strategy string
	trunk    string
	remote   string
	noFetch  bool
	sshKey   string
	debug    bool
}

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "gitmerge",
		Short: "Merge the current branch into main, push it, and delete the branch",
		Long: `Merge the current branch into main, push it, and delete the branch.

gitmerge asks for confirmation, switches to the trunk, fast-forwards it to the
current branch (or creates a merge commit with --strategy merge), pushes the
trunk to the remote and then deletes the merged branch on the remote and locally.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIntegrate(cmd, flags)
		},
	}

	rootCmd.Flags().StringVar(&flags.strategy, "strategy", "", "How to handle diverged histories: 'fast-forward' (refuse) or 'merge' (create a merge commit)")
	rootCmd.Flags().StringVar(&flags.trunk, "trunk", "", "Branch to merge into (default \"main\")")
	rootCmd.Flags().StringVar(&flags.remote, "remote", "", "Remote to push to (default \"origin\")")
	rootCmd.Flags().BoolVar(&flags.noFetch, "no-fetch", false, "Skip fetching the remote before merging")
	rootCmd.Flags().StringVar(&flags.sshKey, "ssh-key", "", "Private key file to use instead of the ssh agent")
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Print debug output")

	_ = rootCmd.RegisterFlagCompletionFunc("strategy", completeStrategies)
	_ = rootCmd.RegisterFlagCompletionFunc("trunk", completeBranches)
	_ = rootCmd.RegisterFlagCompletionFunc("remote", completeRemotes)

	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// newSplog builds the logger for a command, falling back to console-only output
// when the log file cannot be opened.
func newSplog(cmd *cobra.Command, debug bool) *tui.Splog {
	splog, err := tui.NewSplogWithOptions(tui.SplogOptions{
		Writer:      cmd.OutOrStdout(),
		LogFilePath: tui.GetLogFilePath(),
		Debug:       debug,
	})
	if err != nil {
		splog.Debug("File logging disabled: %v", err)
	}
	return splog
}

func runIntegrate(cmd *cobra.Command, flags rootFlags) error {
	splog := newSplog(cmd, flags.debug)
	defer splog.Close()

	wd, err := os.Getwd()
	if err != nil {
		return reportError(splog, fmt.Errorf("failed to get working directory: %w", err))
	}

	ctx, err := runtime.Open(cmd.Context(), wd, splog)
	if err != nil {
		return reportError(splog, err)
	}
	defer ctx.Close()

	opts, err := buildOptions(ctx, flags)
	if err != nil {
		return reportError(splog, err)
	}

	result, err := integrate.Action(ctx, opts)
	if err != nil {
		return reportError(splog, err)
	}
	splog.Debug("Finished with outcome %s", result.Outcome)
	return nil
}

// buildOptions merges flags over the repository configuration
func buildOptions(ctx *runtime.Context, flags rootFlags) (integrate.Options, error) {
	cfg := ctx.Config

	strategy, err := cfg.GetStrategy()
	if err != nil {
		return integrate.Options{}, err
	}
	if flags.strategy != "" {
		strategy, err = config.ParseStrategy(flags.strategy)
		if err != nil {
			return integrate.Options{}, err
		}
	}

	trunk := cfg.GetTrunk()
	if flags.trunk != "" {
		trunk = flags.trunk
	}
	remote := cfg.GetRemote()
	if flags.remote != "" {
		remote = flags.remote
	}

	var credentials git.CredentialProvider = git.NewSSHAgentProvider()
	keyPath := cfg.GetSSHKeyPath()
	if flags.sshKey != "" {
		keyPath = flags.sshKey
	}
	if keyPath != "" {
		credentials = git.NewKeyFileProvider(keyPath)
	}

	return integrate.Options{
		Strategy:  strategy,
		Trunk:     trunk,
		Fetch:     cfg.IsFetchEnabled() && !flags.noFetch,
		Confirmer: tui.NewConfirmer(os.Stdin, os.Stdout),
		Publisher: git.NewPublisher(ctx.Repo, remote, credentials),
	}, nil
}

// ReportedError marks an error that has already been printed to the user
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// IsReported reports whether err was already printed
func IsReported(err error) bool {
	var reported *ReportedError
	return errors.As(err, &reported)
}

// reportError prints err with a status glyph and any follow-up hints
func reportError(splog *tui.Splog, err error) error {
	splog.Error("%v", err)

	switch {
	case errors.Is(err, gmerrors.ErrNotARepository):
		splog.Tip("Run gitmerge from inside a git repository")
	case errors.Is(err, gmerrors.ErrDetachedHead):
		splog.Tip("Check out the branch you want to merge first")
	case errors.Is(err, gmerrors.ErrDirtyWorktree):
		splog.Tip("Commit or stash your changes first")
	case errors.Is(err, gmerrors.ErrAuthenticationFailed):
		splog.Tip("Start ssh-agent and add a key with 'ssh-add', or pass --ssh-key")
	case errors.Is(err, gmerrors.ErrPushRejected):
		splog.Tip("The remote refused the update; pull the latest changes and try again")
	}
	return &ReportedError{Err: err}
}
