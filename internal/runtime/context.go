// Package runtime provides a context type that holds the repository and logger
// for use throughout the application. This avoids passing multiple parameters.
package runtime

import (
	"context"
	"fmt"

	"gitmerge.dev/gitmerge/internal/config"
	"gitmerge.dev/gitmerge/internal/git"
	"gitmerge.dev/gitmerge/internal/tui"
)

// Context provides access to the repository and output for commands
type Context struct {
	context.Context
	Repo     *git.Repository
	Splog    *tui.Splog
	RepoRoot string
	Config   *config.RepoConfig
}

// NewContext creates a context bound to an already opened repository
func NewContext(ctx context.Context, repo *git.Repository, splog *tui.Splog) (*Context, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if splog == nil {
		splog = tui.NewSplog()
	}

	cfg, err := config.GetRepoConfig(repo.GetGitDir())
	if err != nil {
		return nil, err
	}

	return &Context{
		Context:  ctx,
		Repo:     repo,
		Splog:    splog,
		RepoRoot: repo.GetRepoRoot(),
		Config:   cfg,
	}, nil
}

// Open opens the repository containing path and builds a context around it.
// Callers must Close the returned context.
func Open(ctx context.Context, path string, splog *tui.Splog) (*Context, error) {
	repo, err := git.OpenRepository(path)
	if err != nil {
		return nil, err
	}

	rctx, err := NewContext(ctx, repo, splog)
	if err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return rctx, nil
}

// Close releases the repository handle
func (c *Context) Close() error {
	return c.Repo.Close()
}
