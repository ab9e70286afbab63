package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/filesystem"

	gmerrors "gitmerge.dev/gitmerge/internal/errors"
)

// BranchKind distinguishes local branches from remote-tracking branches
type BranchKind int

const (
	// LocalBranch is a ref under refs/heads
	LocalBranch BranchKind = iota
	// RemoteBranch is a ref under refs/remotes
	RemoteBranch
)

func (k BranchKind) String() string {
	if k == RemoteBranch {
		return "remote"
	}
	return "local"
}

// BranchRef is a branch name resolved to the commit it points at
type BranchRef struct {
	Name string
	Kind BranchKind
	Hash plumbing.Hash
}

// Repository wraps a go-git repository
type Repository struct {
	*git.Repository
	path   string
	runner *CommandRunner
}

// OpenRepository opens a git repository at the given path.
// Parent directories are searched for the repository metadata.
func OpenRepository(path string) (*Repository, error) {
	// Resolve to absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := git.PlainOpenWithOptions(absPath, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", absPath, gmerrors.ErrNotARepository)
		}
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	root := absPath
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}

	return &Repository{
		Repository: repo,
		path:       root,
		runner:     NewCommandRunner(root),
	}, nil
}

// GetRepoRoot returns the root directory of the repository
func (r *Repository) GetRepoRoot() string {
	return r.path
}

// GetGitDir returns the directory holding this worktree's git metadata.
// In linked worktrees and submodules this is not <root>/.git.
func (r *Repository) GetGitDir() string {
	if storage, ok := r.Storer.(*filesystem.Storage); ok {
		return storage.Filesystem().Root()
	}
	return filepath.Join(r.path, ".git")
}

// Close releases the repository handle
func (r *Repository) Close() error {
	if r == nil || r.Repository == nil {
		return nil
	}
	// The filesystem storer keeps packfiles open between calls
	if closer, ok := r.Storer.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// GetCurrentBranch returns the short name of the branch HEAD points to
func (r *Repository) GetCurrentBranch() (string, error) {
	head, err := r.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	if head.Type() != plumbing.SymbolicReference || !head.Target().IsBranch() {
		return "", gmerrors.ErrDetachedHead
	}

	return head.Target().Short(), nil
}

// GetBranch resolves a local branch by name
func (r *Repository) GetBranch(name string) (*BranchRef, error) {
	ref, err := r.Reference(plumbing.NewBranchReferenceName(name), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, fmt.Errorf("branch %s does not exist: %w", name, err)
		}
		return nil, fmt.Errorf("failed to resolve branch %s: %w", name, err)
	}

	return &BranchRef{Name: name, Kind: LocalBranch, Hash: ref.Hash()}, nil
}

// GetRemoteBranch resolves a remote-tracking branch such as origin/main
func (r *Repository) GetRemoteBranch(remote, name string) (*BranchRef, error) {
	ref, err := r.Reference(plumbing.NewRemoteReferenceName(remote, name), true)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s/%s: %w", remote, name, err)
	}

	return &BranchRef{Name: remote + "/" + name, Kind: RemoteBranch, Hash: ref.Hash()}, nil
}

// BranchExists reports whether a local branch exists
func (r *Repository) BranchExists(name string) bool {
	_, err := r.Reference(plumbing.NewBranchReferenceName(name), false)
	return err == nil
}

// ListBranchNames returns the short names of all local branches
func (r *Repository) ListBranchNames() ([]string, error) {
	refs, err := r.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	defer refs.Close()

	var names []string
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// ListRemoteNames returns the configured remote names
func (r *Repository) ListRemoteNames() ([]string, error) {
	remotes, err := r.Remotes()
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}

	names := make([]string, 0, len(remotes))
	for _, remote := range remotes {
		names = append(names, remote.Config().Name)
	}
	sort.Strings(names)
	return names, nil
}
