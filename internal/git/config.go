package git

import (
	"fmt"
	"time"

	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Identity returns a signature built from user.name and user.email,
// looking through repository, global and system config.
func (r *Repository) Identity() (*object.Signature, error) {
	cfg, err := r.ConfigScoped(config.SystemScope)
	if err != nil {
		return nil, fmt.Errorf("failed to read git config: %w", err)
	}

	name := cfg.User.Name
	email := cfg.User.Email
	if name == "" {
		name = cfg.Author.Name
	}
	if email == "" {
		email = cfg.Author.Email
	}
	if name == "" || email == "" {
		return nil, fmt.Errorf("no committer identity configured: set user.name and user.email")
	}

	return &object.Signature{
		Name:  name,
		Email: email,
		When:  time.Now(),
	}, nil
}

// GetRemoteURL returns the first URL configured for a remote
func (r *Repository) GetRemoteURL(remoteName string) (string, error) {
	remote, err := r.Remote(remoteName)
	if err != nil {
		return "", fmt.Errorf("failed to get remote %s: %w", remoteName, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", remoteName)
	}
	return urls[0], nil
}
