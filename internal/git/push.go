package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"

	gmerrors "gitmerge.dev/gitmerge/internal/errors"
)

// Publisher transfers branches to a single remote.
// Credentials are resolved once by Authenticate and reused for every transfer.
type Publisher struct {
	repo        *Repository
	remote      string
	credentials CredentialProvider
	auth        transport.AuthMethod
	resolved    bool
}

// NewPublisher creates a publisher for remoteName
func NewPublisher(repo *Repository, remoteName string, credentials CredentialProvider) *Publisher {
	if credentials == nil {
		credentials = NewSSHAgentProvider()
	}
	return &Publisher{
		repo:        repo,
		remote:      remoteName,
		credentials: credentials,
	}
}

// Remote returns the remote name
func (p *Publisher) Remote() string {
	return p.remote
}

// Authenticate asks the credential provider for the remote's auth method
func (p *Publisher) Authenticate(ctx context.Context) error {
	if p.resolved {
		return nil
	}

	url, err := p.repo.GetRemoteURL(p.remote)
	if err != nil {
		return err
	}

	endpoint, err := transport.NewEndpoint(url)
	if err != nil {
		return fmt.Errorf("invalid URL for remote %s: %w", p.remote, err)
	}

	auth, err := p.credentials.Method(ctx, endpoint)
	if err != nil {
		return err
	}

	p.auth = auth
	p.resolved = true
	return nil
}

// Fetch refreshes the remote-tracking refs
func (p *Publisher) Fetch(ctx context.Context) error {
	if err := p.Authenticate(ctx); err != nil {
		return err
	}

	err := p.repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: p.remote,
		Auth:       p.auth,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) && !errors.Is(err, transport.ErrEmptyRemoteRepository) {
		return classifyTransportError(fmt.Sprintf("failed to fetch %s", p.remote), err, nil)
	}
	return nil
}

// PushBranch updates refs/heads/<branchName> on the remote to the local tip
func (p *Publisher) PushBranch(ctx context.Context, branchName string) error {
	if err := p.Authenticate(ctx); err != nil {
		return err
	}

	refName := plumbing.NewBranchReferenceName(branchName)
	spec := config.RefSpec(fmt.Sprintf("%s:%s", refName, refName))
	err := p.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: p.remote,
		RefSpecs:   []config.RefSpec{spec},
		Auth:       p.auth,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return classifyTransportError(fmt.Sprintf("failed to push %s to %s", branchName, p.remote), err, gmerrors.ErrPushRejected)
	}
	return nil
}

// RemoteBranchExists asks the remote whether refs/heads/<branchName> exists
func (p *Publisher) RemoteBranchExists(ctx context.Context, branchName string) (bool, error) {
	if err := p.Authenticate(ctx); err != nil {
		return false, err
	}

	remote, err := p.repo.Remote(p.remote)
	if err != nil {
		return false, fmt.Errorf("failed to get remote %s: %w", p.remote, err)
	}

	refs, err := remote.ListContext(ctx, &git.ListOptions{Auth: p.auth})
	if err != nil {
		if errors.Is(err, transport.ErrEmptyRemoteRepository) {
			return false, nil
		}
		return false, classifyTransportError(fmt.Sprintf("failed to list %s", p.remote), err, nil)
	}

	target := plumbing.NewBranchReferenceName(branchName)
	for _, ref := range refs {
		if ref.Name() == target {
			return true, nil
		}
	}
	return false, nil
}

// DeleteRemoteBranch pushes an empty source for refs/heads/<branchName> and
// drops the matching remote-tracking ref.
func (p *Publisher) DeleteRemoteBranch(ctx context.Context, branchName string) error {
	if err := p.Authenticate(ctx); err != nil {
		return fmt.Errorf("%w: %w", gmerrors.ErrRemoteDeleteFailed, err)
	}

	refName := plumbing.NewBranchReferenceName(branchName)
	spec := config.RefSpec(":" + refName.String())
	err := p.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: p.remote,
		RefSpecs:   []config.RefSpec{spec},
		Auth:       p.auth,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return classifyTransportError(fmt.Sprintf("failed to delete %s on %s", branchName, p.remote), err, gmerrors.ErrRemoteDeleteFailed)
	}

	trackingRef := plumbing.NewRemoteReferenceName(p.remote, branchName)
	if err := p.repo.Storer.RemoveReference(trackingRef); err != nil {
		return fmt.Errorf("failed to remove %s: %w", trackingRef, err)
	}
	return nil
}

// classifyTransportError maps go-git transport failures onto gitmerge errors.
// Authentication problems always win; other failures are tagged with fallback
// when the remote refused the update.
func classifyTransportError(msg string, err error, fallback error) error {
	switch {
	case errors.Is(err, transport.ErrAuthenticationRequired),
		errors.Is(err, transport.ErrAuthorizationFailed),
		errors.Is(err, gmerrors.ErrAuthenticationFailed):
		return fmt.Errorf("%s: %w: %w", msg, gmerrors.ErrAuthenticationFailed, err)
	case fallback == nil:
		return fmt.Errorf("%s: %w", msg, err)
	case errors.Is(fallback, gmerrors.ErrPushRejected) && !isRejection(err):
		return fmt.Errorf("%s: %w", msg, err)
	default:
		return fmt.Errorf("%s: %w: %w", msg, fallback, err)
	}
}

// isRejection reports whether err is the remote (or go-git on its behalf)
// refusing an update, as opposed to a transport failure.
func isRejection(err error) bool {
	if errors.Is(err, git.ErrNonFastForwardUpdate) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"non-fast-forward", "rejected", "command error on", "pre-receive hook declined", "protected branch"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
