package git

import (
	"context"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5/plumbing/transport"
	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"
	sshagent "github.com/xanzy/ssh-agent"

	gmerrors "gitmerge.dev/gitmerge/internal/errors"
)

// SSHKeyPassphraseEnv names the environment variable holding the key file passphrase
const SSHKeyPassphraseEnv = "GITMERGE_SSH_KEY_PASSPHRASE"

// defaultSSHUser is used when the remote URL carries no user
const defaultSSHUser = "git"

// CredentialProvider produces an auth method for one remote endpoint.
// A nil method with a nil error means the transport needs no credential.
type CredentialProvider interface {
	Method(ctx context.Context, endpoint *transport.Endpoint) (transport.AuthMethod, error)
}

// SSHAgentProvider hands out identities held by a running ssh-agent
type SSHAgentProvider struct{}

// NewSSHAgentProvider creates an agent-backed credential provider
func NewSSHAgentProvider() *SSHAgentProvider {
	return &SSHAgentProvider{}
}

// Method returns agent auth for ssh endpoints
func (p *SSHAgentProvider) Method(_ context.Context, endpoint *transport.Endpoint) (transport.AuthMethod, error) {
	if endpoint.Protocol != "ssh" {
		return nil, nil
	}

	if !sshagent.Available() {
		return nil, fmt.Errorf("no ssh agent is running: %w", gmerrors.ErrAuthenticationFailed)
	}

	agent, conn, err := sshagent.New()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ssh agent: %w: %w", gmerrors.ErrAuthenticationFailed, err)
	}
	signers, err := agent.Signers()
	if conn != nil {
		_ = conn.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list ssh agent identities: %w: %w", gmerrors.ErrAuthenticationFailed, err)
	}
	if len(signers) == 0 {
		return nil, fmt.Errorf("ssh agent holds no identities: %w", gmerrors.ErrAuthenticationFailed)
	}

	auth, err := gitssh.NewSSHAgentAuth(sshUser(endpoint))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", gmerrors.ErrAuthenticationFailed, err)
	}
	return auth, nil
}

// KeyFileProvider reads a private key from disk
type KeyFileProvider struct {
	Path       string
	Passphrase string
}

// NewKeyFileProvider creates a provider for the key at path.
// The passphrase, if any, is taken from GITMERGE_SSH_KEY_PASSPHRASE.
func NewKeyFileProvider(path string) *KeyFileProvider {
	return &KeyFileProvider{
		Path:       path,
		Passphrase: os.Getenv(SSHKeyPassphraseEnv),
	}
}

// Method returns public-key auth for ssh endpoints
func (p *KeyFileProvider) Method(_ context.Context, endpoint *transport.Endpoint) (transport.AuthMethod, error) {
	if endpoint.Protocol != "ssh" {
		return nil, nil
	}

	auth, err := gitssh.NewPublicKeysFromFile(sshUser(endpoint), p.Path, p.Passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to load ssh key %s: %w: %w", p.Path, gmerrors.ErrAuthenticationFailed, err)
	}
	return auth, nil
}

func sshUser(endpoint *transport.Endpoint) string {
	if endpoint.User != "" {
		return endpoint.User
	}
	return defaultSSHUser
}
