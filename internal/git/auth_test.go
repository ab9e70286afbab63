package git

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/stretchr/testify/require"

	gmerrors "gitmerge.dev/gitmerge/internal/errors"
)

func TestCredentialProvidersSkipNonSSH(t *testing.T) {
	t.Parallel()

	providers := map[string]CredentialProvider{
		"agent":    NewSSHAgentProvider(),
		"key file": NewKeyFileProvider("/nonexistent/id_ed25519"),
	}

	for _, url := range []string{"/srv/git/project.git", "https://example.com/project.git"} {
		endpoint, err := transport.NewEndpoint(url)
		require.NoError(t, err)

		for name, provider := range providers {
			auth, err := provider.Method(context.Background(), endpoint)
			require.NoError(t, err, "%s for %s", name, url)
			require.Nil(t, auth, "%s for %s", name, url)
		}
	}
}

func TestKeyFileProviderMissingKey(t *testing.T) {
	t.Parallel()

	endpoint, err := transport.NewEndpoint("git@example.com:team/project.git")
	require.NoError(t, err)
	require.Equal(t, "ssh", endpoint.Protocol)

	provider := NewKeyFileProvider(filepath.Join(t.TempDir(), "id_missing"))
	_, err = provider.Method(context.Background(), endpoint)
	require.ErrorIs(t, err, gmerrors.ErrAuthenticationFailed)
}

func TestSSHUser(t *testing.T) {
	t.Parallel()

	withUser, err := transport.NewEndpoint("ssh://deploy@example.com/project.git")
	require.NoError(t, err)
	require.Equal(t, "deploy", sshUser(withUser))

	withoutUser, err := transport.NewEndpoint("ssh://example.com/project.git")
	require.NoError(t, err)
	require.Equal(t, "git", sshUser(withoutUser))
}
