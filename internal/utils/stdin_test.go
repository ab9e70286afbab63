package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsTerminal(t *testing.T) {
	t.Run("returns false for nil file", func(t *testing.T) {
		require.False(t, IsTerminal(nil))
	})

	t.Run("returns false for a pipe", func(t *testing.T) {
		r, w, err := os.Pipe()
		require.NoError(t, err)
		defer r.Close()
		defer w.Close()

		require.False(t, IsTerminal(r))
	})

	t.Run("returns false for a regular file", func(t *testing.T) {
		f, err := os.Create(filepath.Join(t.TempDir(), "input"))
		require.NoError(t, err)
		defer f.Close()

		require.False(t, IsTerminal(f))
	})
}

func TestIsInteractive(t *testing.T) {
	t.Run("pipes are never interactive", func(t *testing.T) {
		r, w, err := os.Pipe()
		require.NoError(t, err)
		defer r.Close()
		defer w.Close()

		require.False(t, IsInteractive(r))
	})

	t.Run("environment override wins", func(t *testing.T) {
		t.Setenv(NonInteractiveEnv, "1")
		require.False(t, IsInteractive(os.Stdin))
	})

	t.Run("test override wins", func(t *testing.T) {
		t.Setenv(TestNoInteractiveEnv, "1")
		require.False(t, IsInteractive(os.Stdin))
	})
}
