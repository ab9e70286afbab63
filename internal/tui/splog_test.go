package tui_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gitmerge.dev/gitmerge/internal/tui"
)

func TestSplogConsoleOutput(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	splog, err := tui.NewSplogWithOptions(tui.SplogOptions{Writer: &buf})
	require.NoError(t, err)

	splog.Info("Pushing %s to %s...", "main", "origin")
	splog.Success("Pushed")
	splog.Warn("careful")
	splog.Error("broken %d", 1)
	splog.Tip("try again")
	splog.Newline()

	require.Equal(t,
		"Pushing main to origin...\n✅ Pushed\n⚠️  careful\n❌ broken 1\n💡 try again\n\n",
		buf.String(),
	)
	require.NoError(t, splog.Close())
}

func TestSplogDebug(t *testing.T) {
	t.Parallel()

	var quiet bytes.Buffer
	tui.NewSplogWithWriter(&quiet).Debug("hidden")
	if os.Getenv("DEBUG") == "" {
		require.Empty(t, quiet.String())
	}

	var loud bytes.Buffer
	splog, err := tui.NewSplogWithOptions(tui.SplogOptions{Writer: &loud, Debug: true})
	require.NoError(t, err)
	splog.Debug("shown %s", "now")
	require.Equal(t, "shown now\n", loud.String())
}

func TestSplogLogFile(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "gitmerge.log")

	splog, err := tui.NewSplogWithOptions(tui.SplogOptions{Writer: &buf, LogFilePath: path})
	require.NoError(t, err)

	splog.Info("visible")
	splog.Debug("file only")
	require.NoError(t, splog.Close())

	require.Equal(t, "visible\n", buf.String())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(content), "msg=visible")
	require.Contains(t, string(content), `msg="file only"`)
	require.Contains(t, string(content), "level=DEBUG")
}

func TestGetLogFilePath(t *testing.T) {
	t.Setenv("GITMERGE_LOG_FILE", "/tmp/custom.log")
	require.Equal(t, "/tmp/custom.log", tui.GetLogFilePath())

	t.Setenv("GITMERGE_LOG_FILE", "")
	require.Equal(t, "gitmerge.log", filepath.Base(tui.GetLogFilePath()))
}
