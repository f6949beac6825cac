package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetVersion(t *testing.T) {
	orig, origCommit, origDate := version, commit, date
	t.Cleanup(func() { SetVersion(orig, origCommit, origDate) })

	SetVersion("1.0.0", "abc123", "2026-01-01")
	require.Equal(t, "1.0.0", version)
	require.Equal(t, "masonry 1.0.0\ncommit: abc123\nbuilt: 2026-01-01\n", versionTemplate())

	SetVersion("dev", "", "")
	require.Equal(t, "masonry dev\n", versionTemplate())
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}

	for _, want := range []string{"resolve", "layout", "preview", "serve", "layouts", "notify"} {
		require.Contains(t, names, want)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	require.Empty(t, buf.String())

	c.Logger.Info("shown")
	require.Contains(t, buf.String(), "shown")

	buf.Reset()
	c.SetLogLevel(LogDebug)
	c.libraryLogger().Debug("library debug", "columns", 3)
	require.Contains(t, buf.String(), "library debug")
	require.Contains(t, buf.String(), "columns=3")
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo))
	prog.done("Layout built")

	require.Contains(t, buf.String(), "Layout built (")
}
