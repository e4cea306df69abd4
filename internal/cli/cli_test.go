package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/runoshun/kanban/internal/app"
)

// newTestContainer creates a container for a fresh project directory with
// the global config isolated.
func newTestContainer(t *testing.T) *app.Container {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c, err := app.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// newInitializedContainer creates a container and runs kanban init.
func newInitializedContainer(t *testing.T) *app.Container {
	t.Helper()
	c := newTestContainer(t)
	_, err := execute(c, "init")
	require.NoError(t, err)
	return c
}

// execute runs the root command with args and returns its combined output.
func execute(c *app.Container, args ...string) (string, error) {
	root := NewRootCommand(c, "test-version")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	if args == nil {
		// A nil slice makes cobra fall back to os.Args.
		args = []string{}
	}
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}
