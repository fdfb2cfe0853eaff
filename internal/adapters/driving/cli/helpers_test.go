package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/chr33s/mcpdoc/internal/logger"
)

// resetFlags restores every flag to its default and clears Changed, since
// cobra keeps flag state on the package-level commands between runs.
func resetFlags(t *testing.T) {
	t.Helper()

	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			require.NoError(t, sv.Replace(nil))
		} else {
			require.NoError(t, f.Value.Set(f.DefValue))
		}
		f.Changed = false
	}

	rootCmd.PersistentFlags().VisitAll(reset)
	rootCmd.Flags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}
}

// executeCommand runs the root command with args and returns stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return executeCommandContext(t, context.Background(), args...)
}

func executeCommandContext(t *testing.T, ctx context.Context, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(t)

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)

	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		logger.SetOutput(os.Stderr)
		resetFlags(t)
	})

	err := rootCmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

// executeCommandStdout runs the root command without an output override and
// returns what reached the process stdout and the stderr buffer.
func executeCommandStdout(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(t)

	r, w, err := os.Pipe()
	require.NoError(t, err)
	originalStdout := os.Stdout
	os.Stdout = w

	stderr := new(bytes.Buffer)
	rootCmd.SetOut(nil)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)

	t.Cleanup(func() {
		os.Stdout = originalStdout
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		logger.SetOutput(os.Stderr)
		resetFlags(t)
	})

	execErr := rootCmd.ExecuteContext(context.Background())

	os.Stdout = originalStdout
	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	return string(out), stderr.String(), execErr
}

// writeFile creates a file under a test temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
