package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command with args and returns stdout, stderr and the error.
func executeCommand(t *testing.T, ctx context.Context, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		debug, configPath, requeue, inMemory, outputDir = false, "", false, false, ""
		listOutputFormat = "table"
	})

	err := rootCmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func TestSetVersion(t *testing.T) {
	original := rootCmd.Version
	defer func() { rootCmd.Version = original }()

	testVersion := "1.2.3-test"
	SetVersion(testVersion)

	if GetVersion() != testVersion {
		t.Errorf("Expected version to be %s, got %s", testVersion, GetVersion())
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "opsharness" {
		t.Errorf("Expected Use to be 'opsharness', got %s", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Expected Short description to be set")
	}

	if !rootCmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}
}

func TestVersionTemplate(t *testing.T) {
	testCmd := &cobra.Command{
		Use:     "test",
		Version: "1.0.0",
	}
	testCmd.SetVersionTemplate(`{{printf "opsharness version %s\n" .Version}}`)

	var buf bytes.Buffer
	testCmd.SetOut(&buf)
	testCmd.SetArgs([]string{"--version"})
	if err := testCmd.Execute(); err != nil {
		t.Fatalf("Error executing version command: %v", err)
	}

	if buf.String() != "opsharness version 1.0.0\n" {
		t.Errorf("unexpected version output %q", buf.String())
	}
}

func TestSubcommands(t *testing.T) {
	found := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		found[c.Name()] = true
	}

	for _, expected := range []string{
		"createanddelete", "createmodifystatus", "createmodifystatusexception",
		"generator", "list", "version",
	} {
		if !found[expected] {
			t.Errorf("Expected subcommand %s to be registered", expected)
		}
	}
}

func TestNoCommandPrintsUsageToStderr(t *testing.T) {
	stdout, stderr, err := executeCommand(t, context.Background())

	require.Error(t, err)
	assert.Equal(t, ExitCodeError, getExitCode(err))
	assert.Contains(t, stderr, "command expected")
	assert.Contains(t, stderr, "Usage:")
	assert.Contains(t, stderr, "createmodifystatusexception")
	assert.Empty(t, stdout)
}

func TestUnknownCommandFails(t *testing.T) {
	_, _, err := executeCommand(t, context.Background(), "firstwatchdelay")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
	assert.Equal(t, ExitCodeError, getExitCode(err))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCodeSuccess, getExitCode(nil))
	assert.Equal(t, ExitCodeError, getExitCode(errors.New("boom")))
	assert.Equal(t, ExitCodeError, getExitCode(&usageError{msg: "command expected"}))
}

func TestTestCommandFlags(t *testing.T) {
	for _, c := range newTestCmds() {
		assert.NotNil(t, c.Flags().Lookup("requeue"), c.Name())
		assert.NotNil(t, c.Flags().Lookup("in-memory"), c.Name())
	}
}

func TestRunTestModeInMemory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
workload:
  warmup: 0s
  createInterval: 20ms
`), 0644))

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	// Mixed case resolves to the same command
	stdout, _, err := executeCommand(t, ctx, "CreateAndDelete", "--in-memory", "--requeue", "--config-path", dir)

	require.NoError(t, err)
	assert.Contains(t, stdout, "RECONCILE:")
	assert.True(t, strings.Contains(stdout, "createanddelete"), "expected the mode in the log output")
}
