package offlinedeploy

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/provision"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "offline-deploy", rootCmd.Use)
	assert.Contains(t, rootCmd.Short, "Raspberry Pi")
	assert.Contains(t, rootCmd.Long, "wheel cache")

	subcommands := rootCmd.Commands()
	expectedCommands := []string{"setup", "doctor", "services", "config", "env", "runbook", "version"}

	for _, expected := range expectedCommands {
		found := false
		for _, cmd := range subcommands {
			if cmd.Name() == expected {
				found = true
				break
			}
		}
		assert.True(t, found, "Expected subcommand %s not found", expected)
	}
}

func TestRootCommandFlags(t *testing.T) {
	versionFlag := rootCmd.PersistentFlags().Lookup("version")
	require.NotNil(t, versionFlag, "version flag should exist")
	assert.Equal(t, "false", versionFlag.DefValue)

	envNameFlag := rootCmd.PersistentFlags().Lookup("env-name")
	require.NotNil(t, envNameFlag, "env-name flag should exist")
	assert.Equal(t, "venv", envNameFlag.DefValue)

	servicesFlag := rootCmd.PersistentFlags().Lookup("services")
	require.NotNil(t, servicesFlag, "services flag should exist")
	assert.Equal(t, "false", servicesFlag.DefValue)

	fallbackFlag := rootCmd.PersistentFlags().Lookup("system-fallback")
	require.NotNil(t, fallbackFlag, "system-fallback flag should exist")
	assert.Equal(t, "false", fallbackFlag.DefValue)

	launchFlag := rootCmd.PersistentFlags().Lookup("launch-ui")
	require.NotNil(t, launchFlag, "launch-ui flag should exist")
	assert.Equal(t, "false", launchFlag.DefValue)

	colorFlag := rootCmd.PersistentFlags().Lookup("color")
	require.NotNil(t, colorFlag, "color flag should exist")
}

func TestRootCommandRun(t *testing.T) {
	require.NotNil(t, rootCmd.RunE)

	prevBoot := bootStartFn
	prevRun := provisionRunFn
	prevTTY := isTerminalFn
	defer func() { bootStartFn = prevBoot; provisionRunFn = prevRun; isTerminalFn = prevTTY }()

	// Scenario 1: --version flag prints version, pipeline untouched
	calledBoot := false
	calledRun := false
	bootStartFn = func(opts provision.Options) error { calledBoot = true; return nil }
	provisionRunFn = func(opts provision.Options, rep provision.Reporter) (provision.Result, error) {
		calledRun = true
		return provision.Result{}, nil
	}

	cfg.Flags.Version = true
	out := captureStdout(t, func() {
		assert.NoError(t, rootCmd.RunE(rootCmd, []string{}))
	})
	cfg.Flags.Version = false

	assert.NotEmpty(t, out)
	assert.False(t, calledBoot)
	assert.False(t, calledRun)

	// Scenario 2: no flags on a TTY -> spinner pipeline, and the
	// elevated fallback branch stays unauthorized by default
	isTerminalFn = func(fd uintptr) bool { return true }
	calledBoot = false
	var gotOpts provision.Options
	bootStartFn = func(opts provision.Options) error {
		calledBoot = true
		gotOpts = opts
		return nil
	}
	assert.NoError(t, rootCmd.RunE(rootCmd, []string{}))
	assert.True(t, calledBoot)
	assert.False(t, gotOpts.AllowSystemInstall,
		"elevated fallback installation must be requested explicitly")

	// Scenario 3: piped output -> plain pipeline
	isTerminalFn = func(fd uintptr) bool { return false }
	calledRun = false
	_ = captureStdout(t, func() {
		assert.NoError(t, rootCmd.RunE(rootCmd, []string{}))
	})
	assert.True(t, calledRun)
}

func TestExecuteExitsOnError(t *testing.T) {
	prevOsExit := osExit
	defer func() { osExit = prevOsExit }()

	var exitedWith *int
	osExit = func(code int) {
		exitedWith = &code
	}

	failingCmd := &cobra.Command{Use: "failing", SilenceUsage: true, SilenceErrors: true}
	failingCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("boom")
	}

	originalRoot := rootCmd
	rootCmd = failingCmd
	defer func() { rootCmd = originalRoot }()

	Execute()

	require.NotNil(t, exitedWith, "osExit should have been called")
	assert.Equal(t, 1, *exitedWith)
}
