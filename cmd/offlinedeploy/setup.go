package offlinedeploy

import (
	"fmt"
	"os"

	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/config"
	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/shell_out"
	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/provision"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Run the full provisioning pipeline",
	Long: `Run the full provisioning pipeline on this machine.

The pipeline resolves a Python 3.13 runtime, prepares the virtual
environment, installs the pinned packages from the offline wheel cache,
and verifies that every required module imports. With --services the
systemd units are installed and enabled afterwards.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup()
	},
}

func runSetup() error {
	opts := provision.Options{
		EnvName:            cfg.Flags.EnvName,
		WithServices:       cfg.Flags.WithServices,
		AllowSystemInstall: cfg.Flags.SystemFallback,
	}

	var err error
	if useInteractiveSetup() {
		err = bootStartFn(opts)
	} else {
		log.Debug("spinner UI disabled, using plain output")
		err = runPlainSetup(opts)
	}
	if err != nil {
		return err
	}

	if cfg.Flags.LaunchUI {
		return launchDashboardFn()
	}
	return nil
}

// useInteractiveSetup reports whether the spinner UI should drive the
// pipeline. Piped output and --color=never both get the plain reporter.
func useInteractiveSetup() bool {
	if cfg.Flags.Color == config.ColorModeNever {
		return false
	}
	return isTerminalFn(os.Stdout.Fd())
}

func runPlainSetup(opts provision.Options) error {
	result, err := provisionRunFn(opts, provision.Reporter{
		OnStep: func(s string) { fmt.Printf("%s %s\n", IconMagnify(), s) },
		OnLine: func(l string) { fmt.Printf("    %s\n", l) },
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s Provisioning complete, environment at %s\n", IconCheck(), result.EnvDir)
	return nil
}

// launchDashboard starts the dashboard unit once provisioning is done.
func launchDashboard() error {
	var code int
	var err error
	action := func() {
		code, err = sudoFn("systemctl", []string{"start", "meter-dashboard"})
	}

	if useInteractiveSetup() {
		if spinErr := spinner.New().Title("Starting the dashboard...").Action(action).Run(); spinErr != nil {
			return spinErr
		}
	} else {
		action()
	}
	if err != nil {
		return fmt.Errorf("failed to start meter-dashboard: %w", err)
	}
	if code != 0 {
		return fmt.Errorf("systemctl start meter-dashboard exited with code %d", code)
	}
	fmt.Printf("%s Dashboard started\n", IconCheck())
	return nil
}

// indirections for testability
var (
	launchDashboardFn = launchDashboard
	sudoFn            = shell_out.Sudo
	isTerminalFn      = isatty.IsTerminal
)
