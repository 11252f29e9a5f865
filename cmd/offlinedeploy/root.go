package offlinedeploy

import (
	"fmt"
	"os"

	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/boot"
	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/config"
	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/version"
	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/provision"
	"github.com/spf13/cobra"
)

var cfg = config.NewConfig(config.Config{
	Flags: config.ConfigFlags{
		EnvName: "venv",
		Color:   config.ColorModeAuto,
	},
})

var rootCmd = &cobra.Command{
	Use:   "offline-deploy",
	Short: "Provision a Raspberry Pi meter dashboard without internet access",
	Long: `offline-deploy prepares a Raspberry Pi to run the meter dashboard entirely
from local media: it resolves a Python 3.13 runtime (extracting a bundled
tarball when the OS ships something older), builds a virtual environment,
installs the pinned dependency set from the on-disk wheel cache, verifies
every import, and optionally enables the systemd services.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Flags.Version {
			fmt.Println(version.VERSION)
			return nil
		}
		return runSetup()
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", IconClose(), err)
		osExit(1)
	}
}

func init() {
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(servicesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(runbookCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.PersistentFlags().BoolVar(&cfg.Flags.Version, "version", false, "version")
	rootCmd.PersistentFlags().StringVar(&cfg.Flags.EnvName, "env-name", "venv", "name of the virtual environment directory inside the project")
	rootCmd.PersistentFlags().BoolVar(&cfg.Flags.WithServices, "services", false, "install and enable the systemd services after provisioning")
	rootCmd.PersistentFlags().BoolVar(&cfg.Flags.SystemFallback, "system-fallback", false, "allow extracting the bundled Python tarball when no adequate runtime exists")
	rootCmd.PersistentFlags().BoolVar(&cfg.Flags.LaunchUI, "launch-ui", false, "start the dashboard service once provisioning succeeds")
	rootCmd.PersistentFlags().Var(&cfg.Flags.Color, "color", "color output mode: auto, always, or never")
}

// osExit is a variable to allow overriding in tests
var osExit = os.Exit

// indirections for testability
var (
	bootStartFn    = boot.Start
	provisionRunFn = provision.Run
)
