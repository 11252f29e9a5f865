package offlinedeploy

import (
	"fmt"

	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/files"
	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/jsonc_parser"
	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/service_installer"
	"github.com/spf13/cobra"
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "Manage the dashboard systemd services",
	Long: `Manage the systemd services that keep the dashboard running.

The services command has four subcommands:
  install  - Write the unit files and enable the services selected in config.jsonc
  start    - Start every enabled service
  stop     - Stop every enabled service
  status   - Show whether each service is active`,
}

var servicesInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Write and enable the systemd unit files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		serviceCfg, envDir, err := loadServiceConfig()
		if err != nil {
			return err
		}
		if err := installServicesFn(serviceCfg, envDir); err != nil {
			return err
		}
		fmt.Printf("%s Services installed\n", IconCheck())
		return nil
	},
}

var servicesStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start every enabled service",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		serviceCfg, envDir, err := loadServiceConfig()
		if err != nil {
			return err
		}
		if err := startServicesFn(serviceCfg, envDir); err != nil {
			return err
		}
		fmt.Printf("%s Services started\n", IconCheck())
		return nil
	},
}

var servicesStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop every enabled service",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		serviceCfg, envDir, err := loadServiceConfig()
		if err != nil {
			return err
		}
		if err := stopServicesFn(serviceCfg, envDir); err != nil {
			return err
		}
		fmt.Printf("%s Services stopped\n", IconCheck())
		return nil
	},
}

var servicesStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether each service is active",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		serviceCfg, envDir, err := loadServiceConfig()
		if err != nil {
			return err
		}
		for _, unit := range serviceUnitsFn(serviceCfg, envDir) {
			icon := IconClose()
			state := "inactive"
			if !unit.Enabled {
				icon = IconAlert()
				state = "disabled"
			} else if isActiveFn(unit.Name) {
				icon = IconCheck()
				state = "active"
			}
			fmt.Printf("%s %-20s %s\n", icon, unit.Name, state)
		}
		return nil
	},
}

func init() {
	servicesCmd.AddCommand(servicesInstallCmd)
	servicesCmd.AddCommand(servicesStartCmd)
	servicesCmd.AddCommand(servicesStopCmd)
	servicesCmd.AddCommand(servicesStatusCmd)
}

// loadServiceConfig reads config.jsonc and resolves the environment
// directory the units point their ExecStart at.
func loadServiceConfig() (map[string]any, string, error) {
	serviceCfg, err := parseConfigFn(files.ConfigFilePath())
	if err != nil {
		return nil, "", fmt.Errorf("failed to read config.jsonc: %w", err)
	}
	return serviceCfg, files.EnvDir(cfg.Flags.EnvName), nil
}

// indirections for testability
var (
	parseConfigFn     = jsonc_parser.ParseFile
	installServicesFn = service_installer.Install
	startServicesFn   = service_installer.Start
	stopServicesFn    = service_installer.Stop
	serviceUnitsFn    = service_installer.Units
	isActiveFn        = service_installer.IsActive
)
