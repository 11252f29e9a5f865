package offlinedeploy

import (
	"fmt"

	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/files"
	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/jsonc_parser"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read values from config.jsonc",
	Long: `Read values from the project's config.jsonc file.

The config command has one subcommand:
  get  - Print the value at a dotted key path`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the value at a dotted key path",
	Long: `Print the value stored at a dotted key path in config.jsonc.

A missing file or missing key prints an empty line rather than failing,
so scripts can read optional settings without guarding.

Examples:
  offline-deploy config get usb_copy.enabled
  offline-deploy config get cloud_sync.interval_minutes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := parseConfigFn(files.ConfigFilePath())
		if err != nil {
			return fmt.Errorf("failed to read config.jsonc: %w", err)
		}
		value, ok := jsonc_parser.Lookup(data, args[0])
		fmt.Println(jsonc_parser.Render(value, ok))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
}
