package offlinedeploy

import (
	"fmt"

	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the offline-deploy version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.VERSION)
	},
}
