package offlinedeploy

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed RUNBOOK.md
var runbookMarkdown string

var runbookCmd = &cobra.Command{
	Use:   "runbook",
	Short: "Show the operator runbook",
	Long:  "Render the operator runbook for preparing media, provisioning a device, and recovering from common failures.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !shouldUseColors() {
			fmt.Print(runbookMarkdown)
			return nil
		}
		rendered, err := glamour.Render(runbookMarkdown, "dark")
		if err != nil {
			// Fall back to the raw markdown when the renderer fails.
			fmt.Print(runbookMarkdown)
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}
