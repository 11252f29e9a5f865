package offlinedeploy

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/files"
	"github.com/spf13/cobra"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Outputs a script to put the environment's bin directory on PATH",
	Long: `The env command outputs a script that sets environment variables for the current shell.
               This command takes one argument, the shell.
               If omitted, it will default to bash.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 1 {
			log.Fatalln("Too many arguments. The env command takes at most one argument.")
		}
		shell := "bash"
		if len(args) == 1 {
			shell = args[0]
		}
		pathString := filepath.Join(files.EnvDir(cfg.Flags.EnvName), "bin")
		if shell == "pwsh" || shell == "powershell" {
			fmt.Println(`$env:PATH = "` + pathString + `;" + $env:PATH`)
		} else {
			fmt.Println(`#!/bin/sh
# offline-deploy shell setup; adapted from rustup
# affix colons on either side of $PATH to simplify matching
case ":${PATH}:" in
    *:"` + pathString + `":*)
        ;;
    *)
        # Prepending path so the environment's python wins over the system one
        export PATH="` + pathString + `:$PATH"
        ;;
esac`)
		}
	},
}
