package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/spinnegraph/spinne/pkg/types"
	"github.com/spinnegraph/spinne/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "spinne",
	Short: "Extract the JSX component-usage graph of a TypeScript/React workspace",
	Long: "spinne walks one or more TypeScript/React projects, resolves JSX component\n" +
		"usage across files and project boundaries, and reports the resulting\n" +
		"component graph as JSON, an HTML viewer, or a console summary.",
	Version:      version.Version,
	RunE:         runAnalyze,
	SilenceUsage: true,
}

func init() {
	rootCmd.SilenceErrors = true
	bindAnalyzeFlags(rootCmd)
}

// Execute runs the root command and exits with code 1 on error. ExitError
// is handled specially: its Code becomes the process exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *types.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
