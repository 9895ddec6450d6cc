package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "turnstile",
	Short: "strict round-robin chunk consumer over a circular sequence",
	Long: `turnstile spawns a fixed set of workers that consume fixed-size
chunks of a circular sequence in strict registration order, one worker at a
time. Runs can be recorded as JSONL turn traces and verified offline against
the deterministic rotation model.`,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
