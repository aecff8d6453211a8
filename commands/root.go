// Package commands is the restaurant command line: the API server plus the
// operator tasks that share its configuration.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "restaurant",
	Short:         "Restaurant point of sale API",
	Long:          "Runs the ordering, billing, kitchen feed and guest room API, and the operator tasks around it.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(qrCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(seedCmd)
}

// Execute runs the command named on the command line and exits non-zero on
// failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
