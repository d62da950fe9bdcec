// Package cli implements the ubidoc command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	logLevelFlag string
	quietFlag    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ubidoc",
	Short: "ubidoc - ubiquitous language glossary from doc comments",
	Long: `ubidoc scans a source tree for documentation comments tagged with
@ubiquitous, @context and @description and assembles them into a
filterable glossary of the project's ubiquitous language.

Configuration is read from .ubidoc/config.yml in the scanned directory and
can be overridden with UBIDOC_* environment variables.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn or error (overrides log.level)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "disable progress bars and informational logs")
}
