package cmd

import (
	"fmt"
	"os"

	"github.com/guardrail-go/guardrail/analytics"
	"github.com/guardrail-go/guardrail/graph"
	"github.com/guardrail-go/guardrail/output"
	"github.com/spf13/cobra"
)

var (
	verboseFlag bool
	Version     = "1.2.2"
	GitCommit   = "HEAD"
)

var rootCmd = &cobra.Command{
	Use:   "guardrail",
	Short: "Call-graph reachability guardrails for PHP | Privacy-First",
	Long:  `Guardrail - static call-graph reachability analysis for PHP codebases.

Verifies that every designated entry point reaches a required target method,
and that trigger calls (beginTransaction, etc.) are always paired with a
completion call (commit/rollback) somewhere in the transitive call graph.

Learn more: https://guardrail.dev`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		disableMetrics, _ := cmd.Flags().GetBool("disable-metrics") //nolint:all
		verboseFlag, _ = cmd.Flags().GetBool("verbose")             //nolint:all
		analytics.LoadEnvFile()
		analytics.Init(disableMetrics)
		analytics.SetVersion(Version)
		if verboseFlag {
			graph.EnableVerboseLogging()
		}

		// Show banner for help command
		if cmd.Name() == "help" || (len(os.Args) == 1 || (len(os.Args) == 2 && (os.Args[1] == "--help" || os.Args[1] == "-h"))) {
			noBanner, _ := cmd.Flags().GetBool("no-banner")
			logger := output.NewLogger(output.VerbosityDefault)
			if output.ShouldShowBanner(logger.IsTTY(), noBanner) {
				output.PrintBanner(logger.GetWriter(), Version, output.DefaultBannerOptions())
			} else if logger.IsTTY() && !noBanner {
				fmt.Fprintln(os.Stderr, output.GetCompactBanner(Version))
				fmt.Fprintln(os.Stderr)
			}
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("disable-metrics", false, "Disable metrics collection")
	rootCmd.PersistentFlags().Bool("verbose", false, "Verbose output")
	rootCmd.PersistentFlags().Bool("no-banner", false, "Disable startup banner")
}
