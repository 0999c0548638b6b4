// Package main provides the recast CLI.
//
// recast works with YAML mapping profiles from the command line:
//   - Validates profiles and reports misconfigurations with suggestions
//   - Ranks source-field candidates for unmapped destination fields
//   - Shows the resolved plan for a type pair, origin and confidence per field
//   - Maps JSON records through a profile
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	logger  = logrus.New()
	pretty  = true
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "recast",
		Short: "Record mapping toolkit",
		Long: `recast maps loosely-typed records between named types, combining
explicit mapping profiles with convention-based field matching.

Examples:
  recast check profile.yaml                          Validate a profile
  recast suggest profile.yaml CustomerDto            Rank source candidates
  recast explain profile.yaml Customer:CustomerDto   Show the resolved plan
  recast map profile.yaml Customer:CustomerDto -i in.json   Map a record`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", true, "Colorize output")

	rootCmd.AddCommand(checkCmd(), suggestCmd(), explainCmd(), mapCmd(), versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func configureLogging() {
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	if os.Getenv("LOG_LEVEL") == "debug" {
		logger.SetLevel(logrus.DebugLevel)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show recast version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("recast version %s\n", version)
		},
	}
}
