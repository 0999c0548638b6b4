package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"recast/mapping"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <profile.yaml>",
		Short: "Validate a mapping profile",
		Long: `Validate a mapping profile against its declared types: unknown fields
(with close-spelling suggestions), duplicate type pairs, conflicting rules,
out-of-range confidences.

Exits non-zero when the profile has errors.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			f, err := mapping.LoadFile(args[0])
			if err != nil {
				exitError(err)
			}

			diags := mapping.Validate(f)
			printDiagnostics(diags)

			if diags.HasErrors() {
				fmt.Printf("\n%s %s: %d error(s), %d warning(s)\n",
					marker(color.RedString, "✗"), args[0], len(diags.Errors), len(diags.Warnings))
				os.Exit(1)
			}

			fmt.Printf("%s %s: %d mapping(s), %d warning(s)\n",
				marker(color.GreenString, "✓"), args[0], len(f.Mappings), len(diags.Warnings))
		},
	}
}
