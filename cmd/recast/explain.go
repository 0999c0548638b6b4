package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"recast/cache"
	"recast/record"
)

func explainCmd() *cobra.Command {
	var inputPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "explain <profile.yaml> <Source:Destination>",
		Short: "Show the resolved mapping plan for a type pair",
		Long: `Resolve the mapping plan for a type pair and show how every destination
field gets its value: explicit member, convention match with confidence, or
exact-name copy. Fields nothing matched are listed with the reason.

With --input, inference uses the sample record's fields instead of (or in
addition to) the declared source type.`,
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			source, destination, err := splitPair(args[1])
			if err != nil {
				exitError(err)
			}

			m, closeCache, err := buildMapper(args[0])
			if err != nil {
				exitError(err)
			}
			defer closeCache()

			sample := record.New()
			if inputPath != "" {
				sample, err = readRecord(inputPath)
				if err != nil {
					exitError(err)
				}
			}

			plan, err := m.ExplainAs(sample, source, destination)
			if err != nil {
				exitError(err)
			}

			if asJSON {
				if err := printJSON(plan); err != nil {
					exitError(err)
				}

				return
			}

			printPlan(plan)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Sample source record (JSON file)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output plan as JSON")

	return cmd
}

func printPlan(plan *cache.Plan) {
	fmt.Printf("PLAN %s -> %s\n\n", plan.Source, plan.Destination)

	for _, p := range plan.Pairs {
		switch p.Origin {
		case cache.OriginExplicit:
			fmt.Printf("  %-20s <- %-20s %s\n",
				p.Destination, p.Source, marker(color.GreenString, "explicit"))
		case cache.OriginDefault:
			fmt.Printf("  %-20s <- %-20s %s\n",
				p.Destination, p.Source, marker(color.YellowString, "default"))
		case cache.OriginIgnored:
			fmt.Printf("  %-20s    %s\n",
				p.Destination, marker(color.HiBlackString, "ignored"))
		case cache.OriginIdentity:
			fmt.Printf("  %-20s <- %-20s identity\n", p.Destination, p.Source)
		case cache.OriginConvention:
			fmt.Printf("  %-20s <- %-20s %s\n",
				p.Destination, p.Source,
				marker(color.CyanString, fmt.Sprintf("convention %.2f (%s)", p.Confidence, p.Convention)))
		}
	}

	if len(plan.Unmatched) == 0 {
		return
	}

	fmt.Println()

	for _, miss := range plan.Unmatched {
		fmt.Printf("  %-20s    %s: %s\n",
			miss.Destination, marker(color.RedString, "unmatched"), miss.Reason)
	}
}
