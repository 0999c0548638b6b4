package main

import (
	"github.com/spf13/cobra"
)

func mapCmd() *cobra.Command {
	var inputPath string
	var asArray bool

	cmd := &cobra.Command{
		Use:   "map <profile.yaml> <Source:Destination>",
		Short: "Map a JSON record through a profile",
		Long: `Read a JSON object (or array with --array) from --input, map it through
the profile as the given type pair, and print the result as JSON.

Destination fields no rule can fill are simply absent from the output; run
'recast explain' on the same pair to see why.`,
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

			if asArray {
				records, err := readRecords(inputPath)
				if err != nil {
					exitError(err)
				}

				mapped, err := m.MapArrayAs(records, source, destination)
				if err != nil {
					exitError(err)
				}

				out := make([]map[string]any, len(mapped))
				for i, r := range mapped {
					out[i] = r.ToMap()
				}

				if err := printJSON(out); err != nil {
					exitError(err)
				}

				return
			}

			rec, err := readRecord(inputPath)
			if err != nil {
				exitError(err)
			}

			mapped, err := m.MapAs(rec, source, destination)
			if err != nil {
				exitError(err)
			}

			if err := printJSON(mapped.ToMap()); err != nil {
				exitError(err)
			}
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input record (JSON file)")
	cmd.Flags().BoolVar(&asArray, "array", false, "Input is a JSON array of records")
	cmd.MarkFlagRequired("input")

	return cmd
}
