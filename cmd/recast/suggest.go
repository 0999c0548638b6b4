package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"recast"
	"recast/mapping"
	"recast/record"
)

func suggestCmd() *cobra.Command {
	var inputPath string
	var sourceType string
	var limit int
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "suggest <profile.yaml> <DestinationType>",
		Short: "Rank source-field candidates for unmapped destination fields",
		Long: `Score every source field against every destination field that has no
explicit member and print the best candidates, flagging ambiguous ones.

Source fields come from --source (a type declared in the profile) or from a
--input sample record. With --yaml the suggestions are emitted as an auto:
mapping stub ready to paste into the profile.`,
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
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

			destination := args[1]

			suggestions, err := m.SuggestAs(sample, sourceType, destination, limit)
			if err != nil {
				exitError(err)
			}

			if asYAML {
				if err := printSuggestionYAML(sourceType, destination, suggestions); err != nil {
					exitError(err)
				}

				return
			}

			printSuggestions(destination, suggestions)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Sample source record (JSON file)")
	cmd.Flags().StringVarP(&sourceType, "source", "s", "", "Declared source type name")
	cmd.Flags().IntVarP(&limit, "limit", "n", 3, "Candidates per destination field")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Emit suggestions as an auto: mapping stub")
	cmd.MarkFlagsRequiredTogether("yaml", "source")

	return cmd
}

func printSuggestions(destination string, suggestions []recast.Suggestion) {
	if len(suggestions) == 0 {
		fmt.Printf("No unmapped destination fields on %s\n", destination)
		return
	}

	for _, s := range suggestions {
		header := s.Destination
		if s.Ambiguous {
			header += " " + marker(color.YellowString, "(ambiguous)")
		}

		fmt.Println(header)

		if len(s.Candidates) == 0 {
			fmt.Printf("    %s\n", marker(color.HiBlackString, "no candidates"))
			continue
		}

		for _, c := range s.Candidates {
			line := fmt.Sprintf("    %-20s %.2f", c.Source, c.Confidence)
			if c.Convention != "" {
				line += "  " + c.Convention
			}

			fmt.Println(line)
		}
	}
}

// printSuggestionYAML renders the best candidate per field as an auto:
// mapping stub.
func printSuggestionYAML(sourceType, destination string, suggestions []recast.Suggestion) error {
	def := mapping.MappingDef{
		Source: sourceType,
		Target: destination,
	}

	for _, s := range suggestions {
		if len(s.Candidates) == 0 {
			continue
		}

		best := s.Candidates[0]
		def.Auto = append(def.Auto, mapping.AutoMatch{
			Target:     s.Destination,
			Source:     best.Source,
			Confidence: best.Confidence,
			Convention: best.Convention,
		})
	}

	out, err := mapping.Marshal(&mapping.File{Mappings: []mapping.MappingDef{def}})
	if err != nil {
		return err
	}

	fmt.Print(string(out))

	return nil
}
