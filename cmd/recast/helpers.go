package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"recast"
	"recast/internal/diagnostic"
	"recast/record"
	"recast/utils"
)

func exitError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// buildMapper loads the CLI config and a profile file into a ready-to-map
// Mapper. The returned closer releases the cache backend.
func buildMapper(profilePath string) (*recast.Mapper, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	backend, closeCache, err := openCache(cfg)
	if err != nil {
		return nil, nil, err
	}

	m := recast.New(recast.Config{
		DisableConventions: !cfg.Conventions,
		Threshold:          cfg.Threshold,
		Cache:              backend,
		Logger:             logger,
	})

	p, err := m.LoadProfile(profilePath)
	if err != nil {
		closeCache()
		return nil, nil, err
	}

	if err := m.AddProfile(p); err != nil {
		closeCache()
		return nil, nil, err
	}

	return m, closeCache, nil
}

// splitPair parses a "Source:Destination" type pair argument.
func splitPair(arg string) (string, string, error) {
	parts := strings.Split(arg, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid type pair %q, expected Source:Destination", arg)
	}

	source, destination := utils.Unpack2(parts)

	return source, destination, nil
}

// readRecord reads a JSON object file into a record.
func readRecord(path string) (record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse input JSON: %w", err)
	}

	return record.FromMap(raw), nil
}

// readRecords reads a JSON array file into records.
func readRecords(path string) ([]record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse input JSON: %w", err)
	}

	records := make([]record.Record, len(raw))
	for i, item := range raw {
		records[i] = record.FromMap(item)
	}

	return records, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(data))

	return nil
}

// printDiagnostics renders validation results with severity markers.
func printDiagnostics(diags *diagnostic.Diagnostics) {
	for _, d := range diags.Errors {
		fmt.Printf("%s %s\n", marker(color.RedString, "✗"), d.String())

		for _, s := range d.Suggestions {
			fmt.Printf("    did you mean %q?\n", s)
		}
	}

	for _, d := range diags.Warnings {
		fmt.Printf("%s %s\n", marker(color.YellowString, "!"), d.String())
	}

	for _, d := range diags.Infos {
		fmt.Printf("%s %s\n", marker(color.HiBlackString, "·"), d.String())
	}
}

func marker(paint func(format string, a ...interface{}) string, s string) string {
	if !pretty {
		return s
	}

	return paint(s)
}
