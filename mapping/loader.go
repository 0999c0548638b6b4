package mapping

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"recast/internal/common"
	"recast/record"
)

// LoadFile loads and parses a YAML profile file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}

	// Apply defaults and normalize
	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	if f.Name == "" {
		f.Name = "default"
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write profile file %s: %w", path, err)
	}

	return nil
}

// Profile builds the declarative file into an unsealed Profile, the same
// object the programmatic builder produces. Transforms and conditions cannot
// be expressed in YAML; attach them via ForMember before sealing.
//
// Per destination field the rules compose with fields > ignore > auto
// precedence, and a default attaches to whichever rule claims the field.
func (f *File) Profile() (*Profile, error) {
	p := NewProfile(f.Name)

	for i := range f.Mappings {
		if err := addMapping(p, &f.Mappings[i]); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func addMapping(p *Profile, def *MappingDef) error {
	if strings.TrimSpace(def.Source) == "" || strings.TrimSpace(def.Target) == "" {
		return newConfigError(def.Source, def.Target, "",
			"mapping needs both source and target type names")
	}

	if def.Bidirectional {
		return addBidirectional(p, def)
	}

	tm := p.CreateMap(def.Source, def.Target)
	if tm == nil {
		return newSealedError(def.Source, def.Target)
	}

	for _, dest := range memberOrder(def) {
		if err := tm.ForMember(dest, memberConfig(def, dest)); err != nil {
			return err
		}
	}

	return nil
}

func addBidirectional(p *Profile, def *MappingDef) error {
	b := p.CreateMapBidirectional(def.Source, def.Target)
	if b == nil {
		return newConfigError(def.Source, def.Target, "",
			"bidirectional mapping conflicts with an existing type pair")
	}

	// Fields entries become correspondences: target field <-> source field.
	for _, dest := range common.SortedKeys(def.Fields) {
		if err := b.Correspond(def.Fields[dest], dest); err != nil {
			return err
		}
	}

	// Ignore, defaults, and auto only shape the declared direction.
	for _, dest := range def.Ignore {
		if _, ok := def.Fields[dest]; ok {
			continue
		}

		if err := b.ForwardMember(dest, func(m *MemberBuilder) { m.Ignore() }); err != nil {
			return err
		}
	}

	for _, dest := range common.SortedKeys(def.Defaults) {
		val := def.Defaults[dest]

		if err := b.ForwardMember(dest, func(m *MemberBuilder) {
			m.Default(record.FromNative(val))
		}); err != nil {
			return err
		}
	}

	for _, am := range def.Auto {
		if _, ok := def.Fields[am.Target]; ok || common.Contains(def.Ignore, am.Target) {
			continue
		}

		source := am.Source

		if err := b.ForwardMember(am.Target, func(m *MemberBuilder) { m.MapFrom(source) }); err != nil {
			return err
		}
	}

	return nil
}

// memberOrder returns the destination fields a mapping definition touches, in
// deterministic order: renamed fields first (sorted), then ignores, defaults,
// and auto matches, deduplicated keeping the first occurrence.
func memberOrder(def *MappingDef) []string {
	seen := make(map[string]bool)

	var order []string

	add := func(dest string) {
		if dest == "" || seen[dest] {
			return
		}

		seen[dest] = true
		order = append(order, dest)
	}

	for _, dest := range common.SortedKeys(def.Fields) {
		add(dest)
	}

	for _, dest := range def.Ignore {
		add(dest)
	}

	for _, dest := range common.SortedKeys(def.Defaults) {
		add(dest)
	}

	for _, am := range def.Auto {
		add(am.Target)
	}

	return order
}

// memberConfig composes the rules touching one destination field into a
// single member configuration.
func memberConfig(def *MappingDef, dest string) func(*MemberBuilder) {
	source, renamed := def.Fields[dest]
	defaultVal, hasDefault := def.Defaults[dest]
	ignored := !renamed && common.Contains(def.Ignore, dest)

	autoSource := ""

	if !renamed && !ignored {
		for _, am := range def.Auto {
			if am.Target == dest {
				autoSource = am.Source
				break
			}
		}
	}

	return func(m *MemberBuilder) {
		switch {
		case ignored:
			m.Ignore()

			return
		case renamed:
			m.MapFrom(source)
		case autoSource != "":
			m.MapFrom(autoSource)
		}

		if hasDefault {
			m.Default(record.FromNative(defaultVal))
		}
	}
}
