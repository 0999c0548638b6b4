package mapping

import (
	"fmt"
	"sort"

	"recast/internal/common"
	"recast/internal/diagnostic"
	"recast/internal/match"
	"recast/utils"
)

// maxSuggestDistance bounds how far a close-spelling suggestion may be from
// the unknown name, measured on canonical keys.
const maxSuggestDistance = 2

// Validate validates a profile file against its own type declarations.
// This is a structural validation step only; mappings against types the file
// does not declare are duck-typed and reported as info.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("profile_is_nil", "profile file is nil", "", "")
		return res
	}

	validateTypes(res, f)

	seenPairs := map[string]struct{}{}

	for i := range f.Mappings {
		m := &f.Mappings[i]
		tpStr := typePair(m.Source, m.Target)

		if m.Source == "" {
			res.AddError("missing_source_type", "mapping has no source type", tpStr, "")
			continue
		}

		if m.Target == "" {
			res.AddError("missing_target_type", "mapping has no target type", tpStr, "")
			continue
		}

		pairs := []string{tpStr}
		if m.Bidirectional {
			pairs = append(pairs, typePair(m.Target, m.Source))
		}

		duplicate := false

		for _, pair := range pairs {
			if _, ok := seenPairs[pair]; ok {
				res.AddError("duplicate_type_pair", fmt.Sprintf("duplicate mapping for type pair %s", pair), pair, "")

				duplicate = true

				continue
			}

			seenPairs[pair] = struct{}{}
		}

		if duplicate {
			continue
		}

		validateMapping(res, f, m, tpStr)
	}

	return res
}

// validateTypes checks the type declaration section for duplicate fields and
// dangling field type references.
func validateTypes(res *diagnostic.Diagnostics, f *File) {
	for _, typeName := range common.SortedKeys(f.Types) {
		fields := f.Types[typeName]
		seen := map[string]struct{}{}

		for _, def := range fields {
			if def.Name == "" {
				res.AddError("empty_field_name", fmt.Sprintf("type %q declares a field with no name", typeName), "", typeName)
				continue
			}

			if _, ok := seen[def.Name]; ok {
				res.AddError("duplicate_field", fmt.Sprintf("type %q declares field %q twice", typeName, def.Name), "", def.Name)
				continue
			}

			seen[def.Name] = struct{}{}

			elem := elemType(def.Type)
			if elem == "" {
				continue
			}

			if _, ok := f.Types[elem]; !ok {
				res.AddInfo("undeclared_field_type",
					fmt.Sprintf("field %q of type %q references undeclared type %q", def.Name, typeName, elem),
					"", def.Name)
			}
		}
	}
}

func validateMapping(res *diagnostic.Diagnostics, f *File, m *MappingDef, tpStr string) {
	srcFields, srcDeclared := f.Types[m.Source]
	if !srcDeclared {
		res.AddInfo("undeclared_source_type", fmt.Sprintf("source type %q is not declared; mapping is duck-typed", m.Source), tpStr, m.Source)
	}

	dstFields, dstDeclared := f.Types[m.Target]
	if !dstDeclared {
		res.AddInfo("undeclared_target_type", fmt.Sprintf("target type %q is not declared; mapping is duck-typed", m.Target), tpStr, m.Target)
	}

	checkTarget := func(field, rule string) {
		if !dstDeclared {
			return
		}

		if _, ok := dstFields.Get(field); ok {
			return
		}

		res.AddErrorSuggest("unknown_target_field",
			fmt.Sprintf("%s references field %q not declared on %q", rule, field, m.Target),
			tpStr, field, closeSpellings(field, dstFields))
	}

	checkSource := func(field, rule string) {
		if !srcDeclared {
			return
		}

		if _, ok := srcFields.Get(field); ok {
			return
		}

		res.AddErrorSuggest("unknown_source_field",
			fmt.Sprintf("%s references field %q not declared on %q", rule, field, m.Source),
			tpStr, field, closeSpellings(field, srcFields))
	}

	for _, dest := range common.SortedKeys(m.Fields) {
		checkTarget(dest, "fields")
		checkSource(m.Fields[dest], "fields")
	}

	for _, dest := range m.Ignore {
		checkTarget(dest, "ignore")

		if _, ok := m.Fields[dest]; ok {
			res.AddWarning("conflicting_member",
				fmt.Sprintf("field %q listed in both fields and ignore; fields wins", dest), tpStr, dest)
		}
	}

	for _, dest := range common.SortedKeys(m.Defaults) {
		checkTarget(dest, "defaults")

		if common.Contains(m.Ignore, dest) {
			if _, renamed := m.Fields[dest]; !renamed {
				res.AddWarning("default_on_ignored",
					fmt.Sprintf("default for field %q never applies because the field is ignored", dest), tpStr, dest)
			}
		}
	}

	for _, am := range m.Auto {
		checkTarget(am.Target, "auto")
		checkSource(am.Source, "auto")

		if !utils.IsInRange(0.0, am.Confidence, 1.0) {
			res.AddError("invalid_confidence",
				fmt.Sprintf("auto match %q has confidence %v outside [0, 1]", am.Target, am.Confidence), tpStr, am.Target)
		}
	}

	if m.Bidirectional {
		validateCorrespondenceDefs(res, m, tpStr)
	}
}

// validateCorrespondenceDefs reports conflicting correspondences before seal
// time, mirroring the checks Bidirectional.Seal enforces.
func validateCorrespondenceDefs(res *diagnostic.Diagnostics, m *MappingDef, tpStr string) {
	bySource := map[string]string{}

	for _, dest := range common.SortedKeys(m.Fields) {
		source := m.Fields[dest]
		if prev, ok := bySource[source]; ok && prev != dest {
			res.AddError("conflicting_correspondence",
				fmt.Sprintf("source field %q corresponds to both %q and %q", source, prev, dest), tpStr, source)
			continue
		}

		bySource[source] = dest
	}
}

// elemType strips a collection marker, so "[]Order" yields "Order" and plain
// names pass through.
func elemType(t string) string {
	if len(t) > 2 && t[:2] == "[]" {
		return t[2:]
	}

	return t
}

// closeSpellings returns declared field names within a small edit distance of
// the unknown name, closest first, for use as fix suggestions.
func closeSpellings(name string, fields FieldDefs) []string {
	type scored struct {
		name string
		dist int
	}

	key := match.CanonicalKey(name)

	var near []scored

	for _, def := range fields {
		d := match.Levenshtein(key, match.CanonicalKey(def.Name))
		if d <= maxSuggestDistance {
			near = append(near, scored{name: def.Name, dist: d})
		}
	}

	sort.Slice(near, func(i, j int) bool {
		if near[i].dist != near[j].dist {
			return near[i].dist < near[j].dist
		}

		return near[i].name < near[j].name
	})

	out := make([]string, len(near))
	for i, s := range near {
		out[i] = s.name
	}

	return out
}
