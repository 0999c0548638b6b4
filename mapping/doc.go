// Package mapping provides the immutable mapping configuration model: typed
// property and type-pair mappings with a fluent builder, bidirectional pairs,
// named profiles, and a YAML codec with structural validation.
//
// Configuration is built once, sealed, then read concurrently; after Seal any
// mutation fails with a configuration error.
//
// # Key capabilities
//
//   - Per-field members: rename (MapFrom), transform (Using), condition
//     (OnlyIf), default values, and ignores
//   - Member precedence over convention inference: a configured member always
//     wins, including Ignore
//   - Bidirectional pairs via field correspondences populating both directions
//   - Named profiles bundling related mappings for one-call registration
//   - Declarative YAML profiles sharing the programmatic model
//
// # Builder Overview
//
// A type mapping is configured destination-first:
//
//	tm := mapping.NewTypeMapping("Customer", "CustomerDto")
//	_ = tm.ForMember("fullName", func(m *mapping.MemberBuilder) {
//		m.MapFrom("name")
//	})
//	_ = tm.ForMember("displayEmail", func(m *mapping.MemberBuilder) {
//		m.MapFrom("email").Using(func(v record.Value, src record.Record) (record.Value, error) {
//			s, _ := v.AsString()
//			return record.String(strings.ToLower(s)), nil
//		})
//	})
//	_ = tm.Seal()
//
// # Schema Overview
//
// The YAML profile file has the following structure:
//
//	version: "1"
//	profile: customer-sync
//	types:
//	  CustomerDto:
//	    - id
//	    - fullName
//	    - {name: address, type: Address}
//	mappings:
//	  - source: Customer
//	    target: CustomerDto
//	    # Renames (highest priority): target field <- source field
//	    fields:
//	      fullName: name
//	    # Fields never to map
//	    ignore:
//	      - internalNotes
//	    # Literal values for absent sources
//	    defaults:
//	      status: active
//	    # Convention-proposed matches awaiting review (lowest priority)
//	    auto:
//	      - target: email
//	        source: emailAddress
//	        confidence: 0.9
//	        convention: prefix
//
// # Priority Order
//
// When several rules touch the same destination field:
//  1. "fields" renames (highest)
//  2. "ignore" list
//  3. "auto" best-effort matches (lowest)
//
// Defaults attach to whichever rule claims the field.
//
// Transforms and conditions are closures and cannot be expressed in YAML;
// build the profile from a File and attach them via ForMember before sealing.
package mapping
