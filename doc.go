// Package recast maps loosely-typed records between named types, combining
// explicit per-field configuration with convention-based inference for
// everything left unconfigured.
//
// A Mapper is configured once, then used concurrently:
//
//	m := recast.New(recast.Config{})
//	m.RegisterType("UserDto", recast.Fields("id", "name", "email"))
//
//	tm := m.CreateMap("UserEntity", "UserDto")
//	tm.ForMember("id", func(b *mapping.MemberBuilder) { b.MapFrom("userId") })
//	tm.ForMember("name", func(b *mapping.MemberBuilder) { b.MapFrom("fullName") })
//
//	if err := m.Seal(); err != nil { ... }
//
//	dto, err := m.Map(user, "UserDto")
//
// Explicit members always win. Destination fields without members are filled
// by the convention set: field names are broken into word tokens and scored
// across naming styles, so "emailAddress" finds "email" and "user_id" finds
// "userId" without configuration. Matches below the confidence threshold are
// soft misses: the field stays unset and the map call still succeeds.
//
// Resolution results are plans, cached per directed type pair. The default
// cache lives in memory; Redis and SQLite backends share plans between
// processes and keep them across restarts. Plans record only data (field
// pairs, origins, confidences), never callbacks, so a restored plan is
// re-joined with its transforms through the mapping registry.
//
// Profiles bundle related mappings for registration in one call, and can be
// loaded from YAML files; bidirectional mappings derive both directions from
// one set of field correspondences.
package recast
