package recast

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recast/mapping"
	"recast/record"
)

func customerRecord() record.Record {
	return record.FromMap(map[string]any{
		"userId":       7,
		"fullName":     "Ada Lovelace",
		"emailAddress": "ada@example.com",
	})
}

// newUserMapper configures the canonical UserEntity -> UserDto mapping:
// id and name explicit, email left to conventions.
func newUserMapper(t *testing.T) *Mapper {
	t.Helper()

	m := New(Config{})
	m.RegisterType("UserDto", Fields("id", "name", "email"))

	tm := m.CreateMap("UserEntity", "UserDto")
	require.NoError(t, tm.ForMember("id", func(b *mapping.MemberBuilder) {
		b.MapFrom("userId")
	}))
	require.NoError(t, tm.ForMember("name", func(b *mapping.MemberBuilder) {
		b.MapFrom("fullName")
	}))

	require.NoError(t, m.Seal())

	return m
}

func TestMapExplicitAndConvention(t *testing.T) {
	m := newUserMapper(t)

	out, err := m.Map(customerRecord(), "UserDto")
	require.NoError(t, err)

	id, _ := out.GetInt("id")
	assert.Equal(t, int64(7), id)

	name, _ := out.GetString("name")
	assert.Equal(t, "Ada Lovelace", name)

	// emailAddress matched email by convention, above the default threshold
	email, ok := out.GetString("email")
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", email)
}

func TestMapSoftMiss(t *testing.T) {
	m := newUserMapper(t)

	src := record.FromMap(map[string]any{
		"userId":       7,
		"fullName":     "Ada Lovelace",
		"contactEmail": "ada@example.com",
	})

	out, err := m.Map(src, "UserDto")
	require.NoError(t, err)

	// contactEmail scores far below the threshold: email stays unset and the
	// call still succeeds
	assert.False(t, out.Has("email"))

	name, _ := out.GetString("name")
	assert.Equal(t, "Ada Lovelace", name)
}

func TestExplicitMemberWinsOverConvention(t *testing.T) {
	m := New(Config{})
	m.RegisterType("Dto", Fields("name"))

	tm := m.CreateMap("Entity", "Dto")
	require.NoError(t, tm.ForMember("name", func(b *mapping.MemberBuilder) {
		b.MapFrom("fullName")
	}))
	require.NoError(t, m.Seal())

	// the source carries an exact-name field too; the explicit member wins
	src := record.FromMap(map[string]any{
		"name":     "by convention",
		"fullName": "by member",
	})

	out, err := m.Map(src, "Dto")
	require.NoError(t, err)

	name, _ := out.GetString("name")
	assert.Equal(t, "by member", name)
}

func TestIgnoredFieldStaysUnset(t *testing.T) {
	m := New(Config{})
	m.RegisterType("Dto", Fields("name", "secret"))

	tm := m.CreateMap("Entity", "Dto")
	require.NoError(t, tm.ForMember("secret", func(b *mapping.MemberBuilder) {
		b.Ignore()
	}))
	require.NoError(t, m.Seal())

	src := record.FromMap(map[string]any{
		"name":   "visible",
		"secret": "classified",
	})

	out, err := m.Map(src, "Dto")
	require.NoError(t, err)

	name, _ := out.GetString("name")
	assert.Equal(t, "visible", name)
	assert.False(t, out.Has("secret"))
}

func TestThresholdBoundary(t *testing.T) {
	m := New(Config{})
	m.RegisterType("Dto", Fields("email"))
	src := record.FromMap(map[string]any{"emailAddress": "a@b.c"})

	// emailAddress vs email scores 0.9: rejected at 0.95
	require.NoError(t, m.SetConventionConfidenceThreshold(0.95))

	out, err := m.Map(src, "Dto")
	require.NoError(t, err)
	assert.False(t, out.Has("email"))

	// the boundary is inclusive: accepted at exactly 0.9
	require.NoError(t, m.SetConventionConfidenceThreshold(0.9))

	out, err = m.Map(src, "Dto")
	require.NoError(t, err)
	assert.True(t, out.Has("email"))

	// and at the default 0.8
	require.NoError(t, m.SetConventionConfidenceThreshold(0.8))

	out, err = m.Map(src, "Dto")
	require.NoError(t, err)

	email, _ := out.GetString("email")
	assert.Equal(t, "a@b.c", email)
}

func TestOneToOneAssignment(t *testing.T) {
	m := New(Config{})
	m.RegisterType("Dto", Fields("email", "emailAddress"))

	// one source field, two destination candidates: the exact-name match wins
	// the source and the other destination stays unmatched
	src := record.FromMap(map[string]any{"email": "a@b.c"})

	out, err := m.Map(src, "Dto")
	require.NoError(t, err)

	email, _ := out.GetString("email")
	assert.Equal(t, "a@b.c", email)
	assert.False(t, out.Has("emailAddress"))
}

func TestOneSourcePerDestination(t *testing.T) {
	m := New(Config{})
	m.RegisterType("Dto", Fields("email"))

	// two plausible sources: the higher-confidence exact match decides
	src := record.FromMap(map[string]any{
		"email":        "exact@b.c",
		"emailAddress": "fuzzy@b.c",
	})

	out, err := m.Map(src, "Dto")
	require.NoError(t, err)

	email, _ := out.GetString("email")
	assert.Equal(t, "exact@b.c", email)
}

func TestMapArray(t *testing.T) {
	m := newUserMapper(t)

	sources := []record.Record{
		record.FromMap(map[string]any{"userId": 1, "fullName": "First"}),
		record.FromMap(map[string]any{"userId": 2, "fullName": "Second"}),
		record.FromMap(map[string]any{"userId": 3, "fullName": "Third"}),
	}

	out, err := m.MapArray(sources, "UserDto")
	require.NoError(t, err)
	require.Len(t, out, 3)

	for i, want := range []string{"First", "Second", "Third"} {
		name, _ := out[i].GetString("name")
		assert.Equal(t, want, name)

		id, _ := out[i].GetInt("id")
		assert.Equal(t, int64(i+1), id)
	}
}

func TestMapArrayEmpty(t *testing.T) {
	m := newUserMapper(t)

	out, err := m.MapArray(nil, "UserDto")
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestMapArrayFailsFastWithIndex(t *testing.T) {
	m := New(Config{})

	tm := m.CreateMap("Entity", "Dto")
	require.NoError(t, tm.ForMember("code", func(b *mapping.MemberBuilder) {
		b.Using(func(v record.Value, _ record.Record) (record.Value, error) {
			if v.IsNil() {
				return record.Nil(), errors.New("code is required")
			}

			return v, nil
		})
	}))
	require.NoError(t, m.Seal())

	sources := []record.Record{
		record.FromMap(map[string]any{"code": "ok"}),
		record.FromMap(map[string]any{}),
	}

	_, err := m.MapArray(sources, "Dto")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "element 1")
	assert.True(t, mapping.IsKind(err, mapping.KindTransform))
}

func TestMapToKeepsExistingValues(t *testing.T) {
	m := newUserMapper(t)

	existing := record.FromMap(map[string]any{
		"id":      1,
		"email":   "old@example.com",
		"version": 4,
	})

	src := record.FromMap(map[string]any{
		"userId":   7,
		"fullName": "Ada Lovelace",
	})

	out, err := m.MapTo(src, "UserDto", existing)
	require.NoError(t, err)

	// resolved fields overwrite
	id, _ := out.GetInt("id")
	assert.Equal(t, int64(7), id)

	// email had no source this time: the existing value survives
	email, _ := out.GetString("email")
	assert.Equal(t, "old@example.com", email)

	// fields outside the mapping are untouched
	version, _ := out.GetInt("version")
	assert.Equal(t, int64(4), version)

	// the original destination record is not modified
	id, _ = existing.GetInt("id")
	assert.Equal(t, int64(1), id)
}

func TestTransform(t *testing.T) {
	m := New(Config{})

	tm := m.CreateMap("Entity", "Dto")
	require.NoError(t, tm.ForMember("display", func(b *mapping.MemberBuilder) {
		b.MapFrom("name").Using(func(v record.Value, _ record.Record) (record.Value, error) {
			s, _ := v.AsString()
			return record.String("<" + s + ">"), nil
		})
	}))
	require.NoError(t, m.Seal())

	out, err := m.Map(record.FromMap(map[string]any{"name": "ada"}), "Dto")
	require.NoError(t, err)

	display, _ := out.GetString("display")
	assert.Equal(t, "<ada>", display)
}

func TestTransformRunsOnAbsentSource(t *testing.T) {
	m := New(Config{})

	tm := m.CreateMap("Entity", "Dto")
	require.NoError(t, tm.ForMember("label", func(b *mapping.MemberBuilder) {
		b.MapFrom("missing").Using(func(v record.Value, _ record.Record) (record.Value, error) {
			if v.IsNil() {
				return record.String("fallback"), nil
			}

			return v, nil
		})
	}))
	require.NoError(t, m.Seal())

	out, err := m.Map(record.New(), "Dto")
	require.NoError(t, err)

	label, _ := out.GetString("label")
	assert.Equal(t, "fallback", label)
}

func TestTransformResultIsAuthoritative(t *testing.T) {
	m := New(Config{})

	tm := m.CreateMap("Entity", "Dto")
	require.NoError(t, tm.ForMember("blank", func(b *mapping.MemberBuilder) {
		b.Using(func(record.Value, record.Record) (record.Value, error) {
			return record.Nil(), nil
		})
	}))
	require.NoError(t, m.Seal())

	out, err := m.Map(record.FromMap(map[string]any{"blank": "ignored"}), "Dto")
	require.NoError(t, err)

	// the transform returned the nil value; it is still written
	v, ok := out.Get("blank")
	require.True(t, ok)
	assert.True(t, v.IsNil())
}

func TestTransformErrorCarriesContext(t *testing.T) {
	m := New(Config{})

	boom := errors.New("boom")

	tm := m.CreateMap("OrderEntity", "OrderDto")
	require.NoError(t, tm.ForMember("total", func(b *mapping.MemberBuilder) {
		b.Using(func(record.Value, record.Record) (record.Value, error) {
			return record.Nil(), boom
		})
	}))
	require.NoError(t, m.Seal())

	_, err := m.Map(record.New(), "OrderDto")
	require.Error(t, err)

	assert.True(t, mapping.IsKind(err, mapping.KindTransform))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "OrderEntity")
	assert.Contains(t, err.Error(), "OrderDto")
	assert.Contains(t, err.Error(), `"total"`)
}

func TestConditionSkipsField(t *testing.T) {
	m := New(Config{})

	tm := m.CreateMap("Entity", "Dto")
	require.NoError(t, tm.ForMember("discount", func(b *mapping.MemberBuilder) {
		b.OnlyIf(func(src record.Record) bool {
			vip, _ := src.GetBool("vip")
			return vip
		})
	}))
	require.NoError(t, m.Seal())

	out, err := m.Map(record.FromMap(map[string]any{"discount": 10, "vip": false}), "Dto")
	require.NoError(t, err)
	assert.False(t, out.Has("discount"))

	out, err = m.Map(record.FromMap(map[string]any{"discount": 10, "vip": true}), "Dto")
	require.NoError(t, err)

	discount, _ := out.GetInt("discount")
	assert.Equal(t, int64(10), discount)
}

func TestConditionFallsBackToDefault(t *testing.T) {
	m := New(Config{})

	tm := m.CreateMap("Entity", "Dto")
	require.NoError(t, tm.ForMember("tier", func(b *mapping.MemberBuilder) {
		b.OnlyIf(func(record.Record) bool { return false }).
			Default(record.String("standard"))
	}))
	require.NoError(t, m.Seal())

	out, err := m.Map(record.FromMap(map[string]any{"tier": "gold"}), "Dto")
	require.NoError(t, err)

	tier, _ := out.GetString("tier")
	assert.Equal(t, "standard", tier)
}

func TestDefaultFillsAbsentSource(t *testing.T) {
	m := New(Config{})

	tm := m.CreateMap("Entity", "Dto")
	require.NoError(t, tm.ForMember("status", func(b *mapping.MemberBuilder) {
		b.Default(record.String("active"))
	}))
	require.NoError(t, m.Seal())

	out, err := m.Map(record.New(), "Dto")
	require.NoError(t, err)

	status, _ := out.GetString("status")
	assert.Equal(t, "active", status)

	// a present source field still wins over the default
	out, err = m.Map(record.FromMap(map[string]any{"status": "suspended"}), "Dto")
	require.NoError(t, err)

	status, _ = out.GetString("status")
	assert.Equal(t, "suspended", status)
}

func TestMapUnsealedMapping(t *testing.T) {
	m := New(Config{})

	tm := m.CreateMap("Entity", "Dto")
	require.NoError(t, tm.ForMember("id", nil))

	_, err := m.Map(record.FromMap(map[string]any{"id": 1}), "Dto")
	require.Error(t, err)
	assert.True(t, mapping.IsKind(err, mapping.KindConfiguration))
	assert.Contains(t, err.Error(), "not sealed")
}

func TestMapUnresolvableType(t *testing.T) {
	m := New(Config{})

	_, err := m.Map(record.FromMap(map[string]any{"id": 1}), "NowhereDto")
	require.Error(t, err)
	assert.True(t, mapping.IsKind(err, mapping.KindResolution))
	assert.Contains(t, err.Error(), "NowhereDto")

	// with conventions off the message says so
	m.UseConventions(false)

	_, err = m.Map(record.FromMap(map[string]any{"id": 1}), "NowhereDto")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conventions are disabled")
}

func TestMapSourceTypeInference(t *testing.T) {
	m := New(Config{})
	m.RegisterType("Dto", Fields("id"))

	tm := m.CreateMap("Alpha", "Dto")
	require.NoError(t, tm.ForMember("id", func(b *mapping.MemberBuilder) {
		b.MapFrom("alphaId")
	}))
	require.NoError(t, m.Seal())

	// one mapping targets Dto: its source type is inferred
	out, err := m.Map(record.FromMap(map[string]any{"alphaId": 1}), "Dto")
	require.NoError(t, err)

	id, _ := out.GetInt("id")
	assert.Equal(t, int64(1), id)

	// a second mapping makes the inference ambiguous
	tm = m.CreateMap("Beta", "Dto")
	require.NoError(t, tm.ForMember("id", func(b *mapping.MemberBuilder) {
		b.MapFrom("betaId")
	}))
	require.NoError(t, m.Seal())

	_, err = m.Map(record.FromMap(map[string]any{"betaId": 2}), "Dto")
	require.Error(t, err)
	assert.True(t, mapping.IsKind(err, mapping.KindResolution))
	assert.Contains(t, err.Error(), "ambiguous")
	assert.Contains(t, err.Error(), "Alpha")
	assert.Contains(t, err.Error(), "Beta")

	// MapAs resolves it
	out, err = m.MapAs(record.FromMap(map[string]any{"betaId": 2}), "Beta", "Dto")
	require.NoError(t, err)

	id, _ = out.GetInt("id")
	assert.Equal(t, int64(2), id)
}

func TestMapAnonymousShape(t *testing.T) {
	m := New(Config{})
	m.RegisterType("Dto", Fields("id", "email"))

	// no mapping at all: conventions alone carry the pair
	out, err := m.Map(record.FromMap(map[string]any{
		"id":           5,
		"emailAddress": "x@y.z",
	}), "Dto")
	require.NoError(t, err)

	id, _ := out.GetInt("id")
	assert.Equal(t, int64(5), id)

	email, _ := out.GetString("email")
	assert.Equal(t, "x@y.z", email)
}

func TestConventionsDisabled(t *testing.T) {
	m := New(Config{DisableConventions: true})
	m.RegisterType("Dto", Fields("id", "name"))

	out, err := m.Map(record.FromMap(map[string]any{
		"id":        3,
		"nameField": "ada",
	}), "Dto")
	require.NoError(t, err)

	// exact names still copy, fuzzy matches do not
	id, _ := out.GetInt("id")
	assert.Equal(t, int64(3), id)
	assert.False(t, out.Has("name"))

	m.UseConventions(true)

	out, err = m.Map(record.FromMap(map[string]any{
		"id":        3,
		"nameField": "ada",
	}), "Dto")
	require.NoError(t, err)

	name, _ := out.GetString("name")
	assert.Equal(t, "ada", name)
}

func TestNestedRecordMapping(t *testing.T) {
	m := New(Config{})
	m.RegisterType("CustomerDto", Fields("id", "name", "email"))
	m.RegisterType("OrderDto", []Field{
		{Name: "id"},
		{Name: "customer", Type: "CustomerDto"},
	})

	src := record.FromMap(map[string]any{
		"id": 100,
		"customer": map[string]any{
			"id":           7,
			"name":         "Ada",
			"emailAddress": "ada@example.com",
		},
	})

	out, err := m.Map(src, "OrderDto")
	require.NoError(t, err)

	customer, ok := out.GetRecord("customer")
	require.True(t, ok)

	email, _ := customer.GetString("email")
	assert.Equal(t, "ada@example.com", email)
	assert.False(t, customer.Has("emailAddress"))
}

func TestNestedListMapping(t *testing.T) {
	m := New(Config{})
	m.RegisterType("LineDto", Fields("sku", "qty"))
	m.RegisterType("OrderDto", []Field{
		{Name: "id"},
		{Name: "lines", Type: "[]LineDto"},
	})

	src := record.FromMap(map[string]any{
		"id": 1,
		"lines": []any{
			map[string]any{"sku": "A-1", "qty": 2, "warehouse": "N"},
			map[string]any{"sku": "B-2", "qty": 1, "warehouse": "S"},
		},
	})

	out, err := m.Map(src, "OrderDto")
	require.NoError(t, err)

	lines, ok := out.GetList("lines")
	require.True(t, ok)
	require.Len(t, lines, 2)

	first, ok := lines[0].Record()
	require.True(t, ok)

	sku, _ := first.GetString("sku")
	assert.Equal(t, "A-1", sku)

	// the element was mapped into LineDto shape, extra fields dropped
	assert.False(t, first.Has("warehouse"))
}

func TestNestedDepthBound(t *testing.T) {
	m := New(Config{MaxDepth: 1})
	m.RegisterType("Node", []Field{
		{Name: "value"},
		{Name: "child", Type: "Node"},
	})

	src := record.FromMap(map[string]any{
		"valueField": "root",
		"child": map[string]any{
			"valueField": "level1",
			"child": map[string]any{
				"valueField": "level2",
			},
		},
	})

	out, err := m.Map(src, "Node")
	require.NoError(t, err)

	v, _ := out.GetString("value")
	assert.Equal(t, "root", v)

	child, ok := out.GetRecord("child")
	require.True(t, ok)

	v, _ = child.GetString("value")
	assert.Equal(t, "level1", v)

	// past the depth bound the record passes through unmapped
	grandchild, ok := child.GetRecord("child")
	require.True(t, ok)
	assert.True(t, grandchild.Has("valueField"))
	assert.False(t, grandchild.Has("value"))
}

func TestUnrecursableTypePassesThrough(t *testing.T) {
	m := New(Config{})
	m.RegisterType("Dto", []Field{
		{Name: "payload", Type: "Opaque"},
	})

	src := record.FromMap(map[string]any{
		"payload": map[string]any{"anything": true},
	})

	out, err := m.Map(src, "Dto")
	require.NoError(t, err)

	// Opaque is neither registered nor mapped: the value is copied verbatim
	payload, ok := out.GetRecord("payload")
	require.True(t, ok)
	assert.True(t, payload.Has("anything"))
}

func TestBidirectionalRoundTrip(t *testing.T) {
	m := New(Config{})

	b, err := m.CreateMapBidirectional("UserEntity", "UserDto")
	require.NoError(t, err)

	require.NoError(t, b.ForwardMember("fullName", func(mb *mapping.MemberBuilder) {
		mb.MapFrom("firstName").Using(func(_ record.Value, src record.Record) (record.Value, error) {
			first, _ := src.GetString("firstName")
			last, _ := src.GetString("lastName")

			return record.String(first + " " + last), nil
		})
	}))
	require.NoError(t, b.ReverseMember("firstName", func(mb *mapping.MemberBuilder) {
		mb.MapFrom("fullName").Using(splitName(0))
	}))
	require.NoError(t, b.ReverseMember("lastName", func(mb *mapping.MemberBuilder) {
		mb.MapFrom("fullName").Using(splitName(1))
	}))

	require.NoError(t, m.Seal())

	entity := record.FromMap(map[string]any{
		"firstName": "Ada",
		"lastName":  "Lovelace",
	})

	dto, err := m.Map(entity, "UserDto")
	require.NoError(t, err)

	fullName, _ := dto.GetString("fullName")
	assert.Equal(t, "Ada Lovelace", fullName)

	back, err := m.Map(dto, "UserEntity")
	require.NoError(t, err)
	assert.True(t, entity.Equal(back), "round trip should restore the original, got %v", back)
}

func splitName(index int) mapping.Transform {
	return func(v record.Value, _ record.Record) (record.Value, error) {
		s, ok := v.AsString()
		if !ok {
			return record.Nil(), fmt.Errorf("expected a string name, got %s", v.Kind())
		}

		parts := strings.Fields(s)
		if index >= len(parts) {
			return record.Nil(), fmt.Errorf("name %q has no part %d", s, index)
		}

		return record.String(parts[index]), nil
	}
}
