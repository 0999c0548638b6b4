package recast

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recast/cache"
	"recast/mapping"
	"recast/record"
)

func TestPlanCacheStats(t *testing.T) {
	m := newUserMapper(t)

	_, err := m.Map(customerRecord(), "UserDto")
	require.NoError(t, err)

	stats := m.CacheStats()
	assert.Equal(t, int64(0), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Entries)

	_, err = m.Map(customerRecord(), "UserDto")
	require.NoError(t, err)

	stats = m.CacheStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Entries)
}

func TestClearCache(t *testing.T) {
	m := newUserMapper(t)

	_, err := m.Map(customerRecord(), "UserDto")
	require.NoError(t, err)

	m.ClearCache()
	assert.Equal(t, int64(0), m.CacheStats().Entries)

	// the next map rebuilds the plan
	out, err := m.Map(customerRecord(), "UserDto")
	require.NoError(t, err)

	email, _ := out.GetString("email")
	assert.Equal(t, "ada@example.com", email)

	stats := m.CacheStats()
	assert.Equal(t, int64(2), stats.Misses)
	assert.Equal(t, int64(1), stats.Entries)
}

func TestSharedCacheBackend(t *testing.T) {
	backend := cache.NewMemory()

	m1 := patientMapper(t, backend, 0)
	m2 := patientMapper(t, backend, 0)

	_, err := m1.Map(patientRecord(), "PatientDto")
	require.NoError(t, err)

	// the second mapper reuses the first one's plan
	_, err = m2.Map(patientRecord(), "PatientDto")
	require.NoError(t, err)

	stats := backend.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Entries)
}

func TestPersistentPlansSurviveRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.db")

	backend1, err := cache.NewSQLite(path)
	require.NoError(t, err)

	m1 := patientMapper(t, backend1, 0)

	out1, err := m1.Map(patientRecord(), "PatientDto")
	require.NoError(t, err)
	require.NoError(t, backend1.Close())

	// a fresh process: new backend on the same file, same configuration
	backend2, err := cache.NewSQLite(path)
	require.NoError(t, err)
	defer backend2.Close()

	m2 := patientMapper(t, backend2, 0)
	assert.Equal(t, int64(1), m2.CacheStats().Entries)

	out2, err := m2.Map(patientRecord(), "PatientDto")
	require.NoError(t, err)

	// the stored plan was reused and the transform re-attached from the live
	// mapping configuration
	stats := m2.CacheStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(0), stats.Misses)

	assert.True(t, out1.Equal(out2), "restart changed the result: %v vs %v", out1, out2)

	name, _ := out2.GetString("name")
	assert.Equal(t, "Dr. Ada Lovelace", name)

	email, _ := out2.GetString("email")
	assert.Equal(t, "ada@example.com", email)
}

func TestPersistedPlanStaleAfterThresholdChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.db")

	backend1, err := cache.NewSQLite(path)
	require.NoError(t, err)

	m1 := patientMapper(t, backend1, 0)

	_, err = m1.Map(patientRecord(), "PatientDto")
	require.NoError(t, err)
	require.NoError(t, backend1.Close())

	// the new run demands more confidence: the stored plan no longer applies
	backend2, err := cache.NewSQLite(path)
	require.NoError(t, err)
	defer backend2.Close()

	m2 := patientMapper(t, backend2, 0.95)

	out, err := m2.Map(patientRecord(), "PatientDto")
	require.NoError(t, err)

	// emailAddress scores 0.9: below the new threshold, so the rebuilt plan
	// leaves email unmatched
	assert.False(t, out.Has("email"))

	name, _ := out.GetString("name")
	assert.Equal(t, "Dr. Ada Lovelace", name)
}

func TestConcurrentMapCalls(t *testing.T) {
	m := newUserMapper(t)

	const workers = 8
	const iterations = 25

	var wg sync.WaitGroup

	errs := make(chan error, workers)

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := 0; i < iterations; i++ {
				out, err := m.Map(customerRecord(), "UserDto")
				if err != nil {
					errs <- err
					return
				}

				if name, _ := out.GetString("name"); name != "Ada Lovelace" {
					errs <- fmt.Errorf("unexpected name %q", name)
					return
				}

				if _, err := m.Explain(customerRecord(), "UserDto"); err != nil {
					errs <- err
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatal(err)
	}

	stats := m.CacheStats()
	assert.Equal(t, int64(1), stats.Entries)
	assert.GreaterOrEqual(t, stats.Hits, int64(workers*iterations))
}

func patientRecord() record.Record {
	return record.FromMap(map[string]any{
		"patientId":    11,
		"fullName":     "Ada Lovelace",
		"emailAddress": "ada@example.com",
	})
}

// patientMapper builds identically configured mappers for cache-sharing
// tests: an explicit transform member plus one convention-resolved field.
// A zero threshold keeps the default.
func patientMapper(t *testing.T, backend cache.Backend, threshold float64) *Mapper {
	t.Helper()

	m := New(Config{Cache: backend, Threshold: threshold})
	m.RegisterType("PatientDto", Fields("id", "name", "email"))

	tm := m.CreateMap("PatientEntity", "PatientDto")
	require.NoError(t, tm.ForMember("id", func(b *mapping.MemberBuilder) {
		b.MapFrom("patientId")
	}))
	require.NoError(t, tm.ForMember("name", func(b *mapping.MemberBuilder) {
		b.MapFrom("fullName").Using(func(v record.Value, _ record.Record) (record.Value, error) {
			s, _ := v.AsString()
			return record.String("Dr. " + s), nil
		})
	}))

	require.NoError(t, m.Seal())

	return m
}
