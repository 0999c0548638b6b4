package recast

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"recast/cache"
	"recast/convention"
	"recast/internal/common"
	"recast/mapping"
	"recast/utils"
)

const (
	// DefaultThreshold is the minimum confidence a convention match needs to
	// be accepted when no threshold is configured.
	DefaultThreshold = 0.8

	// DefaultMaxDepth is the nested-mapping recursion bound when none is
	// configured.
	DefaultMaxDepth = 10
)

// Config configures a Mapper. The zero value is usable: conventions enabled
// at DefaultThreshold, built-in convention set, an in-process plan cache and
// no logging.
type Config struct {
	// DisableConventions turns off convention-based inference, leaving only
	// explicit members and exact-name matches.
	DisableConventions bool

	// Threshold is the minimum confidence for an inferred match, in [0, 1].
	// Zero means DefaultThreshold.
	Threshold float64

	// Conventions replaces the built-in convention set.
	Conventions []convention.Convention

	// Cache is the plan cache backend. Nil means a fresh in-memory cache;
	// pass a shared or persistent backend to keep plans across mappers or
	// process restarts.
	Cache cache.Backend

	// Logger, when set, receives debug-level resolution traces.
	Logger *logrus.Logger

	// MaxDepth bounds nested mapping recursion. Zero means DefaultMaxDepth,
	// -1 removes the bound.
	MaxDepth int
}

// Mapper maps records between named types: explicitly configured members
// first, convention-inferred matches for the rest.
//
// Configuration calls (CreateMap, AddProfile, RegisterType, UseConventions
// and friends) are single-writer: make them before handing the mapper to
// concurrent users. Once configuration is done, Map, MapArray, MapTo and
// Explain are safe to call from any number of goroutines; the plan cache is
// the only thing that mutates at steady state and it synchronizes itself.
type Mapper struct {
	registry    *typeRegistry
	profile     *mapping.Profile
	conventions []convention.Convention
	useConv     bool
	threshold   float64
	plans       cache.Backend
	log         *logrus.Logger
	maxDepth    int
}

// New returns a Mapper for the given configuration.
func New(cfg Config) *Mapper {
	m := &Mapper{
		registry:    newTypeRegistry(),
		profile:     mapping.NewProfile("mapper"),
		conventions: cfg.Conventions,
		useConv:     !cfg.DisableConventions,
		threshold:   cfg.Threshold,
		plans:       cfg.Cache,
		log:         cfg.Logger,
		maxDepth:    cfg.MaxDepth,
	}

	if m.conventions == nil {
		m.conventions = convention.DefaultSet()
	}

	if m.threshold == 0 {
		m.threshold = DefaultThreshold
	}

	if m.plans == nil {
		m.plans = cache.NewMemory()
	}

	switch {
	case m.maxDepth == 0:
		m.maxDepth = DefaultMaxDepth
	case m.maxDepth < 0:
		m.maxDepth = 0
	}

	return m
}

// CreateMap registers and returns a mapping for the given type pair,
// creating it on first use. Calling it again for the same pair returns the
// existing mapping, so configuration can be split across call sites.
func (m *Mapper) CreateMap(source, destination string) *mapping.TypeMapping {
	return m.profile.CreateMap(source, destination)
}

// CreateMapBidirectional registers a bidirectional mapping between typeA and
// typeB, claiming both directed pairs. It fails when either direction is
// already mapped.
func (m *Mapper) CreateMapBidirectional(typeA, typeB string) (*mapping.Bidirectional, error) {
	b := mapping.NewBidirectional(typeA, typeB)
	if err := m.profile.AddBidirectional(b); err != nil {
		return nil, err
	}

	return b, nil
}

// AddProfile seals the profile and merges its mappings into the mapper. The
// merge is atomic: when any of the profile's type pairs is already mapped,
// nothing is added.
func (m *Mapper) AddProfile(p *mapping.Profile) error {
	if p == nil {
		return &mapping.Error{Kind: mapping.KindConfiguration, Message: "profile is nil"}
	}

	if err := p.Seal(); err != nil {
		return err
	}

	for _, tm := range p.Mappings() {
		if _, taken := m.profile.Mapping(tm.SourceType(), tm.DestinationType()); taken {
			return &mapping.Error{
				Kind:            mapping.KindConfiguration,
				SourceType:      tm.SourceType(),
				DestinationType: tm.DestinationType(),
				Message:         fmt.Sprintf("profile %q conflicts with an existing mapping", p.Name()),
			}
		}
	}

	for _, tm := range p.Mappings() {
		if err := m.profile.AddTypeMapping(tm); err != nil {
			return err
		}
	}

	return nil
}

// LoadProfile reads a YAML profile file, registers its declared types with
// the mapper, and returns the profile unsealed so transforms and conditions
// can be attached before AddProfile.
func (m *Mapper) LoadProfile(path string) (*mapping.Profile, error) {
	f, err := mapping.LoadFile(path)
	if err != nil {
		return nil, err
	}

	for _, typeName := range common.SortedKeys(f.Types) {
		defs := f.Types[typeName]

		fields := make([]Field, 0, len(defs))
		for _, def := range defs {
			fields = append(fields, Field{Name: def.Name, Type: def.Type})
		}

		m.registry.register(typeName, fields)
	}

	return f.Profile()
}

// Seal seals every mapping registered so far, applying pending bidirectional
// correspondences. Mappings must be sealed before the first map call; new
// mappings can still be created afterwards.
func (m *Mapper) Seal() error {
	return m.profile.SealMappings()
}

// Mapping returns the mapping registered for the directed type pair, if any.
func (m *Mapper) Mapping(source, destination string) (*mapping.TypeMapping, bool) {
	return m.profile.Mapping(source, destination)
}

// RegisterType declares a type's field set, making it usable as an inference
// destination and defining field declaration order for tiebreaks. Registering
// the same name again replaces the previous declaration.
func (m *Mapper) RegisterType(name string, fields []Field) {
	m.registry.register(name, fields)
}

// RegisterStruct declares a type's field set by introspecting a struct value
// (or pointer), honoring mapstructure tags. Nested struct fields carry their
// Go type names, so registering those types under the same names enables
// recursion into them.
func (m *Mapper) RegisterStruct(name string, sample any) error {
	fields, err := structFields(sample)
	if err != nil {
		return &mapping.Error{
			Kind:            mapping.KindConfiguration,
			DestinationType: name,
			Message:         "register struct",
			Err:             err,
		}
	}

	m.registry.register(name, fields)

	return nil
}

// UseConventions toggles convention-based inference for fields without
// explicit members. Cached plans were built under the previous setting, so
// the plan cache is cleared.
func (m *Mapper) UseConventions(enabled bool) {
	m.useConv = enabled
	m.plans.Clear()
}

// SetConventionConfidenceThreshold sets the minimum confidence for inferred
// matches and clears the plan cache. The threshold must be in [0, 1].
func (m *Mapper) SetConventionConfidenceThreshold(threshold float64) error {
	if !utils.IsInRange(0.0, threshold, 1.0) {
		return &mapping.Error{
			Kind:    mapping.KindConfiguration,
			Message: fmt.Sprintf("confidence threshold %v out of range [0, 1]", threshold),
		}
	}

	m.threshold = threshold
	m.plans.Clear()

	return nil
}

// RegisterConvention appends a convention to the matching set and clears the
// plan cache, so earlier soft misses get another chance.
func (m *Mapper) RegisterConvention(c convention.Convention) error {
	if c == nil {
		return &mapping.Error{Kind: mapping.KindConfiguration, Message: "convention is nil"}
	}

	m.conventions = append(m.conventions, c)
	m.plans.Clear()

	return nil
}

// ClearCache drops every cached mapping plan. Plans rebuild lazily on the
// next map call.
func (m *Mapper) ClearCache() {
	m.plans.Clear()
}

// CacheStats returns hit, miss and entry counters from the plan cache.
func (m *Mapper) CacheStats() cache.Stats {
	return m.plans.Stats()
}

func (m *Mapper) debugLog(msg string, fields logrus.Fields) {
	if m.log == nil {
		return
	}

	m.log.WithFields(fields).Debug(msg)
}
