// Package cache stores resolved mapping plans keyed by directed type pair.
//
// A plan is the data-only outcome of resolving how one type maps onto
// another: per-destination source assignments with their origins and
// confidences, plus the destinations nothing could fill. Plans deliberately
// carry no closures, so they serialize cleanly; persistent backends (Redis,
// SQLite) keep plans across process restarts and the mapper re-attaches
// transforms from its registered configuration after a hit.
//
// Backends are safe for concurrent use. Entries are immutable: invalidation
// replaces a plan wholesale, it never mutates one in place.
package cache
