package cache

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

// defaultRedisPrefix namespaces plan keys so several applications can share
// one Redis instance.
const defaultRedisPrefix = "recast:plan:"

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// Prefix namespaces plan keys. Defaults to "recast:plan:".
	Prefix string

	// TTL bounds how long a plan survives without being rewritten.
	// Zero means no expiry.
	TTL time.Duration
}

// Redis is a persistent backend that stores plans as JSON in Redis, fronted
// by an in-process read-through layer so hot pairs do not leave the process.
type Redis struct {
	client *redis.Client
	local  sync.Map
	prefix string
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
	errs   atomic.Int64
}

var _ Backend = (*Redis)(nil)

// NewRedis connects to Redis and verifies the connection.
func NewRedis(cfg RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to connect to Redis")
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = defaultRedisPrefix
	}

	return &Redis{
		client: client,
		prefix: prefix,
		ttl:    cfg.TTL,
	}, nil
}

// Get retrieves a plan, trying the local layer first.
func (r *Redis) Get(key Key) (*Plan, bool) {
	if cached, ok := r.local.Load(key); ok {
		r.hits.Add(1)
		return cached.(*Plan), true
	}

	raw, err := r.client.Get(context.Background(), r.prefix+key.String()).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.errs.Add(1)
		}

		r.misses.Add(1)

		return nil, false
	}

	var plan Plan
	if err := json.Unmarshal(raw, &plan); err != nil {
		r.errs.Add(1)
		r.misses.Add(1)

		return nil, false
	}

	r.local.Store(key, &plan)
	r.hits.Add(1)

	return &plan, true
}

// Set stores a plan in both Redis and the local layer. A Redis write failure
// is counted but not fatal; the plan stays usable in-process.
func (r *Redis) Set(key Key, plan *Plan) {
	data, err := json.Marshal(plan)
	if err != nil {
		r.errs.Add(1)
		return
	}

	if err := r.client.Set(context.Background(), r.prefix+key.String(), data, r.ttl).Err(); err != nil {
		r.errs.Add(1)
	}

	r.local.Store(key, plan)
}

// Clear drops every plan under the configured prefix, local layer included.
func (r *Redis) Clear() {
	r.local.Range(func(k, _ any) bool {
		r.local.Delete(k)
		return true
	})

	ctx := context.Background()

	iter := r.client.Scan(ctx, 0, r.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			r.errs.Add(1)
		}
	}

	if err := iter.Err(); err != nil {
		r.errs.Add(1)
	}
}

// Stats counts entries by scanning the prefix, so it reflects what Redis
// still holds after TTL expiry.
func (r *Redis) Stats() Stats {
	var entries int64

	ctx := context.Background()

	iter := r.client.Scan(ctx, 0, r.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		entries++
	}

	if err := iter.Err(); err != nil {
		r.errs.Add(1)
	}

	return Stats{
		Hits:    r.hits.Load(),
		Misses:  r.misses.Load(),
		Entries: entries,
		Errors:  r.errs.Load(),
	}
}

// Close releases the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
