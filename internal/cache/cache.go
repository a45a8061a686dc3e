// Package cache provides the namespaced, expiring key-value store shared by
// every external lookup. Entries are stamped with their write time and
// compared against a per-namespace TTL on read; stale entries are never
// deleted, only ignored until the next successful write overwrites them.
package cache

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache namespaces. Each carries its own default TTL.
const (
	NamespaceRatings = "ratings"
	NamespaceGrades  = "grades"
)

var defaultTTLs = map[string]time.Duration{
	NamespaceRatings: 7 * 24 * time.Hour,
	NamespaceGrades:  14 * 24 * time.Hour,
}

const fallbackTTL = 24 * time.Hour

// Store wraps a thread-safe in-memory map with write-time stamping. The
// backing store never expires or evicts on its own (no janitor); expiry is
// decided here at read time so a stale entry stays physically present.
type Store struct {
	backing *gocache.Cache
	ttls    map[string]time.Duration
	now     func() time.Time
}

type entry struct {
	Timestamp time.Time
	Payload   any
}

// New builds a store. ttls overrides the default TTL per namespace; zero or
// missing values fall back to the namespace default.
func New(ttls map[string]time.Duration) *Store {
	merged := make(map[string]time.Duration, len(defaultTTLs))
	for ns, d := range defaultTTLs {
		merged[ns] = d
	}
	for ns, d := range ttls {
		if d > 0 {
			merged[ns] = d
		}
	}
	return &Store{
		backing: gocache.New(gocache.NoExpiration, 0),
		ttls:    merged,
		now:     time.Now,
	}
}

// Key joins normalized parts into a single cache key within a namespace.
func Key(parts ...string) string {
	return strings.Join(parts, "_")
}

// Get returns the cached payload, or ok=false when the key was never
// written or the entry's age has reached the namespace TTL.
func (s *Store) Get(namespace, key string) (any, bool) {
	v, found := s.backing.Get(namespace + ":" + key)
	if !found {
		return nil, false
	}
	e, ok := v.(entry)
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.Timestamp) >= s.ttlFor(namespace) {
		return nil, false
	}
	return e.Payload, true
}

// Set overwrites unconditionally, stamping the current time.
func (s *Store) Set(namespace, key string, payload any) {
	s.backing.Set(namespace+":"+key, entry{Timestamp: s.now(), Payload: payload}, gocache.NoExpiration)
}

// Clear drops every entry across all namespaces.
func (s *Store) Clear() {
	s.backing.Flush()
}

func (s *Store) ttlFor(namespace string) time.Duration {
	if d, ok := s.ttls[namespace]; ok {
		return d
	}
	return fallbackTTL
}
