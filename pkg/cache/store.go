package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
	gocache "github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Reason tells a subscriber why it was woken up.
type Reason int

const (
	// ReasonInvalidated means the cached entry was evicted, the next
	// observation must refetch.
	ReasonInvalidated Reason = iota
	// ReasonUpdated means the cached value was replaced in place, the next
	// observation will hit the cache.
	ReasonUpdated
)

type Config struct {
	TTL         time.Duration
	NumCounters int64
	MaxCost     int64
}

func DefaultConfig() Config {
	return Config{
		TTL:         5 * time.Minute,
		NumCounters: 1e4,
		MaxCost:     1e7,
	}
}

type subscriber struct {
	fn     func(Tag, Reason)
	closed bool
}

// Store is the single shared mutable resource of the client: a normalized
// cache of server responses keyed by query, grouped by entity tags. It is
// never authoritative, every entry can be dropped at any time.
type Store struct {
	inner   *ristretto.Cache
	manager *gocache.Cache[any]
	marshal *marshaler.Marshaler
	ttl     time.Duration

	mu      sync.Mutex
	epochs  map[string]uint64
	subs    map[string]map[uint64]*subscriber
	nextSub uint64
}

func New(cfg Config) (*Store, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultConfig().TTL
	}
	if cfg.NumCounters <= 0 {
		cfg.NumCounters = DefaultConfig().NumCounters
	}
	if cfg.MaxCost <= 0 {
		cfg.MaxCost = DefaultConfig().MaxCost
	}

	inner, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to build ristretto cache: %v", err)
	}

	manager := gocache.New[any](ristretto_store.NewRistretto(inner))
	return &Store{
		inner:   inner,
		manager: manager,
		marshal: marshaler.New(manager),
		ttl:     cfg.TTL,
		epochs:  map[string]uint64{},
		subs:    map[string]map[uint64]*subscriber{},
	}, nil
}

// Get loads a cached value into returnObj. The second return reports a hit.
func (s *Store) Get(ctx context.Context, key string, returnObj any) (any, bool) {
	value, err := s.marshal.Get(ctx, key, returnObj)
	if err != nil {
		return nil, false
	}
	return value, true
}

// Set writes a value under key, grouped by tags, with the store TTL.
func (s *Store) Set(ctx context.Context, key string, value any, tags []Tag) error {
	err := s.marshal.Set(
		ctx,
		key,
		value,
		store.WithExpiration(s.ttl),
		store.WithTags(lo.Map(tags, func(tag Tag, _ int) string { return tag.String() })),
	)
	if err != nil {
		return fmt.Errorf("unable to store cache entry: %v", err)
	}
	// ristretto admits writes asynchronously; wait so a read right after a
	// write observes it.
	s.inner.Wait()
	return nil
}

// InvalidateTags evicts every entry grouped under the given tags, bumps their
// epochs, and wakes matching subscribers. Unobserved entries are simply gone,
// nothing refetches them eagerly.
func (s *Store) InvalidateTags(ctx context.Context, tags ...Tag) {
	if len(tags) == 0 {
		return
	}

	// one call per tag: the store stops at the first tag without an index
	// entry, which would skip every tag after a never-cached one
	for _, tag := range tags {
		if err := s.marshal.Invalidate(ctx, store.WithInvalidateTags([]string{tag.String()})); err != nil {
			log.Warn().Err(err).Str("tag", tag.String()).Msg("An error occurred when invalidating a cache tag...")
		}
	}
	s.inner.Wait()

	s.bumpAndNotify(tags, ReasonInvalidated)
}

// Touch wakes subscribers of the given tags without evicting anything. Used
// after an in-place merge (realtime events) so observers re-read the cache.
func (s *Store) Touch(tags ...Tag) {
	s.bumpAndNotify(tags, ReasonUpdated)
}

func (s *Store) bumpAndNotify(tags []Tag, reason Reason) {
	s.mu.Lock()
	var wake []func()
	for _, tag := range tags {
		key := tag.String()
		s.epochs[key]++
		for _, sub := range s.subs[key] {
			if sub.closed {
				continue
			}
			fn, t := sub.fn, tag
			wake = append(wake, func() { fn(t, reason) })
		}
	}
	s.mu.Unlock()

	for _, fn := range wake {
		fn()
	}
}

// Subscribe registers an observer for a set of tags. The returned cancel is
// idempotent.
func (s *Store) Subscribe(tags []Tag, fn func(Tag, Reason)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSub++
	id := s.nextSub
	sub := &subscriber{fn: fn}
	for _, tag := range tags {
		key := tag.String()
		if s.subs[key] == nil {
			s.subs[key] = map[uint64]*subscriber{}
		}
		s.subs[key][id] = sub
	}

	keys := lo.Map(tags, func(tag Tag, _ int) string { return tag.String() })
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		sub.closed = true
		for _, key := range keys {
			delete(s.subs[key], id)
		}
	}
}

// Epoch sums the invalidation epochs of a tag set. A fetch that started
// before an invalidation compares epochs to know its result is already stale.
func (s *Store) Epoch(tags []Tag) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum uint64
	for _, tag := range tags {
		sum += s.epochs[tag.String()]
	}
	return sum
}

// Reset drops everything, used on logout.
func (s *Store) Reset(ctx context.Context) {
	if err := s.manager.Clear(ctx); err != nil {
		log.Warn().Err(err).Msg("An error occurred when clearing the cache...")
	}

	s.mu.Lock()
	tags := lo.Keys(s.epochs)
	s.mu.Unlock()

	s.bumpAndNotify(lo.Map(tags, func(key string, _ int) Tag {
		return Tag{Type: key}
	}), ReasonInvalidated)
}

// Sweep prunes dead subscriber slots and reports cache pressure. Scheduled by
// the application, not self-timed.
func (s *Store) Sweep() {
	s.mu.Lock()
	pruned := 0
	for key, subs := range s.subs {
		for id, sub := range subs {
			if sub.closed {
				delete(subs, id)
				pruned++
			}
		}
		if len(subs) == 0 {
			delete(s.subs, key)
		}
	}
	s.mu.Unlock()

	metrics := s.inner.Metrics
	log.Debug().
		Int("pruned", pruned).
		Uint64("hits", metrics.Hits()).
		Uint64("misses", metrics.Misses()).
		Msg("Swept the entity cache.")
}
