package endpoints

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/blueprint-archi/blueprint-go/pkg/cache"
	"github.com/blueprint-archi/blueprint-go/pkg/rest"
)

// Client executes the declarative endpoint definitions against one transport
// and one entity cache. Concurrent reads of the same key collapse into a
// single in-flight request.
type Client struct {
	rest  *rest.Transport
	cache *cache.Store
	group singleflight.Group
}

func New(transport *rest.Transport, store *cache.Store) *Client {
	return &Client{
		rest:  transport,
		cache: store,
	}
}

func (c *Client) Cache() *cache.Store {
	return c.cache
}

func (c *Client) Rest() *rest.Transport {
	return c.rest
}

// Query declares one read operation: how to build the request and which tags
// the response provides.
type Query[T any] struct {
	Name     string
	Path     string
	Query    url.Values
	Provides []cache.Tag
}

func (q Query[T]) Key() string {
	if len(q.Query) == 0 {
		return "GET " + q.Path
	}
	return "GET " + q.Path + "?" + q.Query.Encode()
}

// Mutation declares one write operation and the superset of tags it may have
// staled.
type Mutation[T any] struct {
	Name        string
	Method      string
	Path        string
	Invalidates []cache.Tag
}

// Fetch resolves a query: cache hit first, otherwise one deduplicated network
// round trip whose result is cached under the query's tags. A result that
// raced with an invalidation of its own tags is returned but not cached.
func Fetch[T any](ctx context.Context, c *Client, q Query[T]) (T, error) {
	var zero T
	key := q.Key()

	if cached, ok := c.cache.Get(ctx, key, new(T)); ok {
		if value, ok := cached.(*T); ok {
			return *value, nil
		}
	}

	value, err, shared := c.group.Do(key, func() (any, error) {
		epoch := c.cache.Epoch(q.Provides)

		var out T
		if err := c.rest.Do(ctx, http.MethodGet, q.Path, q.Query, nil, &out); err != nil {
			return nil, err
		}

		if c.cache.Epoch(q.Provides) == epoch {
			if err := c.cache.Set(ctx, key, out, q.Provides); err != nil {
				log.Warn().Err(err).Str("query", q.Name).Msg("An error occurred when caching a query result...")
			}
		}
		return out, nil
	})
	if err != nil {
		return zero, err
	}
	if shared {
		log.Debug().Str("query", q.Name).Msg("Deduplicated a concurrent read.")
	}
	return value.(T), nil
}

// Mutate issues a write. On success every declared tag is invalidated; on
// failure the cache is left exactly as it was and the error goes to the
// caller alone.
func Mutate[T any](ctx context.Context, c *Client, m Mutation[T], payload any) (T, error) {
	var out T
	if err := c.rest.Do(ctx, m.Method, m.Path, nil, payload, &out); err != nil {
		return out, err
	}
	if len(m.Invalidates) > 0 {
		c.cache.InvalidateTags(ctx, m.Invalidates...)
	}
	return out, nil
}

// Merge patches a cached query result in place, then wakes its observers so
// they re-read the cache without a network round trip. When the query is not
// cached at all, fn receives ok=false and usually declines; nothing is
// pre-populated for views nobody rendered.
func Merge[T any](ctx context.Context, c *Client, q Query[T], fn func(current T, ok bool) (T, bool)) {
	key := q.Key()

	var current T
	hit := false
	if cached, ok := c.cache.Get(ctx, key, new(T)); ok {
		if value, ok := cached.(*T); ok {
			current = *value
			hit = true
		}
	}

	next, ok := fn(current, hit)
	if !ok {
		return
	}
	if err := c.cache.Set(ctx, key, next, q.Provides); err != nil {
		log.Warn().Err(err).Str("query", q.Name).Msg("An error occurred when merging into the cache...")
		return
	}
	c.cache.Touch(q.Provides...)
}

// Result is one observable snapshot of a query.
type Result[T any] struct {
	Data    T
	Err     error
	Loading bool
}

// Handle is the hook-like accessor for one query: a current snapshot plus a
// channel of updates. Closing a handle abandons interest in the result, it
// never cancels anything already in flight.
type Handle[T any] struct {
	client *Client
	query  Query[T]

	mu      sync.Mutex
	current Result[T]
	updates chan Result[T]
	cancel  func()
	closed  bool
}

// Observe starts watching a query. The handle refreshes itself whenever one
// of the query's tags is invalidated or updated.
func Observe[T any](c *Client, q Query[T]) *Handle[T] {
	h := &Handle[T]{
		client:  c,
		query:   q,
		current: Result[T]{Loading: true},
		updates: make(chan Result[T], 8),
	}
	h.cancel = c.cache.Subscribe(q.Provides, func(tag cache.Tag, reason cache.Reason) {
		go h.refresh()
	})
	go h.refresh()
	return h
}

func (h *Handle[T]) refresh() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	data, err := Fetch(context.Background(), h.client, h.query)
	h.publish(Result[T]{Data: data, Err: err})
}

func (h *Handle[T]) publish(r Result[T]) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.current = r
	select {
	case h.updates <- r:
	default:
		// observer is behind, drop the oldest snapshot
		select {
		case <-h.updates:
		default:
		}
		h.updates <- r
	}
}

func (h *Handle[T]) Snapshot() Result[T] {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

func (h *Handle[T]) Updates() <-chan Result[T] {
	return h.updates
}

func (h *Handle[T]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	h.cancel()
	close(h.updates)
}

func pageQuery(page, limit int) url.Values {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return query
}
