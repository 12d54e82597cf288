package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type document struct {
	ID      string
	Content string
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(Config{TTL: time.Minute})
	require.NoError(t, err)
	return store
}

func TestSetThenGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Set(ctx, "GET /posts/p1", document{ID: "p1", Content: "hello"}, []Tag{Item(TypePost, "p1")})
	require.NoError(t, err)

	value, ok := store.Get(ctx, "GET /posts/p1", new(document))
	require.True(t, ok)
	doc, ok := value.(*document)
	require.True(t, ok)
	require.Equal(t, "hello", doc.Content)
}

func TestGetMiss(t *testing.T) {
	store := newTestStore(t)
	_, ok := store.Get(context.Background(), "GET /posts/none", new(document))
	require.False(t, ok)
}

func TestInvalidateTagsEvictsAndNotifies(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	tag := Item(TypePost, "p1")

	require.NoError(t, store.Set(ctx, "GET /posts/p1", document{ID: "p1"}, []Tag{tag}))

	var mu sync.Mutex
	var reasons []Reason
	cancel := store.Subscribe([]Tag{tag}, func(_ Tag, reason Reason) {
		mu.Lock()
		reasons = append(reasons, reason)
		mu.Unlock()
	})
	defer cancel()

	before := store.Epoch([]Tag{tag})
	store.InvalidateTags(ctx, tag)

	_, ok := store.Get(ctx, "GET /posts/p1", new(document))
	require.False(t, ok)
	require.Equal(t, before+1, store.Epoch([]Tag{tag}))

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []Reason{ReasonInvalidated}, reasons)
}

func TestTouchNotifiesWithoutEvicting(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	tag := Item(TypeMessage, "conv1")

	require.NoError(t, store.Set(ctx, "GET /conversations/conv1/messages", document{ID: "m1"}, []Tag{tag}))

	var mu sync.Mutex
	var reasons []Reason
	cancel := store.Subscribe([]Tag{tag}, func(_ Tag, reason Reason) {
		mu.Lock()
		reasons = append(reasons, reason)
		mu.Unlock()
	})
	defer cancel()

	store.Touch(tag)

	_, ok := store.Get(ctx, "GET /conversations/conv1/messages", new(document))
	require.True(t, ok, "touch must not evict")

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []Reason{ReasonUpdated}, reasons)
}

func TestCancelledSubscriberStaysQuiet(t *testing.T) {
	store := newTestStore(t)
	tag := List(TypeFeed)

	fired := 0
	cancel := store.Subscribe([]Tag{tag}, func(Tag, Reason) { fired++ })
	cancel()
	cancel() // idempotent

	store.InvalidateTags(context.Background(), tag)
	require.Zero(t, fired)
}

func TestInvalidateOnlyMatchingTag(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "GET /posts/p1", document{ID: "p1"}, []Tag{Item(TypePost, "p1")}))
	require.NoError(t, store.Set(ctx, "GET /posts/p2", document{ID: "p2"}, []Tag{Item(TypePost, "p2")}))

	store.InvalidateTags(ctx, Item(TypePost, "p1"))

	_, ok := store.Get(ctx, "GET /posts/p1", new(document))
	require.False(t, ok)
	_, ok = store.Get(ctx, "GET /posts/p2", new(document))
	require.True(t, ok)
}

func TestInvalidateNeverCachedTagDoesNotShieldOthers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// only the feed entry exists; Post and Saved were never cached. A
	// mutation still declares the whole superset of possibly-staled tags.
	require.NoError(t, store.Set(ctx, "GET /feed", document{ID: "p1"}, []Tag{List(TypeFeed)}))

	store.InvalidateTags(ctx, List(TypePost), Item(TypePost, "p1"), List(TypeFeed), List(TypeSaved))

	_, ok := store.Get(ctx, "GET /feed", new(document))
	require.False(t, ok, "a never-cached tag earlier in the list must not shield the feed entry")
}

func TestResetDropsEverything(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "GET /feed", document{ID: "p1"}, []Tag{List(TypeFeed)}))
	store.Reset(ctx)

	_, ok := store.Get(ctx, "GET /feed", new(document))
	require.False(t, ok)
}

func TestTagString(t *testing.T) {
	require.Equal(t, "Post", List(TypePost).String())
	require.Equal(t, "Post#p1", Item(TypePost, "p1").String())
}
