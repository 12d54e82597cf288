package endpoints

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/blueprint-archi/blueprint-go/pkg/cache"
	"github.com/blueprint-archi/blueprint-go/pkg/models"
	"github.com/blueprint-archi/blueprint-go/pkg/rest"
)

type harness struct {
	client *Client
	store  *cache.Store
	gets   atomic.Int64
	posts  atomic.Int64
	fail   atomic.Bool
}

func newHarness(t *testing.T) (*harness, *httptest.Server) {
	t.Helper()
	h := &harness{}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /feed", func(w http.ResponseWriter, r *http.Request) {
		serial := h.gets.Add(1)
		fmt.Fprintf(w, `{
			"success": true,
			"data": [{"_id": "p%d", "author": "u1", "content": "post %d", "likes": []}],
			"pagination": {"page": 1, "limit": 20, "total": 1, "totalPages": 1}
		}`, serial, serial)
	})
	mux.HandleFunc("DELETE /posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{}}`))
	})
	mux.HandleFunc("POST /posts", func(w http.ResponseWriter, r *http.Request) {
		h.posts.Add(1)
		if h.fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"success":false,"message":"Post creation failed"}`))
			return
		}
		w.Write([]byte(`{"success":true,"data":{"_id":"p-new","author":"u1","content":"fresh","likes":[]}}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	store, err := cache.New(cache.Config{TTL: time.Minute})
	require.NoError(t, err)
	h.store = store
	h.client = New(rest.NewTransport(server.URL), store)
	return h, server
}

func TestFetchServesSecondReadFromCache(t *testing.T) {
	h, _ := newHarness(t)
	ctx := context.Background()

	first, err := Fetch(ctx, h.client, Feed(1, 20))
	require.NoError(t, err)
	require.Len(t, first.Data, 1)

	second, err := Fetch(ctx, h.client, Feed(1, 20))
	require.NoError(t, err)
	require.Equal(t, first.Data[0].ID, second.Data[0].ID)
	require.EqualValues(t, 1, h.gets.Load())
}

func TestFetchDeduplicatesConcurrentReads(t *testing.T) {
	h := &harness{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /feed", func(w http.ResponseWriter, r *http.Request) {
		h.gets.Add(1)
		time.Sleep(100 * time.Millisecond)
		w.Write([]byte(`{"success":true,"data":[],"pagination":{"page":1}}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	store, err := cache.New(cache.Config{TTL: time.Minute})
	require.NoError(t, err)
	h.client = New(rest.NewTransport(server.URL), store)

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := Fetch(context.Background(), h.client, Feed(1, 20))
			require.NoError(t, err)
		}()
	}
	wg.Wait()
	require.EqualValues(t, 1, h.gets.Load())
}

func TestMutateInvalidatesDeclaredTags(t *testing.T) {
	h, _ := newHarness(t)
	ctx := context.Background()

	before, err := Fetch(ctx, h.client, Feed(1, 20))
	require.NoError(t, err)

	created, err := Mutate(ctx, h.client, CreatePost(), models.PostDraft{Content: "fresh"})
	require.NoError(t, err)
	require.Equal(t, "p-new", created.Data.ID)

	after, err := Fetch(ctx, h.client, Feed(1, 20))
	require.NoError(t, err)
	require.NotEqual(t, before.Data[0].ID, after.Data[0].ID, "feed must refetch after a post creation")
	require.EqualValues(t, 2, h.gets.Load())
}

func TestDeletedPostDisappearsFromLists(t *testing.T) {
	h, _ := newHarness(t)
	ctx := context.Background()

	before, err := Fetch(ctx, h.client, Feed(1, 20))
	require.NoError(t, err)
	deleted := before.Data[0].ID

	_, err = Mutate(ctx, h.client, DeletePost(deleted), nil)
	require.NoError(t, err)

	after, err := Fetch(ctx, h.client, Feed(1, 20))
	require.NoError(t, err)
	for _, post := range after.Data {
		require.NotEqual(t, deleted, post.ID)
	}
	require.EqualValues(t, 2, h.gets.Load(), "the list must come from a fresh fetch")
}

func TestFailedMutationLeavesCacheUntouched(t *testing.T) {
	h, _ := newHarness(t)
	ctx := context.Background()

	before, err := Fetch(ctx, h.client, Feed(1, 20))
	require.NoError(t, err)

	h.fail.Store(true)
	_, err = Mutate(ctx, h.client, CreatePost(), models.PostDraft{Content: "fresh"})
	var reqErr *rest.RequestError
	require.ErrorAs(t, err, &reqErr)
	require.Equal(t, "Post creation failed", reqErr.Message)

	after, err := Fetch(ctx, h.client, Feed(1, 20))
	require.NoError(t, err)
	require.Equal(t, before.Data[0].ID, after.Data[0].ID)
	require.EqualValues(t, 1, h.gets.Load(), "the cached feed must survive a failed write")
}

func TestObserveRefetchesOnInvalidation(t *testing.T) {
	h, _ := newHarness(t)

	handle := Observe(h.client, Feed(1, 20))
	defer handle.Close()

	var first Result[models.Page[models.Post]]
	select {
	case first = <-handle.Updates():
	case <-time.After(2 * time.Second):
		t.Fatal("no initial snapshot")
	}
	require.NoError(t, first.Err)
	require.Len(t, first.Data.Data, 1)

	h.store.InvalidateTags(context.Background(), cache.List(cache.TypeFeed))

	require.Eventually(t, func() bool {
		select {
		case next := <-handle.Updates():
			return next.Err == nil && len(next.Data.Data) == 1 && next.Data.Data[0].ID != first.Data.Data[0].ID
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}

func TestMergePatchesWithoutRefetch(t *testing.T) {
	h, _ := newHarness(t)
	ctx := context.Background()

	_, err := Fetch(ctx, h.client, Feed(1, 20))
	require.NoError(t, err)

	Merge(ctx, h.client, Feed(1, 20), func(page models.Page[models.Post], ok bool) (models.Page[models.Post], bool) {
		require.True(t, ok)
		page.Data = append(page.Data, models.Post{ID: "p-live", Author: models.NewUserRef("u2")})
		return page, true
	})

	merged, err := Fetch(ctx, h.client, Feed(1, 20))
	require.NoError(t, err)
	require.Len(t, merged.Data, 2)
	require.Equal(t, "p-live", merged.Data[1].ID)
	require.EqualValues(t, 1, h.gets.Load())
}

func TestMergeDeclinesOnMiss(t *testing.T) {
	h, _ := newHarness(t)

	called := false
	Merge(context.Background(), h.client, Feed(1, 20), func(page models.Page[models.Post], ok bool) (models.Page[models.Post], bool) {
		called = true
		require.False(t, ok)
		return page, false
	})
	require.True(t, called)
	require.EqualValues(t, 0, h.gets.Load())
}

func TestQueryKeyIncludesParameters(t *testing.T) {
	require.Equal(t, "GET /feed?limit=20&page=1", Feed(1, 20).Key())
	require.Equal(t, "GET /health", Health().Key())
}
