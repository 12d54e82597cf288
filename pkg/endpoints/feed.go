package endpoints

import (
	"net/http"
	"net/url"

	"github.com/blueprint-archi/blueprint-go/pkg/cache"
	"github.com/blueprint-archi/blueprint-go/pkg/models"
)

func Feed(page, limit int) Query[models.Page[models.Post]] {
	return Query[models.Page[models.Post]]{
		Name:     "feed.home",
		Path:     "/feed",
		Query:    pageQuery(page, limit),
		Provides: []cache.Tag{cache.List(cache.TypeFeed)},
	}
}

func Trending(page, limit int) Query[models.Page[models.Post]] {
	return Query[models.Page[models.Post]]{
		Name:     "feed.trending",
		Path:     "/trending",
		Query:    pageQuery(page, limit),
		Provides: []cache.Tag{cache.List(cache.TypeFeed)},
	}
}

func SavedPosts(page, limit int) Query[models.Page[models.Post]] {
	return Query[models.Page[models.Post]]{
		Name:     "saved.list",
		Path:     "/saved",
		Query:    pageQuery(page, limit),
		Provides: []cache.Tag{cache.List(cache.TypeSaved)},
	}
}

func SavePost(id string) Mutation[models.Envelope[struct{}]] {
	return Mutation[models.Envelope[struct{}]]{
		Name:        "saved.save",
		Method:      http.MethodPost,
		Path:        "/saved/" + url.PathEscape(id),
		Invalidates: []cache.Tag{cache.List(cache.TypeSaved)},
	}
}

func UnsavePost(id string) Mutation[models.Envelope[struct{}]] {
	return Mutation[models.Envelope[struct{}]]{
		Name:        "saved.unsave",
		Method:      http.MethodDelete,
		Path:        "/saved/" + url.PathEscape(id),
		Invalidates: []cache.Tag{cache.List(cache.TypeSaved)},
	}
}

type HealthStatus struct {
	Status string  `json:"status"`
	Uptime float64 `json:"uptime,omitempty"`
}

// Health provides no tags, so nothing ever invalidates it besides the TTL.
func Health() Query[models.Envelope[HealthStatus]] {
	return Query[models.Envelope[HealthStatus]]{
		Name: "health",
		Path: "/health",
	}
}
