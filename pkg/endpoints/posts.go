package endpoints

import (
	"net/http"
	"net/url"

	"github.com/blueprint-archi/blueprint-go/pkg/cache"
	"github.com/blueprint-archi/blueprint-go/pkg/models"
)

func Posts(page, limit int) Query[models.Page[models.Post]] {
	return Query[models.Page[models.Post]]{
		Name:     "posts.list",
		Path:     "/posts",
		Query:    pageQuery(page, limit),
		Provides: []cache.Tag{cache.List(cache.TypePost)},
	}
}

func StudioPosts(studioID string, page, limit int) Query[models.Page[models.Post]] {
	query := pageQuery(page, limit)
	query.Set("studioId", studioID)
	return Query[models.Page[models.Post]]{
		Name:     "posts.listByStudio",
		Path:     "/posts",
		Query:    query,
		Provides: []cache.Tag{cache.List(cache.TypePost)},
	}
}

func PostByID(id string) Query[models.Envelope[models.Post]] {
	return Query[models.Envelope[models.Post]]{
		Name:     "posts.get",
		Path:     "/posts/" + url.PathEscape(id),
		Provides: []cache.Tag{cache.Item(cache.TypePost, id)},
	}
}

func CreatePost() Mutation[models.Envelope[models.Post]] {
	return Mutation[models.Envelope[models.Post]]{
		Name:   "posts.create",
		Method: http.MethodPost,
		Path:   "/posts",
		Invalidates: []cache.Tag{
			cache.List(cache.TypePost),
			cache.List(cache.TypeFeed),
		},
	}
}

func DeletePost(id string) Mutation[models.Envelope[struct{}]] {
	return Mutation[models.Envelope[struct{}]]{
		Name:   "posts.delete",
		Method: http.MethodDelete,
		Path:   "/posts/" + url.PathEscape(id),
		Invalidates: []cache.Tag{
			cache.List(cache.TypePost),
			cache.Item(cache.TypePost, id),
			cache.List(cache.TypeFeed),
			cache.List(cache.TypeSaved),
		},
	}
}

// LikePost invalidates only the entity itself. The list views are patched
// optimistically by the like coordinator, a full list refetch per click would
// defeat the point.
func LikePost(id string) Mutation[models.Envelope[models.Post]] {
	return Mutation[models.Envelope[models.Post]]{
		Name:        "posts.like",
		Method:      http.MethodPost,
		Path:        "/posts/" + url.PathEscape(id) + "/like",
		Invalidates: []cache.Tag{cache.Item(cache.TypePost, id)},
	}
}

func UnlikePost(id string) Mutation[models.Envelope[models.Post]] {
	return Mutation[models.Envelope[models.Post]]{
		Name:        "posts.unlike",
		Method:      http.MethodDelete,
		Path:        "/posts/" + url.PathEscape(id) + "/like",
		Invalidates: []cache.Tag{cache.Item(cache.TypePost, id)},
	}
}

func EntityComments(entityType, entityID string, page, limit int) Query[models.Page[models.Comment]] {
	query := pageQuery(page, limit)
	query.Set("entityType", entityType)
	return Query[models.Page[models.Comment]]{
		Name:     "comments.list",
		Path:     "/posts/" + url.PathEscape(entityID) + "/comments",
		Query:    query,
		Provides: []cache.Tag{cache.Item(cache.TypeComment, entityID)},
	}
}

func CreateComment(entityType, entityID string) Mutation[models.Envelope[models.Comment]] {
	return Mutation[models.Envelope[models.Comment]]{
		Name:   "comments.create",
		Method: http.MethodPost,
		Path:   "/posts/" + url.PathEscape(entityID) + "/comments",
		Invalidates: []cache.Tag{
			cache.Item(cache.TypeComment, entityID),
			cache.Item(tagTypeFor(entityType), entityID),
		},
	}
}

func tagTypeFor(entityType string) string {
	switch entityType {
	case models.EntityTypeProject:
		return cache.TypeProject
	case models.EntityTypeReel:
		return cache.TypeReel
	default:
		return cache.TypePost
	}
}
