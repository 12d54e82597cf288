package endpoints

import (
	"net/http"
	"net/url"

	"github.com/blueprint-archi/blueprint-go/pkg/cache"
	"github.com/blueprint-archi/blueprint-go/pkg/models"
)

func Reels(page, limit int) Query[models.Page[models.Reel]] {
	return Query[models.Page[models.Reel]]{
		Name:     "reels.list",
		Path:     "/reels",
		Query:    pageQuery(page, limit),
		Provides: []cache.Tag{cache.List(cache.TypeReel)},
	}
}

func ReelByID(id string) Query[models.Envelope[models.Reel]] {
	return Query[models.Envelope[models.Reel]]{
		Name:     "reels.get",
		Path:     "/reels/" + url.PathEscape(id),
		Provides: []cache.Tag{cache.Item(cache.TypeReel, id)},
	}
}

func CreateReel() Mutation[models.Envelope[models.Reel]] {
	return Mutation[models.Envelope[models.Reel]]{
		Name:   "reels.create",
		Method: http.MethodPost,
		Path:   "/reels",
		Invalidates: []cache.Tag{
			cache.List(cache.TypeReel),
			cache.List(cache.TypeFeed),
		},
	}
}

func DeleteReel(id string) Mutation[models.Envelope[struct{}]] {
	return Mutation[models.Envelope[struct{}]]{
		Name:   "reels.delete",
		Method: http.MethodDelete,
		Path:   "/reels/" + url.PathEscape(id),
		Invalidates: []cache.Tag{
			cache.List(cache.TypeReel),
			cache.Item(cache.TypeReel, id),
			cache.List(cache.TypeFeed),
		},
	}
}

func LikeReel(id string) Mutation[models.Envelope[models.Reel]] {
	return Mutation[models.Envelope[models.Reel]]{
		Name:        "reels.like",
		Method:      http.MethodPost,
		Path:        "/reels/" + url.PathEscape(id) + "/like",
		Invalidates: []cache.Tag{cache.Item(cache.TypeReel, id)},
	}
}

func UnlikeReel(id string) Mutation[models.Envelope[models.Reel]] {
	return Mutation[models.Envelope[models.Reel]]{
		Name:        "reels.unlike",
		Method:      http.MethodDelete,
		Path:        "/reels/" + url.PathEscape(id) + "/like",
		Invalidates: []cache.Tag{cache.Item(cache.TypeReel, id)},
	}
}
