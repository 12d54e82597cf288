package endpoints

import (
	"net/http"
	"net/url"

	"github.com/blueprint-archi/blueprint-go/pkg/cache"
	"github.com/blueprint-archi/blueprint-go/pkg/models"
)

func Studios(page, limit int) Query[models.Page[models.Studio]] {
	return Query[models.Page[models.Studio]]{
		Name:     "studios.list",
		Path:     "/studios",
		Query:    pageQuery(page, limit),
		Provides: []cache.Tag{cache.List(cache.TypeStudio)},
	}
}

func StudioByID(id string) Query[models.Envelope[models.Studio]] {
	return Query[models.Envelope[models.Studio]]{
		Name:     "studios.get",
		Path:     "/studios/" + url.PathEscape(id),
		Provides: []cache.Tag{cache.Item(cache.TypeStudio, id)},
	}
}

func CreateStudio() Mutation[models.Envelope[models.Studio]] {
	return Mutation[models.Envelope[models.Studio]]{
		Name:        "studios.create",
		Method:      http.MethodPost,
		Path:        "/studios",
		Invalidates: []cache.Tag{cache.List(cache.TypeStudio)},
	}
}

func JoinStudio(id string) Mutation[models.Envelope[models.Studio]] {
	return Mutation[models.Envelope[models.Studio]]{
		Name:   "studios.join",
		Method: http.MethodPost,
		Path:   "/studios/" + url.PathEscape(id) + "/members",
		Invalidates: []cache.Tag{
			cache.Item(cache.TypeStudio, id),
			cache.List(cache.TypeStudio),
		},
	}
}

func LeaveStudio(id string) Mutation[models.Envelope[models.Studio]] {
	return Mutation[models.Envelope[models.Studio]]{
		Name:   "studios.leave",
		Method: http.MethodDelete,
		Path:   "/studios/" + url.PathEscape(id) + "/members",
		Invalidates: []cache.Tag{
			cache.Item(cache.TypeStudio, id),
			cache.List(cache.TypeStudio),
		},
	}
}
