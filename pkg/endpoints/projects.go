package endpoints

import (
	"net/http"
	"net/url"

	"github.com/blueprint-archi/blueprint-go/pkg/cache"
	"github.com/blueprint-archi/blueprint-go/pkg/models"
)

func Projects(page, limit int) Query[models.Page[models.Project]] {
	return Query[models.Page[models.Project]]{
		Name:     "projects.list",
		Path:     "/projects",
		Query:    pageQuery(page, limit),
		Provides: []cache.Tag{cache.List(cache.TypeProject)},
	}
}

func ProjectByID(id string) Query[models.Envelope[models.Project]] {
	return Query[models.Envelope[models.Project]]{
		Name:     "projects.get",
		Path:     "/projects/" + url.PathEscape(id),
		Provides: []cache.Tag{cache.Item(cache.TypeProject, id)},
	}
}

func CreateProject() Mutation[models.Envelope[models.Project]] {
	return Mutation[models.Envelope[models.Project]]{
		Name:   "projects.create",
		Method: http.MethodPost,
		Path:   "/projects",
		Invalidates: []cache.Tag{
			cache.List(cache.TypeProject),
			cache.List(cache.TypeFeed),
		},
	}
}

func DeleteProject(id string) Mutation[models.Envelope[struct{}]] {
	return Mutation[models.Envelope[struct{}]]{
		Name:   "projects.delete",
		Method: http.MethodDelete,
		Path:   "/projects/" + url.PathEscape(id),
		Invalidates: []cache.Tag{
			cache.List(cache.TypeProject),
			cache.Item(cache.TypeProject, id),
			cache.List(cache.TypeFeed),
			cache.List(cache.TypeSaved),
		},
	}
}

func LikeProject(id string) Mutation[models.Envelope[models.Project]] {
	return Mutation[models.Envelope[models.Project]]{
		Name:        "projects.like",
		Method:      http.MethodPost,
		Path:        "/projects/" + url.PathEscape(id) + "/like",
		Invalidates: []cache.Tag{cache.Item(cache.TypeProject, id)},
	}
}

func UnlikeProject(id string) Mutation[models.Envelope[models.Project]] {
	return Mutation[models.Envelope[models.Project]]{
		Name:        "projects.unlike",
		Method:      http.MethodDelete,
		Path:        "/projects/" + url.PathEscape(id) + "/like",
		Invalidates: []cache.Tag{cache.Item(cache.TypeProject, id)},
	}
}
