package endpoints

import (
	"net/http"
	"net/url"

	"github.com/blueprint-archi/blueprint-go/pkg/cache"
	"github.com/blueprint-archi/blueprint-go/pkg/models"
)

func Jobs(page, limit int) Query[models.Page[models.Job]] {
	return Query[models.Page[models.Job]]{
		Name:     "jobs.list",
		Path:     "/jobs",
		Query:    pageQuery(page, limit),
		Provides: []cache.Tag{cache.List(cache.TypeJob)},
	}
}

func JobByID(id string) Query[models.Envelope[models.Job]] {
	return Query[models.Envelope[models.Job]]{
		Name:     "jobs.get",
		Path:     "/jobs/" + url.PathEscape(id),
		Provides: []cache.Tag{cache.Item(cache.TypeJob, id)},
	}
}

func CreateJob() Mutation[models.Envelope[models.Job]] {
	return Mutation[models.Envelope[models.Job]]{
		Name:        "jobs.create",
		Method:      http.MethodPost,
		Path:        "/jobs",
		Invalidates: []cache.Tag{cache.List(cache.TypeJob)},
	}
}

func DeleteJob(id string) Mutation[models.Envelope[struct{}]] {
	return Mutation[models.Envelope[struct{}]]{
		Name:   "jobs.delete",
		Method: http.MethodDelete,
		Path:   "/jobs/" + url.PathEscape(id),
		Invalidates: []cache.Tag{
			cache.List(cache.TypeJob),
			cache.Item(cache.TypeJob, id),
		},
	}
}

// ApplyToJob stales nothing: applications are one-way submissions the client
// never lists back.
func ApplyToJob(id string) Mutation[models.Envelope[struct{}]] {
	return Mutation[models.Envelope[struct{}]]{
		Name:   "jobs.apply",
		Method: http.MethodPost,
		Path:   "/jobs/" + url.PathEscape(id) + "/apply",
	}
}
