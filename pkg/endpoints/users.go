package endpoints

import (
	"net/http"
	"net/url"

	"github.com/blueprint-archi/blueprint-go/pkg/cache"
	"github.com/blueprint-archi/blueprint-go/pkg/models"
)

func UserByID(id string) Query[models.Envelope[models.User]] {
	return Query[models.Envelope[models.User]]{
		Name:     "users.get",
		Path:     "/users/" + url.PathEscape(id),
		Provides: []cache.Tag{cache.Item(cache.TypeUser, id)},
	}
}

func UpdateProfile(id string) Mutation[models.Envelope[models.User]] {
	return Mutation[models.Envelope[models.User]]{
		Name:        "users.update",
		Method:      http.MethodPut,
		Path:        "/users/me",
		Invalidates: []cache.Tag{cache.Item(cache.TypeUser, id)},
	}
}

func FollowUser(id string) Mutation[models.Envelope[models.User]] {
	return Mutation[models.Envelope[models.User]]{
		Name:        "users.follow",
		Method:      http.MethodPost,
		Path:        "/users/" + url.PathEscape(id) + "/follow",
		Invalidates: []cache.Tag{cache.Item(cache.TypeUser, id)},
	}
}

func UnfollowUser(id string) Mutation[models.Envelope[models.User]] {
	return Mutation[models.Envelope[models.User]]{
		Name:        "users.unfollow",
		Method:      http.MethodDelete,
		Path:        "/users/" + url.PathEscape(id) + "/follow",
		Invalidates: []cache.Tag{cache.Item(cache.TypeUser, id)},
	}
}
