package endpoints

import (
	"net/http"
	"net/url"

	"github.com/blueprint-archi/blueprint-go/pkg/cache"
	"github.com/blueprint-archi/blueprint-go/pkg/models"
)

func Notifications(page, limit int) Query[models.Page[models.Notification]] {
	return Query[models.Page[models.Notification]]{
		Name:     "notifications.list",
		Path:     "/notifications",
		Query:    pageQuery(page, limit),
		Provides: []cache.Tag{cache.List(cache.TypeNotification)},
	}
}

func MarkNotificationRead(id string) Mutation[models.Envelope[models.Notification]] {
	return Mutation[models.Envelope[models.Notification]]{
		Name:        "notifications.markRead",
		Method:      http.MethodPut,
		Path:        "/notifications/" + url.PathEscape(id) + "/read",
		Invalidates: []cache.Tag{cache.List(cache.TypeNotification)},
	}
}

func MarkAllNotificationsRead() Mutation[models.Envelope[struct{}]] {
	return Mutation[models.Envelope[struct{}]]{
		Name:        "notifications.markAllRead",
		Method:      http.MethodPut,
		Path:        "/notifications/read",
		Invalidates: []cache.Tag{cache.List(cache.TypeNotification)},
	}
}
