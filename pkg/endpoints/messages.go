package endpoints

import (
	"net/http"
	"net/url"

	"github.com/blueprint-archi/blueprint-go/pkg/cache"
	"github.com/blueprint-archi/blueprint-go/pkg/models"
)

func Conversations(page, limit int) Query[models.Page[models.Conversation]] {
	return Query[models.Page[models.Conversation]]{
		Name:     "messages.conversations",
		Path:     "/messages/conversations",
		Query:    pageQuery(page, limit),
		Provides: []cache.Tag{cache.List(cache.TypeConversation)},
	}
}

func ConversationMessages(conversationID string, page, limit int) Query[models.Page[models.Message]] {
	return Query[models.Page[models.Message]]{
		Name:     "messages.list",
		Path:     "/messages/conversations/" + url.PathEscape(conversationID),
		Query:    pageQuery(page, limit),
		Provides: []cache.Tag{cache.Item(cache.TypeMessage, conversationID)},
	}
}

func SendMessage(conversationID string) Mutation[models.Envelope[models.Message]] {
	return Mutation[models.Envelope[models.Message]]{
		Name:   "messages.send",
		Method: http.MethodPost,
		Path:   "/messages",
		Invalidates: []cache.Tag{
			cache.Item(cache.TypeMessage, conversationID),
			cache.List(cache.TypeConversation),
		},
	}
}

func MarkConversationRead(conversationID string) Mutation[models.Envelope[struct{}]] {
	return Mutation[models.Envelope[struct{}]]{
		Name:   "messages.markRead",
		Method: http.MethodPut,
		Path:   "/messages/conversations/" + url.PathEscape(conversationID) + "/read",
		Invalidates: []cache.Tag{
			cache.Item(cache.TypeMessage, conversationID),
			cache.List(cache.TypeConversation),
		},
	}
}
