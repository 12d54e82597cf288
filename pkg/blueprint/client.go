package blueprint

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/blueprint-archi/blueprint-go/pkg/cache"
	"github.com/blueprint-archi/blueprint-go/pkg/endpoints"
	"github.com/blueprint-archi/blueprint-go/pkg/models"
	"github.com/blueprint-archi/blueprint-go/pkg/optimistic"
	"github.com/blueprint-archi/blueprint-go/pkg/realtime"
	"github.com/blueprint-archi/blueprint-go/pkg/rest"
	"github.com/blueprint-archi/blueprint-go/pkg/session"
	"github.com/blueprint-archi/blueprint-go/pkg/views"
)

// Client ties the whole data layer together: transport, entity cache,
// endpoint store, session, like coordinator and realtime bridge. One Client
// per authenticated session.
type Client struct {
	Config    Config
	Transport *rest.Transport
	Cache     *cache.Store
	Endpoints *endpoints.Client
	Session   *session.Manager
	Likes     *optimistic.Coordinator

	mu     sync.Mutex
	bridge *realtime.Bridge
}

func New(cfg Config) (*Client, error) {
	client := &Client{Config: cfg}

	client.Transport = rest.NewTransport(
		cfg.BaseURL,
		rest.WithUserAgent(cfg.UserAgent),
		rest.WithTokenSource(func() string {
			if client.Session == nil {
				return ""
			}
			return client.Session.Token()
		}),
	)

	store, err := cache.New(cache.Config{TTL: cfg.CacheTTL})
	if err != nil {
		return nil, fmt.Errorf("unable to build the entity cache: %v", err)
	}
	client.Cache = store
	client.Endpoints = endpoints.New(client.Transport, store)
	client.Session = session.NewManager(client.Transport, cfg.TokenFile)
	client.Likes = optimistic.New(client.dispatchLike)

	client.Session.OnLogout(func() {
		client.Cache.Reset(context.Background())
		client.Likes.Reset()
		client.closeBridge()
	})

	return client, nil
}

// Connect brings up the realtime bridge for the current session, replacing
// any previous one. Inbound events are merged into the same client state the
// REST layer fills.
func (c *Client) Connect(ctx context.Context) *realtime.Bridge {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bridge != nil {
		c.bridge.Close()
	}
	bridge := realtime.NewBridge(ctx, c.Session.Token, realtime.DefaultSettings(c.Config.GatewayURL))

	bridge.On(realtime.EventMessage, func(event realtime.Event) {
		var message models.Message
		if err := event.Decode(&message); err != nil || len(message.ConversationID) == 0 {
			log.Debug().Err(err).Msg("Dropped an unparsable message event.")
			return
		}
		c.mergeMessage(message)
	})

	bridge.On(realtime.EventMessageRead, func(event realtime.Event) {
		var signal struct {
			ConversationID string `json:"conversationId"`
		}
		if err := event.Decode(&signal); err != nil || len(signal.ConversationID) == 0 {
			return
		}
		c.Cache.InvalidateTags(
			context.Background(),
			cache.Item(cache.TypeMessage, signal.ConversationID),
			cache.List(cache.TypeConversation),
		)
	})

	bridge.On(realtime.EventNotification, func(event realtime.Event) {
		var notification models.Notification
		if err := event.Decode(&notification); err != nil {
			return
		}
		c.mergeNotification(notification)
	})

	c.bridge = bridge
	return bridge
}

func (c *Client) Bridge() *realtime.Bridge {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bridge
}

func (c *Client) closeBridge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bridge != nil {
		c.bridge.Close()
		c.bridge = nil
	}
}

// Close tears the client down without logging out.
func (c *Client) Close() {
	c.closeBridge()
}

// Viewer is the identity the selectors resolve against.
func (c *Client) Viewer() views.Viewer {
	identity := c.Session.Identity()
	return views.Viewer{ID: identity.ID, Profile: identity.Profile}
}

// mergeMessage appends an inbound message into the open conversation view,
// no refetch. Conversations nobody is rendering have no cached page and the
// event is dropped; the list overview is staled instead.
func (c *Client) mergeMessage(message models.Message) {
	ctx := context.Background()

	patched := false
	endpoints.Merge(ctx, c.Endpoints, endpoints.ConversationMessages(message.ConversationID, 0, 0),
		func(page models.Page[models.Message], ok bool) (models.Page[models.Message], bool) {
			if !ok {
				return page, false
			}
			patched = true
			if lo.ContainsBy(page.Data, func(m models.Message) bool { return m.ID == message.ID }) {
				return page, false
			}
			page.Data = append(page.Data, message)
			return page, true
		})

	// observers holding the conversation under another key (an explicit
	// page) share the tag but not the patched entry; stale them instead
	if !patched {
		c.Cache.InvalidateTags(ctx, cache.Item(cache.TypeMessage, message.ConversationID))
	}

	c.Cache.InvalidateTags(ctx, cache.List(cache.TypeConversation))
}

func (c *Client) mergeNotification(notification models.Notification) {
	endpoints.Merge(context.Background(), c.Endpoints, endpoints.Notifications(0, 0),
		func(page models.Page[models.Notification], ok bool) (models.Page[models.Notification], bool) {
			if !ok {
				return page, false
			}
			page.Data = append([]models.Notification{notification}, page.Data...)
			return page, true
		})
}

// LikeKey names one likeable entity for the coordinator.
func LikeKey(entityType, id string) string {
	return entityType + ":" + id
}

// TrackPost seeds the coordinator with the rendered state of a post card.
func (c *Client) TrackPost(post models.Post) {
	viewer := c.Viewer()
	c.Likes.Track(LikeKey(models.EntityTypePost, post.ID), optimistic.LikeState{
		Liked: lo.Contains(post.Likes, viewer.ID),
		Count: len(post.Likes),
	})
}

// ToggleLike flips the like state of any likeable entity, optimistically.
func (c *Client) ToggleLike(ctx context.Context, entityType, id string) optimistic.LikeState {
	return c.Likes.Toggle(ctx, LikeKey(entityType, id))
}

// dispatchLike is the coordinator's network side: one serialized call per
// settled intent.
func (c *Client) dispatchLike(ctx context.Context, key string, liked bool) error {
	entityType, id, found := strings.Cut(key, ":")
	if !found {
		return fmt.Errorf("malformed like key: %s", key)
	}

	switch entityType {
	case models.EntityTypeProject:
		mutation := lo.Ternary(liked, endpoints.LikeProject(id), endpoints.UnlikeProject(id))
		_, err := endpoints.Mutate(ctx, c.Endpoints, mutation, nil)
		return err
	case models.EntityTypeReel:
		mutation := lo.Ternary(liked, endpoints.LikeReel(id), endpoints.UnlikeReel(id))
		_, err := endpoints.Mutate(ctx, c.Endpoints, mutation, nil)
		return err
	default:
		mutation := lo.Ternary(liked, endpoints.LikePost(id), endpoints.UnlikePost(id))
		_, err := endpoints.Mutate(ctx, c.Endpoints, mutation, nil)
		return err
	}
}
