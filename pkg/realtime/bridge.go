package realtime

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jpillora/backoff"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

// Event names carried by the Blueprint gateway.
const (
	EventConnect         = "connect"
	EventDisconnect      = "disconnect"
	EventConnectError    = "connect_error"
	EventMessage         = "message"
	EventMessageSent     = "message:sent"
	EventMessageReceived = "message:received"
	EventMessageRead     = "message:read"
	EventTypingStart     = "typing:start"
	EventTypingStop      = "typing:stop"
	EventUserOnline      = "user:online"
	EventUserOffline     = "user:offline"
	EventNotification    = "notification"
	EventError           = "error"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type frame struct {
	Event string              `json:"event"`
	Data  jsoniter.RawMessage `json:"data,omitempty"`
}

// Event is one server-initiated push, payload still raw.
type Event struct {
	Name    string
	Payload []byte
}

func (e Event) Decode(out any) error {
	return json.Unmarshal(e.Payload, out)
}

type Settings struct {
	URL              string
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration
	ReadTimeout      time.Duration
	PingInterval     time.Duration
	BackoffMin       time.Duration
	BackoffMax       time.Duration
	MaxAttempts      int
}

func DefaultSettings(gatewayURL string) *Settings {
	return &Settings{
		URL:              gatewayURL,
		HandshakeTimeout: 5 * time.Second,
		WriteTimeout:     5 * time.Second,
		ReadTimeout:      60 * time.Second,
		PingInterval:     25 * time.Second,
		BackoffMin:       500 * time.Millisecond,
		BackoffMax:       30 * time.Second,
		MaxAttempts:      10,
	}
}

// TokenSource yields the session credential the connection is parameterized
// by. An empty token means logged out, the bridge stays dormant.
type TokenSource func() string

// Bridge keeps one persistent connection per authenticated session and fans
// inbound events out to handlers. Reconnection is automatic with bounded
// backoff; after MaxAttempts consecutive failures it goes dormant until
// Retry is called.
type Bridge struct {
	ctx    context.Context
	cancel context.CancelFunc

	settings *Settings
	token    TokenSource

	mu       sync.Mutex
	handlers map[string][]func(Event)
	online   map[string]bool
	send     chan frame
	retry    chan struct{}
}

func NewBridge(ctx context.Context, token TokenSource, settings *Settings) *Bridge {
	runCtx, cancel := context.WithCancel(ctx)
	b := &Bridge{
		ctx:      runCtx,
		cancel:   cancel,
		settings: settings,
		token:    token,
		handlers: map[string][]func(Event){},
		online:   map[string]bool{},
		send:     make(chan frame, 16),
		retry:    make(chan struct{}, 1),
	}
	go b.run()
	return b
}

// On registers a handler for an event name and returns its remover.
func (b *Bridge) On(event string, fn func(Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], fn)
	idx := len(b.handlers[event]) - 1
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if idx < len(b.handlers[event]) {
			b.handlers[event][idx] = nil
		}
	}
}

// Emit queues a client-side event (typing signals, read receipts) for the
// gateway. Dropped when the connection is down, these signals are advisory.
func (b *Bridge) Emit(event string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	select {
	case b.send <- frame{Event: event, Data: raw}:
	default:
		log.Debug().Str("event", event).Msg("Dropped an outbound realtime event, connection is behind.")
	}
	return nil
}

// Online reports the last known presence of a user.
func (b *Bridge) Online(userID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.online[userID]
}

// Retry wakes a dormant bridge after the reconnect budget was exhausted.
func (b *Bridge) Retry() {
	select {
	case b.retry <- struct{}{}:
	default:
	}
}

// Close tears the connection down immediately. Called on logout.
func (b *Bridge) Close() {
	b.cancel()
}

func (b *Bridge) run() {
	boff := &backoff.Backoff{
		Min:    b.settings.BackoffMin,
		Max:    b.settings.BackoffMax,
		Factor: 2,
		Jitter: true,
	}
	attempts := 0

	for {
		select {
		case <-b.ctx.Done():
			return
		default:
		}

		token := b.token()
		if len(token) == 0 {
			// logged out, wait for an explicit retry after login
			select {
			case <-b.ctx.Done():
				return
			case <-b.retry:
				continue
			}
		}

		conn, err := b.dial(token)
		if err != nil {
			attempts++
			b.dispatch(Event{Name: EventConnectError})
			log.Warn().Err(err).Int("attempts", attempts).Msg("An error occurred when connecting to the gateway...")

			if attempts >= b.settings.MaxAttempts {
				log.Warn().Msg("Reconnect budget exhausted, waiting for an explicit retry.")
				select {
				case <-b.ctx.Done():
					return
				case <-b.retry:
					attempts = 0
					boff.Reset()
					continue
				}
			}

			select {
			case <-b.ctx.Done():
				return
			case <-time.After(boff.Duration()):
				continue
			}
		}

		attempts = 0
		boff.Reset()
		b.dispatch(Event{Name: EventConnect})
		b.pump(conn)
		b.dispatch(Event{Name: EventDisconnect})

		select {
		case <-b.ctx.Done():
			return
		case <-time.After(boff.Duration()):
		}
	}
}

func (b *Bridge) dial(token string) (*websocket.Conn, error) {
	endpoint, err := url.Parse(b.settings.URL)
	if err != nil {
		return nil, err
	}
	query := endpoint.Query()
	query.Set("token", token)
	endpoint.RawQuery = query.Encode()

	dialer := websocket.Dialer{HandshakeTimeout: b.settings.HandshakeTimeout}
	conn, _, err := dialer.DialContext(b.ctx, endpoint.String(), nil)
	return conn, err
}

// pump runs the read and write loops for one connection and returns when
// either side fails or the bridge is closed.
func (b *Bridge) pump(conn *websocket.Conn) {
	defer conn.Close()

	pumpCtx, pumpCancel := context.WithCancel(b.ctx)
	defer pumpCancel()

	go func() {
		defer pumpCancel()
		ticker := time.NewTicker(b.settings.PingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-pumpCtx.Done():
				return
			case out := <-b.send:
				raw, err := json.Marshal(out)
				if err != nil {
					continue
				}
				conn.SetWriteDeadline(time.Now().Add(b.settings.WriteTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
					log.Debug().Err(err).Msg("Gateway write failed.")
					return
				}
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(b.settings.WriteTimeout))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	conn.SetReadDeadline(time.Now().Add(b.settings.ReadTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(b.settings.ReadTimeout))
		return nil
	})

	for {
		select {
		case <-pumpCtx.Done():
			return
		default:
		}

		conn.SetReadDeadline(time.Now().Add(b.settings.ReadTimeout))
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("Gateway read failed.")
			}
			return
		}

		var in frame
		if err := json.Unmarshal(raw, &in); err != nil {
			log.Debug().Err(err).Msg("Dropped an unparsable gateway frame.")
			continue
		}
		b.track(in)
		b.dispatch(Event{Name: in.Event, Payload: in.Data})
	}
}

// track maintains the presence registry before handlers run.
func (b *Bridge) track(in frame) {
	switch in.Event {
	case EventUserOnline, EventUserOffline:
		var presence struct {
			UserID string `json:"userId"`
		}
		if err := json.Unmarshal(in.Data, &presence); err != nil || len(presence.UserID) == 0 {
			return
		}
		b.mu.Lock()
		if in.Event == EventUserOnline {
			b.online[presence.UserID] = true
		} else {
			delete(b.online, presence.UserID)
		}
		b.mu.Unlock()
	}
}

func (b *Bridge) dispatch(event Event) {
	b.mu.Lock()
	handlers := append([]func(Event){}, b.handlers[event.Name]...)
	b.mu.Unlock()

	for _, fn := range handlers {
		if fn != nil {
			fn(event)
		}
	}
}
