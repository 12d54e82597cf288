package optimistic

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// LikeState is what a card renders for one entity: the viewer's membership in
// the like set and the displayed count.
type LikeState struct {
	Liked bool
	Count int
}

// Update is pushed to the UI whenever a displayed state changes, including
// rollbacks. Err is set when the change is a rollback.
type Update struct {
	Key   string
	State LikeState
	Err   error
}

// Dispatcher performs the network call for one like/unlike intent.
type Dispatcher func(ctx context.Context, key string, liked bool) error

// SettleHook runs once per entity when the call queue drains, with the state
// the entity settled on.
type SettleHook func(key string, state LikeState)

type entry struct {
	confirmed LikeState
	shown     LikeState
	intentSeq uint64
	sentSeq   uint64
	want      bool
	busy      bool
}

// Coordinator makes like/unlike feel instantaneous: it patches the displayed
// state synchronously, serializes the network calls per entity, and settles
// on the last user intent no matter how responses interleave. Each intent
// carries a sequence number; a response for a superseded intent never drives
// the view.
type Coordinator struct {
	mu       sync.Mutex
	entries  map[string]*entry
	dispatch Dispatcher
	onSettle SettleHook
	updates  chan Update
}

type Option func(*Coordinator)

func WithSettleHook(hook SettleHook) Option {
	return func(c *Coordinator) {
		c.onSettle = hook
	}
}

func New(dispatch Dispatcher, opts ...Option) *Coordinator {
	c := &Coordinator{
		entries:  map[string]*entry{},
		dispatch: dispatch,
		updates:  make(chan Update, 16),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Coordinator) Updates() <-chan Update {
	return c.updates
}

// Track seeds the server-confirmed state for an entity, usually when a card
// first renders from a fetched view. Pending entities keep their optimistic
// state.
func (c *Coordinator) Track(key string, state LikeState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.entries[key] = &entry{confirmed: state, shown: state}
		return
	}
	if !e.busy {
		e.confirmed = state
		e.shown = state
	}
}

func (c *Coordinator) State(key string) (LikeState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		return e.shown, true
	}
	return LikeState{}, false
}

// Toggle flips the displayed state and queues the matching network call.
func (c *Coordinator) Toggle(ctx context.Context, key string) LikeState {
	c.mu.Lock()
	e := c.ensureLocked(key)
	want := !e.shown.Liked
	c.mu.Unlock()
	return c.Set(ctx, key, want)
}

// Set applies one user intent. The local like set stays idempotent (the
// viewer appears at most once) and the count never drops below zero. The
// second click during a pending call queues; the network calls stay
// serialized and the final state reflects the last intent.
func (c *Coordinator) Set(ctx context.Context, key string, liked bool) LikeState {
	c.mu.Lock()
	e := c.ensureLocked(key)

	if liked == e.shown.Liked {
		state := e.shown
		c.mu.Unlock()
		return state
	}

	e.shown.Liked = liked
	if liked {
		e.shown.Count++
	} else if e.shown.Count > 0 {
		e.shown.Count--
	}
	e.intentSeq++
	e.want = liked
	state := e.shown

	started := false
	if !e.busy {
		e.busy = true
		started = true
	}
	c.mu.Unlock()

	c.emit(Update{Key: key, State: state})
	if started {
		// writes always run to completion, even if the issuing view goes away
		go c.drain(context.WithoutCancel(ctx), key)
	}
	return state
}

// Reset drops all tracked state, used on logout.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]*entry{}
}

func (c *Coordinator) ensureLocked(key string) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	return e
}

func (c *Coordinator) drain(ctx context.Context, key string) {
	for {
		c.mu.Lock()
		e := c.entries[key]
		if e == nil {
			c.mu.Unlock()
			return
		}
		if e.sentSeq == e.intentSeq {
			e.busy = false
			state := e.shown
			c.mu.Unlock()
			if c.onSettle != nil {
				c.onSettle(key, state)
			}
			return
		}
		seq := e.intentSeq
		want := e.want
		c.mu.Unlock()

		err := c.dispatch(ctx, key, want)

		c.mu.Lock()
		e.sentSeq = seq
		if seq != e.intentSeq {
			// superseded by a newer click, this response no longer matters
			c.mu.Unlock()
			continue
		}
		if err != nil {
			e.shown = e.confirmed
			state := e.shown
			c.mu.Unlock()
			log.Warn().Err(err).Str("key", key).Msg("An error occurred when settling a like, rolled back...")
			c.emit(Update{Key: key, State: state, Err: err})
			continue
		}
		e.confirmed = e.shown
		c.mu.Unlock()
	}
}

func (c *Coordinator) emit(update Update) {
	select {
	case c.updates <- update:
	default:
		select {
		case <-c.updates:
		default:
		}
		select {
		case c.updates <- update:
		default:
		}
	}
}
