// Package events carries change notifications from the mutation layer and the
// filesystem watcher to whatever host is displaying the workspace.
//
// Publishing is fire-and-forget: a subscriber that is not keeping up loses
// events rather than blocking the publisher.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event type constants.
const (
	ListingChanged    = "listing.changed"
	FavouritesChanged = "favourites.changed"
	LocationChanged   = "location.changed"
)

// Event is a single change notification.
type Event struct {
	ID   uuid.UUID `json:"id"`
	Type string    `json:"type"`
	// Path is the affected directory, or empty for "everything"
	Path string    `json:"path,omitempty"`
	Time time.Time `json:"time"`
}

// New builds an event with a fresh id and the current time.
func New(typ, path string) Event {
	return Event{
		ID:   uuid.New(),
		Type: typ,
		Path: path,
		Time: time.Now(),
	}
}

// Publisher publishes events. Safe for concurrent use.
type Publisher interface {
	Publish(e Event)
}

// Discard silently drops all events.
var Discard Publisher = discardPublisher{}

type discardPublisher struct{}

func (discardPublisher) Publish(Event) {}

// Bus fans events out to subscribers.
type Bus struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	next   int
	closed bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe registers a subscriber with the given channel buffer. The returned
// cancel func unsubscribes and closes the channel; it is safe to call twice.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	id := b.next
	b.next++
	b.subs[id] = ch

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if c, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(c)
		}
	}
}

// Publish delivers e to every subscriber that has room for it.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Close closes every subscriber channel. Later publishes are dropped.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

// Fake is an in-memory Publisher for testing. It captures all published
// events in the Events slice.
type Fake struct {
	mu     sync.Mutex
	Events []Event
}

// NewFake returns a ready-to-use Fake.
func NewFake() *Fake {
	return &Fake{}
}

// Publish appends the event to the Events slice.
func (f *Fake) Publish(e Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Events = append(f.Events, e)
}

// Types returns the types of all captured events in order.
func (f *Fake) Types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.Events))
	for i, e := range f.Events {
		out[i] = e.Type
	}
	return out
}
