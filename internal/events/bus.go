// Package events carries change notifications from mutations to subscribed
// clients. Each successful write publishes the name of the collection it
// touched; the SSE endpoint relays those to the frontend so it can refetch.
package events

import (
	"sync"
	"time"
)

type Event struct {
	Topic string `json:"topic"`
	TS    int64  `json:"ts"`
}

const (
	TopicTeams      = "teams"
	TopicCategories = "categories"
	TopicProducts   = "products"
	TopicPurchases  = "purchases"
	TopicSettings   = "settings"
)

type Subscriber struct {
	C  chan Event
	id int
}

type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]*Subscriber
}

func NewBus() *Bus {
	return &Bus{subs: map[int]*Subscriber{}}
}

// Subscribe registers a listener. The channel is buffered; a subscriber that
// stops draining loses events rather than blocking publishers.
func (b *Bus) Subscribe() *Subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	s := &Subscriber{C: make(chan Event, 16), id: b.next}
	b.subs[s.id] = s
	return s
}

func (b *Bus) Unsubscribe(s *Subscriber) {
	if s == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[s.id]; ok {
		delete(b.subs, s.id)
		close(s.C)
	}
}

// Publish notifies all subscribers that documents under topic changed.
func (b *Bus) Publish(topic string) {
	ev := Event{Topic: topic, TS: time.Now().UnixMilli()}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		select {
		case s.C <- ev:
		default:
		}
	}
}
