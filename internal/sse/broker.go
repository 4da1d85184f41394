// internal/sse/broker.go
//
// Channel-based fan-out of server-sent events, one topic per game token.
// Clients subscribe to a game and receive event names ("players", "board",
// "scoreboard") whenever a handler mutates that game. A subscriber that
// stops draining is dropped after a short send timeout so a stuck
// connection can never block game progress.

package sse

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// sendTimeout bounds how long a publish waits on a single subscriber.
const sendTimeout = time.Second

type subscriber struct {
	id    string
	topic string
	ch    chan string
}

type event struct {
	topic string
	name  string
}

// Broker fans game events out to all SSE subscribers of a game. All state
// is owned by the run goroutine; the exported methods only pass messages.
type Broker struct {
	subscribers map[string]map[*subscriber]bool // topic -> live subscribers
	events      chan event
	joins       chan *subscriber
	leaves      chan *subscriber
}

// New starts a broker and its distribution goroutine.
func New() *Broker {
	b := &Broker{
		subscribers: make(map[string]map[*subscriber]bool),
		events:      make(chan event, 16),
		joins:       make(chan *subscriber),
		leaves:      make(chan *subscriber),
	}
	go b.run()
	return b
}

func (b *Broker) run() {
	remove := func(s *subscriber) {
		set, ok := b.subscribers[s.topic]
		if !ok || !set[s] {
			return
		}
		delete(set, s)
		if len(set) == 0 {
			delete(b.subscribers, s.topic)
		}
		close(s.ch)
	}

	for {
		select {
		case s := <-b.joins:
			set, ok := b.subscribers[s.topic]
			if !ok {
				set = make(map[*subscriber]bool)
				b.subscribers[s.topic] = set
			}
			set[s] = true
			log.Debug().Str("subscriber", s.id).Str("game", s.topic).Msg("sse subscribe")

		case s := <-b.leaves:
			remove(s)

		case e := <-b.events:
			for s := range b.subscribers[e.topic] {
				select {
				case s.ch <- e.name:
				case <-time.After(sendTimeout):
					log.Warn().Str("subscriber", s.id).Str("game", e.topic).Msg("sse subscriber stalled, dropping")
					remove(s)
				}
			}
		}
	}
}

// Subscribe registers a listener for one game's events.
func (b *Broker) Subscribe(topic string) *Subscription {
	s := &subscriber{id: uuid.NewString(), topic: topic, ch: make(chan string)}
	b.joins <- s
	return &Subscription{broker: b, sub: s}
}

// Publish notifies every subscriber of topic that name happened.
func (b *Broker) Publish(topic, name string) {
	b.events <- event{topic: topic, name: name}
}

// Subscription is one live SSE registration.
type Subscription struct {
	broker *Broker
	sub    *subscriber
}

// C is the stream of event names. It closes when the subscription ends.
func (s *Subscription) C() <-chan string { return s.sub.ch }

// Close unregisters the subscription. Safe to call after the broker has
// already dropped the subscriber.
func (s *Subscription) Close() { s.broker.leaves <- s.sub }
