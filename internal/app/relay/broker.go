/*
Package relay provides the in-process fanout channel between the transport and
however many chat views exist.

It defines the Broker, which forwards every inbound raw frame to all live
subscriptions. The Broker is injected into its consumers at construction, and
each Subscription's lifetime is tied to the owning view: acquired on mount,
cancelled on unmount.
*/
package relay

import (
	"sync"

	"github.com/rs/zerolog"

	"plumchat/internal/pkg/logx"
	"plumchat/internal/pkg/randx"
)

// subscriptionBuffer is the per-subscription frame queue capacity.
const subscriptionBuffer = 256

// Subscription is one consumer's view of the broker's frame stream.
// Frames arrive on C in publish order (per-subscriber FIFO).
type Subscription struct {
	// ID uniquely identifies the subscription for logging.
	ID string

	// C delivers every raw frame published while the subscription is live.
	C <-chan string

	broker *Broker
	ch     chan string
}

// Cancel releases the subscription. Its channel is closed and receives nothing
// further. Cancelling twice is harmless.
func (s *Subscription) Cancel() {
	s.broker.cancel(s)
}

// Broker forwards every published frame to all live subscriptions.
// Publishing is non-blocking: a subscription whose buffer is full misses that
// frame (logged), rather than exerting backpressure on the transport.
type Broker struct {
	mu            sync.Mutex
	subscriptions map[string]*Subscription
	closed        bool
	logger        zerolog.Logger
}

// NewBroker creates an empty Broker ready for subscriptions.
func NewBroker() *Broker {
	brokerLogger := logx.Logger().With().
		Str("component", "relay").
		Logger()

	return &Broker{
		subscriptions: make(map[string]*Subscription),
		logger:        brokerLogger,
	}
}

// Subscribe registers a new subscription and returns it.
// Subscribing on a closed broker returns an already-closed subscription.
func (b *Broker) Subscribe() *Subscription {
	ch := make(chan string, subscriptionBuffer)

	sub := &Subscription{
		ID:     randx.SubscriptionID(),
		C:      ch,
		broker: b,
		ch:     ch,
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(ch)
		return sub
	}

	b.subscriptions[sub.ID] = sub

	b.logger.Debug().
		Str("subscription_id", sub.ID).
		Int("total_subscriptions", len(b.subscriptions)).
		Msg("Subscription registered.")

	return sub
}

// Publish delivers raw to every live subscription without blocking.
func (b *Broker) Publish(raw string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subscriptions {
		select {
		case sub.ch <- raw:
		default:
			b.logger.Warn().
				Str("subscription_id", sub.ID).
				Msg("Subscription buffer full, dropping frame for this subscriber.")
		}
	}
}

// Close ends all subscriptions and rejects future ones.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for id, sub := range b.subscriptions {
		close(sub.ch)
		delete(b.subscriptions, id)
	}

	b.logger.Debug().Msg("Broker closed.")
}

func (b *Broker) cancel(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subscriptions[sub.ID]; !ok {
		return
	}

	delete(b.subscriptions, sub.ID)
	close(sub.ch)

	b.logger.Debug().
		Str("subscription_id", sub.ID).
		Int("total_subscriptions", len(b.subscriptions)).
		Msg("Subscription cancelled.")
}
