package broadcast

import (
	"focusportal/internal/domain/models"
)

// Broker is the publish/subscribe abstraction the synchronizer emits
// events through. Delivery is fire-and-forget, at-most-once per
// subscriber, with no ordering guarantee across event types.
type Broker interface {
	// Publish fans an event out to every subscriber of the topic.
	// It never blocks and never reports delivery failure; mutation
	// correctness must not depend on delivery.
	Publish(topic string, event models.Event)

	// Subscribe registers an in-process consumer for a topic. The
	// caller owns the subscription and must Close it when the view
	// goes away.
	Subscribe(topic string) *Subscription
}

// Subscription is one in-process consumer of a topic. Events arrive on
// C; if the consumer falls behind the buffer, events are dropped
// rather than blocking the publisher.
type Subscription struct {
	C     <-chan models.Event
	topic string
	ch    chan models.Event
	hub   *Hub
}

// Close detaches the subscription from its topic and closes C.
func (s *Subscription) Close() {
	s.hub.unsubscribe(s)
}
