package cachepatch

import (
	"focusportal/internal/broadcast"
)

// Subscriber binds a broadcast subscription to a cache for the
// lifetime of a view.
type Subscriber struct {
	sub   *broadcast.Subscription
	cache *Cache
	done  chan struct{}
}

// NewSubscriber starts consuming the subscription into the cache.
func NewSubscriber(sub *broadcast.Subscription, cache *Cache) *Subscriber {
	s := &Subscriber{
		sub:   sub,
		cache: cache,
		done:  make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Subscriber) run() {
	defer close(s.done)
	for event := range s.sub.C {
		s.cache.Apply(event)
	}
}

// Close detaches from the topic and waits for the apply loop to
// drain.
func (s *Subscriber) Close() {
	s.sub.Close()
	<-s.done
}
