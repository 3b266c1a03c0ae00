// Package eventbus provides a small in-memory publish/subscribe bus used for
// in-process signals between components, most notably the forced-logout
// broadcast raised by the API client when a session becomes unrecoverable.
package eventbus

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// TopicLogout is published when the local session must be torn down:
// an irrecoverable 401 from the API, an external credential wipe, or an
// explicit logout requested by another component.
const TopicLogout = "auth.logout"

// Event is a single published message.
type Event struct {
	Topic string
	Data  any
}

type subscriber struct {
	id string
	ch chan Event

	mu     sync.Mutex
	closed bool
}

func (s *subscriber) send(event Event, timeout time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	select {
	case s.ch <- event:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

// Bus routes events to subscribers by exact topic. All methods are safe for
// concurrent use.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string]map[string]*subscriber
	counter     uint64
}

// New returns an empty bus ready for use.
func New() *Bus {
	return &Bus{
		subscribers: make(map[string]map[string]*subscriber),
	}
}

// Subscribe registers a subscriber for topic and returns its event channel
// along with an unsubscribe function. The channel is buffered with bufferSize
// slots and is closed by the unsubscribe function.
func (b *Bus) Subscribe(topic string, bufferSize int) (<-chan Event, func()) {
	id := fmt.Sprintf("sub-%d", atomic.AddUint64(&b.counter, 1))
	sub := &subscriber{
		id: id,
		ch: make(chan Event, bufferSize),
	}

	b.mu.Lock()
	if _, ok := b.subscribers[topic]; !ok {
		b.subscribers[topic] = make(map[string]*subscriber)
	}
	b.subscribers[topic][id] = sub
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		if subs, ok := b.subscribers[topic]; ok {
			if s, ok := subs[id]; ok {
				s.close()
				delete(subs, id)
				if len(subs) == 0 {
					delete(b.subscribers, topic)
				}
			}
		}
	}
	return sub.ch, unsubscribe
}

// Publish delivers data to every subscriber of topic. Delivery to a slow
// subscriber is abandoned after timeout so a stuck listener cannot wedge the
// publisher.
func (b *Bus) Publish(topic string, data any, timeout time.Duration) {
	event := Event{Topic: topic, Data: data}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscribers[topic] {
		sub.send(event, timeout)
	}
}

// Shutdown closes every subscriber and empties the bus.
func (b *Bus) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for topic, subs := range b.subscribers {
		for _, sub := range subs {
			sub.close()
		}
		delete(b.subscribers, topic)
	}
}
