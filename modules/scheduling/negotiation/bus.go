package negotiation

import (
	"fmt"
	"runtime/debug"
	"slices"
	"sync"
	"sync/atomic"

	"meeting-scheduler/core/logger"

	"github.com/sourcegraph/conc"
)

// Handler receives messages of the kind it subscribed to.
type Handler func(Message)

// Bus is a topic-scoped publish/subscribe channel.
//
// Messages are routed to a lane per meeting. A lane is an unbounded FIFO
// drained by its own goroutine, delivering each message to the matching
// subscribers in registration order. Messages about one meeting are therefore
// handled one at a time and in publish order, while different meetings
// proceed concurrently. Publish never blocks, so a handler may publish while
// handling.
type Bus struct {
	mu     sync.RWMutex
	subs   map[Kind][]*subscription
	lanes  map[string]*lane
	closed bool
	nextID atomic.Uint64
	wg     conc.WaitGroup
}

func NewBus() *Bus {
	return &Bus{
		subs:  make(map[Kind][]*subscription),
		lanes: make(map[string]*lane),
	}
}

type subscription struct {
	id      string
	name    string
	handler Handler
	removed atomic.Bool
}

// Subscribe registers handler for kind. name is the subscriber identity used
// for addressed messages; a subscriber without a name only receives
// broadcasts. The returned id can be passed to Unsubscribe.
func (b *Bus) Subscribe(kind Kind, name string, handler Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &subscription{
		id:      fmt.Sprintf("%s#%d", kind, b.nextID.Add(1)),
		name:    name,
		handler: handler,
	}
	b.subs[kind] = append(b.subs[kind], sub)
	return sub.id
}

// Unsubscribe removes a subscription. Messages already queued for it are
// dropped.
func (b *Bus) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for kind, subs := range b.subs {
		for i, sub := range subs {
			if sub.id == id {
				sub.removed.Store(true)
				b.subs[kind] = slices.Delete(subs, i, i+1)
				return true
			}
		}
	}
	return false
}

// Publish queues msg for every subscriber of its kind. Messages with
// recipients only reach subscribers whose name is listed. Publishing on a
// closed bus is a no-op.
func (b *Bus) Publish(msg Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		logger.Debug("Bus:Publish:Closed", "kind", msg.Kind(), "meeting_id", msg.Meeting())
		return
	}

	recipients := msg.Recipients()
	var targets []*subscription
	for _, sub := range b.subs[msg.Kind()] {
		if recipients != nil && !slices.Contains(recipients, sub.name) {
			continue
		}
		targets = append(targets, sub)
	}
	if len(targets) == 0 {
		return
	}

	l, ok := b.lanes[msg.Meeting()]
	if !ok {
		l = newLane(msg.Meeting())
		b.lanes[msg.Meeting()] = l
		b.wg.Go(l.run)
	}
	l.push(envelope{msg: msg, targets: targets})
}

// SubscriptionCount returns the number of live subscriptions.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, subs := range b.subs {
		count += len(subs)
	}
	return count
}

// Close stops accepting messages and waits until every queued message has
// been handled. Messages published by handlers during Close are dropped.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for _, l := range b.lanes {
		l.close()
	}
	b.mu.Unlock()

	b.wg.Wait()
}

type envelope struct {
	msg     Message
	targets []*subscription
}

type lane struct {
	key string

	mu     sync.Mutex
	queue  []envelope
	notify chan struct{}
	stop   chan struct{}
}

func newLane(key string) *lane {
	return &lane{
		key:    key,
		notify: make(chan struct{}, 1),
		stop:   make(chan struct{}),
	}
}

func (l *lane) push(e envelope) {
	l.mu.Lock()
	l.queue = append(l.queue, e)
	l.mu.Unlock()

	select {
	case l.notify <- struct{}{}:
	default:
	}
}

// close is only called once, under the bus lock.
func (l *lane) close() { close(l.stop) }

func (l *lane) run() {
	for {
		e, ok := l.next()
		if !ok {
			return
		}
		for _, sub := range e.targets {
			if sub.removed.Load() {
				continue
			}
			deliver(sub, e.msg)
		}
	}
}

// next blocks until an envelope is queued. After stop it keeps returning
// queued envelopes and reports false once the lane is empty.
func (l *lane) next() (envelope, bool) {
	for {
		l.mu.Lock()
		if len(l.queue) > 0 {
			e := l.queue[0]
			l.queue[0] = envelope{}
			l.queue = l.queue[1:]
			l.mu.Unlock()
			return e, true
		}
		l.mu.Unlock()

		select {
		case <-l.notify:
		case <-l.stop:
			l.mu.Lock()
			empty := len(l.queue) == 0
			l.mu.Unlock()
			if empty {
				return envelope{}, false
			}
		}
	}
}

func deliver(sub *subscription, msg Message) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Bus:Deliver:Panic",
				"subscription", sub.id,
				"kind", msg.Kind(),
				"meeting_id", msg.Meeting(),
				"panic", r,
				"stack", string(debug.Stack()),
			)
		}
	}()
	sub.handler(msg)
}
