package store

import "sync"

// notifier provides subscriber notification shared by all stores.
// Subscribers run synchronously after a settled mutation, outside the
// owning store's state lock, so a callback may read store state freely.
type notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

// Subscribe registers fn to run after every settled mutation of the
// owning store. The returned cancel func removes the subscription; a
// canceled subscriber is never invoked again.
func (n *notifier) Subscribe(fn func()) (cancel func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs == nil {
		n.subs = make(map[int]func())
	}
	id := n.next
	n.next++
	n.subs[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// publish invokes all current subscribers.
func (n *notifier) publish() {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
