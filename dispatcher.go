// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package netmsg

import (
	"sync"

	"code.hybscloud.com/netmsg/internal/netlog"
)

// Handler receives a dispatched Message for the tag it was registered
// under.
type Handler func(msg *Message)

// SubscriptionID identifies one Register call so it can be targeted by
// Unregister without relying on function-value comparison.
type SubscriptionID uint64

type subscription struct {
	id SubscriptionID
	fn Handler
}

// event is the staged (tag, message) envelope waiting for Tick to drain it.
type event struct {
	tag Tag
	msg *Message
}

// Dispatcher is a thread-safe tag -> callback-set router with a staging
// queue drained one item per Tick. Staging plus single-item drain decouples
// network-thread receive latency from callback cost and gives the embedder
// a natural place to throttle delivery.
type Dispatcher struct {
	mu      sync.Mutex
	routes  map[Tag][]subscription
	queue   []event
	nextSub SubscriptionID
}

// NewDispatcher constructs an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{routes: make(map[Tag][]subscription)}
}

// Register appends fn to tag's callback list, creating the list if absent.
// The returned SubscriptionID can be passed to Unregister to remove only
// this callback.
func (d *Dispatcher) Register(tag Tag, fn Handler) SubscriptionID {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextSub++
	id := d.nextSub
	d.routes[tag] = append(d.routes[tag], subscription{id: id, fn: fn})
	return id
}

// Unregister removes the callback identified by id from tag's list. If id
// is the last callback for tag, the tag entry is removed entirely: a
// single map delete is sufficient, there is no need to first null out the
// slot.
func (d *Dispatcher) Unregister(tag Tag, id SubscriptionID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	subs := d.routes[tag]
	for i, s := range subs {
		if s.id == id {
			subs = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(subs) == 0 {
		delete(d.routes, tag)
		return
	}
	d.routes[tag] = subs
}

// UnregisterTag removes tag's entire callback list.
func (d *Dispatcher) UnregisterTag(tag Tag) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.routes, tag)
}

// Clear empties the routing table. The staging queue is unaffected.
func (d *Dispatcher) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.routes = make(map[Tag][]subscription)
}

// Stage enqueues an event for tag. Safe to call from a receive-loop
// goroutine concurrently with Tick.
func (d *Dispatcher) Stage(tag Tag, msg *Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queue = append(d.queue, event{tag: tag, msg: msg})
}

// Pending reports how many staged events are waiting to be drained.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// Tick dequeues at most one staged event and invokes every callback
// registered for its tag, in registration order. A panic inside one
// callback is recovered so it cannot prevent the remaining callbacks from
// running, nor escape to the caller. Returns true if an event was
// delivered.
func (d *Dispatcher) Tick() bool {
	d.mu.Lock()
	if len(d.queue) == 0 {
		d.mu.Unlock()
		return false
	}
	ev := d.queue[0]
	d.queue = d.queue[1:]
	// Snapshot the callback list under the lock so a concurrent
	// Register/Unregister during delivery doesn't race the slice.
	subs := append([]subscription(nil), d.routes[ev.tag]...)
	d.mu.Unlock()

	for _, s := range subs {
		invokeHandler(s, ev)
	}
	return true
}

func invokeHandler(s subscription, ev event) {
	defer func() {
		if r := recover(); r != nil {
			netlog.L().Errorw("netmsg: dispatcher callback panicked", "tag", ev.tag, "recover", r)
		}
	}()
	s.fn(ev.msg)
}
