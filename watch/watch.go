/*
Package watch makes a deletable segment tree shareable between goroutines
and lets clients observe its mutations.

Trees of package segtree are not safe for concurrent use. watch.Tree wraps a
segtree.Deletable with a read/write lock: queries may run in parallel, while
mutations, which may rebuild the whole buffer of the underlying tree, run
exclusively. Every successful mutation is broadcast as an Event to all
subscribers, in the order the mutations were applied.

	w := watch.New(d)
	events, _ := w.Subscribe(ctx, 16)
	go func() {
		for ev := range events {
			log.Printf("%v @%d = %v", ev.Op, ev.Index, ev.Value)
		}
	}()
	w.Add(42)

Subscribers have to keep reading from their channel (or cancel the context
they subscribed with); a subscriber with a full buffer stalls broadcasting
and therefore every further mutation.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package watch

import (
	"context"
	"errors"
	"sync"

	"github.com/guiguan/caster"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/segtree"
)

// tracer writes to trace with key 'segtree'.
func tracer() tracing.Trace {
	return tracing.Select("segtree")
}

// Op is the kind of a mutation.
type Op int8

// Mutations broadcast to subscribers
const (
	OpSet Op = iota
	OpAdd
	OpRemove
	OpCompact
)

func (op Op) String() string {
	switch op {
	case OpSet:
		return "set"
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	case OpCompact:
		return "compact"
	}
	return "unknown"
}

// Event describes a successful mutation. Index is the logical index affected
// (for OpAdd the index of the new value, for OpCompact the new length).
// Value is the value set or added, and the removed value for OpRemove.
type Event[T any] struct {
	Op    Op
	Index int
	Value T
}

// ErrClosed is returned when subscribing to a closed watcher.
var ErrClosed = errors.New("watch: closed")

// Tree is a lock-guarded deletable tree publishing its mutations.
type Tree[T any] struct {
	mu   sync.RWMutex
	tree *segtree.Deletable[T]
	cast *caster.Caster
}

// New wraps d. Clients must not use d directly afterwards.
func New[T any](d *segtree.Deletable[T]) *Tree[T] {
	return &Tree[T]{
		tree: d,
		cast: caster.New(context.Background()),
	}
}

// Subscribe returns a channel of mutation events. The channel has a buffer
// of capacity events and is closed as soon as ctx is done or the watcher
// is closed. Subscribing to a closed watcher returns ErrClosed.
func (w *Tree[T]) Subscribe(ctx context.Context, capacity uint) (<-chan Event[T], error) {
	select {
	case <-w.cast.Done():
		return nil, ErrClosed
	default:
	}
	// caster closes subscriptions with a done context only on its next
	// broadcast, so ctx is watched here and the subscription released explicitly
	sub, _ := w.cast.Sub(context.Background(), capacity)
	events := make(chan Event[T], capacity)
	go func() {
		defer close(events)
		for {
			select {
			case msg, ok := <-sub:
				if !ok {
					return
				}
				ev, ok := msg.(Event[T])
				if !ok {
					continue
				}
				select {
				case events <- ev:
				case <-ctx.Done():
					w.release(sub)
					return
				}
			case <-ctx.Done():
				w.release(sub)
				return
			}
		}
	}()
	return events, nil
}

// release unsubscribes sub. Until the broadcaster has dropped it, sub is
// drained so that broadcasting never blocks on it.
func (w *Tree[T]) release(sub chan interface{}) {
	go func() {
		for range sub {
		}
	}()
	go w.cast.Unsub(sub)
}

// Close stops broadcasting and closes all subscriber channels. The tree
// itself stays usable.
func (w *Tree[T]) Close() {
	w.cast.Close()
	<-w.cast.Done()
}

func (w *Tree[T]) publish(ev Event[T]) {
	if !w.cast.Pub(ev) {
		tracer().P("watch", ev.Op).Debugf("event @%d not published, watcher closed", ev.Index)
	}
}

// --- Queries ---------------------------------------------------------------

// Len returns the number of live values.
func (w *Tree[T]) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree.Len()
}

// Cap returns the apparent capacity of the tree.
func (w *Tree[T]) Cap() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree.Cap()
}

// Get returns the value at logical index.
func (w *Tree[T]) Get(index int) (T, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree.Get(index)
}

// Query returns the aggregate of the live values in [start, end].
// See segtree.Deletable.Query.
func (w *Tree[T]) Query(start, end int) T {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree.Query(start, end)
}

// Values returns a copy of the live values.
func (w *Tree[T]) Values() []T {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree.Values()
}

// --- Mutations -------------------------------------------------------------

// Set replaces the value at logical index.
func (w *Tree[T]) Set(index int, value T) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.tree.Set(index, value); err != nil {
		return err
	}
	w.publish(Event[T]{Op: OpSet, Index: index, Value: value})
	return nil
}

// Add appends a value.
func (w *Tree[T]) Add(value T) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tree.Add(value)
	w.publish(Event[T]{Op: OpAdd, Index: w.tree.Len() - 1, Value: value})
}

// Remove removes the value at logical index.
func (w *Tree[T]) Remove(index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	value, err := w.tree.Get(index)
	if err != nil {
		return err
	}
	if err := w.tree.Remove(index); err != nil {
		return err
	}
	w.publish(Event[T]{Op: OpRemove, Index: index, Value: value})
	return nil
}

// Compact drops all tombstones of the underlying tree.
func (w *Tree[T]) Compact() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tree.Compact()
	w.publish(Event[T]{Op: OpCompact, Index: w.tree.Len()})
}
