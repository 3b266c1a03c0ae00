// Package fetch provides the generic data-loading primitives used by every
// list and detail view: an async single-value resource, a server-paginated
// list, and a client-side pagination helper. Loaders run fetches in the
// background and fence results by generation so a slow response can never
// overwrite newer state or touch a closed loader.
package fetch

import (
	"context"
	"sync"
)

// Snapshot is the externally observable state of a Resource.
type Snapshot[T any] struct {
	Data    T
	HasData bool
	Loading bool
	Err     error
}

// Resource loads a single value through a producer function. A disabled
// resource keeps the same interface but never invokes the producer.
type Resource[T any] struct {
	produce func(ctx context.Context) (T, error)

	mu      sync.Mutex
	enabled bool
	closed  bool
	gen     uint64
	data    T
	hasData bool
	loading bool
	err     error
}

// ResourceOption configures a Resource.
type ResourceOption[T any] func(*Resource[T])

// WithInitial seeds the resource with data before the first fetch.
func WithInitial[T any](data T) ResourceOption[T] {
	return func(r *Resource[T]) {
		r.data = data
		r.hasData = true
	}
}

// Disabled creates the resource in the suppressed state: Loading stays false
// and no producer call occurs until SetEnabled(true).
func Disabled[T any]() ResourceOption[T] {
	return func(r *Resource[T]) {
		r.enabled = false
	}
}

// NewResource creates a resource over the producer. Call Refetch to load.
func NewResource[T any](produce func(ctx context.Context) (T, error), opts ...ResourceOption[T]) *Resource[T] {
	r := &Resource[T]{
		produce: produce,
		enabled: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Refetch runs the producer in the background, clearing any prior error
// first. The returned channel closes when the attempt settles, whether its
// result was applied or discarded as stale. Disabled and closed resources
// settle immediately without calling the producer.
func (r *Resource[T]) Refetch(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})

	r.mu.Lock()
	if !r.enabled || r.closed {
		r.mu.Unlock()
		close(done)
		return done
	}
	r.gen++
	gen := r.gen
	r.loading = true
	r.err = nil
	r.mu.Unlock()

	go func() {
		defer close(done)
		data, err := r.produce(ctx)

		r.mu.Lock()
		defer r.mu.Unlock()
		if r.closed || r.gen != gen {
			// A newer fetch superseded this one, or the consumer is gone.
			return
		}
		r.loading = false
		if err != nil {
			r.err = err
			return
		}
		r.data = data
		r.hasData = true
	}()
	return done
}

// SetEnabled toggles fetch suppression. Enabling triggers a fetch; disabling
// clears loading and error so the resource presents a quiet interface.
func (r *Resource[T]) SetEnabled(ctx context.Context, enabled bool) <-chan struct{} {
	r.mu.Lock()
	if r.enabled == enabled || r.closed {
		r.mu.Unlock()
		done := make(chan struct{})
		close(done)
		return done
	}
	r.enabled = enabled
	if !enabled {
		r.gen++ // invalidate any in-flight fetch
		r.loading = false
		r.err = nil
		r.mu.Unlock()
		done := make(chan struct{})
		close(done)
		return done
	}
	r.mu.Unlock()
	return r.Refetch(ctx)
}

// Close tears the resource down. In-flight results are discarded and no
// state changes afterwards.
func (r *Resource[T]) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.gen++
}

// Snapshot returns the current state.
func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot[T]{
		Data:    r.data,
		HasData: r.hasData,
		Loading: r.loading,
		Err:     r.err,
	}
}
