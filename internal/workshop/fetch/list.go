package fetch

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/httpclient"
)

// DefaultPageSize matches the server's DRF page size.
const DefaultPageSize = 25

// ListSnapshot is the externally observable state of a List.
type ListSnapshot[T any] struct {
	Items      []T
	Count      int
	Page       int
	PageSize   int
	TotalPages int
	Loading    bool
	Err        error
}

// List loads a server-paginated collection. The fetcher receives the page
// number and returns the raw response body, which is normalized through
// httpclient.ToPaginated so envelopes and bare arrays behave the same.
type List[T any] struct {
	fetcher  func(ctx context.Context, page int) ([]byte, error)
	pageSize int

	mu      sync.Mutex
	closed  bool
	gen     uint64
	page    int
	items   []T
	count   int
	loading bool
	err     error
}

// ListOption configures a List.
type ListOption[T any] func(*List[T])

// WithPageSize overrides the page size used for total-page math. It must
// match the server's page size to be meaningful.
func WithPageSize[T any](size int) ListOption[T] {
	return func(l *List[T]) {
		if size > 0 {
			l.pageSize = size
		}
	}
}

// NewList creates a paginated list starting at page 1. Call Fetch to load.
func NewList[T any](fetcher func(ctx context.Context, page int) ([]byte, error), opts ...ListOption[T]) *List[T] {
	l := &List[T]{
		fetcher:  fetcher,
		pageSize: DefaultPageSize,
		page:     1,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Fetch loads the current page in the background. The returned channel
// closes when the attempt settles.
func (l *List[T]) Fetch(ctx context.Context) <-chan struct{} {
	l.mu.Lock()
	page := l.page
	return l.fetchLocked(ctx, page)
}

// SetPage moves to page p and fetches it, leaving filters untouched. A
// no-op when p equals the current page.
func (l *List[T]) SetPage(ctx context.Context, p int) <-chan struct{} {
	if p < 1 {
		p = 1
	}
	l.mu.Lock()
	if p == l.page {
		l.mu.Unlock()
		done := make(chan struct{})
		close(done)
		return done
	}
	l.page = p
	return l.fetchLocked(ctx, p)
}

// Invalidate is the filter-change entry point: it resets to page 1 and
// issues exactly one fetch. Callers close new filter state over the fetcher,
// mirroring how list pages rebuild their query on every filter edit.
func (l *List[T]) Invalidate(ctx context.Context) <-chan struct{} {
	l.mu.Lock()
	l.page = 1
	return l.fetchLocked(ctx, 1)
}

// fetchLocked starts the background fetch. The caller must hold l.mu, which
// is released before returning.
func (l *List[T]) fetchLocked(ctx context.Context, page int) <-chan struct{} {
	done := make(chan struct{})
	if l.closed {
		l.mu.Unlock()
		close(done)
		return done
	}
	l.gen++
	gen := l.gen
	l.loading = true
	l.err = nil
	l.mu.Unlock()

	go func() {
		defer close(done)
		raw, err := l.fetcher(ctx, page)

		var items []T
		var count int
		if err == nil {
			paginated := httpclient.ToPaginated(raw)
			count = paginated.Count
			items = make([]T, 0, len(paginated.Results))
			for _, result := range paginated.Results {
				var item T
				if unmarshalErr := json.Unmarshal(result, &item); unmarshalErr != nil {
					err = unmarshalErr
					break
				}
				items = append(items, item)
			}
		}

		l.mu.Lock()
		defer l.mu.Unlock()
		if l.closed || l.gen != gen {
			return
		}
		l.loading = false
		if err != nil {
			l.err = err
			return
		}
		l.items = items
		l.count = count
	}()
	return done
}

// Close tears the list down; in-flight results are discarded.
func (l *List[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	l.gen++
}

// Snapshot returns the current state. TotalPages is always at least 1.
func (l *List[T]) Snapshot() ListSnapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	totalPages := (l.count + l.pageSize - 1) / l.pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	return ListSnapshot[T]{
		Items:      l.items,
		Count:      l.count,
		Page:       l.page,
		PageSize:   l.pageSize,
		TotalPages: totalPages,
		Loading:    l.loading,
		Err:        l.err,
	}
}
