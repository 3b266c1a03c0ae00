package fetch

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID int `json:"id"`
}

// pageFetcher records every requested page and serves a canned envelope.
type pageFetcher struct {
	mu    sync.Mutex
	pages []int
	count int
}

func (f *pageFetcher) fetch(_ context.Context, page int) ([]byte, error) {
	f.mu.Lock()
	f.pages = append(f.pages, page)
	f.mu.Unlock()
	return []byte(fmt.Sprintf(`{"results":[{"id":%d}],"count":%d}`, page*100, f.count)), nil
}

func (f *pageFetcher) requested() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int, len(f.pages))
	copy(out, f.pages)
	return out
}

func TestListFetchDecodesEnvelope(t *testing.T) {
	f := &pageFetcher{count: 60}
	l := NewList[row](f.fetch)
	<-l.Fetch(context.Background())

	snap := l.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 100, snap.Items[0].ID)
	assert.Equal(t, 60, snap.Count)
	assert.Equal(t, 1, snap.Page)
	assert.Equal(t, 25, snap.PageSize)
	assert.Equal(t, 3, snap.TotalPages)
}

func TestListBareArrayResponse(t *testing.T) {
	l := NewList[row](func(_ context.Context, page int) ([]byte, error) {
		return []byte(`[{"id":1},{"id":2}]`), nil
	})
	<-l.Fetch(context.Background())

	snap := l.Snapshot()
	assert.Len(t, snap.Items, 2)
	assert.Equal(t, 2, snap.Count)
	assert.Equal(t, 1, snap.TotalPages)
}

func TestListSetPageFetchesExactlyOnce(t *testing.T) {
	f := &pageFetcher{count: 60}
	l := NewList[row](f.fetch)
	<-l.Fetch(context.Background())

	<-l.SetPage(context.Background(), 2)

	assert.Equal(t, []int{1, 2}, f.requested(), "one fetch per page change")
	snap := l.Snapshot()
	assert.Equal(t, 2, snap.Page)
	assert.Equal(t, 200, snap.Items[0].ID)
}

func TestListSetSamePageIsNoop(t *testing.T) {
	f := &pageFetcher{count: 60}
	l := NewList[row](f.fetch)
	<-l.Fetch(context.Background())

	<-l.SetPage(context.Background(), 1)
	assert.Equal(t, []int{1}, f.requested())
}

func TestListInvalidateResetsToPageOne(t *testing.T) {
	f := &pageFetcher{count: 60}
	l := NewList[row](f.fetch)
	<-l.Fetch(context.Background())
	<-l.SetPage(context.Background(), 3)

	// Filter change: back to page 1 with exactly one fetch.
	<-l.Invalidate(context.Background())

	assert.Equal(t, []int{1, 3, 1}, f.requested())
	assert.Equal(t, 1, l.Snapshot().Page)
}

func TestListStaleResponseSuppressed(t *testing.T) {
	release := make(chan struct{})
	l := NewList[row](func(_ context.Context, page int) ([]byte, error) {
		if page == 1 {
			<-release // page 1 is slow
		}
		return []byte(fmt.Sprintf(`{"results":[{"id":%d}],"count":60}`, page)), nil
	})

	slow := l.Fetch(context.Background())
	fast := l.SetPage(context.Background(), 2)
	<-fast

	require.Equal(t, 2, l.Snapshot().Items[0].ID)

	close(release)
	<-slow

	assert.Equal(t, 2, l.Snapshot().Items[0].ID, "slow page-1 response must not clobber page 2")
	assert.Equal(t, 2, l.Snapshot().Page)
}

func TestListErrorSurfacesAndClearsOnRefetch(t *testing.T) {
	failing := true
	l := NewList[row](func(_ context.Context, page int) ([]byte, error) {
		if failing {
			return nil, fmt.Errorf("temporary outage")
		}
		return []byte(`[]`), nil
	})

	<-l.Fetch(context.Background())
	assert.Error(t, l.Snapshot().Err)

	failing = false
	<-l.Fetch(context.Background())
	assert.NoError(t, l.Snapshot().Err)
}

func TestListNoWritesAfterClose(t *testing.T) {
	release := make(chan struct{})
	l := NewList[row](func(_ context.Context, page int) ([]byte, error) {
		<-release
		return []byte(`[{"id":1}]`), nil
	})

	done := l.Fetch(context.Background())
	l.Close()
	close(release)
	<-done

	assert.Empty(t, l.Snapshot().Items)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	page := Paginate(items, 1, 3)
	assert.Equal(t, []int{1, 2, 3}, page.Items)
	assert.Equal(t, 3, page.TotalPages)

	page = Paginate(items, 3, 3)
	assert.Equal(t, []int{7}, page.Items)

	// Out-of-range pages clamp to the last page that exists.
	page = Paginate(items, 9, 3)
	assert.Equal(t, 3, page.Number)
	assert.Equal(t, []int{7}, page.Items)

	page = Paginate([]int{}, 5, 3)
	assert.Equal(t, 1, page.Number)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.TotalPages)
}
