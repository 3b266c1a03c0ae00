package fetch

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceFetch(t *testing.T) {
	r := NewResource(func(ctx context.Context) (int, error) {
		return 42, nil
	})

	snap := r.Snapshot()
	assert.False(t, snap.HasData)
	assert.False(t, snap.Loading)

	<-r.Refetch(context.Background())

	snap = r.Snapshot()
	assert.True(t, snap.HasData)
	assert.Equal(t, 42, snap.Data)
	assert.False(t, snap.Loading)
	assert.NoError(t, snap.Err)
}

func TestResourceErrorThenRefetchClearsError(t *testing.T) {
	failErr := errors.New("boom")
	calls := atomic.Int32{}
	release := make(chan struct{})
	r := NewResource(func(ctx context.Context) (string, error) {
		if calls.Add(1) == 1 {
			return "", failErr
		}
		<-release
		return "ok", nil
	})

	<-r.Refetch(context.Background())
	assert.ErrorIs(t, r.Snapshot().Err, failErr)

	done := r.Refetch(context.Background())
	// The prior error clears as soon as the refetch starts, before the new
	// result lands.
	snap := r.Snapshot()
	assert.NoError(t, snap.Err)
	assert.True(t, snap.Loading)

	close(release)
	<-done
	assert.Equal(t, "ok", r.Snapshot().Data)
}

func TestResourceNoWritesAfterClose(t *testing.T) {
	release := make(chan struct{})
	r := NewResource(func(ctx context.Context) (int, error) {
		<-release
		return 99, nil
	})

	done := r.Refetch(context.Background())
	r.Close()
	close(release)
	<-done

	snap := r.Snapshot()
	assert.False(t, snap.HasData, "a result landing after Close must be discarded")
}

func TestResourceStaleResultSuppressed(t *testing.T) {
	gate := make(chan int)
	r := NewResource(func(ctx context.Context) (int, error) {
		return <-gate, nil
	})

	first := r.Refetch(context.Background())
	second := r.Refetch(context.Background())

	// The second fetch resolves first with the newer value.
	gate <- 2
	<-second
	// The first, now stale, resolves later with the older value.
	gate <- 1
	<-first

	assert.Equal(t, 2, r.Snapshot().Data, "stale result must not overwrite newer state")
}

func TestResourceDisabled(t *testing.T) {
	calls := atomic.Int32{}
	r := NewResource(func(ctx context.Context) (int, error) {
		calls.Add(1)
		return 1, nil
	}, Disabled[int]())

	<-r.Refetch(context.Background())
	snap := r.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, int32(0), calls.Load(), "disabled resource never calls the producer")

	<-r.SetEnabled(context.Background(), true)
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, r.Snapshot().HasData)
}

func TestResourceInitialData(t *testing.T) {
	r := NewResource(func(ctx context.Context) ([]string, error) {
		return []string{"fresh"}, nil
	}, WithInitial([]string{"seed"}))

	snap := r.Snapshot()
	require.True(t, snap.HasData)
	assert.Equal(t, []string{"seed"}, snap.Data)
}
