package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/registro/client/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source safe for concurrent reads
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(t *testing.T, clock *fakeClock, opts ...QueryCacheOption) *QueryCache {
	t.Helper()
	opts = append([]QueryCacheOption{WithClock(clock.Now)}, opts...)
	c := NewQueryCache(opts...)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func countingFetcher(value any) (*int32, FetchFunc) {
	var calls int32
	return &calls, func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return value, nil
	}
}

func TestFetchServesFreshEntryWithoutNetworkCall(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(t, clock)
	calls, fn := countingFetcher("v1")

	for i := 0; i < 3; i++ {
		value, err := c.Fetch(context.Background(), "k", fn)
		require.NoError(t, err)
		assert.Equal(t, "v1", value)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestFetchRefetchesAfterStalenessWindow(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(t, clock, WithWindows(5*time.Minute, 10*time.Minute))
	calls, fn := countingFetcher("v1")

	_, err := c.Fetch(context.Background(), "k", fn)
	require.NoError(t, err)

	clock.Advance(4 * time.Minute)
	_, err = c.Fetch(context.Background(), "k", fn)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls), "entry still fresh")

	clock.Advance(2 * time.Minute)
	_, err = c.Fetch(context.Background(), "k", fn)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(calls), "entry past the window refetches")
}

func TestFetchCollapsesConcurrentRequests(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(t, clock)

	const callers = 8
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	fn := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		return "shared", nil
	}

	var wg sync.WaitGroup
	results := make([]any, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			value, err := c.Fetch(context.Background(), "k", fn)
			assert.NoError(t, err)
			results[i] = value
		}(i)
	}

	<-started
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "concurrent fetches collapse into one request")
	for _, value := range results {
		assert.Equal(t, "shared", value)
	}
}

func TestInvalidateFamilyForcesRefetchOnNextAccess(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(t, clock)
	listCalls, listFn := countingFetcher([]string{"a"})
	otherCalls, otherFn := countingFetcher("other")

	_, err := c.Fetch(context.Background(), "persons:0:100", listFn)
	require.NoError(t, err)
	_, err = c.Fetch(context.Background(), "profession:1", otherFn)
	require.NoError(t, err)

	c.InvalidateFamily("persons:")

	_, err = c.Fetch(context.Background(), "persons:0:100", listFn)
	require.NoError(t, err)
	_, err = c.Fetch(context.Background(), "profession:1", otherFn)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(listCalls), "invalidated family refetches")
	assert.Equal(t, int32(1), atomic.LoadInt32(otherCalls), "unrelated resource kinds keep their entries")
}

func TestInvalidateKeyIsExact(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(t, clock)
	sevenCalls, sevenFn := countingFetcher("seven")
	seventyCalls, seventyFn := countingFetcher("seventy")

	_, _ = c.Fetch(context.Background(), "person:7", sevenFn)
	_, _ = c.Fetch(context.Background(), "person:70", seventyFn)

	c.InvalidateKey("person:7")

	_, _ = c.Fetch(context.Background(), "person:7", sevenFn)
	_, _ = c.Fetch(context.Background(), "person:70", seventyFn)

	assert.Equal(t, int32(2), atomic.LoadInt32(sevenCalls))
	assert.Equal(t, int32(1), atomic.LoadInt32(seventyCalls))
}

func TestFetchRetriesReadsUpToBudget(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(t, clock, WithReadRetries(3))

	var calls int32
	fn := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return nil, shared.NewTransportError("could not reach the server")
	}

	_, err := c.Fetch(context.Background(), "k", fn)
	require.Error(t, err)
	assert.True(t, shared.IsTransport(err))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetchNeverRetriesUnauthorized(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(t, clock, WithReadRetries(3))

	var calls int32
	fn := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return nil, shared.NewUnauthorizedError("authentication required")
	}

	_, err := c.Fetch(context.Background(), "k", fn)
	require.Error(t, err)
	assert.True(t, shared.IsUnauthorized(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "401 requires re-authentication, not repetition")
}

func TestFetchReturnsStaleValueAlongsideError(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(t, clock, WithReadRetries(1))

	_, err := c.Fetch(context.Background(), "k", func(ctx context.Context) (any, error) {
		return "cached", nil
	})
	require.NoError(t, err)

	c.InvalidateKey("k")

	value, err := c.Fetch(context.Background(), "k", func(ctx context.Context) (any, error) {
		return nil, shared.NewTransportError("could not reach the server")
	})
	require.Error(t, err)
	assert.Equal(t, "cached", value, "callers may show stale data next to the error")
}

func TestFetchDiscardsSupersededResponse(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(t, clock)

	inFlight := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		value, err := c.Fetch(context.Background(), "k", func(ctx context.Context) (any, error) {
			close(inFlight)
			<-release
			return "old", nil
		})
		// The stale caller still receives its value; only the cache ignores it.
		assert.NoError(t, err)
		assert.Equal(t, "old", value)
	}()

	<-inFlight
	c.InvalidateKey("k")
	close(release)
	<-done

	calls, fn := countingFetcher("new")
	value, err := c.Fetch(context.Background(), "k", fn)
	require.NoError(t, err)
	assert.Equal(t, "new", value, "superseded response must not repopulate the entry")
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestEvictUnusedDropsEntriesPastRetention(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(t, clock, WithWindows(5*time.Minute, 10*time.Minute))

	_, fn := countingFetcher("v")
	_, err := c.Fetch(context.Background(), "k", fn)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	clock.Advance(11 * time.Minute)
	c.evictUnused()

	assert.Zero(t, c.Len())
}

func TestCacheMetrics(t *testing.T) {
	clock := newFakeClock()
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	c := newTestCache(t, clock, WithMetrics(metrics))

	_, fn := countingFetcher("v")
	_, _ = c.Fetch(context.Background(), "k", fn)
	_, _ = c.Fetch(context.Background(), "k", fn)
	c.InvalidateKey("k")

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Hits))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Misses))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Invalidations))
}

func TestCloseIsIdempotent(t *testing.T) {
	c := NewQueryCache(WithClock(newFakeClock().Now))
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}

func TestFetchPropagatesForeignErrorsAfterRetries(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(t, clock, WithReadRetries(2))

	sentinel := errors.New("boom")
	var calls int32
	_, err := c.Fetch(context.Background(), "k", func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return nil, sentinel
	})

	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
