package tracking_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/models"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/tracking"

	"go.uber.org/zap"
)

type fetchCall struct {
	release chan fetchResult
}

type fetchResult struct {
	order *models.Order
	err   error
}

// MockFetcher: каждый вызов ждёт, пока тест не отпустит его результат.
type MockFetcher struct {
	mu      sync.Mutex
	calls   []*fetchCall
	started chan int
}

func newMockFetcher() *MockFetcher {
	return &MockFetcher{started: make(chan int, 16)}
}

func (m *MockFetcher) FetchByTrackingID(ctx context.Context, _ string) (*models.Order, error) {
	c := &fetchCall{release: make(chan fetchResult, 1)}
	m.mu.Lock()
	m.calls = append(m.calls, c)
	n := len(m.calls)
	m.mu.Unlock()
	m.started <- n

	select {
	case r := <-c.release:
		return r.order, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (m *MockFetcher) call(i int) *fetchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[i]
}

func (m *MockFetcher) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func waitStarted(t *testing.T, m *MockFetcher, n int) {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case got := <-m.started:
			if got >= n {
				return
			}
		case <-timeout:
			t.Fatalf("fetch #%d never started", n)
		}
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func order(status models.OrderStatus) *models.Order {
	return &models.Order{TrackingID: "TRXAAA", Status: status}
}

func TestPoller_StaleResponseDiscarded(t *testing.T) {
	f := newMockFetcher()
	p := tracking.NewPoller(f, "TRXAAA", tracking.Options{Live: false}, zap.NewNop())
	p.Start(context.Background())
	defer p.Stop()

	waitStarted(t, f, 1) // A
	p.Refresh()
	waitStarted(t, f, 2) // B

	f.call(1).release <- fetchResult{order: order(models.OrderStatusShipped)}
	waitFor(t, "B applied", func() bool {
		st := p.State()
		return st.Order != nil && st.Order.Status == models.OrderStatusShipped
	})

	f.call(0).release <- fetchResult{order: order(models.OrderStatusPending)}
	time.Sleep(50 * time.Millisecond)

	st := p.State()
	if st.Order.Status != models.OrderStatusShipped {
		t.Fatalf("late response overwrote fresher data: %s", st.Order.Status)
	}
	if st.IsFetching || st.IsLoading {
		t.Fatalf("unexpected flags: %+v", st)
	}
	if st.LastUpdatedAt.IsZero() {
		t.Fatalf("LastUpdatedAt must be set on success")
	}
}

func TestPoller_NotFoundIsTerminal(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	f := tracking.FetcherFunc(func(context.Context, string) (*models.Order, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return nil, tracking.ErrNotFound
	})
	p := tracking.NewPoller(f, "BOGUS123", tracking.Options{
		Live:            true,
		NotFoundRetries: 2,
		BaseBackoff:     5 * time.Millisecond,
		MaxBackoff:      10 * time.Millisecond,
	}, zap.NewNop())
	p.Start(context.Background())
	defer p.Stop()

	waitFor(t, "terminal not found", func() bool { return p.State().Terminal })
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	got := calls
	mu.Unlock()
	if got != 3 {
		t.Fatalf("expected 1 attempt + 2 retries, got %d", got)
	}

	st := p.State()
	var nf *tracking.TrackingNotFoundError
	if !errors.As(st.Err, &nf) || !nf.Terminal {
		t.Fatalf("expected terminal TrackingNotFoundError, got %v", st.Err)
	}
	if !errors.Is(st.Err, tracking.ErrNotFound) {
		t.Fatalf("not-found error must unwrap to ErrNotFound")
	}
}

func TestPoller_NetworkErrorsRetryWithBackoff(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	f := tracking.FetcherFunc(func(context.Context, string) (*models.Order, error) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls <= 2 {
			return nil, errors.New("dial tcp: connection refused")
		}
		return order(models.OrderStatusConfirmed), nil
	})

	var seenNetErr bool
	var seenMu sync.Mutex
	p := tracking.NewPoller(f, "TRXAAA", tracking.Options{
		Live:        true,
		BaseBackoff: 5 * time.Millisecond,
		MaxBackoff:  20 * time.Millisecond,
		OnChange: func(st tracking.State) {
			var ne *tracking.TrackingNetworkError
			if errors.As(st.Err, &ne) {
				seenMu.Lock()
				seenNetErr = true
				seenMu.Unlock()
			}
		},
	}, zap.NewNop())
	p.Start(context.Background())
	defer p.Stop()

	waitFor(t, "recovery", func() bool {
		st := p.State()
		return st.Order != nil && st.Err == nil
	})

	seenMu.Lock()
	defer seenMu.Unlock()
	if !seenNetErr {
		t.Fatalf("network errors must be reported before recovery")
	}
	if p.State().Terminal {
		t.Fatalf("network errors are never terminal")
	}
}

func TestPoller_LiveToggleAndManualRefresh(t *testing.T) {
	f := newMockFetcher()
	p := tracking.NewPoller(f, "TRXAAA", tracking.Options{Live: false, Interval: 5 * time.Second}, zap.NewNop())
	p.Start(context.Background())
	defer p.Stop()

	waitStarted(t, f, 1)
	f.call(0).release <- fetchResult{order: order(models.OrderStatusPending)}
	waitFor(t, "initial load", func() bool { return p.State().Order != nil })

	time.Sleep(30 * time.Millisecond)
	if f.count() != 1 {
		t.Fatalf("no automatic polling outside live mode, got %d calls", f.count())
	}

	p.SetLive(true)
	waitStarted(t, f, 2)
	f.call(1).release <- fetchResult{order: order(models.OrderStatusConfirmed)}
	waitFor(t, "live fetch applied", func() bool { return p.State().Order.Status == models.OrderStatusConfirmed })

	p.SetLive(false)
	p.Refresh()
	waitStarted(t, f, 3)
	f.call(2).release <- fetchResult{order: order(models.OrderStatusProcessing)}
	waitFor(t, "manual refresh applied", func() bool { return p.State().Order.Status == models.OrderStatusProcessing })

	if st := p.State(); st.Live || !st.Changed {
		t.Fatalf("unexpected state %+v", st)
	}
}

func TestPoller_StopCancelsInFlight(t *testing.T) {
	f := newMockFetcher()
	var mu sync.Mutex
	updates := 0
	p := tracking.NewPoller(f, "TRXAAA", tracking.Options{
		Live: true,
		OnChange: func(tracking.State) {
			mu.Lock()
			updates++
			mu.Unlock()
		},
	}, zap.NewNop())
	p.Start(context.Background())
	waitStarted(t, f, 1)

	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Stop did not return")
	}

	mu.Lock()
	before := updates
	mu.Unlock()

	p.Refresh()
	time.Sleep(30 * time.Millisecond)

	mu.Lock()
	after := updates
	mu.Unlock()
	if after != before || f.count() != 1 {
		t.Fatalf("poller kept working after Stop: updates %d->%d calls %d", before, after, f.count())
	}
	if !p.State().LastUpdatedAt.IsZero() {
		t.Fatalf("cancelled request must not apply")
	}
}

func TestPoller_StartAfterStopIsNoop(t *testing.T) {
	f := newMockFetcher()
	p := tracking.NewPoller(f, "TRXAAA", tracking.Options{Live: true}, zap.NewNop())
	p.Stop()
	p.Start(context.Background())
	p.Stop()

	time.Sleep(30 * time.Millisecond)
	if f.count() != 0 {
		t.Fatalf("stopped poller must not fetch, calls=%d", f.count())
	}
}

func TestPoller_ConcurrentStartStop(t *testing.T) {
	for i := 0; i < 50; i++ {
		p := tracking.NewPoller(newMockFetcher(), "TRXAAA", tracking.Options{Live: true}, zap.NewNop())

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			p.Start(context.Background())
		}()
		go func() {
			defer wg.Done()
			p.Stop()
		}()
		wg.Wait()

		done := make(chan struct{})
		go func() {
			p.Stop()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("iteration %d: Stop did not return", i)
		}
	}
}

func TestClampInterval(t *testing.T) {
	cases := map[time.Duration]time.Duration{
		0:                tracking.DefaultInterval,
		time.Second:      tracking.MinInterval,
		12 * time.Second: 12 * time.Second,
		time.Minute:      tracking.MaxInterval,
	}
	for in, want := range cases {
		if got := tracking.ClampInterval(in); got != want {
			t.Errorf("ClampInterval(%s) = %s want %s", in, got, want)
		}
	}
}
