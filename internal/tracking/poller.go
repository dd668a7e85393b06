package tracking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/models"

	"go.uber.org/zap"
)

const (
	MinInterval     = 5 * time.Second
	MaxInterval     = 30 * time.Second
	DefaultInterval = 10 * time.Second

	DefaultNotFoundRetries = 2
	DefaultBaseBackoff     = time.Second
	DefaultMaxBackoff      = 30 * time.Second
)

type Fetcher interface {
	FetchByTrackingID(ctx context.Context, trackingID string) (*models.Order, error)
}

type FetcherFunc func(ctx context.Context, trackingID string) (*models.Order, error)

func (f FetcherFunc) FetchByTrackingID(ctx context.Context, trackingID string) (*models.Order, error) {
	return f(ctx, trackingID)
}

type Options struct {
	Interval        time.Duration
	Live            bool
	NotFoundRetries int
	BaseBackoff     time.Duration
	MaxBackoff      time.Duration
	// OnChange вызывается из горутины поллера после каждого применённого обновления.
	OnChange func(State)
}

func ClampInterval(d time.Duration) time.Duration {
	switch {
	case d <= 0:
		return DefaultInterval
	case d < MinInterval:
		return MinInterval
	case d > MaxInterval:
		return MaxInterval
	}
	return d
}

func (o Options) withDefaults() Options {
	o.Interval = ClampInterval(o.Interval)
	if o.NotFoundRetries < 0 {
		o.NotFoundRetries = 0
	}
	if o.BaseBackoff <= 0 {
		o.BaseBackoff = DefaultBaseBackoff
	}
	if o.MaxBackoff <= 0 {
		o.MaxBackoff = DefaultMaxBackoff
	}
	if o.MaxBackoff < o.BaseBackoff {
		o.MaxBackoff = o.BaseBackoff
	}
	return o
}

// State: снимок для потребителя. Order может отставать не более чем на один интервал.
type State struct {
	Order         *models.Order
	IsLoading     bool
	IsFetching    bool
	Err           error
	LastUpdatedAt time.Time
	Live          bool
	Terminal      bool
	// Changed: статус или время изменения заказа отличаются от предыдущего снимка.
	Changed bool
}

type result struct {
	seq   uint64
	order *models.Order
	err   error
}

type Poller struct {
	fetcher    Fetcher
	trackingID string
	opts       Options
	log        *zap.Logger
	now        func() time.Time

	mu          sync.Mutex
	state       State
	issued      uint64
	notFound    int
	netFailures int
	started     bool
	cancel      context.CancelFunc

	results   chan result
	refreshCh chan struct{}
	wakeCh    chan struct{}
	stopCh    chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

func NewPoller(fetcher Fetcher, trackingID string, opts Options, log *zap.Logger) *Poller {
	opts = opts.withDefaults()
	return &Poller{
		fetcher:    fetcher,
		trackingID: trackingID,
		opts:       opts,
		log:        log.With(zap.String("tracking_id", trackingID)),
		now:        time.Now,
		state:      State{Live: opts.Live},
		results:    make(chan result, 4),
		refreshCh:  make(chan struct{}, 1),
		wakeCh:     make(chan struct{}, 1),
		stopCh:     make(chan struct{}),
	}
}

func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Start запускает цикл опроса. Первый запрос уходит сразу, даже вне live-режима.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	// после Stop поллер не перезапускается
	select {
	case <-p.stopCh:
		return
	default:
	}
	p.started = true
	ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go p.run(ctx)
}

// Stop отменяет таймеры и запросы в полёте и дожидается их завершения.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		p.mu.Lock()
		close(p.stopCh)
		cancel := p.cancel
		p.mu.Unlock()
		if cancel != nil {
			cancel()
		}
	})
	p.wg.Wait()
}

// Refresh запрашивает внеочередное обновление; работает и вне live-режима.
func (p *Poller) Refresh() {
	select {
	case p.refreshCh <- struct{}{}:
	default:
	}
}

func (p *Poller) SetLive(live bool) {
	p.mu.Lock()
	p.state.Live = live
	p.mu.Unlock()
	select {
	case p.wakeCh <- struct{}{}:
	default:
	}
}

func (p *Poller) run(ctx context.Context) {
	defer p.wg.Done()

	timer := time.NewTimer(0)
	defer timer.Stop()
	initial := true

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		case <-timer.C:
			if initial || p.autoPolling() {
				initial = false
				p.issue(ctx)
			}
		case <-p.refreshCh:
			p.issue(ctx)
		case <-p.wakeCh:
			if p.autoPolling() {
				resetTimer(timer, 0)
			} else {
				stopTimer(timer)
			}
		case r := <-p.results:
			if stopped(ctx, p.stopCh) {
				return
			}
			if next, ok := p.apply(r); ok && p.autoPolling() {
				resetTimer(timer, next)
			}
		}
	}
}

func (p *Poller) autoPolling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Live && !p.state.Terminal
}

func (p *Poller) issue(ctx context.Context) {
	p.mu.Lock()
	p.issued++
	seq := p.issued
	p.state.IsFetching = true
	p.state.IsLoading = p.state.Order == nil
	st := p.state
	p.mu.Unlock()
	p.notify(st)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		order, err := p.fetcher.FetchByTrackingID(ctx, p.trackingID)
		select {
		case p.results <- result{seq: seq, order: order, err: err}:
		case <-ctx.Done():
		}
	}()
}

// apply применяет ответ, только если он на самый последний выданный запрос.
// Возвращает задержку до следующего автоматического запроса.
func (p *Poller) apply(r result) (time.Duration, bool) {
	p.mu.Lock()
	if r.seq != p.issued {
		p.mu.Unlock()
		p.log.Debug("discarding stale tracking response", zap.Uint64("seq", r.seq))
		return 0, false
	}

	var next time.Duration
	prev := p.state.Order
	p.state.IsFetching = false
	p.state.IsLoading = false
	p.state.Changed = false

	switch {
	case r.err == nil && r.order != nil:
		p.notFound, p.netFailures = 0, 0
		p.state.Order = r.order
		p.state.Err = nil
		p.state.Terminal = false
		p.state.LastUpdatedAt = p.now()
		p.state.Changed = prev == nil || prev.Status != r.order.Status || !prev.UpdatedAt.Equal(r.order.UpdatedAt)
		next = p.opts.Interval
	case r.err == nil || errors.Is(r.err, ErrNotFound):
		p.notFound++
		terminal := p.notFound > p.opts.NotFoundRetries
		p.state.Err = &TrackingNotFoundError{TrackingID: p.trackingID, Attempts: p.notFound, Terminal: terminal}
		p.state.Terminal = terminal
		next = p.backoff(p.notFound)
	default:
		p.netFailures++
		p.state.Err = &TrackingNetworkError{TrackingID: p.trackingID, Attempt: p.netFailures, Err: r.err}
		next = p.backoff(p.netFailures)
	}
	st := p.state
	p.mu.Unlock()

	if st.Terminal {
		p.log.Info("tracking id not found, automatic polling stopped")
	} else if st.Err != nil {
		p.log.Warn("tracking fetch failed", zap.Error(st.Err), zap.Duration("retry_in", next))
	}
	p.notify(st)
	return next, !st.Terminal
}

func (p *Poller) backoff(attempt int) time.Duration {
	d := p.opts.BaseBackoff
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= p.opts.MaxBackoff {
			return p.opts.MaxBackoff
		}
	}
	return d
}

func (p *Poller) notify(st State) {
	if p.opts.OnChange != nil {
		p.opts.OnChange(st)
	}
}

func stopped(ctx context.Context, stopCh <-chan struct{}) bool {
	select {
	case <-ctx.Done():
		return true
	case <-stopCh:
		return true
	default:
		return false
	}
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}

func resetTimer(t *time.Timer, d time.Duration) {
	stopTimer(t)
	t.Reset(d)
}
