package clock

import (
	"context"
	"sync"
	"time"
)

// Fake is a manually advanced Clock. Sleepers and tickers only fire when
// Advance moves the time past their deadline.
type Fake struct {
	mu       sync.Mutex
	cond     *sync.Cond
	now      time.Time
	sleepers map[*sleeper]struct{}
	tickers  map[*fakeTicker]struct{}
}

type sleeper struct {
	deadline time.Time
	done     chan struct{}
}

type fakeTicker struct {
	clock  *Fake
	period time.Duration
	next   time.Time
	ch     chan time.Time
}

func NewFake(now time.Time) *Fake {
	f := &Fake{
		now:      now,
		sleepers: make(map[*sleeper]struct{}),
		tickers:  make(map[*fakeTicker]struct{}),
	}
	f.cond = sync.NewCond(&f.mu)
	return f
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	f.mu.Lock()
	s := &sleeper{deadline: f.now.Add(d), done: make(chan struct{})}
	f.sleepers[s] = struct{}{}
	f.cond.Broadcast()
	f.mu.Unlock()

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		f.mu.Lock()
		delete(f.sleepers, s)
		f.mu.Unlock()
		return ctx.Err()
	}
}

func (f *Fake) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTicker{clock: f, period: d, next: f.now.Add(d), ch: make(chan time.Time, 1)}
	f.tickers[t] = struct{}{}
	f.cond.Broadcast()
	return t
}

// Advance moves the clock forward, firing every sleeper and ticker that
// falls due. Like time.Ticker, a tick is dropped when the reader is behind.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	target := f.now.Add(d)
	for t := range f.tickers {
		for !t.next.After(target) {
			select {
			case t.ch <- t.next:
			default:
			}
			t.next = t.next.Add(t.period)
		}
	}
	for s := range f.sleepers {
		if !s.deadline.After(target) {
			close(s.done)
			delete(f.sleepers, s)
		}
	}
	f.now = target
}

// Waiters reports how many sleepers and live tickers are registered.
func (f *Fake) Waiters() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sleepers) + len(f.tickers)
}

// BlockUntil waits until at least n sleepers or tickers are registered.
func (f *Fake) BlockUntil(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for len(f.sleepers)+len(f.tickers) < n {
		f.cond.Wait()
	}
}

func (t *fakeTicker) C() <-chan time.Time { return t.ch }

func (t *fakeTicker) Stop() {
	t.clock.mu.Lock()
	delete(t.clock.tickers, t)
	t.clock.cond.Broadcast()
	t.clock.mu.Unlock()
}
