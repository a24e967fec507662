// Package ticker delivers the once-per-second ticks that drive a game clock.
package ticker

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Interval is the tick period.
const Interval = time.Second

// Source emits one tick per Interval until stopped.
type Source struct {
	ctx    context.Context
	cancel context.CancelFunc
	ticker clockwork.Ticker

	once sync.Once
}

// New starts a tick source on the given clock. Pass clockwork.NewRealClock()
// in production and a fake clock in tests.
func New(parent context.Context, clk clockwork.Clock) *Source {
	ctx, cancel := context.WithCancel(parent)
	return &Source{
		ctx:    ctx,
		cancel: cancel,
		ticker: clk.NewTicker(Interval),
	}
}

// Next blocks until the next tick. It returns false once the source is stopped.
func (s *Source) Next() (time.Time, bool) {
	select {
	case <-s.ctx.Done():
		return time.Time{}, false
	case t := <-s.ticker.Chan():
		return t, true
	}
}

// Stop halts tick delivery and releases any blocked Next call.
func (s *Source) Stop() {
	s.once.Do(func() {
		s.ticker.Stop()
		s.cancel()
	})
}

// Stopped reports whether Stop was called or the parent context ended.
func (s *Source) Stopped() bool {
	return s.ctx.Err() != nil
}

// Run calls fn for every tick until the source stops or fn returns false.
func (s *Source) Run(fn func(time.Time) bool) {
	for {
		t, ok := s.Next()
		if !ok {
			return
		}
		if !fn(t) {
			s.Stop()
			return
		}
	}
}
