package schedule

import (
	"context"
	"sync"
	"time"
)

const DefaultInterval = 10 * time.Second

// Poller re-evaluates the mode on a fixed cadence until stopped.
type Poller struct {
	mu       sync.Mutex
	interval time.Duration
	tick     func(time.Time)
	now      func() time.Time
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewPoller creates a poller that calls tick with the current time on every interval.
func NewPoller(interval time.Duration, tick func(time.Time)) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		interval: interval,
		tick:     tick,
		now:      time.Now,
	}
}

// Start runs one tick immediately and then one per interval. Calling Start on
// a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})
	done := p.done

	go func() {
		defer close(done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.tick(p.now())
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// A cancel racing the ticker must win.
				if ctx.Err() != nil {
					return
				}
				p.tick(p.now())
			}
		}
	}()
}

// Stop cancels the loop and waits for it to exit. No tick runs after Stop returns.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	done := p.done
	p.cancel = nil
	p.done = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}
