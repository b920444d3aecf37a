// Package pace spaces repeated requests evenly over time.
package pace

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Pacer hands out start times one interval apart. A caller that falls behind
// starts immediately and the schedule resumes from that moment, so missed
// slots never turn into a burst.
//
// Pacer is safe for concurrent use.
type Pacer struct {
	interval time.Duration
	mu       sync.Mutex
	next     time.Time

	scheduled atomic.Int64
	waited    atomic.Int64
}

// New returns a Pacer for perSecond starts per second. A non-positive rate
// yields a Pacer that never waits.
func New(perSecond float64) *Pacer {
	p := &Pacer{}
	if perSecond > 0 {
		p.interval = time.Duration(float64(time.Second) / perSecond)
	}
	return p
}

// Next reserves the next start time.
func (p *Pacer) Next() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	slot := p.next
	if slot.Before(now) {
		slot = now
	}
	p.next = slot.Add(p.interval)

	p.scheduled.Add(1)
	p.waited.Add(int64(slot.Sub(now)))
	return slot
}

// Wait blocks until the reserved start time or until ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	d := time.Until(p.Next())
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Stats reports how many starts were scheduled and the total time callers
// were asked to wait.
func (p *Pacer) Stats() (scheduled int64, waited time.Duration) {
	return p.scheduled.Load(), time.Duration(p.waited.Load())
}
