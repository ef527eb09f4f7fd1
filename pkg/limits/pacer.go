package limits

import (
	"context"
	"sync"
	"time"

	"dealerscope/saturn/pkg/catalog"
)

// Pacer enforces each template's minimum delay between dispatches.
//
// Pacer is thread-safe. Time is read through a clock function so tests
// can run without sleeping.
type Pacer struct {
	mu   sync.Mutex
	last map[string]time.Time
	now  func() time.Time
}

// NewPacer creates an empty pacer.
func NewPacer() *Pacer {
	return &Pacer{
		last: make(map[string]time.Time),
		now:  time.Now,
	}
}

// DelayFor returns how long the caller must wait before dispatching the
// template again. Zero means the template may dispatch immediately. The
// template's last-dispatch time is not updated; call MarkDispatched
// once the dispatch actually happens.
func (p *Pacer) DelayFor(tmpl *catalog.Template) time.Duration {
	minDelay := time.Duration(tmpl.RateLimit.MinDelayMillis) * time.Millisecond
	if minDelay <= 0 {
		return 0
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	last, ok := p.last[tmpl.ID]
	if !ok {
		return 0
	}
	elapsed := p.now().Sub(last)
	if elapsed >= minDelay {
		return 0
	}
	return minDelay - elapsed
}

// MarkDispatched records that the template was dispatched now.
func (p *Pacer) MarkDispatched(tmpl *catalog.Template) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last[tmpl.ID] = p.now()
}

// Wait blocks until the template's minimum delay has passed, then marks
// it dispatched. It returns early with the context's error if the
// context is canceled while waiting.
func (p *Pacer) Wait(ctx context.Context, tmpl *catalog.Template) error {
	delay := p.DelayFor(tmpl)
	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	p.MarkDispatched(tmpl)
	return nil
}
