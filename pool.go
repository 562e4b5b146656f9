package mdxblog

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// ResolvePoolSize determines the worker count.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs in containers
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}

// rendererPool hands out PDF renderers, each with its own browser.
// Renderers are created lazily on first acquire to avoid startup delay.
type rendererPool struct {
	size      int
	create    func() pdfRenderer
	renderers []pdfRenderer
	sem       chan pdfRenderer
	mu        sync.Mutex
	created   int
	closed    bool
}

// newRendererPool creates a pool with capacity for n renderers.
func newRendererPool(n int, create func() pdfRenderer) *rendererPool {
	if n < 1 {
		n = 1
	}
	return &rendererPool{
		size:      n,
		create:    create,
		renderers: make([]pdfRenderer, 0, n),
		sem:       make(chan pdfRenderer, n),
	}
}

// Acquire gets a renderer, creating one while below capacity.
// Blocks until one is released or ctx is done.
func (p *rendererPool) Acquire(ctx context.Context) (pdfRenderer, error) {
	select {
	case r, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return r, nil
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.created < p.size {
		p.created++
		r := p.create()
		p.renderers = append(p.renderers, r)
		p.mu.Unlock()
		return r, nil
	}
	p.mu.Unlock()

	select {
	case r, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return r, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a renderer to the pool. The channel holds every created
// renderer, so the send never blocks.
func (p *rendererPool) Release(r pdfRenderer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.sem <- r
}

// Close shuts down every created renderer.
// Returns an aggregated error if several renderers fail to close.
func (p *rendererPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	renderers := p.renderers
	p.mu.Unlock()

	var errs []error
	for _, r := range renderers {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *rendererPool) Size() int {
	return p.size
}
