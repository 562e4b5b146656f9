package interactive

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Sentinel errors for widget operations.
var (
	ErrNoClipboard = errors.New("no clipboard configured")
	ErrClipboard   = errors.New("clipboard write failed")
)

// Timer is a pending scheduled task.
type Timer interface {
	Stop() bool
}

// Scheduler runs fn once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// SystemScheduler schedules on the runtime timer.
type SystemScheduler struct{}

// AfterFunc implements Scheduler with time.AfterFunc.
func (SystemScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Clipboard is the system clipboard.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// MemoryClipboard keeps the last written text. Err, when set, is returned by
// every write.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
	Err  error
}

// WriteText implements Clipboard.
func (c *MemoryClipboard) WriteText(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.text = text
	return nil
}

// Text returns the last written text.
func (c *MemoryClipboard) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}
