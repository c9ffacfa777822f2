package placeholder

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is how often the hint advances when no interval is given.
const DefaultInterval = time.Second

var words = [...]string{"Elephant", "Batman", "Sun", "Skateboard"}

// Words returns the hint words in rotation order.
func Words() []string {
	out := make([]string, len(words))
	copy(out, words[:])
	return out
}

// Cycle is the rotating position within Words. The zero value starts at the
// first word.
type Cycle struct {
	index int
}

// Advance moves to the next word, wrapping at the end.
func (c *Cycle) Advance() {
	c.index = (c.index + 1) % len(words)
}

// Index returns the current position.
func (c Cycle) Index() int { return c.index }

// Current returns the current hint word.
func (c Cycle) Current() string { return words[c.index] }

// Start calls fn once per interval on a background goroutine until ctx is
// cancelled or the returned stop function is called. stop blocks until the
// goroutine has exited, so fn is never called after stop returns. It is safe
// to call stop more than once.
func Start(ctx context.Context, interval time.Duration, fn func()) (stop func()) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// A tick racing with cancellation must not fire.
				if ctx.Err() != nil {
					return
				}
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}
