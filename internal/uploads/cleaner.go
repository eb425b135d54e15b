package uploads

import (
	"log/slog"
	"os"
	"sync"
)

// Cleaner performs best-effort file deletion after a mutation has already
// succeeded. Deletions run on their own goroutine so they never block or fail
// a request; failures are logged and dropped.
type Cleaner struct {
	store *Store
	log   *slog.Logger
	queue chan string
	done  chan struct{}

	mu     sync.Mutex
	closed bool
}

func NewCleaner(store *Store, log *slog.Logger) *Cleaner {
	c := &Cleaner{
		store: store,
		log:   log,
		queue: make(chan string, 64),
		done:  make(chan struct{}),
	}
	go c.run()
	return c
}

// Remove enqueues a stored filename for deletion. Values that are not
// deletable (sentinel default, external URLs) are ignored. Never blocks and
// never panics, even after Close; late calls are logged and dropped.
func (c *Cleaner) Remove(image string) {
	if !Deletable(image) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		c.log.Warn("upload cleanup after close, dropping", "file", image)
		return
	}
	select {
	case c.queue <- image:
	default:
		c.log.Warn("upload cleanup queue full, dropping", "file", image)
	}
}

func (c *Cleaner) run() {
	defer close(c.done)
	for name := range c.queue {
		if err := os.Remove(c.store.Path(name)); err != nil {
			c.log.Warn("upload cleanup failed", "file", name, "error", err)
			continue
		}
		c.log.Info("upload removed", "file", name)
	}
}

// Close drains the queue and stops the worker. Idempotent.
func (c *Cleaner) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		<-c.done
		return
	}
	c.closed = true
	c.mu.Unlock()

	close(c.queue)
	<-c.done
}
