package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"parcel-tracking/logger"
	"parcel-tracking/services/metrics"
)

const (
	DefaultQueueSize      = 256
	DefaultPublishTimeout = 5 * time.Second
)

var (
	ErrQueueFull        = errors.New("event queue is full")
	ErrDispatcherClosed = errors.New("event dispatcher is closed")
)

// Dispatcher hands events to a background worker so request handlers never
// wait on a broker. The worker publishes in enqueue order, each call bounded
// by its own timeout and detached from the request that produced it.
type Dispatcher struct {
	inner   Publisher
	queue   chan *Event
	timeout time.Duration
	done    chan struct{}
	once    sync.Once

	mu       sync.RWMutex
	closed   bool
	closeErr error
}

// NewDispatcher starts the worker. Non-positive size or timeout fall back to
// the defaults.
func NewDispatcher(inner Publisher, size int, timeout time.Duration) *Dispatcher {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	d := &Dispatcher{
		inner:   inner,
		queue:   make(chan *Event, size),
		timeout: timeout,
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

// Publish queues the event and returns at once. The context is ignored; a
// cancelled request must not cancel delivery of what it already committed.
func (d *Dispatcher) Publish(_ context.Context, event *Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}

	select {
	case d.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for event := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		err := d.inner.Publish(ctx, event)
		cancel()
		if err != nil {
			metrics.EventPublishFailures.WithLabelValues(event.EventType).Inc()
			logger.Warning(fmt.Sprintf("Failed to publish %s for parcel %s: %v", event.EventType, event.TrackingNumber, err))
		}
	}
}

// Close stops accepting events, drains the queue and closes the wrapped
// publisher.
func (d *Dispatcher) Close() error {
	d.once.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()

		<-d.done
		d.closeErr = d.inner.Close()
	})
	return d.closeErr
}
