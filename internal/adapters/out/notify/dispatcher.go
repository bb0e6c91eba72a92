// Package notify fans notifications and system alerts out to persistent and
// push sinks on a background worker so request handlers never wait on I/O.
package notify

import (
	"context"
	"sync"
	"time"

	"logistics/internal/core/ports"

	"github.com/rs/zerolog"
)

// Sink receives every notice accepted by the Dispatcher. Errors are logged
// and never retried.
type Sink interface {
	SaveNotification(ctx context.Context, n ports.Notification) error
	SaveAlert(ctx context.Context, a ports.SystemAlert) error
}

type Options struct {
	QueueSize   int
	SinkTimeout time.Duration
}

const (
	defaultQueueSize   = 256
	defaultSinkTimeout = 5 * time.Second
)

type notice struct {
	notification *ports.Notification
	alert        *ports.SystemAlert
}

// Dispatcher implements ports.Notifier and ports.AlertRecorder on top of a
// bounded queue. A full queue drops the notice with a warning.
type Dispatcher struct {
	sinks   []Sink
	queue   chan notice
	timeout time.Duration
	logger  zerolog.Logger
	clock   func() time.Time

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

var (
	_ ports.Notifier      = (*Dispatcher)(nil)
	_ ports.AlertRecorder = (*Dispatcher)(nil)
)

func NewDispatcher(opts Options, logger zerolog.Logger, sinks ...Sink) *Dispatcher {
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	if opts.SinkTimeout <= 0 {
		opts.SinkTimeout = defaultSinkTimeout
	}
	return &Dispatcher{
		sinks:   sinks,
		queue:   make(chan notice, opts.QueueSize),
		timeout: opts.SinkTimeout,
		logger:  logger.With().Str("component", "notify").Logger(),
		clock:   func() time.Time { return time.Now().UTC() },
		done:    make(chan struct{}),
	}
}

// Start launches the worker. It must be called once.
func (d *Dispatcher) Start() {
	go d.run()
}

// Stop refuses new notices, drains the queue and waits for the worker or ctx.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) Notify(_ context.Context, n ports.Notification) {
	if n.At.IsZero() {
		n.At = d.clock()
	}
	d.enqueue(notice{notification: &n}, "notification", string(n.Kind))
}

func (d *Dispatcher) RecordAlert(_ context.Context, a ports.SystemAlert) {
	if a.At.IsZero() {
		a.At = d.clock()
	}
	d.enqueue(notice{alert: &a}, "alert", string(a.Kind))
}

func (d *Dispatcher) enqueue(item notice, what, kind string) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn().Str("notice", what).Str("kind", kind).Msg("dispatcher stopped, notice dropped")
		return
	}

	select {
	case d.queue <- item:
	default:
		d.logger.Warn().Str("notice", what).Str("kind", kind).Msg("notify queue full, notice dropped")
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for item := range d.queue {
		for _, sink := range d.sinks {
			d.deliver(sink, item)
		}
	}
}

func (d *Dispatcher) deliver(sink Sink, item notice) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	var err error
	if item.notification != nil {
		err = sink.SaveNotification(ctx, *item.notification)
	} else {
		err = sink.SaveAlert(ctx, *item.alert)
	}
	if err != nil {
		d.logger.Error().Err(err).Type("sink", sink).Msg("deliver notice")
	}
}
