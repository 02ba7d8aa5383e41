package webhook

import (
	"context"
	"sync"

	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"

	"kb-integration/internal/model"
	pkgLog "kb-integration/pkg/log"
)

// Processor applies the documentation effect of a pull request event.
type Processor interface {
	Process(ctx context.Context, event model.PullRequestEvent) error
}

// ResultFunc receives the outcome of every dispatched event, including panics
// recovered from the processor.
type ResultFunc func(ctx context.Context, event model.PullRequestEvent, err error)

const (
	defaultWorkers   = 4
	defaultQueueSize = 100
)

// Dispatcher runs a bounded pool of processors fed by a buffered queue.
// Dispatch never blocks the caller.
type Dispatcher struct {
	processor Processor
	onResult  ResultFunc
	workers   int
	queue     chan model.PullRequestEvent
	pool      *pool.Pool
	l         pkgLog.Logger

	mu      sync.RWMutex
	started bool
	stopped bool
}

func NewDispatcher(processor Processor, workers, queueSize int, onResult ResultFunc, l pkgLog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Dispatcher{
		processor: processor,
		onResult:  onResult,
		workers:   workers,
		queue:     make(chan model.PullRequestEvent, queueSize),
		pool:      pool.New().WithMaxGoroutines(workers),
		l:         l,
	}
}

// Start launches the workers. Calling it twice is a no-op.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.stopped {
		return
	}
	d.started = true
	for i := 0; i < d.workers; i++ {
		d.pool.Go(d.work)
	}
}

// Dispatch enqueues event. It returns ErrQueueFull instead of waiting for room.
func (d *Dispatcher) Dispatch(event model.PullRequestEvent) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrDispatcherStopped
	}

	select {
	case d.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop refuses new events and waits for queued ones to finish, or for ctx to end.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.stopped = true
	started := d.started
	close(d.queue)
	d.mu.Unlock()

	if !started {
		return nil
	}

	done := make(chan struct{})
	go func() {
		d.pool.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		d.l.Warnf(ctx, "webhook.Dispatcher.Stop: %d events still queued", len(d.queue))
		return ctx.Err()
	}
}

func (d *Dispatcher) work() {
	for event := range d.queue {
		d.run(event)
	}
}

// run processes one event detached from any request. No deadline is applied.
func (d *Dispatcher) run(event model.PullRequestEvent) {
	ctx := pkgLog.WithRequestID(context.Background(), event.DeliveryID)

	var (
		catcher panics.Catcher
		err     error
	)
	catcher.Try(func() {
		err = d.processor.Process(ctx, event)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		err = recovered.AsError()
	}

	if d.onResult != nil {
		d.onResult(ctx, event, err)
	}
}
