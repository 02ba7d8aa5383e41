package webhook

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kb-integration/internal/model"
	"kb-integration/pkg/log"
)

type processorFunc func(ctx context.Context, event model.PullRequestEvent) error

func (f processorFunc) Process(ctx context.Context, event model.PullRequestEvent) error {
	return f(ctx, event)
}

type resultRecorder struct {
	mu      sync.Mutex
	results []error
	done    chan struct{}
}

func newResultRecorder() *resultRecorder {
	return &resultRecorder{done: make(chan struct{}, 16)}
}

func (r *resultRecorder) record(_ context.Context, _ model.PullRequestEvent, err error) {
	r.mu.Lock()
	r.results = append(r.results, err)
	r.mu.Unlock()
	r.done <- struct{}{}
}

func (r *resultRecorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for processor result")
	}
}

func TestDispatcher_ReportsErrorsAndPanics(t *testing.T) {
	rec := newResultRecorder()
	boom := errors.New("boom")

	d := NewDispatcher(processorFunc(func(_ context.Context, e model.PullRequestEvent) error {
		switch e.Number {
		case 1:
			return boom
		case 2:
			panic("processor exploded")
		}
		return nil
	}), 1, 4, rec.record, log.NewNop())
	d.Start()
	t.Cleanup(func() { _ = d.Stop(context.Background()) })

	for n := 1; n <= 3; n++ {
		require.NoError(t, d.Dispatch(model.PullRequestEvent{Number: n}))
	}
	for i := 0; i < 3; i++ {
		rec.wait(t)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.results, 3)
	assert.ErrorIs(t, rec.results[0], boom)
	assert.ErrorContains(t, rec.results[1], "processor exploded")
	assert.NoError(t, rec.results[2])
}

func TestDispatcher_DoesNotBlockWhenFull(t *testing.T) {
	release := make(chan struct{})
	d := NewDispatcher(processorFunc(func(context.Context, model.PullRequestEvent) error {
		<-release
		return nil
	}), 1, 1, nil, log.NewNop())
	d.Start()

	require.NoError(t, d.Dispatch(model.PullRequestEvent{Number: 1})) // taken by the worker
	// Wait until the worker picked up the first event so the queue slot is free.
	require.Eventually(t, func() bool { return len(d.queue) == 0 }, time.Second, time.Millisecond)
	require.NoError(t, d.Dispatch(model.PullRequestEvent{Number: 2})) // buffered

	start := time.Now()
	err := d.Dispatch(model.PullRequestEvent{Number: 3})
	assert.ErrorIs(t, err, ErrQueueFull)
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	close(release)
	require.NoError(t, d.Stop(context.Background()))
	assert.ErrorIs(t, d.Dispatch(model.PullRequestEvent{Number: 4}), ErrDispatcherStopped)
}

func TestDispatcher_StopHonoursDeadline(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	d := NewDispatcher(processorFunc(func(context.Context, model.PullRequestEvent) error {
		<-release
		return nil
	}), 1, 1, nil, log.NewNop())
	d.Start()
	require.NoError(t, d.Dispatch(model.PullRequestEvent{Number: 1}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Stop(ctx), context.DeadlineExceeded)
}
