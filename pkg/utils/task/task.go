package task

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

var (
	// ErrTimeout is the cause of a task that exceeded its deadline
	ErrTimeout = goerr.New("task timed out")
	// ErrCanceled is the cause of a task stopped by Future.Cancel
	ErrCanceled = goerr.New("task canceled")
)

// Future is the pending result of a function started by Run.
type Future[T any] struct {
	ctx    context.Context
	cancel context.CancelCauseFunc
	done   chan struct{}
	value  T
	err    error
}

// Run starts fn in its own goroutine. fn receives a context that is
// cancelled when parent is cancelled, when timeout elapses (timeout <= 0
// means no deadline) or when Cancel is called.
func Run[T any](parent context.Context, timeout time.Duration, fn func(ctx context.Context) (T, error)) *Future[T] {
	ctx, cancel := context.WithCancelCause(parent)
	taskCtx := ctx
	stop := func() {}
	if timeout > 0 {
		taskCtx, stop = context.WithTimeoutCause(ctx, timeout, ErrTimeout)
	}

	f := &Future[T]{
		ctx:    taskCtx,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		v, err := fn(taskCtx)
		if err != nil && taskCtx.Err() != nil {
			err = goerr.Wrap(context.Cause(taskCtx), "task aborted", goerr.V("error", err.Error()))
		}
		f.value, f.err = v, err
		close(f.done)

		stop()
		cancel(nil)
	}()

	return f
}

// Cancel aborts the task. It is safe to call more than once and after completion.
func (f *Future[T]) Cancel() {
	f.cancel(ErrCanceled)
}

// Done is closed when fn has returned.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until fn returns, the task is aborted, or ctx is done. An
// aborted task returns immediately even if fn ignores its context.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	var zero T

	select {
	case <-f.done:
		return f.value, f.err
	case <-f.ctx.Done():
	case <-ctx.Done():
		return zero, goerr.Wrap(ctx.Err(), "stopped waiting for task")
	}

	// fn may have finished right before the cleanup cancel fired
	select {
	case <-f.done:
		return f.value, f.err
	default:
	}

	return zero, goerr.Wrap(context.Cause(f.ctx), "task aborted")
}
