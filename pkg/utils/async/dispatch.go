package async

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/verteidiq/assessor/pkg/utils/errutil"
	"github.com/verteidiq/assessor/pkg/utils/logging"
)

var inflight sync.WaitGroup

// Dispatch runs handler in a new goroutine detached from ctx cancellation.
// The logger carried by ctx is preserved. Errors and panics are logged and
// reported, never propagated.
func Dispatch(ctx context.Context, name string, handler func(ctx context.Context) error) {
	bgCtx := logging.With(context.Background(), logging.From(ctx))

	inflight.Add(1)
	go func() {
		defer inflight.Done()
		defer func() {
			if r := recover(); r != nil {
				err := goerr.New("panic in async handler", goerr.V("name", name), goerr.V("panic", r))
				_ = errutil.Handle(bgCtx, err, "async handler panicked")
			}
		}()

		if err := handler(bgCtx); err != nil {
			_ = errutil.Handle(bgCtx, goerr.Wrap(err, "async handler failed", goerr.V("name", name)), "async handler failed")
		}
	}()
}

// Wait blocks until every dispatched handler has returned or ctx is done.
// Call it on shutdown before closing what the handlers write to.
func Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return goerr.Wrap(ctx.Err(), "async handlers still running")
	}
}
