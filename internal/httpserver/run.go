package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Run starts the PR workers, re-queues unprocessed deliveries when configured,
// and serves HTTP until ctx is cancelled. Shutdown stops accepting requests
// first, then drains the queued events within the shutdown timeout.
func (srv *HTTPServer) Run(ctx context.Context) error {
	dispatcher := srv.webhookHandler.Dispatcher()
	dispatcher.Start()

	if srv.replayOnStart {
		n, err := srv.webhookHandler.ReplayPending(ctx)
		if err != nil {
			srv.l.Errorf(ctx, "httpserver.Run: replay pending deliveries: %v", err)
		} else if n > 0 {
			srv.l.Infof(ctx, "httpserver.Run: re-queued %d pending deliveries", n)
		}
	}

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", srv.port),
		Handler:           srv.gin,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	srv.l.Infof(ctx, "HTTP server listening on %s", httpSrv.Addr)

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.shutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		srv.l.Errorf(shutdownCtx, "httpserver.Run: shutdown: %v", err)
	}
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		srv.l.Warnf(shutdownCtx, "httpserver.Run: dispatcher stopped before draining: %v", err)
	}

	return runErr
}
