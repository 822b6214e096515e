package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Run serves until ctx is cancelled, then shuts down gracefully and waits
// for background work started by the domains.
func (srv *HTTPServer) Run(ctx context.Context) error {
	if err := srv.mapped(); err != nil {
		return fmt.Errorf("httpserver.Run: map handlers: %w", err)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", srv.port),
		Handler: srv.gin,
	}

	errCh := make(chan error, 1)
	go func() {
		srv.l.Infof(ctx, "HTTP server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("httpserver.Run: %w", err)
		}
	case <-ctx.Done():
	}

	srv.l.Infof(context.Background(), "Shutting down HTTP server (timeout %s)", srv.shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), srv.shutdownTimeout)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	for _, fn := range srv.drain {
		fn()
	}
	if err != nil {
		return fmt.Errorf("httpserver.Run: shutdown: %w", err)
	}
	return nil
}

// Handler maps routes and returns the engine without listening. Used by tests
// and by embedders that own the listener.
func (srv *HTTPServer) Handler() (http.Handler, error) {
	if err := srv.mapped(); err != nil {
		return nil, err
	}
	return srv.gin, nil
}

// mapped registers routes at most once per server.
func (srv *HTTPServer) mapped() error {
	srv.mapOnce.Do(func() {
		srv.mapErr = srv.mapHandlers()
	})
	return srv.mapErr
}
