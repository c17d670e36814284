package service

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	pkgerr "github.com/pkg/errors"
	"go.uber.org/zap"
)

// A HTTP service
type HTTP struct {
	*service
	closeTimeout time.Duration

	// use only once property
	handler http.Handler

	hooksMu sync.Mutex
	hooks   []func()
}

// NewHTTP creates a http service with the handler
func NewHTTP(handler http.Handler, closeTimeout time.Duration) *HTTP {
	return &HTTP{
		service:      newService(),
		handler:      handler,
		closeTimeout: closeTimeout,
	}
}

// OnClose registers a function called before the server shutdown
func (s *HTTP) OnClose(fn func()) {
	s.hooksMu.Lock()
	s.hooks = append(s.hooks, fn)
	s.hooksMu.Unlock()
}

// ListenAndServeAddr listens on the TCP network address and
// accepts incoming connections on the listener
func (s *HTTP) ListenAndServeAddr(addr string) error {
	s.SetAddr(addr)
	return s.ListenAndServe()
}

// ListenAndServe listens on the TCP network address and
// accepts incoming connections on the listener.
// It returns http.ErrServerClosed after Close.
func (s *HTTP) ListenAndServe() error {

	l, err := net.Listen("tcp", s.GetAddr())
	if err != nil {
		return pkgerr.Wrap(err, "new http listener")
	}

	addr := l.Addr().String()
	s.SetAddr(addr)

	svr := &http.Server{
		Addr:    addr,
		Handler: s.handler,
	}

	run := func(retval chan<- error) {
		retval <- svr.Serve(l)
	}

	stop := func(l *zap.Logger) {
		s.hooksMu.Lock()
		hooks := append([]func(){}, s.hooks...)
		s.hooksMu.Unlock()

		for _, fn := range hooks {
			fn()
		}

		ctx, cancel := context.WithTimeout(context.Background(), s.closeTimeout)
		defer cancel()

		if err := svr.Shutdown(ctx); err != nil {
			l.Error("failed to shutdown", zap.Error(err))
		}
	}

	return s.serve("http service", addr, run, stop)
}

// Serve runs the service until the context is done (GroupTask)
func (s *HTTP) Serve(ctx context.Context) error {

	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-s.done:
		}
	}()

	err := s.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}

	return err
}
