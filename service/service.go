package service

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

type service struct {
	mu     sync.RWMutex
	addr   string
	logger *zap.Logger

	ready     int32
	done      chan struct{}
	closeOnce sync.Once
}

func newService() *service {
	return &service{
		logger: zap.NewNop(),
		done:   make(chan struct{}),
	}
}

// SetAddr sets the TCP network address
func (s *service) SetAddr(addr string) {
	s.mu.Lock()
	s.addr = addr
	s.mu.Unlock()
}

// GetAddr returns the TCP network address. After the start it is the
// address of the listener.
func (s *service) GetAddr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// SetLogger sets the service logger
func (s *service) SetLogger(l *zap.Logger) {
	if l != nil {
		s.mu.Lock()
		s.logger = l
		s.mu.Unlock()
	}
}

// Ready reports whether the service accepts connections
func (s *service) Ready() bool {
	return atomic.LoadInt32(&s.ready) > 0
}

// Close stops the service
func (s *service) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}

func (s *service) getLogger() *zap.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logger
}

func (s *service) serve(name, addr string, run func(retval chan<- error), stop func(*zap.Logger)) error {

	l := s.getLogger().With(zap.String("service", name), zap.String("addr", addr))

	retval := make(chan error, 1)
	go run(retval)

	atomic.StoreInt32(&s.ready, 1)
	defer atomic.StoreInt32(&s.ready, 0)

	l.Info("started")

	select {
	case err := <-retval:
		l.Error("stopped", zap.Error(err))
		return err

	case <-s.done:
		l.Info("stopping")
		stop(l)
		err := <-retval
		l.Info("stopped")
		return err
	}
}
