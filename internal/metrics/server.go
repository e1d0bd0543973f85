package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 3 * time.Second

// Server exposes /metrics and /health until its context ends or Close is called.
type Server struct {
	srv    *http.Server
	ln     net.Listener
	logger *zap.Logger

	once    sync.Once
	stopErr error
	done    chan struct{}
}

// Serve starts listening on addr and returns once the listener is bound.
func Serve(ctx context.Context, addr string, rec *Recorder, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listen %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", rec.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	s := &Server{
		srv:    &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		ln:     ln,
		logger: logger,
		done:   make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		logger.Info("metrics server listening", zap.String("addr", ln.Addr().String()))
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()
	go func() {
		select {
		case <-ctx.Done():
			_ = s.shutdown()
		case <-s.done:
		}
	}()
	return s, nil
}

// Addr is the bound address, useful when addr requested port 0.
func (s *Server) Addr() string { return s.ln.Addr().String() }

// Close shuts the server down and waits for it to exit.
func (s *Server) Close() error {
	err := s.shutdown()
	<-s.done
	return err
}

func (s *Server) shutdown() error {
	s.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.stopErr = s.srv.Shutdown(ctx)
	})
	return s.stopErr
}
