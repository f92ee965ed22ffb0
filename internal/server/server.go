package server

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/MKhiriev/bullbear-client/internal/logger"
)

type server struct {
	httpServer *httpServer
	address    string
	logger     *logger.Logger

	// listening, when set, receives the bound address once the listener
	// is open.
	listening func(net.Addr)
}

// NewServer prepares an HTTP server for handler on address ("host:port").
func NewServer(handler http.Handler, address string, log *logger.Logger) (Server, error) {
	log.Info().Msg("creating new server...")

	if address == "" {
		return nil, errNoAddress
	}
	if handler == nil {
		return nil, errNoHandler
	}

	return &server{
		httpServer: newHTTPServer(handler, address, log),
		address:    address,
		logger:     log,
	}, nil
}

func (s *server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.address, err)
	}
	if s.listening != nil {
		s.listening(ln.Addr())
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.serve(ln)
	}()

	select {
	case err = <-serveErr:
		return err
	case <-ctx.Done():
	}

	s.httpServer.shutdown()
	err = <-serveErr
	s.logger.Info().Msg("server Shutdown gracefully")

	return err
}
