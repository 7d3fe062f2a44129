package model

import (
	"context"
	"net"
)

// SecurityLayer opens the listener the HTTP server accepts on, plain or TLS.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a long-running listener with graceful shutdown.
// Start blocks until the server stops and returns nil after a clean Stop.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
