package model

import (
	"context"
	"net"
)

// SecurityLayer opens the listener a Server accepts connections on.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a network server with a start/stop lifecycle.
type Server interface {
	// Start blocks until the server is stopped.
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
