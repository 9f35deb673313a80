package singleinstance

// This file defines the API for single-instance ownership and URI forwarding.
//
// Ownership is decided by binding a fixed loopback TCP port: the process that
// holds the bind is the primary, and the OS releases the socket on process
// death (normal or forced), so a crashed primary never wedges future
// launches. A launch that cannot bind is a secondary and forwards its URI to
// the resident primary over the same port.

import (
	"context"
	"errors"
)

// ErrAlreadyRunning is returned by Server.Start when another instance holds
// the port.
var ErrAlreadyRunning = errors.New("another instance is already running")

// Request is one forwarded activation from a secondary launch.
type Request struct {
	URI string
}

// Conn represents one secondary connection and exposes request + response API.
type Conn interface {
	// Request returns the parsed forwarded request.
	Request() Request
	// RespondSuccess acknowledges receipt of the forwarded URI.
	RespondSuccess() error
	// RespondError sends an error with human-readable message.
	RespondError(msg string) error
	// Close closes the underlying connection.
	Close() error
}

// Server owns the loopback port and receives forwarded URIs.
type Server interface {
	// Start binds the instance port. ErrAlreadyRunning means this launch is
	// a secondary and must forward instead.
	Start(ctx context.Context) error
	// Port returns the bound TCP port, or 0 if not started.
	Port() int
	// Next returns the next forwarded request as a Conn, or ctx error.
	Next(ctx context.Context) (Conn, error)
	// Close releases ownership and stops accepting secondaries.
	Close() error
}

// Client forwards a URI from a secondary launch to the resident primary.
type Client interface {
	// Forward transmits the URI. delivered=false with err=nil means no
	// primary responded; the caller decides what to do with the URI then.
	Forward(ctx context.Context, uri string) (delivered bool, err error)
}

// NewServer returns the TCP implementation.
func NewServer() Server { return newTCPServer() }

// NewClient returns the TCP implementation.
func NewClient() Client { return newTCPClient() }
