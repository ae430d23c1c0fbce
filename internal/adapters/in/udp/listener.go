// Package udp accepts JSON datagrams from external systems: order
// submissions from the order source and override requests from the monitor.
// Each listener binds one port and hands every datagram to its handler; the
// handler owns parsing and validation, so a hostile datagram costs at most a
// log line.
package udp

import (
	"context"
	"errors"
	"log/slog"
	"net"

	"warehouse/internal/pkg/errs"
)

// maxDatagramSize bounds a single read. Order and override payloads are
// tiny; anything larger is truncated and will fail JSON parsing downstream.
const maxDatagramSize = 4096

// DatagramHandler consumes one datagram payload.
type DatagramHandler func(payload []byte)

// Listener reads JSON datagrams from one UDP port.
type Listener struct {
	name    string
	conn    net.PacketConn
	handler DatagramHandler
	logger  *slog.Logger
}

// Listen binds addr and returns a listener ready to start. The name labels
// log lines ("orders", "overrides").
func Listen(name, addr string, handler DatagramHandler, logger *slog.Logger) (*Listener, error) {
	if handler == nil {
		return nil, errs.NewValueIsRequiredError("handler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return nil, err
	}

	return &Listener{
		name:    name,
		conn:    conn,
		handler: handler,
		logger:  logger.With("component", "udp", "listener", name),
	}, nil
}

// Addr returns the bound address.
func (l *Listener) Addr() net.Addr {
	return l.conn.LocalAddr()
}

// Run reads datagrams until the context is cancelled or the connection is
// closed. Each datagram is handed to the handler synchronously; datagrams
// arriving faster than the handler processes them queue in the kernel
// buffer.
func (l *Listener) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = l.conn.Close()
	}()

	l.logger.Info("listening", "addr", l.Addr().String())

	buf := make([]byte, maxDatagramSize)
	for {
		n, remote, err := l.conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		payload := make([]byte, n)
		copy(payload, buf[:n])
		l.logger.Debug("datagram received", "remote", remote.String(), "bytes", n)
		l.handler(payload)
	}
}

// Close releases the socket.
func (l *Listener) Close() error {
	return l.conn.Close()
}
