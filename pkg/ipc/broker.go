// SPDX-License-Identifier: BSD-3-Clause

package ipc

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"

	tlog "github.com/At1ass/tt-riingd/pkg/log"
)

const (
	// DefaultStartupTimeout bounds how long Start waits for the broker
	// to become ready for connections.
	DefaultStartupTimeout = 5 * time.Second
	// DefaultShutdownTimeout bounds how long Shutdown waits for the
	// server to stop before it gives up waiting and returns.
	DefaultShutdownTimeout = 5 * time.Second
)

// Broker embeds a NATS server reachable only via in-process connections
// (DontListen: true — no TCP socket is opened). It is the concrete
// transport behind the event bus and the control endpoint.
type Broker struct {
	name            string
	startupTimeout  time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger

	server *server.Server
}

// NewBroker builds a Broker. logger is used for the embedded server's own
// diagnostics, bridged through pkg/log.NewNATSLogger.
func NewBroker(name string, logger *slog.Logger) *Broker {
	return &Broker{
		name:            name,
		startupTimeout:  DefaultStartupTimeout,
		shutdownTimeout: DefaultShutdownTimeout,
		logger:          logger,
	}
}

// Start creates and starts the embedded NATS server, blocking until it is
// ready for connections or the startup timeout elapses.
func (b *Broker) Start(ctx context.Context) error {
	opts := &server.Options{
		ServerName: b.name,
		DontListen: true,
		NoLog:      false,
		NoSigs:     true,
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		return fmt.Errorf("ipc: create broker: %w", err)
	}
	ns.SetLoggerV2(tlog.NewNATSLogger(b.logger), false, false, false)
	b.server = ns

	b.logger.InfoContext(ctx, "starting embedded message broker", "name", b.name)
	ns.Start()

	if !ns.ReadyForConnections(b.startupTimeout) {
		ns.Shutdown()
		return fmt.Errorf("%w: within %s", ErrServerNotReady, b.startupTimeout)
	}
	return nil
}

// Shutdown drains and stops the embedded server, waiting up to
// shutdownTimeout. If the server has not stopped by then, it logs a
// warning and returns while the stop continues in the background.
func (b *Broker) Shutdown(ctx context.Context) {
	if b.server == nil {
		return
	}
	b.server.LameDuckShutdown()

	done := make(chan struct{})
	go func() {
		defer close(done)
		b.server.Shutdown()
	}()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.shutdownTimeout)
	defer cancel()

	select {
	case <-done:
		b.logger.InfoContext(ctx, "message broker shut down cleanly")
	case <-shutdownCtx.Done():
		b.logger.WarnContext(ctx, "message broker shutdown timed out")
	}
}

// InProcessConn implements nats.InProcessConnProvider, letting callers
// connect with nats.Connect("", nats.InProcessServer(broker)).
func (b *Broker) InProcessConn() (net.Conn, error) {
	if b.server == nil {
		return nil, ErrConnectionNotAvailable
	}
	if !b.server.ReadyForConnections(b.startupTimeout) {
		return nil, ErrServerNotReady
	}
	return b.server.InProcessConn()
}

// Connect returns a *nats.Conn to the embedded broker.
func (b *Broker) Connect(opts ...nats.Option) (*nats.Conn, error) {
	allOpts := append([]nats.Option{nats.InProcessServer(b)}, opts...)
	return nats.Connect("", allOpts...)
}
