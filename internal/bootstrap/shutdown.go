package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/CoffeePOS_Go/internal/repository"
	"github.com/osse101/CoffeePOS_Go/internal/sse"
)

// Stopper is a server that can stop gracefully
type Stopper interface {
	Stop(ctx context.Context) error
}

// ShutdownComponents holds all components that need graceful shutdown.
// Hub and Broker may be nil.
type ShutdownComponents struct {
	Hub    *sse.Hub
	Server Stopper
	Broker *Broker
	Store  repository.Store
}

// GracefulShutdown stops components in order:
// 0. Order stream hub (open streams would otherwise hold the server)
// 1. HTTP server (stop accepting requests, let in-flight purchases finish)
// 2. Event broker (flush pending order events)
// 3. Storage
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	if components.Hub != nil {
		components.Hub.Stop()
	}

	slog.Info(LogMsgShuttingDownServer)
	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Broker != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.Broker.Publisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
		if err := components.Broker.conn.Close(); err != nil {
			slog.Error(LogMsgBrokerCloseFailed, "error", err)
		}
	}

	if components.Store != nil {
		if err := components.Store.Close(); err != nil {
			slog.Error(LogMsgStorageCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
