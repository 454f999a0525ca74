package bootstrap

import (
	"context"
	"log/slog"
)

// Shutdown stops the application in order:
// 1. HTTP server (stop accepting new requests)
// 2. Reveal schedulers (disclose pending outcomes so no flag stays held)
// 3. SSE hub
// 4. Storage
//
// Errors are logged and do not stop the sequence.
func (a *App) Shutdown(ctx context.Context) {
	slog.Info(LogMsgShuttingDownServer)
	if a.Server != nil {
		if err := a.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	slog.Info(LogMsgFlushingReveals)
	a.Cases.Shutdown()
	a.Battles.Shutdown()

	a.Hub.Stop()

	if err := a.Storage.Close(); err != nil {
		slog.Error(LogMsgStorageCloseFailed, "error", err)
	}

	slog.Info(LogMsgServerStopped)
}
