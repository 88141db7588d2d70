package shutdownsetup

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

// DefaultTimeout bounds how long in-flight requests may take to drain.
const DefaultTimeout = 10 * time.Second

// SetupGracefulShutdown blocks until SIGINT or SIGTERM, then shuts the server down
func SetupGracefulShutdown(server *http.Server, log *logger.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_ = WaitAndShutdown(ctx, server, log, DefaultTimeout)
}

// WaitAndShutdown blocks until ctx is done, then stops the server, giving
// in-flight requests up to timeout to finish.
func WaitAndShutdown(ctx context.Context, server *http.Server, log *logger.Logger, timeout time.Duration) error {
	<-ctx.Done()
	log.Info("Shutdown signal received, draining connections", "timeout", timeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed, forcing close", "error", err)
		_ = server.Close()
		return err
	}

	log.Info("Server stopped gracefully")
	return nil
}
