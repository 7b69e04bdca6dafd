// Package gateway wires and runs the public HTTP ingress: RPC clients for
// the identity and content services, the router and the HTTP server.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/blogmesh/internal/gateway/clients"
	"github.com/dmitrijs2005/blogmesh/internal/gateway/config"
	"github.com/dmitrijs2005/blogmesh/internal/logging"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config   *config.Config
	logger   logging.Logger
	identity *clients.IdentityClient
	content  *clients.ContentClient
	server   *http.Server
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	identity, err := clients.NewIdentityClient(c.IdentityAddr)
	if err != nil {
		return nil, fmt.Errorf("identity client: %w", err)
	}

	content, err := clients.NewContentClient(c.ContentAddr)
	if err != nil {
		_ = identity.Close()
		return nil, fmt.Errorf("content client: %w", err)
	}

	srv := &http.Server{
		Addr:              c.HTTPAddr,
		Handler:           NewRouter(c, identity, content, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &App{config: c, logger: logger, identity: identity, content: content, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP until a signal or ctx cancellation, then drains in-flight
// requests and closes the RPC connections.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Gateway listening", "addr", app.config.HTTPAddr,
			"identity", app.config.IdentityAddr, "content", app.config.ContentAddr)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			app.logger.Error(ctx, "http server error", "error", err.Error())
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "http shutdown error", "error", err.Error())
	}

	if err := app.identity.Close(); err != nil {
		app.logger.Error(shutdownCtx, "identity client close error", "error", err.Error())
	}
	if err := app.content.Close(); err != nil {
		app.logger.Error(shutdownCtx, "content client close error", "error", err.Error())
	}
	app.logger.Info(shutdownCtx, "Gateway stopped")
}
