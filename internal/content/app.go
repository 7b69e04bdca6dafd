// Package content wires and runs the content service.
package content

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/blogmesh/internal/content/config"
	cgrpc "github.com/dmitrijs2005/blogmesh/internal/content/grpc"
	"github.com/dmitrijs2005/blogmesh/internal/content/repositories/repomanager"
	"github.com/dmitrijs2005/blogmesh/internal/content/services"
	"github.com/dmitrijs2005/blogmesh/internal/dbx"
	"github.com/dmitrijs2005/blogmesh/internal/logging"
	"github.com/dmitrijs2005/blogmesh/internal/metrics"
	pb "github.com/dmitrijs2005/blogmesh/internal/proto"
	"github.com/dmitrijs2005/blogmesh/internal/rpcx"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	postService *services.PostService
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := dbx.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if c.RunMigrations {
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrations error: %w", err)
		}
	}

	return &App{config: c, logger: logger, db: db, postService: services.NewPostService(db, rm)}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting content service...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		s := rpcx.NewServer(app.config.EndpointAddrGRPC, pb.ContentServiceName, app.logger)
		pb.RegisterContentServiceServer(s.Registrar(), cgrpc.NewContentServer(app.logger, app.postService))
		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	if app.config.MetricsAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := metrics.Serve(ctx, app.config.MetricsAddr, app.logger); err != nil {
				app.logger.Error(ctx, err.Error())
				cancelFunc()
			}
		}()
	}

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close error", "error", err.Error())
	}
	app.logger.Info(context.Background(), "Content service stopped")
}
