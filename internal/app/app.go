package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-cells/internal/assets"
	"github.com/vancomm/minesweeper-cells/internal/config"
	"github.com/vancomm/minesweeper-cells/internal/database"
	"github.com/vancomm/minesweeper-cells/internal/middleware"
)

type App struct {
	logger *slog.Logger
	router *http.ServeMux
	db     *pgxpool.Pool
	ws     *config.WebSocket
}

func New(logger *slog.Logger) *App {
	router := http.NewServeMux()

	app := &App{
		logger: logger,
		router: router,
	}

	return app
}

// checkSprites fails start-up when the embedded sprite set does not cover
// every asset name the handlers can return.
func (a *App) checkSprites() error {
	catalog, err := assets.Load()
	if err != nil {
		return fmt.Errorf("sprite check failed: %w", err)
	}
	a.logger.Info("sprite check passed", slog.Int("sprites", catalog.Len()))
	return nil
}

func (a *App) Start(ctx context.Context) error {
	if err := a.checkSprites(); err != nil {
		return err
	}

	db, migrator, err := database.ConnectAndMigrate(ctx)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	defer db.Close()

	if version, dirty, err := migrator.Version(); err == nil {
		a.logger.Info("database migrated", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	}

	a.db = db

	ws, err := config.NewWebSocket()
	if err != nil {
		return err
	}

	a.ws = ws

	a.loadRoutes()

	addr := config.Port()
	server := &http.Server{
		Addr: addr,
		Handler: middleware.Chain{
			middleware.Logging(a.logger),
			middleware.Cors(config.AllowedOrigins()...),
		}.Then(a.router),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	a.logger.Info("server listening", slog.String("addr", addr))

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
