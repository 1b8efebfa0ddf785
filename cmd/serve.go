package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"emailfinder/internal/api"
	"emailfinder/internal/api/handler/v1handler"
	"emailfinder/internal/auth"
	"emailfinder/internal/config"
	"emailfinder/internal/discovery"
	"emailfinder/pkg/logger"
	"emailfinder/pkg/storage"
	"emailfinder/pkg/storage/memory"
	"emailfinder/pkg/storage/redisstore"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const janitorInterval = time.Minute

// getSessionStore returns the configured store and a cleanup function.
func getSessionStore(ctx context.Context, cfg *config.Config) (storage.SessionStore, func()) {
	var (
		store storage.SessionStore
		err   error
	)
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		store, err = redisstore.Connect(ctx, cfg.Session.RedisURL)
		if err != nil {
			logger.Fatal(ctx, "could not connect to redis", zap.Error(err))
		}
	case config.SessionStoreMemory, "":
		store = memory.New()
	default:
		logger.Fatal(ctx, "unknown session store", zap.String("store", cfg.Session.Store))
	}

	return store, func() {
		logger.Info(ctx, "closing session store...")
		if err := store.Close(); err != nil {
			logger.Warn(ctx, "could not close session store", zap.Error(err))
		}
	}
}

func setupServer(ctx context.Context, server *api.Server) func(ctx context.Context) {
	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

// runJanitor periodically drops idle workflows, rate limit windows and
// expired in-memory sessions until ctx is done.
func runJanitor(ctx context.Context, idle time.Duration, workflows *discovery.Registry, server *api.Server, store storage.SessionStore) {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			dropped := workflows.Sweep(idle)
			server.Sweep()
			if mem, ok := store.(*memory.Store); ok {
				dropped += mem.Sweep()
			}
			if dropped > 0 {
				logger.Debug(ctx, "janitor pass", zap.Int("dropped", dropped))
			}
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the web front-end",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store, closeStore := getSessionStore(ctx, cfg)
			defer closeStore()

			client := newBackend(cfg)
			svc := newDiscovery(cfg, client)
			workflows := discovery.NewRegistry(svc, discovery.NewWorkflowOptions(cfg))

			server, err := api.NewServer(api.Deps{Deps: v1handler.Deps{
				Auth:      auth.New(client, store, auth.Options{SessionTTL: cfg.Session.TTL}),
				Discovery: svc,
				Backend:   client,
				Workflows: workflows,
			}}, api.NewOptions(cfg))
			if err != nil {
				logger.Fatal(ctx, "could not create webserver", zap.Error(err))
			}

			stopWebserver := setupServer(ctx, server)
			go runJanitor(ctx, cfg.Session.TTL, workflows, server, store)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}
