package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/treedec/treedec/pkg/cache"
	"github.com/treedec/treedec/pkg/pipeline"
	"github.com/treedec/treedec/pkg/server"
)

func newServeCmd(configPath *string) *cobra.Command {
	var (
		addr      string
		redisAddr string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP decomposition service",
		Long: `Serve exposes the decomposition pipeline over HTTP. Results are
cached in Redis when --redis is given, otherwise in the file cache.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			var store cache.Cache
			switch {
			case noCache:
				store = cache.NewNullCache()
			case redisAddr != "":
				redisCache, err := cache.NewRedisCache(ctx, redisAddr)
				if err != nil {
					return err
				}
				store = redisCache
				logger.Info("using redis cache", "addr", redisAddr)
			default:
				fileCache, err := cache.NewFileCache(cfg.cacheDir())
				if err != nil {
					return err
				}
				store = fileCache
				logger.Info("using file cache", "dir", cfg.cacheDir())
			}
			defer store.Close()

			runner := pipeline.NewRunner(store, nil, logger)
			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(runner, logger).Routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			logger.Info("listening", "addr", addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8621", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address (host:port) for the shared cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the decomposition cache")

	return cmd
}
