package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/circmark/circmark/internal/api"
	"github.com/circmark/circmark/pkg/cache"
	"github.com/circmark/circmark/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string
	redis    string // Redis address, e.g. "localhost:6379"
	mongo    string // MongoDB URI, e.g. "mongodb://localhost:27017"
	mongoDB  string // MongoDB database name
	noCache  bool
	cacheDir string
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the circmark HTTP API server",
		Long: `Run the circmark HTTP API server.

By default the server uses the local file cache. For multi-instance
deployments, point it at a shared Redis or MongoDB backend instead:

  circmark serve --redis localhost:6379
  circmark serve --mongo mongodb://localhost:27017`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis cache address (host:port)")
	cmd.Flags().StringVar(&opts.mongo, "mongo", "", "MongoDB cache URI")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", appName, "MongoDB database name")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "override the file cache directory")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	cc, err := c.serverCache(ctx, opts)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(cc, nil, c.Logger)
	defer runner.Close()

	server := api.NewServer(runner, c.Logger)
	httpServer := &http.Server{
		Addr:              opts.addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", opts.addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// serverCache picks the cache backend from the serve flags. Redis wins over
// Mongo if both are given; neither falls back to the file cache.
func (c *CLI) serverCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	switch {
	case opts.noCache:
		return cache.NewNullCache(), nil
	case opts.redis != "":
		cc, err := cache.NewRedisCache(ctx, opts.redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache", "addr", opts.redis)
		return cc, nil
	case opts.mongo != "":
		cc, err := cache.NewMongoCache(ctx, opts.mongo, opts.mongoDB)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		c.Logger.Info("using mongo cache", "db", opts.mongoDB)
		return cc, nil
	default:
		return newCache(false, opts.cacheDir)
	}
}
