package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mondrian/internal/server"
	"github.com/matzehuels/mondrian/pkg/cache"
	"github.com/matzehuels/mondrian/pkg/config"
	"github.com/matzehuels/mondrian/pkg/pipeline"
	"github.com/matzehuels/mondrian/pkg/store"
)

// serveCommand creates the serve command, which runs the HTTP explorer.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		backend  string
		redisURL string
		storeDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP explorer",
		Long: `Run the HTTP explorer.

Datasets are uploaded with POST /api/datasets and rendered on demand from
/api/datasets/{id}/map.{format}. Uploads live in memory unless --store-dir
is given; rendered artifacts are cached on disk or in Redis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("cache") {
				cfg.Cache.Backend = backend
			}
			if cmd.Flags().Changed("redis-url") {
				cfg.Cache.RedisURL = redisURL
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			cc, err := c.serverCache(cmd, cfg)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, cfg.Cache.Prefix), c.Logger)
			defer runner.Close()

			var st store.Store
			if storeDir != "" {
				fs, err := store.NewFileStore(storeDir)
				if err != nil {
					return fmt.Errorf("open dataset store: %w", err)
				}
				st = fs
			}

			printInfo("Explorer on %s", StyleValue.Render(cfg.Server.Addr))
			printDetail("cache: %s", cfg.Cache.Backend)
			return server.New(runner, st, cfg, c.Logger).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&backend, "cache", config.BackendFile, "artifact cache: file, redis, none")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "Redis URL for --cache redis (e.g. redis://localhost:6379/0)")
	cmd.Flags().StringVar(&storeDir, "store-dir", "", "persist uploads in this directory")

	return cmd
}

// serverCache opens the artifact cache named by cfg.Cache.Backend.
func (c *CLI) serverCache(cmd *cobra.Command, cfg config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(cmd.Context(), cfg.Cache.RedisURL, cache.DefaultRedisPrefix)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		return rc, nil
	default:
		return newCache(cfg, false)
	}
}
