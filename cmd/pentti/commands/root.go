package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pentti/config"
	"github.com/katalvlaran/pentti/internal/ctxlog"
	"github.com/katalvlaran/pentti/store"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	envFile    string
	verbose    bool
	logFormat  string
	cache      bool
	cacheDir   string
}

// NewRootCmd builds the command tree. stdout and stderr receive command
// output and logs respectively.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var gf globalFlags

	root := &cobra.Command{
		Use:   "pentti",
		Short: "Find the shortest way out of a text maze",
		Long: `pentti - breadth-first maze solver.

A maze is a text file, one row per line, using:
  #   wall
  ' ' open floor
  ^   start (exactly one)
  E   exit (one or more)
Any other character is treated as floor.

Settings are read from $XDG_CONFIG_HOME/pentti/config.yaml, then .env,
then PENTTI_* environment variables, then flags.

Examples:
  pentti solve maze.txt
  pentti solve maze.txt --format png --out maze.png
  pentti batch mazes/*.txt --workers 4 --cache`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(gf.configPath, gf.envFile)
			if err != nil {
				return err
			}
			applyGlobalFlags(cmd, cfg, gf)
			if err := cfg.Validate(); err != nil {
				return err
			}

			level, _ := ctxlog.ParseLevel(cfg.LogLevel)
			logger, err := ctxlog.New(stderr, level, cfg.LogFormat)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = ctxlog.WithLogger(ctx, logger)
			ctx = withConfig(ctx, cfg)
			cmd.SetContext(ctx)
			logger.Debug("configuration loaded", "output", cfg.Output, "cache", cfg.Cache, "cache_dir", cfg.CacheDir)
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&gf.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/pentti/config.yaml)")
	pf.StringVar(&gf.envFile, "env-file", "", "dotenv file with PENTTI_* overrides (default ./.env)")
	pf.BoolVarP(&gf.verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&gf.logFormat, "log-format", "", "log format: text or json")
	pf.BoolVar(&gf.cache, "cache", false, "reuse results stored by earlier runs")
	pf.StringVar(&gf.cacheDir, "cache-dir", "", "cache directory")

	root.AddCommand(newSolveCmd(), newBatchCmd(), newCacheCmd())
	return root
}

// applyGlobalFlags copies explicitly set persistent flags into cfg.
func applyGlobalFlags(cmd *cobra.Command, cfg *config.Config, gf globalFlags) {
	flags := cmd.Flags()
	if gf.verbose {
		cfg.LogLevel = "debug"
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = gf.logFormat
	}
	if flags.Changed("cache") {
		cfg.Cache = gf.cache
	}
	if flags.Changed("cache-dir") {
		cfg.CacheDir = gf.cacheDir
	}
}

// Execute runs the root command against the process's stdio.
func Execute() error {
	return NewRootCmd(os.Stdout, os.Stderr).ExecuteContext(context.Background())
}

type configKey struct{}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFrom returns the Config installed by the root command.
func configFrom(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

// openCache opens the on-disk result cache when caching is enabled.
// It returns a nil cache otherwise.
func openCache(ctx context.Context, cfg *config.Config, force bool) (*store.Cache, error) {
	if !cfg.Cache && !force {
		return nil, nil
	}
	if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	c, err := store.Open(store.Options{
		Dir:    cfg.CacheDir,
		TTL:    cfg.CacheTTL,
		Logger: ctxlog.FromContext(ctx),
	})
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("cache opened", "dir", cfg.CacheDir)
	return c, nil
}
