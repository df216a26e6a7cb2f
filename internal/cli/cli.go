package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartcore/pkg/buildinfo"
	"github.com/matzehuels/chartcore/pkg/cache"
	"github.com/matzehuels/chartcore/pkg/chart"
	"github.com/matzehuels/chartcore/pkg/errors"
	chartio "github.com/matzehuels/chartcore/pkg/io"
	"github.com/matzehuels/chartcore/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "chartcore"

	// redisPrefix namespaces chartcore keys in a shared Redis.
	redisPrefix = "chartcore:"
)

// Cache backends selectable with --cache.
const (
	cacheFile  = "file"
	cacheRedis = "redis"
	cacheNone  = "none"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// status receives transient progress output such as the spinner.
	status io.Writer

	cacheBackend string
	redisAddr    string
	cacheScope   string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:       newLogger(w, level),
		status:       w,
		cacheBackend: cacheFile,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Chartcore binds chart roles and lays out chart panels",
		Long:         `Chartcore resolves which data dimensions drive each visual role of a chart and solves the box model of its nested panels.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.cacheBackend, "cache", cacheFile, "report cache: file, redis, none")
	pf.StringVar(&c.redisAddr, "redis-addr", "localhost:6379", "redis address for --cache=redis")
	pf.StringVar(&c.cacheScope, "cache-scope", "", "prefix for cache keys")

	root.AddCommand(c.bindCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if c.cacheScope != "" {
		keyer = cache.NewScopedKeyer(nil, c.cacheScope)
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	switch c.cacheBackend {
	case cacheNone:
		return cache.NewNullCache(), nil
	case cacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisOptions{Addr: c.redisAddr, Prefix: redisPrefix})
	case cacheFile, "":
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis or none)", c.cacheBackend)
	}
}

// loadChart imports and validates a chart definition file.
func (c *CLI) loadChart(path string) (*chart.Definition, error) {
	def, err := chartio.ImportChart(path)
	if err != nil {
		return nil, err
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded chart", "path", path, "roles", len(def.Roles), "dimensions", len(def.Dimensions))
	return def, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/chartcore/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// defaultOutput derives an output path next to input with a new suffix.
func defaultOutput(input, suffix string) string {
	return input[:len(input)-len(filepath.Ext(input))] + suffix
}
