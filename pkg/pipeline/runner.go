package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartcore/pkg/cache"
	"github.com/matzehuels/chartcore/pkg/chart"
	"github.com/matzehuels/chartcore/pkg/errors"
	"github.com/matzehuels/chartcore/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete bind → layout pipeline with caching.
func (r *Runner) Execute(ctx context.Context, def *chart.Definition, opts Options) (*Result, error) {
	if def == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no chart definition")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	hash, err := HashDefinition(def)
	if err != nil {
		return nil, err
	}
	cacheKey := r.Keyer.ReportKey(hash, opts.ReportKeyOpts())

	if !opts.Refresh {
		if report, ok := r.cached(ctx, cacheKey); ok {
			opts.Logger.Debug("report cache hit", "chart", def.Name, "hash", hash[:12])
			return &Result{Report: report, CacheHit: true}, nil
		}
	}

	result := &Result{}

	// Stage 1: Bind
	bindStart := time.Now()
	binding, err := Bind(ctx, def, opts.Logger)
	if err != nil {
		return nil, fmt.Errorf("bind: %w", err)
	}
	result.Binding = binding
	result.Stats.BindTime = time.Since(bindStart)
	result.Stats.RoleCount = binding.Roles.Len()
	result.Stats.BoundCount = len(binding.Roles.Bound())

	opts.Logger.Info("bound roles",
		"roles", result.Stats.RoleCount,
		"bound", result.Stats.BoundCount,
		"dimensions", binding.Schema.Len(),
		"duration", result.Stats.BindTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	root, err := Layout(ctx, def, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Root = root
	result.Stats.LayoutTime = time.Since(layoutStart)
	if root != nil {
		result.Stats.PanelCount = root.Count()
	}

	opts.Logger.Info("computed layout",
		"panels", result.Stats.PanelCount,
		"duration", result.Stats.LayoutTime)

	result.Report = NewReport(def, hash, binding, root)

	if data, err := MarshalReport(result.Report); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, opts.CacheTTL); err != nil {
			opts.Logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cacheKey, len(data))
		}
	}
	return result, nil
}

// cached loads a report, retrying transient cache failures. Unreadable
// entries count as misses.
func (r *Runner) cached(ctx context.Context, key string) (*Report, bool) {
	var (
		data []byte
		hit  bool
	)
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		data, hit, err = r.Cache.Get(ctx, key)
		return err
	})
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, key)
		return nil, false
	}

	report, err := UnmarshalReport(data)
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, key)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, key)
	return report, true
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
