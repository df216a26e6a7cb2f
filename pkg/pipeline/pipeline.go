// Package pipeline runs a chart definition through the two resolution
// stages and produces a serializable report.
//
// This package is shared by the CLI and the HTTP API so that both bind and lay
// out charts the same way, with the same caching and logging.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Bind: build the dimension registry, resolve the visual roles with
//     [role.Bind] and enforce required roles
//  2. Layout: build the panel tree and solve its geometry
//
// The outcome of both stages is summarized in a [Report], which is cached
// under a key derived from the definition's content hash and the layout
// options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, def, pipeline.Options{Width: 800, Height: 600})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Report.Roles)
//
// Run individual stages:
//
//	binding, err := pipeline.Bind(ctx, def, logger)
//	root, err := pipeline.Layout(ctx, def, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartcore/pkg/cache"
	"github.com/matzehuels/chartcore/pkg/errors"
	"github.com/matzehuels/chartcore/pkg/panel"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. It supports JSON for API requests.
type Options struct {
	// Width and Height are the space available to the root panel. Zero means
	// the root's declared size is used; otherwise both must be set.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Refresh skips cache reads; the fresh report is still written.
	Refresh bool `json:"refresh,omitempty"`

	// CacheTTL is how long the report is cached. Defaults to cache.TTLReport.
	CacheTTL time.Duration `json:"-"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options and fills defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width and height must not be negative")
	}
	if (o.Width > 0) != (o.Height > 0) {
		return errors.New(errors.ErrCodeInvalidInput, "width and height must be given together")
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = cache.TTLReport
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Available returns the size offered to the root panel, or nil to use the
// root's declared size.
func (o *Options) Available() *panel.Size {
	if o.Width == 0 && o.Height == 0 {
		return nil
	}
	return &panel.Size{Width: o.Width, Height: o.Height}
}

// ReportKeyOpts returns the cache key options of the run.
func (o *Options) ReportKeyOpts() cache.ReportKeyOpts {
	return cache.ReportKeyOpts{Width: o.Width, Height: o.Height}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Report summarizes bindings and geometry. It is always set.
	Report *Report

	// Binding and Root are the live outputs of the stages. Both are nil when
	// the report came from the cache.
	Binding *Binding
	Root    *panel.Panel

	Stats    Stats
	CacheHit bool
}

// Stats contains execution statistics.
type Stats struct {
	RoleCount  int
	BoundCount int
	PanelCount int
	BindTime   time.Duration
	LayoutTime time.Duration
}
