package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/chartcore/pkg/chart"
	"github.com/matzehuels/chartcore/pkg/observability"
	"github.com/matzehuels/chartcore/pkg/panel"
)

// Layout builds the panel tree of def and solves it in the space given by
// opts. A definition without panels yields a nil root.
func Layout(ctx context.Context, def *chart.Definition, opts Options) (root *panel.Panel, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if def.Root == nil {
		return nil, nil
	}

	root, err = def.Root.Build()
	if err != nil {
		return nil, err
	}

	count := root.Count()
	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, def.Name, count)
	defer func() {
		observability.Pipeline().OnLayoutComplete(ctx, def.Name, count, time.Since(start), err)
	}()

	if err := root.Layout(opts.Available(), panel.LayoutOptions{Logger: opts.Logger}); err != nil {
		return nil, err
	}
	return root, nil
}
