package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartcore/pkg/chart"
	"github.com/matzehuels/chartcore/pkg/dimension"
	"github.com/matzehuels/chartcore/pkg/observability"
	"github.com/matzehuels/chartcore/pkg/role"
)

// Binding is the outcome of the bind stage.
type Binding struct {
	Roles  *role.Set
	Schema *dimension.Schema
}

// Bind resolves the roles of def against its dimensions and enforces
// required roles. A nil logger discards binder diagnostics.
func Bind(ctx context.Context, def *chart.Definition, logger *log.Logger) (b *Binding, err error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	start := time.Now()
	observability.Pipeline().OnBindStart(ctx, def.Name, len(def.Roles))
	bound := 0
	defer func() {
		observability.Pipeline().OnBindComplete(ctx, def.Name, len(def.Roles), bound, time.Since(start), err)
	}()

	decls, err := def.Declarations()
	if err != nil {
		return nil, err
	}
	cfg, err := def.RoleConfig()
	if err != nil {
		return nil, err
	}
	reg, err := def.Registry()
	if err != nil {
		return nil, err
	}

	set, err := role.Bind(decls, role.Context{Registry: reg, Config: cfg, Logger: logger})
	if err != nil {
		return nil, err
	}
	bound = len(set.Bound())
	if err := set.CheckRequired(); err != nil {
		return nil, err
	}
	return &Binding{Roles: set, Schema: reg.Finalize()}, nil
}
