package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	chartio "github.com/matzehuels/chartcore/pkg/io"
	"github.com/matzehuels/chartcore/pkg/pipeline"
)

// bindCommand creates the bind command for resolving chart roles.
func (c *CLI) bindCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "bind [chart]",
		Short: "Resolve the visual roles of a chart",
		Long: `Resolve the visual roles of a chart definition (.toml, .hcl or .json).

Every role is bound to its dimensions, to the grouping of a source role, to
the null grouping, or left unbound. The binding table is printed; with -o the
report is also written as JSON.

Binding is cheap and never cached.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBind(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the binding report to this file")

	return cmd
}

// runBind loads the chart, binds its roles and prints the result.
func (c *CLI) runBind(ctx context.Context, input, output string) error {
	def, err := c.loadChart(input)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	binding, err := pipeline.Bind(ctx, def, c.Logger)
	if err != nil {
		return fmt.Errorf("bind %s: %w", input, err)
	}
	prog.done(fmt.Sprintf("Bound %d roles", binding.Roles.Len()))

	hash, err := pipeline.HashDefinition(def)
	if err != nil {
		return err
	}
	report := pipeline.NewReport(def, hash, binding, nil)

	if output != "" {
		if err := chartio.ExportReport(report, output); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
	}

	bound := len(binding.Roles.Bound())
	printSuccess("Bound %d of %d roles", bound, binding.Roles.Len())
	if output != "" {
		printFile(output)
	}
	fmt.Println(roleTable(report))
	if unbound := countState(report, "unbound"); unbound > 0 {
		printWarning("%d roles left unbound", unbound)
	}
	printNewline()
	printNextStep("Lay out", appName+" layout "+input)

	return nil
}

func countState(r *pipeline.Report, state string) int {
	n := 0
	for _, rr := range r.Roles {
		if rr.State == state {
			n++
		}
	}
	return n
}
