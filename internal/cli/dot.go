package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartcore/pkg/errors"
	"github.com/matzehuels/chartcore/pkg/pipeline"
	"github.com/matzehuels/chartcore/pkg/render/dot"
)

const (
	graphRoles  = "roles"
	graphPanels = "panels"

	formatDOT = "dot"
	formatSVG = "svg"
	formatPDF = "pdf"
	formatPNG = "png"
)

// dotOpts holds the command-line flags for the dot command.
type dotOpts struct {
	output   string  // output file; stdout for DOT when empty
	graph    string  // "roles" or "panels"
	format   string  // "dot", "svg", "pdf" or "png"
	detailed bool    // include state and geometry in labels
	scale    float64 // png scale factor
}

// dotCommand creates the dot command for drawing roles and panels.
func (c *CLI) dotCommand() *cobra.Command {
	d := dotOpts{graph: graphRoles, format: formatDOT, scale: 2}
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "dot [chart]",
		Short: "Draw the role graph or panel tree of a chart",
		Long: `Draw the role graph or the panel tree of a chart with Graphviz.

  --graph roles    roles, their dimensions and source-role chains
  --graph panels   the panel tree with solved geometry

DOT source is written to stdout unless -o is given. SVG is rendered in
process; PDF and PNG additionally require rsvg-convert (librsvg).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDot(cmd.Context(), args[0], opts, d)
		},
	}

	cmd.Flags().StringVarP(&d.output, "output", "o", "", "output file (default: stdout for dot, <chart>.<graph>.<format> otherwise)")
	cmd.Flags().StringVarP(&d.graph, "graph", "g", d.graph, "graph to draw: roles, panels")
	cmd.Flags().StringVarP(&d.format, "format", "f", d.format, "output format: dot, svg, pdf, png")
	cmd.Flags().BoolVar(&d.detailed, "detailed", false, "include state and geometry in labels")
	cmd.Flags().Float64Var(&d.scale, "scale", d.scale, "png scale factor")
	addLayoutFlags(cmd, &opts)

	return cmd
}

func (c *CLI) runDot(ctx context.Context, input string, opts pipeline.Options, d dotOpts) error {
	if d.graph != graphRoles && d.graph != graphPanels {
		return errors.New(errors.ErrCodeInvalidInput, "unknown graph %q (want roles or panels)", d.graph)
	}

	res, err := c.execute(ctx, input, opts)
	if err != nil {
		return err
	}

	dopts := dot.Options{Detailed: d.detailed}
	src := dot.RolesDOT(res.Report, dopts)
	if d.graph == graphPanels {
		src = dot.PanelsDOT(res.Report, dopts)
	}

	data, err := renderDOT(ctx, src, d)
	if err != nil {
		return err
	}

	if d.format == formatDOT && d.output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	outputPath := d.output
	if outputPath == "" {
		outputPath = defaultOutput(input, "."+d.graph+"."+d.format)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Drew %s graph", d.graph)
	printFile(outputPath)
	return nil
}

// renderDOT converts DOT source to the requested format.
func renderDOT(ctx context.Context, src string, d dotOpts) ([]byte, error) {
	switch d.format {
	case formatDOT:
		return []byte(src), nil
	case formatSVG:
		return dot.RenderSVG(ctx, src)
	case formatPDF:
		return dot.RenderPDF(ctx, src)
	case formatPNG:
		return dot.RenderPNG(ctx, src, d.scale)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want dot, svg, pdf or png)", d.format)
	}
}
