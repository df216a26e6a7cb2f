package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	chartio "github.com/matzehuels/chartcore/pkg/io"
	"github.com/matzehuels/chartcore/pkg/pipeline"
)

// layoutCommand creates the layout command for solving chart geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var output string
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [chart]",
		Short: "Bind roles and lay out the panel tree of a chart",
		Long: `Bind roles and lay out the panel tree of a chart definition.

The result is a JSON report (default: <chart>.report.json) holding the role
bindings and the solved size, margins, paddings and position of every panel.

Without --width and --height the root panel must declare an absolute size.

Reports are cached; use --refresh to recompute.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <chart>.report.json)")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// addLayoutFlags registers the pipeline option flags shared by commands.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "width available to the root panel")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "height available to the root panel")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached reports")
}

// execute runs the pipeline for a chart file behind a spinner.
func (c *CLI) execute(ctx context.Context, input string, opts pipeline.Options) (*pipeline.Result, error) {
	def, err := c.loadChart(input)
	if err != nil {
		return nil, err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinner(ctx, c.status, "Laying out "+input+"...")
	spinner.Start()

	res, err := runner.Execute(ctx, def, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return nil, err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return res, nil
}

// runLayout computes the report and writes it.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string) error {
	res, err := c.execute(ctx, input, opts)
	if err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = defaultOutput(input, ".report.json")
	}
	if err := chartio.ExportReport(res.Report, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(res.Stats, res.CacheHit)
	if res.Report.Root != nil {
		fmt.Println(panelTable(res.Report))
	}
	printNewline()
	printNextStep("Draw", appName+" dot "+input+" --graph panels --format svg")

	return nil
}
