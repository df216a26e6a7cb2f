package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/chartcore/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// stateStyles colors role states in tables.
var stateStyles = map[string]lipgloss.Style{
	"bound":   lipgloss.NewStyle().Foreground(colorGreen),
	"null":    lipgloss.NewStyle().Foreground(colorGray),
	"unbound": lipgloss.NewStyle().Foreground(colorYellow),
}

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Stats Display
// =============================================================================

// printStats prints run statistics on a single line.
func printStats(s pipeline.Stats, cached bool) {
	var parts []string
	if s.RoleCount > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d roles bound", s.BoundCount, s.RoleCount))
	}
	if s.PanelCount > 0 {
		parts = append(parts, fmt.Sprintf("%d panels", s.PanelCount))
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}
	parts = append(parts, statusStyle.Render(status))

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line)
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}

// =============================================================================
// Tables
// =============================================================================

// headerRow is the row index lipgloss tables pass to StyleFunc for headers.
const headerRow = -1

// roleTable renders the binding table of a report.
func roleTable(r *pipeline.Report) string {
	rows := make([][]string, 0, len(r.Roles))
	for _, rr := range r.Roles {
		dims := strings.Join(rr.Dimensions, ", ")
		if dims == "" {
			dims = "—"
		}
		source := rr.Source
		if source == "" {
			source = "—"
		}
		rows = append(rows, []string{rr.Key, rr.State, dims, source, roleFlags(rr)})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Role", "State", "Dimensions", "Source", "Flags").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader
			}
			if col == 1 && row < len(rows) {
				return stateStyles[rows[row][1]]
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func roleFlags(rr pipeline.RoleReport) string {
	var flags []string
	if rr.Required {
		flags = append(flags, "required")
	}
	if rr.Reversed {
		flags = append(flags, "reversed")
	}
	if !rr.LegendVisible {
		flags = append(flags, "no legend")
	}
	if rr.Primary != "" {
		flags = append(flags, "secondary of "+rr.Primary)
	}
	return strings.Join(flags, ", ")
}

// panelRows flattens the panel tree depth-first with indented names.
func panelRows(r *pipeline.Report) [][]string {
	var rows [][]string
	var walk func(p *pipeline.PanelReport, depth int)
	walk = func(p *pipeline.PanelReport, depth int) {
		l := p.Layout
		visible := ""
		if !l.Visible {
			visible = "hidden"
		}
		rows = append(rows, []string{
			strings.Repeat("  ", depth) + p.Name,
			p.Anchor,
			l.Size.String(),
			fmt.Sprintf("%g, %g", l.Position.X, l.Position.Y),
			l.SizeIncrease.String(),
			visible,
		})
		for _, c := range p.Children {
			walk(c, depth+1)
		}
	}
	if r.Root != nil {
		walk(r.Root, 0)
	}
	return rows
}

// panelTable renders the panel geometry of a report.
func panelTable(r *pipeline.Report) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Panel", "Anchor", "Size", "Position", "Increase", "").
		Rows(panelRows(r)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader
			}
			if col >= 2 && col <= 4 {
				return StyleHighlight
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
