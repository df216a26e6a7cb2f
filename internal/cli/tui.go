package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartcore/pkg/panel"
	"github.com/matzehuels/chartcore/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	tabActiveStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
	detailBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// =============================================================================
// inspect command
// =============================================================================

// inspectCommand creates the inspect command, an interactive report browser.
func (c *CLI) inspectCommand() *cobra.Command {
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "inspect [chart]",
		Short: "Browse the panels and roles of a chart interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.execute(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(NewInspectModel(res.Report), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	addLayoutFlags(cmd, &opts)
	return cmd
}

// =============================================================================
// InspectModel - Interactive report browser
// =============================================================================

// inspectTab selects the list shown by the browser.
type inspectTab int

const (
	tabPanels inspectTab = iota
	tabRoles
)

// panelEntry is one row of the flattened panel tree.
type panelEntry struct {
	path  string
	depth int
	panel *pipeline.PanelReport
}

// InspectModel is the bubbletea model for browsing a report.
type InspectModel struct {
	Report *pipeline.Report
	Tab    inspectTab
	Cursor int
	Height int
	Offset int

	panels []panelEntry
}

// NewInspectModel creates a browser over r, starting on the panel tab when
// the report has panels.
func NewInspectModel(r *pipeline.Report) InspectModel {
	m := InspectModel{Report: r, Height: 15}
	if r.Root != nil {
		var walk func(p *pipeline.PanelReport, path string, depth int)
		walk = func(p *pipeline.PanelReport, path string, depth int) {
			m.panels = append(m.panels, panelEntry{path: path, depth: depth, panel: p})
			for _, c := range p.Children {
				walk(c, path+"/"+c.Name, depth+1)
			}
		}
		walk(r.Root, r.Root.Name, 0)
	} else {
		m.Tab = tabRoles
	}
	return m
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

// rowCount returns the number of rows of the active tab.
func (m InspectModel) rowCount() int {
	if m.Tab == tabPanels {
		return len(m.panels)
	}
	return len(m.Report.Roles)
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			if m.Tab == tabPanels {
				m.Tab = tabRoles
			} else if len(m.panels) > 0 {
				m.Tab = tabPanels
			}
			m.Cursor, m.Offset = 0, 0
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < m.rowCount()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m InspectModel) View() string {
	var b strings.Builder

	title := m.Report.Chart
	if title == "" {
		title = "chart"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("  ")
	b.WriteString(m.tabs())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⇥ switch  q quit"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.list(), "  ", detailBoxStyle.Render(m.detail())))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, m.rowCount())))

	return b.String()
}

func (m InspectModel) tabs() string {
	panels, roles := listDimStyle.Render("Panels"), listDimStyle.Render("Roles")
	if m.Tab == tabPanels {
		panels = tabActiveStyle.Render("Panels")
	} else {
		roles = tabActiveStyle.Render("Roles")
	}
	return panels + listDimStyle.Render(" · ") + roles
}

func (m InspectModel) list() string {
	end := m.Offset + m.Height
	if end > m.rowCount() {
		end = m.rowCount()
	}

	var lines []string
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		var line string
		dim := false
		if m.Tab == tabPanels {
			e := m.panels[i]
			line = fmt.Sprintf("%s%s%-12s %s", cursor, strings.Repeat("  ", e.depth), e.panel.Name, listDimStyle.Render(e.panel.Anchor))
			dim = !e.panel.Layout.Visible
		} else {
			rr := m.Report.Roles[i]
			line = fmt.Sprintf("%s%-16s %s", cursor, rr.Key, stateStyles[rr.State].Render(rr.State))
			dim = rr.State != "bound"
		}

		switch {
		case i == m.Cursor:
			lines = append(lines, listSelectedStyle.Render(line))
		case dim:
			lines = append(lines, listDimStyle.Render(line))
		default:
			lines = append(lines, listNormalStyle.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}

// detail renders the selected row's attributes.
func (m InspectModel) detail() string {
	if m.rowCount() == 0 {
		return listDimStyle.Render("nothing to show")
	}
	if m.Tab == tabPanels {
		return panelDetail(m.panels[m.Cursor])
	}
	return roleDetail(m.Report.Roles[m.Cursor])
}

func panelDetail(e panelEntry) string {
	l := e.panel.Layout
	lines := []string{
		StyleTitle.Render(e.path),
		detailLine("anchor", e.panel.Anchor),
	}
	if e.panel.Align != "" {
		lines = append(lines, detailLine("align", e.panel.Align))
	}
	lines = append(lines,
		detailLine("size", l.Size.String()),
		detailLine("client", l.ClientSize.String()),
		detailLine("content", l.ContentSize.String()),
		detailLine("position", fmt.Sprintf("%g, %g", l.Position.X, l.Position.Y)),
		detailLine("margins", formatInsets(l.Margins)),
		detailLine("paddings", formatInsets(l.Paddings)),
		detailLine("increase", l.SizeIncrease.String()),
		detailLine("attempts", fmt.Sprint(l.Attempts)),
		detailLine("visible", fmt.Sprint(l.Visible)),
	)
	if l.RequestPaddings != nil {
		lines = append(lines, detailLine("requested", formatInsets(*l.RequestPaddings)))
	}
	return strings.Join(lines, "\n")
}

func roleDetail(rr pipeline.RoleReport) string {
	dims := strings.Join(rr.Dimensions, ", ")
	if dims == "" {
		dims = "—"
	}
	lines := []string{
		StyleTitle.Render(rr.Key),
		detailLine("state", rr.State),
		detailLine("dimensions", dims),
	}
	if rr.Source != "" {
		lines = append(lines, detailLine("source", rr.Source))
	}
	if flags := roleFlags(rr); flags != "" {
		lines = append(lines, detailLine("flags", flags))
	}
	return strings.Join(lines, "\n")
}

func detailLine(key, value string) string {
	return lipgloss.NewStyle().Foreground(colorGray).Width(11).Render(key) + StyleValue.Render(value)
}

func formatInsets(in panel.Insets) string {
	return fmt.Sprintf("%g %g %g %g", in.Top, in.Right, in.Bottom, in.Left)
}
