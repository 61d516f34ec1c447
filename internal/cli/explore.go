package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pivotgrid/pkg/dataset"
	"github.com/matzehuels/pivotgrid/pkg/pipeline"
	"github.com/matzehuels/pivotgrid/pkg/pivot/grid"
	"github.com/matzehuels/pivotgrid/pkg/render/sink"
)

var (
	exploreHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	exploreStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	exploreErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// exploreCommand creates the explore command for interactive tables.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		config   string
		collapse []string
	)

	cmd := &cobra.Command{
		Use:   "explore [data]",
		Short: "Expand and collapse groups of a pivot table interactively",
		Long: `Open a pivot table in the terminal and fold groups in and out.

Move between expandable headers with the arrow keys (or j/k) and press enter
or space to expand or collapse the selected group. Collapsed groups show only
their totals. Press q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := c.loadTable(ctx, args[0], config)
			if err != nil {
				return err
			}
			sess, err := c.newSession(ctx, t, collapse, true)
			if err != nil {
				return err
			}
			if sess.Matrix().Empty() {
				printInfo(cmd.OutOrStdout(), "No records in %s", args[0])
				return nil
			}

			title := t.compile.Title
			if title == "" {
				title = args[0]
			}
			p := tea.NewProgram(NewExplorerModel(ctx, sess, title),
				tea.WithContext(ctx), tea.WithOutput(cmd.OutOrStdout()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&config, "config", "c", "", "pivot definition file (default: pivot.toml next to the data)")
	cmd.Flags().StringSliceVar(&collapse, "collapse", nil, "node ids to start collapsed (comma-separated)")

	return cmd
}

// =============================================================================
// ExplorerModel - Interactive pivot table
// =============================================================================

// ExplorerModel is the bubbletea model of the explore command. The cursor
// walks the toggleable cells of the current matrix in reading order.
type ExplorerModel struct {
	ctx     context.Context
	session *pipeline.Session[dataset.Record]

	Title  string
	Cursor int
	Height int // body lines shown at once
	Offset int // first body line shown
	Err    error
}

// NewExplorerModel creates an explorer over a built session.
func NewExplorerModel(ctx context.Context, sess *pipeline.Session[dataset.Record], title string) ExplorerModel {
	return ExplorerModel{ctx: ctx, session: sess, Title: title, Height: 20}
}

// Selected returns the cell under the cursor and whether there is one.
func (m ExplorerModel) Selected() (grid.Cell, grid.Position, bool) {
	mx := m.session.Matrix()
	toggles := mx.Toggleable()
	if m.Cursor < 0 || m.Cursor >= len(toggles) {
		return grid.Cell{}, grid.Position{}, false
	}
	p := toggles[m.Cursor]
	return mx.Cell(p), p, true
}

func (m ExplorerModel) Init() tea.Cmd {
	return nil
}

func (m ExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.session.Matrix().Toggleable())-1 {
				m.Cursor++
			}
		case "enter", " ":
			m = m.toggle()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m.scroll(), nil
}

// toggle flips the selected node and keeps the cursor on it in the new
// matrix.
func (m ExplorerModel) toggle() ExplorerModel {
	c, _, ok := m.Selected()
	if !ok {
		return m
	}
	mx, err := m.session.Toggle(m.ctx, c.NodeID)
	m.Err = err
	if err != nil {
		return m
	}
	for i, p := range mx.Toggleable() {
		if mx.Cell(p).NodeID == c.NodeID {
			m.Cursor = i
			return m
		}
	}
	m.Cursor = min(m.Cursor, max(len(mx.Toggleable())-1, 0))
	return m
}

// scroll moves the body window so the selected row stays visible.
func (m ExplorerModel) scroll() ExplorerModel {
	_, p, ok := m.Selected()
	if !ok {
		return m
	}
	line := p.Row - m.session.Matrix().HeaderRows
	if line < 0 {
		return m
	}
	if line < m.Offset {
		m.Offset = line
	}
	if line >= m.Offset+m.Height {
		m.Offset = line - m.Height + 1
	}
	return m
}

func (m ExplorerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(exploreHelpStyle.Render("↑/↓ move  ⏎/space expand or collapse  q quit"))
	b.WriteString("\n\n")

	mx := m.session.Matrix()
	c, _, selected := m.Selected()

	var buf bytes.Buffer
	var opts []sink.TextOption
	if selected {
		opts = append(opts, sink.WithHighlight(c.NodeID))
	}
	if err := sink.WriteText(&buf, mx, opts...); err != nil {
		b.WriteString(exploreErrorStyle.Render(err.Error()))
		return b.String()
	}
	b.WriteString(m.window(buf.String(), mx.HeaderRows))
	b.WriteString("\n")

	switch {
	case m.Err != nil:
		b.WriteString(exploreErrorStyle.Render(m.Err.Error()))
	case selected:
		state := "expanded"
		if !c.Expanded {
			state = "collapsed"
		}
		b.WriteString(exploreStatusStyle.Render(fmt.Sprintf("  [%d/%d] %s (%s)",
			m.Cursor+1, len(mx.Toggleable()), c.NodeID, state)))
	default:
		b.WriteString(exploreStatusStyle.Render("  nothing to expand or collapse"))
	}
	return b.String()
}

// window keeps the header lines and the rule, and shows Height body lines
// starting at Offset.
func (m ExplorerModel) window(text string, headerRows int) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	head := 0
	if headerRows > 0 {
		head = min(headerRows+1, len(lines))
	}
	body := lines[head:]
	start := min(m.Offset, len(body))
	end := min(start+m.Height, len(body))

	out := append(lines[:head:head], body[start:end]...)
	return strings.Join(out, "\n")
}
