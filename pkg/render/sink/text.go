package sink

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pivotgrid/pkg/pivot"
	"github.com/matzehuels/pivotgrid/pkg/pivot/grid"
)

// Toggle markers prefixed to cells that can be expanded or collapsed.
const (
	MarkerExpanded  = "▾ "
	MarkerCollapsed = "▸ "
)

const (
	columnSeparator = " │ "
	ruleSeparator   = "─┼─"
)

// Styles maps cell roles to terminal styles.
type Styles struct {
	Header     lipgloss.Style
	Label      lipgloss.Style
	Value      lipgloss.Style
	Total      lipgloss.Style
	GrandTotal lipgloss.Style
	Rule       lipgloss.Style
	Highlight  lipgloss.Style
}

// DefaultStyles returns the styles WriteText uses unless told otherwise.
func DefaultStyles() Styles {
	return Styles{
		Header:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36")),
		Label:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Value:      lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Total:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		GrandTotal: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		Rule:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Highlight:  lipgloss.NewStyle().Reverse(true),
	}
}

// TextOption configures WriteText.
type TextOption func(*textRenderer)

type textRenderer struct {
	styles    Styles
	plain     bool
	highlight string
}

// WithStyles replaces the default styles.
func WithStyles(s Styles) TextOption { return func(r *textRenderer) { r.styles = s } }

// WithPlain disables styling. Output is bare text.
func WithPlain() TextOption { return func(r *textRenderer) { r.plain = true } }

// WithHighlight marks the cell of the node with the given id.
func WithHighlight(nodeID string) TextOption {
	return func(r *textRenderer) { r.highlight = nodeID }
}

// WriteText renders m as an aligned terminal grid.
//
// Spanning cells cover the physical columns beneath them, header rows are
// separated from the body by a rule, values are right-aligned, and
// toggleable cells carry an expanded or collapsed marker. An empty matrix
// writes nothing.
func WriteText(w io.Writer, m *grid.Matrix, opts ...TextOption) error {
	if m == nil || m.Empty() {
		return nil
	}
	r := &textRenderer{styles: DefaultStyles()}
	for _, opt := range opts {
		opt(r)
	}

	occ := m.Occupancy()
	widths := columnWidths(m, occ)

	var b strings.Builder
	for row := range m.Rows {
		if row == m.HeaderRows && row > 0 {
			b.WriteString(r.rule(widths))
			b.WriteByte('\n')
		}
		b.WriteString(r.line(m, occ, widths, row))
		b.WriteByte('\n')
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}

// CellText returns the text shown for c, including its toggle marker.
func CellText(c grid.Cell) string {
	if !c.CanToggle {
		return c.Value
	}
	if c.Expanded {
		return MarkerExpanded + c.Value
	}
	return MarkerCollapsed + c.Value
}

func columnWidths(m *grid.Matrix, occ [][]grid.Position) []int {
	n := m.Columns
	for _, slots := range occ {
		n = max(n, len(slots))
	}
	widths := make([]int, n)

	type spanned struct {
		start, end, width int
	}
	var spans []spanned
	for row, slots := range occ {
		for start := 0; start < len(slots); {
			p := slots[start]
			end := spanEnd(slots, start)
			if p.Row == row {
				cw := lipgloss.Width(CellText(m.Cell(p)))
				if end-start == 1 {
					widths[start] = max(widths[start], cw)
				} else {
					spans = append(spans, spanned{start, end, cw})
				}
			}
			start = end
		}
	}

	// Spanning cells wider than their columns widen the last column.
	for _, s := range spans {
		if have := spanWidth(widths, s.start, s.end); have < s.width {
			widths[s.end-1] += s.width - have
		}
	}
	return widths
}

func spanEnd(slots []grid.Position, start int) int {
	end := start + 1
	if slots[start].Row < 0 {
		return end
	}
	for end < len(slots) && slots[end] == slots[start] {
		end++
	}
	return end
}

func spanWidth(widths []int, start, end int) int {
	w := lipgloss.Width(columnSeparator) * (end - start - 1)
	for _, cw := range widths[start:end] {
		w += cw
	}
	return w
}

func (r *textRenderer) line(m *grid.Matrix, occ [][]grid.Position, widths []int, row int) string {
	slots := occ[row]
	parts := make([]string, 0, len(widths))
	for start := 0; start < len(widths); {
		if start >= len(slots) || slots[start].Row < 0 {
			parts = append(parts, strings.Repeat(" ", widths[start]))
			start++
			continue
		}
		p := slots[start]
		end := spanEnd(slots, start)
		width := spanWidth(widths, start, end)
		start = end

		if p.Row != row {
			// Covered by a row span from above.
			parts = append(parts, strings.Repeat(" ", width))
			continue
		}
		c := m.Cell(p)
		pos := lipgloss.Left
		if c.CellType.IsValue() {
			pos = lipgloss.Right
		}
		text := lipgloss.PlaceHorizontal(width, pos, CellText(c))
		parts = append(parts, r.render(c, text))
	}
	return strings.TrimRight(strings.Join(parts, columnSeparator), " ")
}

func (r *textRenderer) rule(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w)
	}
	line := strings.Join(parts, ruleSeparator)
	if r.plain {
		return line
	}
	return r.styles.Rule.Render(line)
}

func (r *textRenderer) render(c grid.Cell, text string) string {
	if r.plain {
		return text
	}
	return r.style(c).Render(text)
}

func (r *textRenderer) style(c grid.Cell) lipgloss.Style {
	if r.highlight != "" && c.NodeID == r.highlight {
		return r.styles.Highlight
	}
	switch c.CellType {
	case pivot.CellTypeGrandTotal, pivot.CellTypeGrandTotalHeader:
		return r.styles.GrandTotal
	case pivot.CellTypeTotal, pivot.CellTypeTotalHeader:
		return r.styles.Total
	case pivot.CellTypeGroupHeader:
		return r.styles.Header
	case pivot.CellTypeMeasure:
		return r.styles.Value
	default:
		return r.styles.Label
	}
}
