package sink

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/matzehuels/pivotgrid/pkg/pivot"
	"github.com/matzehuels/pivotgrid/pkg/pivot/grid"
)

const tableCSS = `
    table.pivotgrid { border-collapse: collapse; font-family: sans-serif; font-size: 13px; }
    table.pivotgrid th, table.pivotgrid td { border: 1px solid #ccc; padding: 4px 8px; }
    table.pivotgrid td { text-align: right; }
    table.pivotgrid .total, table.pivotgrid .total-header { font-weight: bold; }
    table.pivotgrid .grand-total, table.pivotgrid .grand-total-header { font-weight: bold; background: #f4f4f4; }
    table.pivotgrid [data-expanded] { cursor: pointer; }`

// HTMLOption configures WriteHTML.
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	document bool
	title    string
}

// WithDocument wraps the table in a standalone HTML page with a small
// stylesheet.
func WithDocument() HTMLOption { return func(r *htmlRenderer) { r.document = true } }

// WithTitle sets the page title and table caption.
func WithTitle(title string) HTMLOption { return func(r *htmlRenderer) { r.title = title } }

// WriteHTML renders m as an HTML table.
//
// Header rows go into thead and the rest into tbody. Spans become rowspan
// and colspan attributes. Each cell carries a class named after its cell
// type, and cells backed by a node carry data-node-id; toggleable cells
// also carry data-expanded so a script can wire up expand and collapse.
func WriteHTML(w io.Writer, m *grid.Matrix, opts ...HTMLOption) error {
	r := &htmlRenderer{}
	for _, opt := range opts {
		opt(r)
	}

	var buf bytes.Buffer
	if r.document {
		buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
		if r.title != "" {
			fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(r.title))
		}
		fmt.Fprintf(&buf, "<style>%s\n</style>\n</head>\n<body>\n", tableCSS)
	}

	buf.WriteString(`<table class="pivotgrid">` + "\n")
	if r.title != "" {
		fmt.Fprintf(&buf, "  <caption>%s</caption>\n", html.EscapeString(r.title))
	}
	if m != nil && !m.Empty() {
		writeSection(&buf, "thead", m.Rows[:m.HeaderRows])
		writeSection(&buf, "tbody", m.Rows[m.HeaderRows:])
	}
	buf.WriteString("</table>\n")

	if r.document {
		buf.WriteString("</body>\n</html>\n")
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return nil
}

func writeSection(buf *bytes.Buffer, tag string, rows []grid.Row) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(buf, "  <%s>\n", tag)
	for _, row := range rows {
		buf.WriteString("    <tr>")
		for _, c := range row.Cells {
			writeCell(buf, c)
		}
		buf.WriteString("</tr>\n")
	}
	fmt.Fprintf(buf, "  </%s>\n", tag)
}

func writeCell(buf *bytes.Buffer, c grid.Cell) {
	tag := "th"
	if c.CellType.IsValue() {
		tag = "td"
	}
	fmt.Fprintf(buf, `<%s class="%s"`, tag, CSSClass(c.CellType))
	if c.RowSpan > 1 {
		fmt.Fprintf(buf, ` rowspan="%d"`, c.RowSpan)
	}
	if c.ColSpan > 1 {
		fmt.Fprintf(buf, ` colspan="%d"`, c.ColSpan)
	}
	if c.NodeID != "" {
		fmt.Fprintf(buf, ` data-node-id="%s"`, html.EscapeString(c.NodeID))
	}
	if c.CanToggle {
		fmt.Fprintf(buf, ` data-expanded="%t"`, c.Expanded)
	}
	fmt.Fprintf(buf, ">%s</%s>", html.EscapeString(c.Value), tag)
}

// CSSClass returns the kebab-case class name of a cell type, e.g.
// "grand-total-header" for CellTypeGrandTotalHeader.
func CSSClass(t pivot.CellType) string {
	name := t.String()
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
