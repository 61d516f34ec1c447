package sink

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/pivotgrid/pkg/pivot/grid"
)

type matrixJSON struct {
	Title         string     `json:"title,omitempty"`
	HeaderRows    int        `json:"headerRows"`
	HeaderColumns int        `json:"headerColumns"`
	Columns       int        `json:"columns"`
	Rows          []grid.Row `json:"rows"`
}

// WriteJSON encodes m as indented JSON and writes it to w.
// Cell types are encoded by name. An empty matrix encodes with an empty
// rows array rather than null.
func WriteJSON(w io.Writer, m *grid.Matrix, title string) error {
	out := matrixJSON{Title: title, Rows: []grid.Row{}}
	if m != nil {
		out.HeaderRows = m.HeaderRows
		out.HeaderColumns = m.HeaderColumns
		out.Columns = m.Columns
		if m.Rows != nil {
			out.Rows = m.Rows
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
