package pivot

import (
	"fmt"
	"strconv"
)

// Dimension is one grouping level on one axis of a pivot table.
//
// Name identifies the dimension and must be unique across all dimensions.
// GroupKey is required. Header and SortKey are optional and fall back to
// the group key.
//
// The zero value of every flag is the common case: an enabled, expanded,
// ascending column dimension.
type Dimension[T any] struct {
	Name       string
	IsRow      bool
	Sequence   int
	Disabled   bool
	Collapsed  bool // default expansion of this dimension's groups
	Descending bool

	// GroupKey maps a record to the key of its group. Node ids embed the
	// key as "[Name:key]" with \, [, ], :, / and the braces escaped by a
	// backslash.
	GroupKey func(T) string
	// Header maps a record to the label of its group.
	Header func(T) string
	// SortKey maps a group key to the string groups are ordered by.
	SortKey func(string) string

	// Set by NormalizeDimensions.
	leaf      bool
	ordinal   int
	crossAxis bool
}

// IsLeaf reports whether d is the last dimension on its axis.
// Leaf groups are always expanded and cannot be toggled.
func (d *Dimension[T]) IsLeaf() bool { return d.leaf }

// Ordinal is the position of d across both axes, rows first.
func (d *Dimension[T]) Ordinal() int { return d.ordinal }

// CanRepositionAcrossAxis reports whether d can move to the other axis
// without leaving its own axis empty.
func (d *Dimension[T]) CanRepositionAcrossAxis() bool { return d.crossAxis }

// Axis returns "row" or "column".
func (d *Dimension[T]) Axis() string {
	if d.IsRow {
		return "row"
	}
	return "column"
}

func (d *Dimension[T]) label(r T) string {
	if d.Header != nil {
		return d.Header(r)
	}
	return d.GroupKey(r)
}

func (d *Dimension[T]) sortKey(key string) string {
	if d.SortKey != nil {
		return d.SortKey(key)
	}
	return key
}

// Measure is one aggregate computed for every cell of the table.
type Measure[T any] struct {
	Name     string
	Sequence int
	Disabled bool

	// Format is a fmt verb applied to the aggregate, e.g. "%.2f".
	Format string
	// Formatter takes precedence over Format when set.
	Formatter func(float64) string

	Aggregate func(MeasureData[T]) float64

	canDisable bool
}

// CanDisable reports whether m may be switched off. It is false when m is
// the only enabled measure. Set by NormalizeMeasures.
func (m *Measure[T]) CanDisable() bool { return m.canDisable }

// FormatValue renders v for display.
func (m *Measure[T]) FormatValue(v float64) string {
	switch {
	case m.Formatter != nil:
		return m.Formatter(v)
	case m.Format != "":
		return fmt.Sprintf(m.Format, v)
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// MeasureData is the context a measure aggregates over for one cell.
//
// Cell holds the records of the row and column intersection. Row holds
// every record of the enclosing row across all columns and Column every
// record of the enclosing column across all rows; they are the
// denominators of percent-of-row and percent-of-column measures.
type MeasureData[T any] struct {
	Cell   []T
	Row    []T
	Column []T

	RowDimension    *Dimension[T]
	ColumnDimension *Dimension[T]
}
