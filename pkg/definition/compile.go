package definition

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/message"

	"github.com/matzehuels/pivotgrid/pkg/dataset"
	"github.com/matzehuels/pivotgrid/pkg/pivot"
)

// Compiled is a definition turned into pivot dimensions and measures over
// dataset records.
type Compiled struct {
	Title       string
	GrandTotals bool
	Dimensions  []*pivot.Dimension[dataset.Record]
	Measures    []*pivot.Measure[dataset.Record]
}

// Compile validates d against the dataset's fields and builds the pivot
// model. A nil ds skips the field existence checks.
func (d *Definition) Compile(ds *dataset.Dataset) (*Compiled, error) {
	var fields []string
	if ds != nil {
		fields = ds.Fields
	}
	if err := d.Validate(fields); err != nil {
		return nil, err
	}

	printer := message.NewPrinter(d.Tag())
	symbol := d.Currency
	if symbol == "" {
		symbol = "$"
	}

	c := &Compiled{Title: d.Title, GrandTotals: d.GrandTotalsEnabled()}
	for _, def := range d.Dimensions {
		c.Dimensions = append(c.Dimensions, compileDimension(def))
	}
	for _, def := range d.Measures {
		c.Measures = append(c.Measures, compileMeasure(def, printer, symbol))
	}

	if err := pivot.Validate(c.Dimensions, c.Measures); err != nil {
		return nil, err
	}
	return c, nil
}

func compileDimension(def DimensionDef) *pivot.Dimension[dataset.Record] {
	field := def.Field
	dim := &pivot.Dimension[dataset.Record]{
		Name:       def.Name,
		IsRow:      def.Axis == AxisRow,
		Sequence:   def.Sequence,
		Disabled:   def.Disabled,
		Collapsed:  def.Collapsed,
		Descending: def.Descending,
		GroupKey:   func(r dataset.Record) string { return r.Get(field) },
	}
	if def.Label != "" {
		tmpl := def.Label
		dim.Header = func(r dataset.Record) string { return ExpandLabel(tmpl, r.Get(field)) }
	}
	switch def.Sort {
	case SortNumeric:
		dim.SortKey = NumericSortKey
	case SortMonth:
		dim.SortKey = MonthSortKey
	}
	return dim
}

func compileMeasure(def MeasureDef, p *message.Printer, symbol string) *pivot.Measure[dataset.Record] {
	value := fieldValue(def.Field, def.Weight)
	m := &pivot.Measure[dataset.Record]{
		Name:     def.Name,
		Sequence: def.Sequence,
		Disabled: def.Disabled,
	}

	switch def.Aggregate {
	case AggSum:
		m.Aggregate = func(md pivot.MeasureData[dataset.Record]) float64 { return pivot.Sum(md.Cell, value) }
	case AggCount:
		m.Aggregate = func(md pivot.MeasureData[dataset.Record]) float64 { return pivot.Count(md.Cell) }
	case AggAverage:
		m.Aggregate = func(md pivot.MeasureData[dataset.Record]) float64 { return pivot.Average(md.Cell, value) }
	case AggMin:
		m.Aggregate = func(md pivot.MeasureData[dataset.Record]) float64 { return pivot.Min(md.Cell, value) }
	case AggMax:
		m.Aggregate = func(md pivot.MeasureData[dataset.Record]) float64 { return pivot.Max(md.Cell, value) }
	case AggRowShare:
		m.Aggregate = pivot.RowShare(value)
	case AggColumnShare:
		m.Aggregate = pivot.ColumnShare(value)
	}

	format := def.Format
	if format == "" {
		format = defaultFormat(def.Aggregate)
	}
	if isNamedFormat(format) {
		m.Formatter = Formatter(format, p, symbol)
	} else {
		m.Format = format
	}
	return m
}

func defaultFormat(aggregate string) string {
	switch aggregate {
	case AggRowShare, AggColumnShare:
		return FormatPercent
	case AggAverage:
		return FormatDecimal
	default:
		return FormatNumber
	}
}

func fieldValue(field, weight string) func(dataset.Record) float64 {
	if weight == "" {
		return func(r dataset.Record) float64 { return r.Float(field) }
	}
	return func(r dataset.Record) float64 { return r.Float(field) * r.Float(weight) }
}

// Formatter returns the locale-aware formatter for a named format.
// Unknown names fall back to the number format.
func Formatter(name string, p *message.Printer, currencySymbol string) func(float64) string {
	switch name {
	case FormatDecimal:
		return func(v float64) string { return p.Sprintf("%.2f", v) }
	case FormatPercent:
		return func(v float64) string { return p.Sprintf("%.2f", v*100) + "%" }
	case FormatCurrency:
		return func(v float64) string {
			if v < 0 {
				return "-" + currencySymbol + p.Sprintf("%.2f", -v)
			}
			return currencySymbol + p.Sprintf("%.2f", v)
		}
	default:
		return func(v float64) string { return p.Sprintf("%.0f", v) }
	}
}

// ExpandLabel substitutes value for every "{value}" in tmpl.
func ExpandLabel(tmpl, value string) string {
	return strings.ReplaceAll(tmpl, "{value}", value)
}

// NumericSortKey orders numeric group keys by value. Keys that are not
// numbers sort after all numbers, in text order.
func NumericSortKey(key string) string {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(key), ",", ""), 64)
	if err != nil || math.IsNaN(v) {
		return "1" + key
	}
	if v == 0 {
		v = 0 // -0
	}
	// IEEE 754 bits compare like unsigned integers once the sign bit is
	// flipped for positives and every bit is inverted for negatives.
	bits := math.Float64bits(v)
	if bits&(1<<63) != 0 {
		bits = ^bits
	} else {
		bits |= 1 << 63
	}
	return fmt.Sprintf("0%016x", bits)
}

var months = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

// MonthSortKey orders English month names and abbreviations in calendar
// order. Unknown keys sort after December, in text order.
func MonthSortKey(key string) string {
	if n, ok := months[strings.ToLower(strings.TrimSpace(key))]; ok {
		return fmt.Sprintf("%02d", n)
	}
	return "99" + key
}
