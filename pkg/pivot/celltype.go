package pivot

// CellType tags a node or matrix cell with the role it plays in the table.
type CellType int

const (
	// CellTypeRoot is the synthetic root of a data or header tree.
	CellTypeRoot CellType = iota
	// CellTypeMeasure is an aggregate value where both the row and the
	// column branch are plain groups.
	CellTypeMeasure
	// CellTypeTotal is an aggregate value under a row or column total.
	CellTypeTotal
	// CellTypeGrandTotal is an aggregate value under the grand total row
	// or column.
	CellTypeGrandTotal
	// CellTypeMeasureLabel names a measure above a plain leaf column.
	CellTypeMeasureLabel
	// CellTypeMeasureTotalLabel names a measure above a total column.
	CellTypeMeasureTotalLabel
	// CellTypeGroupHeader labels one group of a dimension.
	CellTypeGroupHeader
	// CellTypeTotalHeader labels the subtotal of a group.
	CellTypeTotalHeader
	// CellTypeGrandTotalHeader labels the grand total.
	CellTypeGrandTotalHeader
	// CellTypeCorner is the blank top-left cell of a matrix.
	CellTypeCorner
	// CellTypeSortBar spans the data columns in the first header row,
	// where renderers put column dimension controls.
	CellTypeSortBar
)

var cellTypeNames = [...]string{
	CellTypeRoot:              "Root",
	CellTypeMeasure:           "Measure",
	CellTypeTotal:             "Total",
	CellTypeGrandTotal:        "GrandTotal",
	CellTypeMeasureLabel:      "MeasureLabel",
	CellTypeMeasureTotalLabel: "MeasureTotalLabel",
	CellTypeGroupHeader:       "GroupHeader",
	CellTypeTotalHeader:       "TotalHeader",
	CellTypeGrandTotalHeader:  "GrandTotalHeader",
	CellTypeCorner:            "Corner",
	CellTypeSortBar:           "SortBar",
}

// String returns the name of the cell type.
func (c CellType) String() string {
	if c >= 0 && int(c) < len(cellTypeNames) {
		return cellTypeNames[c]
	}
	return "Unknown"
}

// MarshalText encodes the cell type by name.
func (c CellType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// IsValue reports whether the cell carries an aggregate value.
func (c CellType) IsValue() bool {
	return c == CellTypeMeasure || c == CellTypeTotal || c == CellTypeGrandTotal
}

// IsLabel reports whether the cell names a measure.
func (c CellType) IsLabel() bool {
	return c == CellTypeMeasureLabel || c == CellTypeMeasureTotalLabel
}

// IsHeader reports whether the cell labels a group, total or grand total.
func (c CellType) IsHeader() bool {
	return c == CellTypeGroupHeader || c == CellTypeTotalHeader || c == CellTypeGrandTotalHeader
}

// IsTotal reports whether the cell belongs to a total or grand total.
func (c CellType) IsTotal() bool {
	switch c {
	case CellTypeTotal, CellTypeGrandTotal, CellTypeTotalHeader, CellTypeGrandTotalHeader, CellTypeMeasureTotalLabel:
		return true
	}
	return false
}
