package definition

import (
	"path/filepath"
	"slices"
	"sort"
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/matzehuels/pivotgrid/pkg/dataset"
	"github.com/matzehuels/pivotgrid/pkg/errors"
	"github.com/matzehuels/pivotgrid/pkg/pivot"
)

func loadSample(t *testing.T) (*Definition, *dataset.Dataset) {
	t.Helper()
	d, err := Load(filepath.Join("..", "..", "examples", "sales", "pivot.toml"))
	if err != nil {
		t.Fatalf("Load(pivot.toml) error = %v", err)
	}
	ds, err := dataset.Load(filepath.Join("..", "..", "examples", "sales", "sales.csv"))
	if err != nil {
		t.Fatalf("Load(sales.csv) error = %v", err)
	}
	return d, ds
}

func TestCompileSample(t *testing.T) {
	d, ds := loadSample(t)
	c, err := d.Compile(ds)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if len(c.Dimensions) != 7 || len(c.Measures) != 5 {
		t.Fatalf("got %d dimensions and %d measures, want 7 and 5", len(c.Dimensions), len(c.Measures))
	}
	if !c.GrandTotals {
		t.Error("GrandTotals = false, want true")
	}

	all := pivot.MeasureData[dataset.Record]{Cell: ds.Records, Row: ds.Records, Column: ds.Records}
	tests := []struct {
		measure string
		want    string
	}{
		{"Quantity", "6,115"},
		{"Revenue", "$86,055.00"},
		{"Count", "128"},
		{"Quantity % of Column", "100.00%"},
		{"Revenue % of Row", "100.00%"},
	}
	for _, tt := range tests {
		i := slices.IndexFunc(c.Measures, func(m *pivot.Measure[dataset.Record]) bool { return m.Name == tt.measure })
		if i < 0 {
			t.Errorf("measure %q missing", tt.measure)
			continue
		}
		m := c.Measures[i]
		if got := m.FormatValue(m.Aggregate(all)); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.measure, got, tt.want)
		}
	}
}

func TestCompileDimensionLabels(t *testing.T) {
	d, ds := loadSample(t)
	c, err := d.Compile(ds)
	if err != nil {
		t.Fatal(err)
	}
	rec := dataset.Record{"year": "2020", "quarter": "3", "country": "US"}

	byName := make(map[string]*pivot.Dimension[dataset.Record])
	for _, dim := range c.Dimensions {
		byName[dim.Name] = dim
	}
	if got := byName["Year"].Header(rec); got != "Year: 2020" {
		t.Errorf("Year header = %q, want %q", got, "Year: 2020")
	}
	if got := byName["Quarter"].GroupKey(rec); got != "3" {
		t.Errorf("Quarter key = %q, want %q", got, "3")
	}
	if byName["Country"].Header != nil {
		t.Error("Country header set, want nil without a label template")
	}
	if !byName["Country"].IsRow || byName["Year"].IsRow {
		t.Error("axes not compiled from definition")
	}
	if !byName["Quarter"].Collapsed || !byName["Product Name"].Disabled {
		t.Error("flags not compiled from definition")
	}
}

func TestCompileUnknownField(t *testing.T) {
	d, _ := loadSample(t)
	ds := &dataset.Dataset{Fields: []string{"country"}}
	if _, err := d.Compile(ds); !errors.Is(err, errors.ErrCodeInvalidDefinition) {
		t.Errorf("Compile() error = %v, want INVALID_DEFINITION", err)
	}
}

func TestCompileStructuralErrors(t *testing.T) {
	d, err := Parse([]byte(minimal))
	if err != nil {
		t.Fatal(err)
	}
	d.Dimensions[1].Axis = AxisRow
	if _, err := d.Compile(nil); !errors.Is(err, errors.ErrCodeInvalidDimension) {
		t.Errorf("Compile() error = %v, want INVALID_DIMENSION", err)
	}
}

func TestFormatter(t *testing.T) {
	en := message.NewPrinter(language.English)
	de := message.NewPrinter(language.German)

	tests := []struct {
		name    string
		format  string
		printer *message.Printer
		in      float64
		want    string
	}{
		{"number", FormatNumber, en, 1234.4, "1,234"},
		{"number de", FormatNumber, de, 1234.4, "1.234"},
		{"decimal", FormatDecimal, en, 1234.5, "1,234.50"},
		{"percent", FormatPercent, en, 0.25, "25.00%"},
		{"currency", FormatCurrency, en, 12.5, "$12.50"},
		{"negative currency", FormatCurrency, en, -3, "-$3.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Formatter(tt.format, tt.printer, "$")(tt.in); got != tt.want {
				t.Errorf("Formatter(%s)(%v) = %q, want %q", tt.format, tt.in, got, tt.want)
			}
		})
	}
}

func TestFmtVerbFormat(t *testing.T) {
	d, err := Parse([]byte(minimal))
	if err != nil {
		t.Fatal(err)
	}
	d.Measures[0].Format = "%.1f units"
	c, err := d.Compile(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Measures[0].FormatValue(2.24); got != "2.2 units" {
		t.Errorf("FormatValue() = %q, want %q", got, "2.2 units")
	}
}

func TestNumericSortKey(t *testing.T) {
	keys := []string{"10", "9", "-1", "abc", "2.5", "-20", "100", "-0.5", "0", "-1e30", "1,000", "-3.25"}
	sort.Slice(keys, func(i, j int) bool { return NumericSortKey(keys[i]) < NumericSortKey(keys[j]) })
	want := []string{"-1e30", "-20", "-3.25", "-1", "-0.5", "0", "2.5", "9", "10", "100", "1,000", "abc"}
	if !slices.Equal(keys, want) {
		t.Errorf("sorted = %v, want %v", keys, want)
	}
}

func TestNumericSortKeyDistinct(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"-1", "-20"},
		{"-1", "-2"},
		{"-0.001", "-0.002"},
		{"1e15", "1000000000000001"},
		{"0.1", "0.2"},
	}
	for _, tt := range tests {
		if NumericSortKey(tt.a) == NumericSortKey(tt.b) {
			t.Errorf("NumericSortKey(%q) == NumericSortKey(%q) = %q", tt.a, tt.b, NumericSortKey(tt.a))
		}
	}

	if got, want := NumericSortKey("-0"), NumericSortKey("0"); got != want {
		t.Errorf("NumericSortKey(-0) = %q, want %q", got, want)
	}
	if got, want := NumericSortKey("1.0"), NumericSortKey("01"); got != want {
		t.Errorf("NumericSortKey(1.0) = %q, want %q", got, want)
	}
}

func TestMonthSortKey(t *testing.T) {
	keys := []string{"Sept", "Jan", "december", "Feb", "Unknown", "May"}
	sort.Slice(keys, func(i, j int) bool { return MonthSortKey(keys[i]) < MonthSortKey(keys[j]) })
	want := []string{"Jan", "Feb", "May", "Sept", "december", "Unknown"}
	if !slices.Equal(keys, want) {
		t.Errorf("sorted = %v, want %v", keys, want)
	}
}

func TestExpandLabel(t *testing.T) {
	if got := ExpandLabel("Q{value} ({value})", "3"); got != "Q3 (3)" {
		t.Errorf("ExpandLabel() = %q, want %q", got, "Q3 (3)")
	}
}
