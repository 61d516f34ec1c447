package definition

import (
	stderrors "errors"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"

	"github.com/matzehuels/pivotgrid/pkg/errors"
)

// Axes a dimension can be placed on.
const (
	AxisRow    = "row"
	AxisColumn = "column"
)

// Group orderings.
const (
	SortDefault = ""
	SortNumeric = "numeric"
	SortMonth   = "month"
)

// Aggregates a measure can compute.
const (
	AggSum         = "sum"
	AggCount       = "count"
	AggAverage     = "avg"
	AggMin         = "min"
	AggMax         = "max"
	AggRowShare    = "row_share"
	AggColumnShare = "column_share"
)

// Named value formats. Any other format must be a fmt verb such as "%.1f".
const (
	FormatNumber   = "number"
	FormatDecimal  = "decimal"
	FormatPercent  = "percent"
	FormatCurrency = "currency"
)

var (
	validAxes       = []string{AxisRow, AxisColumn}
	validSorts      = []string{SortDefault, SortNumeric, SortMonth}
	validAggregates = []string{AggSum, AggCount, AggAverage, AggMin, AggMax, AggRowShare, AggColumnShare}
)

// Definition is a pivot table configuration as read from a TOML file.
type Definition struct {
	Title string `toml:"title"`
	// GrandTotals defaults to true when omitted.
	GrandTotals *bool `toml:"grand_totals"`
	// Locale selects digit grouping for named formats, e.g. "en" or "de".
	Locale string `toml:"locale"`
	// Currency is the symbol of the currency format. Defaults to "$".
	Currency string `toml:"currency"`

	Dimensions []DimensionDef `toml:"dimension"`
	Measures   []MeasureDef   `toml:"measure"`
}

// DimensionDef configures one grouping level.
type DimensionDef struct {
	Name       string `toml:"name"`
	Field      string `toml:"field"`
	Axis       string `toml:"axis"`
	Sequence   int    `toml:"sequence"`
	Disabled   bool   `toml:"disabled"`
	Collapsed  bool   `toml:"collapsed"`
	Descending bool   `toml:"descending"`
	Sort       string `toml:"sort"`
	// Label is a template for group captions; "{value}" is replaced by the
	// group key.
	Label string `toml:"label"`
}

// MeasureDef configures one aggregate.
type MeasureDef struct {
	Name  string `toml:"name"`
	Field string `toml:"field"`
	// Weight names a field multiplied into Field, e.g. unit price for a
	// revenue measure over quantities.
	Weight    string `toml:"weight"`
	Aggregate string `toml:"aggregate"`
	Format    string `toml:"format"`
	Sequence  int    `toml:"sequence"`
	Disabled  bool   `toml:"disabled"`
}

// Parse decodes a TOML definition. Unknown keys are rejected so typos do
// not silently drop configuration.
func Parse(data []byte) (*Definition, error) {
	var d Definition
	md, err := toml.Decode(string(data), &d)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "decode definition")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidDefinition, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return &d, nil
}

// Load reads and parses the definition file at path.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "definition %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return Parse(data)
}

// GrandTotalsEnabled reports whether the table shows grand totals.
func (d *Definition) GrandTotalsEnabled() bool {
	return d.GrandTotals == nil || *d.GrandTotals
}

// Tag returns the language tag of the definition's locale.
func (d *Definition) Tag() language.Tag {
	if d.Locale == "" {
		return language.English
	}
	return language.Make(d.Locale)
}

// Validate checks the definition on its own terms: known axes, sorts,
// aggregates, and formats, and fields that exist when fields is non-nil.
// Structural rules (unique names, at least one enabled dimension per axis)
// are left to [pivot.Validate], which runs on the compiled result.
func (d *Definition) Validate(fields []string) error {
	var errs errors.ValidationErrors
	add := func(format string, args ...any) {
		errs = append(errs, errors.New(errors.ErrCodeInvalidDefinition, format, args...))
	}
	checkField := func(kind, name, field string) {
		if err := errors.ValidateFieldName(field); err != nil {
			add("%s %q: %s", kind, name, errors.UserMessage(err))
			return
		}
		if fields != nil && !contains(fields, field) {
			add("%s %q: unknown field %q", kind, name, field)
		}
	}

	if d.Locale != "" {
		if _, err := language.Parse(d.Locale); err != nil {
			add("locale %q: %v", d.Locale, err)
		}
	}

	for _, dim := range d.Dimensions {
		checkField("dimension", dim.Name, dim.Field)
		if !contains(validAxes, dim.Axis) {
			add("dimension %q: axis must be %q or %q, got %q", dim.Name, AxisRow, AxisColumn, dim.Axis)
		}
		if !contains(validSorts, dim.Sort) {
			add("dimension %q: unknown sort %q", dim.Name, dim.Sort)
		}
	}

	for _, m := range d.Measures {
		if !contains(validAggregates, m.Aggregate) {
			add("measure %q: unknown aggregate %q", m.Name, m.Aggregate)
		}
		if m.Aggregate != AggCount || m.Field != "" {
			checkField("measure", m.Name, m.Field)
		}
		if m.Weight != "" {
			checkField("measure", m.Name, m.Weight)
		}
		if m.Format != "" && !isNamedFormat(m.Format) && !strings.Contains(m.Format, "%") {
			add("measure %q: format %q is neither a named format nor a fmt verb", m.Name, m.Format)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func isNamedFormat(f string) bool {
	switch f {
	case FormatNumber, FormatDecimal, FormatPercent, FormatCurrency:
		return true
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
