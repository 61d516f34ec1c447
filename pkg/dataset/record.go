package dataset

import (
	"slices"
	"strconv"
	"strings"
)

// Record is one row of a dataset, keyed by field name.
type Record map[string]string

// Get returns the value of field, or "" when the record lacks it.
func (r Record) Get(field string) string { return r[field] }

// Float parses field as a number. Missing and unparsable values count as
// zero. Thousands separators ("1,250") are accepted.
func (r Record) Float(field string) float64 {
	v, err := r.ParseFloat(field)
	if err != nil {
		return 0
	}
	return v
}

// ParseFloat parses field as a number and reports parse failures.
func (r Record) ParseFloat(field string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(r[field]), ",", "")
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// Dataset is a list of records together with the field names they use.
type Dataset struct {
	Fields  []string
	Records []Record
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.Records) }

// HasField reports whether field is one of the dataset's fields.
func (d *Dataset) HasField(field string) bool { return slices.Contains(d.Fields, field) }
