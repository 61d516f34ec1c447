package pivot

import (
	"github.com/matzehuels/pivotgrid/pkg/errors"
)

// Validate checks dimensions and measures before any tree is built.
// All problems are collected; the returned error is an
// [errors.ValidationErrors] whose codes are INVALID_DIMENSION or
// INVALID_MEASURE.
func Validate[T any](dims []*Dimension[T], measures []*Measure[T]) error {
	var errs errors.ValidationErrors
	addDim := func(format string, args ...any) {
		errs = append(errs, errors.New(errors.ErrCodeInvalidDimension, format, args...))
	}
	addMeasure := func(format string, args ...any) {
		errs = append(errs, errors.New(errors.ErrCodeInvalidMeasure, format, args...))
	}

	if len(dims) == 0 {
		addDim("at least one dimension is required")
	}
	if len(measures) == 0 {
		addMeasure("at least one measure is required")
	}

	var rows, columns int
	seen := make(map[string]bool)
	for i, d := range dims {
		if d == nil {
			addDim("dimension %d is nil", i)
			continue
		}
		if err := errors.ValidateName(errors.ErrCodeInvalidDimension, "dimension", d.Name); err != nil {
			errs = append(errs, err.(*errors.Error))
		} else if seen[d.Name] {
			addDim("dimension name %q is not unique", d.Name)
		}
		seen[d.Name] = true
		if d.GroupKey == nil {
			addDim("dimension %q has no group key function", d.Name)
		}
		if d.Disabled {
			continue
		}
		if d.IsRow {
			rows++
		} else {
			columns++
		}
	}
	if len(dims) > 0 && columns == 0 {
		addDim("at least one enabled column dimension is required")
	}
	if len(dims) > 0 && rows == 0 {
		addDim("at least one enabled row dimension is required")
	}

	var enabled int
	clear(seen)
	for i, m := range measures {
		if m == nil {
			addMeasure("measure %d is nil", i)
			continue
		}
		if err := errors.ValidateName(errors.ErrCodeInvalidMeasure, "measure", m.Name); err != nil {
			errs = append(errs, err.(*errors.Error))
		} else if seen[m.Name] {
			addMeasure("measure name %q is not unique", m.Name)
		}
		seen[m.Name] = true
		if m.Aggregate == nil {
			addMeasure("measure %q has no aggregate function", m.Name)
		}
		if !m.Disabled {
			enabled++
		}
	}
	if len(measures) > 0 && enabled == 0 {
		addMeasure("at least one measure must be enabled")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// NormalizeDimensions returns the enabled dimensions, rows first, each axis
// ordered by sequence. It renumbers sequences from zero per axis and sets
// the leaf flag, the global ordinal and whether a dimension may move to
// the other axis. Call it again after dimensions are reordered.
func NormalizeDimensions[T any](dims []*Dimension[T]) []*Dimension[T] {
	rows, columns := splitAxes(dims)
	ordinal := 0
	for _, axis := range [][]*Dimension[T]{rows, columns} {
		for i, d := range axis {
			d.Sequence = i
			d.leaf = i == len(axis)-1
			d.ordinal = ordinal
			d.crossAxis = len(axis) > 1
			ordinal++
		}
	}
	return append(rows, columns...)
}

// NormalizeMeasures marks whether each measure can be disabled and returns
// the enabled measures ordered by sequence.
func NormalizeMeasures[T any](measures []*Measure[T]) []*Measure[T] {
	enabled := enabledMeasures(measures)
	for _, m := range measures {
		if m != nil {
			m.canDisable = len(enabled) != 1 || m.Disabled
		}
	}
	return enabled
}
