package pivot

// Aggregate helpers for writing measure functions. Each takes the records
// of one MeasureData subset and an accessor for the value to aggregate.

// Sum adds value over records.
func Sum[T any](records []T, value func(T) float64) float64 {
	var total float64
	for _, r := range records {
		total += value(r)
	}
	return total
}

// Count returns the number of records.
func Count[T any](records []T) float64 {
	return float64(len(records))
}

// Average returns the mean of value over records, or 0 for no records.
func Average[T any](records []T, value func(T) float64) float64 {
	if len(records) == 0 {
		return 0
	}
	return Sum(records, value) / float64(len(records))
}

// Min returns the smallest value over records, or 0 for no records.
func Min[T any](records []T, value func(T) float64) float64 {
	if len(records) == 0 {
		return 0
	}
	m := value(records[0])
	for _, r := range records[1:] {
		m = min(m, value(r))
	}
	return m
}

// Max returns the largest value over records, or 0 for no records.
func Max[T any](records []T, value func(T) float64) float64 {
	if len(records) == 0 {
		return 0
	}
	m := value(records[0])
	for _, r := range records[1:] {
		m = max(m, value(r))
	}
	return m
}

// Ratio divides part by whole. A zero whole yields 1, so a share of an
// empty row or column reads as the whole of it.
func Ratio(part, whole float64) float64 {
	if whole == 0 {
		return 1
	}
	return part / whole
}

// RowShare returns a measure function computing the share of the cell in
// its row, e.g. revenue as a percent of the row.
func RowShare[T any](value func(T) float64) func(MeasureData[T]) float64 {
	return func(md MeasureData[T]) float64 {
		return Ratio(Sum(md.Cell, value), Sum(md.Row, value))
	}
}

// ColumnShare returns a measure function computing the share of the cell
// in its column.
func ColumnShare[T any](value func(T) float64) func(MeasureData[T]) float64 {
	return func(md MeasureData[T]) float64 {
		return Ratio(Sum(md.Cell, value), Sum(md.Column, value))
	}
}
