// Package definition reads pivot table configurations from TOML.
//
// A definition names the dimensions and measures of a table in terms of
// dataset fields, so a pivot over a CSV or JSON file needs no Go code:
//
//	title = "Sales"
//
//	[[dimension]]
//	name  = "Country"
//	field = "country"
//	axis  = "row"
//
//	[[dimension]]
//	name  = "Year"
//	field = "year"
//	axis  = "column"
//	sort  = "numeric"
//	label = "Year: {value}"
//
//	[[measure]]
//	name      = "Revenue"
//	field     = "quantity"
//	weight    = "unit_price"
//	aggregate = "sum"
//	format    = "currency"
//
// [Definition.Compile] checks the definition against a dataset and returns
// the typed [pivot.Dimension] and [pivot.Measure] values a table is built
// from.
//
// # Sorting
//
// Groups sort by their key text unless sort is "numeric" (by value) or
// "month" (calendar order of English month names).
//
// # Formats
//
// A measure format is either a fmt verb such as "%.1f" or one of the named
// formats number, decimal, percent and currency. Named formats group digits
// according to the definition's locale through golang.org/x/text/message.
// Share aggregates default to percent, averages to decimal and everything
// else to number.
//
// [pivot.Dimension]: github.com/matzehuels/pivotgrid/pkg/pivot.Dimension
// [pivot.Measure]: github.com/matzehuels/pivotgrid/pkg/pivot.Measure
package definition
