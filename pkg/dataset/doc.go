// Package dataset loads flat tabular records for pivoting.
//
// # Overview
//
// A pivot table groups records by the values of some fields and aggregates
// the numbers in others. This package reads such records from CSV, TSV, or
// JSON files into a [Dataset] of [Record] values, which are plain field
// maps. Every value is kept as text; numeric fields are parsed when a
// measure reads them with [Record.Float].
//
// # CSV and TSV
//
// The first row names the fields:
//
//	product,quantity,unit_price,country,state,city,year,quarter,month
//	Coffee Mug,2,13,US,CA,San Diego,2020,1,Jan
//	KVM Switch,38,13,US,CA,San Diego,2020,1,Jan
//
// # JSON
//
// A JSON dataset is an array of flat objects:
//
//	[
//	  {"product": "Coffee Mug", "quantity": 2, "country": "US"},
//	  {"product": "KVM Switch", "quantity": 38, "country": "US"}
//	]
//
// Objects may omit fields; missing values read as "".
//
// # Loading
//
// Use [Load] to read a file by extension, or the Read functions to decode
// from any io.Reader:
//
//	ds, err := dataset.Load("examples/sales/sales.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(ds.Len(), "records with fields", ds.Fields)
//
// Errors carry [errors.ErrCodeFileNotFound], [errors.ErrCodeInvalidFormat],
// or [errors.ErrCodeInvalidInput] codes.
//
// [errors.ErrCodeFileNotFound]: github.com/matzehuels/pivotgrid/pkg/errors.ErrCodeFileNotFound
// [errors.ErrCodeInvalidFormat]: github.com/matzehuels/pivotgrid/pkg/errors.ErrCodeInvalidFormat
// [errors.ErrCodeInvalidInput]: github.com/matzehuels/pivotgrid/pkg/errors.ErrCodeInvalidInput
package dataset
