package dataset

import (
	"encoding/csv"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/pivotgrid/pkg/errors"
)

// Supported file extensions.
const (
	ExtCSV  = ".csv"
	ExtTSV  = ".tsv"
	ExtJSON = ".json"
)

// ReadCSV decodes comma-separated records from r.
//
// The first row names the fields. Header names and values are trimmed.
// Every row must have as many values as the header; a short or long row
// fails with INVALID_INPUT naming its line. Empty input yields an empty
// dataset.
//
// ReadCSV does not close r.
func ReadCSV(r io.Reader) (*Dataset, error) {
	return readDelimited(r, ',')
}

// ReadTSV is ReadCSV for tab-separated input.
func ReadTSV(r io.Reader) (*Dataset, error) {
	return readDelimited(r, '\t')
}

func readDelimited(r io.Reader, comma rune) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return &Dataset{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read header")
	}

	ds := &Dataset{Fields: make([]string, len(header))}
	for i, h := range header {
		name := strings.TrimSpace(h)
		if err := errors.ValidateFieldName(name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "column %d", i+1)
		}
		if slices.Contains(ds.Fields[:i], name) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate column %q", name)
		}
		ds.Fields[i] = name
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read record")
		}
		rec := make(Record, len(row))
		for i, v := range row {
			rec[ds.Fields[i]] = strings.TrimSpace(v)
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

// ReadJSON decodes an array of flat JSON objects from r.
//
//	[
//	  {"product": "Coffee Mug", "quantity": 2, "country": "US"},
//	  {"product": "KVM Switch", "quantity": 38, "country": "US"}
//	]
//
// Strings are kept as-is, numbers keep their literal text, booleans become
// "true" or "false" and null becomes "". Nested objects and arrays are
// rejected. Fields are listed in order of first appearance, with the keys
// of each object sorted.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Dataset, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		if err == io.EOF {
			return &Dataset{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode")
	}

	ds := &Dataset{Records: make([]Record, 0, len(raw))}
	seen := make(map[string]bool)
	for i, obj := range raw {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		rec := make(Record, len(obj))
		for _, k := range keys {
			v, err := scalar(obj[k])
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "record %d field %q", i, k)
			}
			rec[k] = v
			if !seen[k] {
				if err := errors.ValidateFieldName(k); err != nil {
					return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "record %d", i)
				}
				seen[k] = true
				ds.Fields = append(ds.Fields, k)
			}
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

func scalar(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	case bool:
		if x {
			return "true", nil
		}
		return "false", nil
	default:
		return "", fmt.Errorf("unsupported value of type %T", v)
	}
}

// Load reads the dataset at path, choosing the decoder by file extension.
//
// A missing file fails with FILE_NOT_FOUND and an unknown extension with
// INVALID_FORMAT.
func Load(path string) (*Dataset, error) {
	read, err := readerFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	ds, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

func readerFor(path string) (func(io.Reader) (*Dataset, error), error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ExtCSV:
		return ReadCSV, nil
	case ExtTSV:
		return ReadTSV, nil
	case ExtJSON:
		return ReadJSON, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported dataset extension %q (want one of %s, %s, %s)", ext, ExtCSV, ExtTSV, ExtJSON)
	}
}
