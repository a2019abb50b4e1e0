package fundwatch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/xuri/excelize/v2"
)

// this file contains the readers of the raw tabular content of a disclosure.
// Every reader returns the content as rows of cells, header detection is left to ParseSnapshot.

// TableOptions selects the table inside a source holding several.
type TableOptions struct {
	Sheet    string   // xlsx sheet name. If empty, the first sheet with a cell labelled like Header is used.
	JSONRows string   // jsonpath selecting the holding objects of a json source.
	Header   []string // labels identifying the header row (name column labels).
}

// ReadTable reads the tabular content of r, in the format given by the extension of 'name':
// .xlsx, .csv or .json.
func ReadTable(name string, r io.Reader, opts TableOptions) ([][]string, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".xlsx", ".xlsm":
		return ReadXLSX(r, opts)
	case ".csv":
		return ReadCSV(r)
	case ".json":
		return ReadJSON(r, opts)
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q", ext)
	}
}

// ReadXLSX reads the rows of a spreadsheet.
func ReadXLSX(r io.Reader, opts TableOptions) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if opts.Sheet != "" {
		if !slices.Contains(sheets, opts.Sheet) {
			return nil, fmt.Errorf("sheet %q not found, available sheets are %q", opts.Sheet, sheets)
		}
		sheets = []string{opts.Sheet}
	}
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheet")
	}

	var first [][]string
	for i, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("cannot read sheet %q: %w", sheet, err)
		}
		if i == 0 {
			first = rows
		}
		if hasHeader(rows, opts.Header) {
			return rows, nil
		}
	}
	// let the parser report the missing columns of the first sheet.
	return first, nil
}

// hasHeader reports whether a cell of rows is one of the labels.
func hasHeader(rows [][]string, labels []string) bool {
	if len(labels) == 0 {
		return true
	}
	keys := make([]string, len(labels))
	for i, l := range labels {
		keys[i] = foldName(l)
	}
	for _, row := range rows {
		for _, c := range row {
			if slices.Contains(keys, foldName(c)) {
				return true
			}
		}
	}
	return false
}

// ReadCSV reads comma separated rows. Rows may have different lengths.
func ReadCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot read csv: %w", err)
	}
	return rows, nil
}

// ReadJSON reads the objects selected by the jsonpath opts.JSONRows (default "$.holdings[*]") as rows.
//
// The first row is a header made of the union of the object keys (new keys of each object are
// appended in alphabetical order); each object is a row. Numbers are written back in their shortest form.
func ReadJSON(r io.Reader, opts TableOptions) ([][]string, error) {
	path := opts.JSONRows
	if path == "" {
		path = "$.holdings[*]"
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var jobj any
	if err := dec.Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot parse json: %w", err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("cannot select holdings with %q: %w", path, err)
	}
	// jsonpath returns a single value for definite paths, and a list for wildcards.
	jlist, ok := jval.([]any)
	if !ok {
		jlist = []any{jval}
	}

	var header []string
	column := make(map[string]int)
	var objects []map[string]any
	for _, item := range jlist {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("holding %v selected by %q is not an object", item, path)
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if _, exists := column[k]; !exists {
				column[k] = len(header)
				header = append(header, k)
			}
		}
		objects = append(objects, obj)
	}

	rows := [][]string{header}
	for _, obj := range objects {
		row := make([]string, len(header))
		for k, v := range obj {
			row[column[k]] = jsonCell(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func jsonCell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		data, _ := json.Marshal(v)
		return string(data)
	}
}
