package fundwatch

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	in := "Name,ISIN,Quantity,% to NAV\nAlpha,\"INE002A01018\",\"1,000\",5.2\nTotal\n"
	got, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	want := [][]string{
		{"Name", "ISIN", "Quantity", "% to NAV"},
		{"Alpha", "INE002A01018", "1,000", "5.2"},
		{"Total"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadCSV() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadJSON(t *testing.T) {
	in := `{
	"fund": "ABC Flexi Cap Fund",
	"portfolio": {"holdings": [
		{"name": "Alpha", "isin": "INE002A01018", "quantity": 1000, "weight": 5.25},
		{"name": "Beta", "isin": null, "quantity": 10.5, "weight": 1, "rating": "AAA"}
	]}
}`
	got, err := ReadJSON(strings.NewReader(in), TableOptions{JSONRows: "$.portfolio.holdings[*]"})
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	want := [][]string{
		{"isin", "name", "quantity", "weight", "rating"},
		{"INE002A01018", "Alpha", "1000", "5.25", ""},
		{"", "Beta", "10.5", "1", "AAA"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadJSON() mismatch (-want +got):\n%s", diff)
	}

	if _, err := ReadJSON(strings.NewReader(`{"holdings": [1, 2]}`), TableOptions{}); err == nil {
		t.Errorf("ReadJSON() error = nil, want an error for non object holdings")
	}
	if _, err := ReadJSON(strings.NewReader(`{"holdings": `), TableOptions{}); err == nil {
		t.Errorf("ReadJSON() error = nil, want an error for invalid json")
	}
}

// newWorkbook returns an xlsx file with a cover sheet and a portfolio sheet.
func newWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetRow("Sheet1", "A1", &[]any{"Index of funds"}); err != nil {
		t.Fatalf("SetSheetRow() error = %v", err)
	}
	if _, err := f.NewSheet("ABCFC"); err != nil {
		t.Fatalf("NewSheet() error = %v", err)
	}
	rows := [][]any{
		{"ABC Flexi Cap Fund"},
		{"Name of the Instrument", "ISIN", "Quantity", "% to NAV"},
		{"Alpha Ltd", "INE002A01018", 1000, 5.25},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("ABCFC", cell, &row); err != nil {
			t.Fatalf("SetSheetRow() error = %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() error = %v", err)
	}
	return buf.Bytes()
}

func TestReadXLSX(t *testing.T) {
	data := newWorkbook(t)
	header := DefaultColumns().Name

	// the portfolio sheet is found by its header.
	rows, err := ReadXLSX(bytes.NewReader(data), TableOptions{Header: header})
	if err != nil {
		t.Fatalf("ReadXLSX() error = %v", err)
	}
	s, err := ParseSnapshot("ABC Flexi Cap Fund", sep2024, rows, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseSnapshot() error = %v", err)
	}
	if s.Len() != 1 || s.At(0).Name != "Alpha Ltd" || s.At(0).Weight != 5.25 || !s.At(0).Quantity.Equal(Q(1000)) {
		t.Errorf("ReadXLSX() holding = %+v, want Alpha Ltd 1000 5.25", s.At(0))
	}

	// an explicit sheet is read as is.
	rows, err = ReadXLSX(bytes.NewReader(data), TableOptions{Sheet: "Sheet1", Header: header})
	if err != nil {
		t.Fatalf("ReadXLSX() error = %v", err)
	}
	if diff := cmp.Diff([][]string{{"Index of funds"}}, rows); diff != "" {
		t.Errorf("ReadXLSX(Sheet1) mismatch (-want +got):\n%s", diff)
	}

	if _, err := ReadXLSX(bytes.NewReader(data), TableOptions{Sheet: "Missing"}); err == nil {
		t.Errorf("ReadXLSX() error = nil, want an error for a missing sheet")
	}
}

func TestReadTable_UnsupportedFormat(t *testing.T) {
	if _, err := ReadTable("portfolio.pdf", strings.NewReader(""), TableOptions{}); err == nil {
		t.Errorf("ReadTable() error = nil, want an error")
	}
}
