package fundwatch

import (
	"errors"
	"slices"
	"testing"

	"github.com/etnz/fundwatch/date"
	"github.com/google/go-cmp/cmp"
)

func TestParseSourceName(t *testing.T) {
	tests := []struct {
		name      string
		wantFund  string
		wantMonth date.Month
		wantOK    bool
	}{
		{"ABC Flexi Cap Fund - Monthly Portfolio September 2024.xlsx", "ABC Flexi Cap Fund", sep2024, true},
		{"data/ABC Flexi Cap Fund - Monthly Portfolio Sept 2024.csv", "ABC Flexi Cap Fund", sep2024, true},
		{"XYZ  Liquid Fund - monthly portfolio Oct 2024.JSON", "XYZ Liquid Fund", oct2024, true},
		{"ABC Flexi Cap Fund - Monthly Portfolio September 2024.pdf", "", date.Month{}, false},
		{"ABC Flexi Cap Fund - Factsheet September 2024.xlsx", "", date.Month{}, false},
		{"ABC Flexi Cap Fund - Monthly Portfolio Smarch 2024.xlsx", "", date.Month{}, false},
	}
	for _, tt := range tests {
		fund, month, ok := ParseSourceName(tt.name)
		if fund != tt.wantFund || month != tt.wantMonth || ok != tt.wantOK {
			t.Errorf("ParseSourceName(%q) = %q, %v, %v, want %q, %v, %v", tt.name, fund, month, ok, tt.wantFund, tt.wantMonth, tt.wantOK)
		}
	}
}

const (
	csvSep = "Name of the Instrument,ISIN,Quantity,% to NAV\nAlpha Ltd,INE002A01018,100,5\nBeta Corp Debenture,,10,3\n"
	csvOct = "Name of the Instrument,ISIN,Quantity,% to NAV\nAlpha Ltd,INE002A01018,120,6\nBeta Corp. Debenture,,10,3\nGamma Ltd,INE009A01021,5,1\n"
	csvNov = "Name,Quantity\nAlpha Ltd,120\n"
)

// newDataDir creates a data folder with three months of ABC Flexi Cap Fund, the last one malformed.
func newDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "ABC Flexi Cap Fund - Monthly Portfolio September 2024.csv", csvSep)
	writeFile(t, dir, "ABC Flexi Cap Fund - Monthly Portfolio October 2024.csv", csvOct)
	writeFile(t, dir, "ABC Flexi Cap Fund - Monthly Portfolio November 2024.csv", csvNov)
	writeFile(t, dir, "XYZ Liquid Fund - Monthly Portfolio October 2024.csv", csvOct)
	writeFile(t, dir, "README.txt", "not a portfolio")
	return dir
}

func TestScanDir(t *testing.T) {
	c, err := ScanDir(newDataDir(t))
	if err != nil {
		t.Fatalf("ScanDir() error = %v", err)
	}
	if diff := cmp.Diff([]string{"ABC Flexi Cap Fund", "XYZ Liquid Fund"}, c.Funds()); diff != "" {
		t.Errorf("Funds() mismatch (-want +got):\n%s", diff)
	}
	if got, want := c.Months("ABC Flexi Cap Fund"), []date.Month{sep2024, oct2024, nov2024}; !slices.Equal(got, want) {
		t.Errorf("Months() = %v, want %v", got, want)
	}
	var unknown *UnknownPeriodError
	if _, err := c.Sources("XYZ Liquid Fund", sep2024); !errors.As(err, &unknown) {
		t.Errorf("Sources() error = %v, want an UnknownPeriodError", err)
	}

	if _, err := ScanDir(t.TempDir() + "/missing"); err == nil {
		t.Errorf("ScanDir() error = nil, want an error for a missing folder")
	}
}

func TestCatalog_FindFund(t *testing.T) {
	c, err := ScanDir(newDataDir(t))
	if err != nil {
		t.Fatalf("ScanDir() error = %v", err)
	}
	tests := []struct {
		query           string
		want            string
		wantSuggestions []string
	}{
		{"abc flexi cap fund", "ABC Flexi Cap Fund", nil},
		{"liquid", "XYZ Liquid Fund", nil},
		{"fund", "", []string{"ABC Flexi Cap Fund", "XYZ Liquid Fund"}},
		{"ABC Flexy Cap Fund", "", []string{"ABC Flexi Cap Fund"}},
		{"Nothing like it", "", nil},
	}
	for _, tt := range tests {
		got, err := c.FindFund(tt.query, Ratio)
		if got != tt.want {
			t.Errorf("FindFund(%q) = %q, want %q", tt.query, got, tt.want)
		}
		if tt.want != "" {
			if err != nil {
				t.Errorf("FindFund(%q) error = %v", tt.query, err)
			}
			continue
		}
		var notFound *FundNotFoundError
		if !errors.As(err, &notFound) {
			t.Errorf("FindFund(%q) error = %v, want a FundNotFoundError", tt.query, err)
			continue
		}
		if diff := cmp.Diff(tt.wantSuggestions, notFound.Suggestions); diff != "" {
			t.Errorf("FindFund(%q) suggestions mismatch (-want +got):\n%s", tt.query, diff)
		}
	}
}

func TestCatalog_Load(t *testing.T) {
	c, err := ScanDir(newDataDir(t))
	if err != nil {
		t.Fatalf("ScanDir() error = %v", err)
	}
	fund := "ABC Flexi Cap Fund"
	snapshots, err := c.Load(fund, c.Months(fund), DefaultConfig())

	// November lacks the identifier and weight columns: it is skipped and reported.
	var malformed *MalformedInputError
	if !errors.As(err, &malformed) {
		t.Fatalf("Load() error = %v, want a MalformedInputError", err)
	}
	if diff := cmp.Diff([]string{"identifier", "weight"}, malformed.Missing); diff != "" {
		t.Errorf("Missing mismatch (-want +got):\n%s", diff)
	}
	if len(snapshots) != 2 {
		t.Fatalf("len(Load()) = %d, want 2", len(snapshots))
	}
	if got := snapshots[1].Period(); got != oct2024 {
		t.Errorf("Period() = %v, want %v", got, oct2024)
	}
	if got := snapshots[1].Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
}
