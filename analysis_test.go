package fundwatch

import (
	"errors"
	"slices"
	"testing"

	"github.com/etnz/fundwatch/date"
	"github.com/google/go-cmp/cmp"
)

func newAnalysis(t *testing.T) *Analysis {
	t.Helper()
	a, err := NewAnalysis(DefaultConfig(),
		NewSnapshot("F", sep2024, h("INE002A01018", "Alpha Ltd", 5), h("", "Beta Corp Debenture", 3)),
		NewSnapshot("F", oct2024, h("INE002A01018", "Alpha Ltd", 5.5), h("", "Beta Corp. Debenture", 3), h("", "Gamma Ltd", 0.2)),
		NewSnapshot("F", nov2024, h("INE002A01018", "Alpha Ltd", 4)),
	)
	if err != nil {
		t.Fatalf("NewAnalysis() error = %v", err)
	}
	return a
}

func TestNewAnalysis_InvalidThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Threshold = -5
	_, err := NewAnalysis(cfg, NewSnapshot("F", sep2024, h("", "A", 1)))
	var invalid *InvalidThresholdError
	if !errors.As(err, &invalid) {
		t.Errorf("NewAnalysis() error = %v, want an InvalidThresholdError", err)
	}
}

func TestAnalysis_Changes(t *testing.T) {
	a := newAnalysis(t)
	if a.ID().String() == "" || a.Fund() != "F" {
		t.Errorf("ID(), Fund() = %v, %q", a.ID(), a.Fund())
	}

	report, err := a.Changes(sep2024, oct2024, 0)
	if err != nil {
		t.Fatalf("Changes() error = %v", err)
	}
	if len(report.Records) != 3 || report.Total != 3 {
		t.Errorf("Changes() = %d records of %d, want 3 of 3", len(report.Records), report.Total)
	}
	if got := report.Count(Added); got != 1 {
		t.Errorf("Count(Added) = %d, want 1", got)
	}

	// Beta is unchanged, Alpha moved by 0.5 and Gamma is new.
	report, err = a.Changes(sep2024, oct2024, 0.5)
	if err != nil {
		t.Fatalf("Changes() error = %v", err)
	}
	if len(report.Records) != 2 || report.Total != 3 || report.Significant != 0.5 {
		t.Errorf("Changes() = %d records of %d (significant %v), want 2 of 3 (0.5)", len(report.Records), report.Total, report.Significant)
	}

	var unknown *UnknownPeriodError
	if _, err := a.Changes(aug2024, oct2024, 0); !errors.As(err, &unknown) {
		t.Errorf("Changes() error = %v, want an UnknownPeriodError", err)
	}
	if _, err := a.Changes(oct2024, aug2024, 0); !errors.As(err, &unknown) {
		t.Errorf("Changes() error = %v, want an UnknownPeriodError", err)
	}
}

func TestAnalysis_Changes_ReversedMonths(t *testing.T) {
	a := newAnalysis(t)
	forward, err := a.Changes(sep2024, oct2024, 0)
	if err != nil {
		t.Fatalf("Changes() error = %v", err)
	}
	backward, err := a.Changes(oct2024, sep2024, 0)
	if err != nil {
		t.Fatalf("Changes() error = %v", err)
	}
	if backward.From != sep2024 || backward.To != oct2024 {
		t.Errorf("Changes(%v, %v) = %v to %v, want %v to %v", oct2024, sep2024, backward.From, backward.To, sep2024, oct2024)
	}
	summary := func(r *ChangeReport) []string {
		var res []string
		for _, rec := range r.Records {
			res = append(res, rec.Security.Name()+" "+rec.Status.String()+" "+rec.Delta().SignedString())
		}
		return res
	}
	want := []string{"Alpha Ltd increased +0.50%", "Beta Corp. Debenture unchanged -", "Gamma Ltd added +0.20%"}
	if diff := cmp.Diff(want, summary(forward)); diff != "" {
		t.Errorf("Changes() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(summary(forward), summary(backward)); diff != "" {
		t.Errorf("Changes() depends on the order of the months (-forward +backward):\n%s", diff)
	}
}

func TestAnalysis_History(t *testing.T) {
	a := newAnalysis(t)
	report, err := a.History(sep2024, nov2024)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(report.Trajectories) != 3 {
		t.Errorf("len(Trajectories) = %d, want 3", len(report.Trajectories))
	}
	if len(report.Months) != 3 {
		t.Errorf("len(Months) = %d, want 3", len(report.Months))
	}

	report, err = a.SecurityHistory("INE002A01018")
	if err != nil {
		t.Fatalf("SecurityHistory() error = %v", err)
	}
	if len(report.Trajectories) != 1 || report.Trajectories[0].Weights.Len() != 3 {
		t.Errorf("SecurityHistory() = %d trajectories, want 1 of 3 months", len(report.Trajectories))
	}
	if _, err := a.SecurityHistory("Delta"); err == nil {
		t.Errorf("SecurityHistory() error = nil, want an error")
	}
}

func TestAnalysis_Links(t *testing.T) {
	a := newAnalysis(t)
	report, err := a.Links(oct2024, nov2024)
	if err != nil {
		t.Fatalf("Links() error = %v", err)
	}
	if len(report.Linkings) != 1 {
		t.Fatalf("len(Linkings) = %d, want 1", len(report.Linkings))
	}
	if got := len(report.Linkings[0].Removed); got != 2 {
		t.Errorf("len(Removed) = %d, want 2", got)
	}
}

func TestAnalysis_Holdings(t *testing.T) {
	a := newAnalysis(t)
	report, err := a.Holdings(oct2024, 2)
	if err != nil {
		t.Fatalf("Holdings() error = %v", err)
	}
	if report.Count != 3 || len(report.Top) != 2 || report.Total != 8.7 {
		t.Errorf("Holdings() = %d holdings, top %d, total %v, want 3, 2, 8.7", report.Count, len(report.Top), report.Total)
	}
}

func TestRange(t *testing.T) {
	available := []date.Month{oct2024, aug2024, sep2024, nov2024}
	tests := []struct {
		name     string
		from, to date.Month
		last     int
		want     []date.Month
	}{
		{"all", date.Month{}, date.Month{}, 0, []date.Month{aug2024, sep2024, oct2024, nov2024}},
		{"last 2", date.Month{}, date.Month{}, 2, []date.Month{oct2024, nov2024}},
		{"from", sep2024, date.Month{}, 0, []date.Month{sep2024, oct2024, nov2024}},
		{"reversed", oct2024, aug2024, 0, []date.Month{aug2024, sep2024, oct2024}},
	}
	for _, tt := range tests {
		got, err := Range("F", available, tt.from, tt.to, tt.last)
		if err != nil {
			t.Errorf("Range(%s) error = %v", tt.name, err)
			continue
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("Range(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
	var unknown *UnknownPeriodError
	if _, err := Range("F", available, date.New(2024, 1), date.Month{}, 0); !errors.As(err, &unknown) {
		t.Errorf("Range() error = %v, want an UnknownPeriodError", err)
	}
}
