package fundwatch

import (
	"github.com/etnz/fundwatch/date"
)

// ChangeReport lists the changes of a fund holdings between two months.
type ChangeReport struct {
	Fund        string
	From, To    date.Month
	Summary     []StatusSummary // over all records, including those left out of Records
	Total       int             // number of records before the significant filter
	Significant Percent         // minimum weight move of the reported records, 0 if unfiltered
	Records     []ChangeRecord
}

// Count returns the number of records with status s, before filtering.
func (r *ChangeReport) Count(s Status) int {
	for _, sum := range r.Summary {
		if sum.Status == s {
			return sum.Count
		}
	}
	return 0
}

// HistoryReport holds the weight trajectories of securities over a range of months.
type HistoryReport struct {
	Fund         string
	Months       []date.Month
	Trajectories []Trajectory
}

// LinkReport holds how the holdings of consecutive months were linked.
type LinkReport struct {
	Fund     string
	Linkings []*Linking
}

// HoldingReport describes the content of a single snapshot.
type HoldingReport struct {
	Fund        string
	Month       date.Month
	Count       int
	Total       Percent
	MarketValue Money
	Top         []*Holding
	Allocation  []CategoryWeight
}
