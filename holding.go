package fundwatch

import (
	"cmp"
	"iter"
	"slices"

	"github.com/etnz/fundwatch/date"
)

// Holding is one line of a monthly portfolio disclosure.
type Holding struct {
	ID          string   // Security identifier (usually an ISIN), may be empty or invalid.
	Name        string   // Name of the instrument, never empty.
	Category    string   // Rating or industry classification, optional.
	Quantity    Quantity // Units held.
	Weight      Percent  // Share of the fund NAV.
	MarketValue Money    // Market value, zero if the disclosure has no such column.

	period date.Month // month of the owning snapshot
	row    int        // position in the owning snapshot
}

// Period returns the month of the snapshot holding h.
func (h *Holding) Period() date.Month { return h.period }

// Row returns the position of h in its snapshot, starting at 0.
func (h *Holding) Row() int { return h.row }

// Snapshot is the content of one monthly portfolio disclosure of a fund.
//
// A Snapshot is immutable once created by ParseSnapshot or NewSnapshot.
type Snapshot struct {
	fund     string
	period   date.Month
	source   string
	holdings []*Holding
}

// NewSnapshot creates a Snapshot from holdings, in that order. Holdings are copied.
func NewSnapshot(fund string, period date.Month, holdings ...Holding) *Snapshot {
	s := &Snapshot{fund: fund, period: period}
	for _, h := range holdings {
		s.add(h)
	}
	return s
}

func (s *Snapshot) add(h Holding) {
	h.period = s.period
	h.row = len(s.holdings)
	s.holdings = append(s.holdings, &h)
}

// Fund returns the name of the fund.
func (s *Snapshot) Fund() string { return s.fund }

// Period returns the month of the snapshot. It is also its chronological sort key.
func (s *Snapshot) Period() date.Month { return s.period }

// Source returns the name of the source the snapshot was parsed from, if any.
func (s *Snapshot) Source() string { return s.source }

// Len returns the number of holdings.
func (s *Snapshot) Len() int { return len(s.holdings) }

// At returns the i-th holding.
func (s *Snapshot) At(i int) *Holding { return s.holdings[i] }

// Holdings iterates over the holdings in disclosure order.
func (s *Snapshot) Holdings() iter.Seq[*Holding] {
	return slices.Values(s.holdings)
}

// TotalWeight returns the sum of all holding weights.
func (s *Snapshot) TotalWeight() Percent {
	var total Percent
	for _, h := range s.holdings {
		total += h.Weight
	}
	return total
}

// Top returns the n largest holdings by weight. Ties keep disclosure order.
// If n <= 0, all holdings are returned.
func (s *Snapshot) Top(n int) []*Holding {
	top := slices.Clone(s.holdings)
	slices.SortStableFunc(top, func(a, b *Holding) int { return cmp.Compare(b.Weight, a.Weight) })
	if n > 0 && n < len(top) {
		top = top[:n]
	}
	return top
}

// CategoryWeight is the total weight of the holdings sharing the same category.
type CategoryWeight struct {
	Category string
	Weight   Percent
	Count    int
}

// Allocation returns the weight per category, largest first.
// Holdings without category are grouped under "Unclassified".
func (s *Snapshot) Allocation() []CategoryWeight {
	const unclassified = "Unclassified"
	index := make(map[string]int)
	var res []CategoryWeight
	for _, h := range s.holdings {
		c := h.Category
		if c == "" {
			c = unclassified
		}
		i, ok := index[c]
		if !ok {
			i = len(res)
			index[c] = i
			res = append(res, CategoryWeight{Category: c})
		}
		res[i].Weight += h.Weight
		res[i].Count++
	}
	slices.SortStableFunc(res, func(a, b CategoryWeight) int {
		if c := cmp.Compare(b.Weight, a.Weight); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return res
}
