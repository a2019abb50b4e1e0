package date

import (
	"fmt"
	"slices"
)

// Range represents an inclusive range of months.
type Range struct{ From, To Month }

// NewRange returns the range between two months, whatever their order.
func NewRange(a, b Month) Range {
	if b.Before(a) {
		a, b = b, a
	}
	return Range{From: a, To: b}
}

// Contains return true if month is included in the range (boundaries included)
func (r Range) Contains(m Month) bool { return !m.Before(r.From) && !m.After(r.To) }

// Select returns the months of 'available' that fall in the range, sorted chronologically.
func (r Range) Select(available []Month) []Month {
	var res []Month
	for _, m := range available {
		if r.Contains(m) {
			res = append(res, m)
		}
	}
	slices.SortFunc(res, Month.Compare)
	return res
}

// String returns a human friendly description of the range.
func (r Range) String() string {
	if r.From == r.To {
		return r.From.String()
	}
	return fmt.Sprintf("%s to %s", r.From, r.To)
}

// Last returns the last n months of 'available' (sorted chronologically).
// If n is greater than the number of available months, all of them are returned.
func Last(available []Month, n int) []Month {
	sorted := slices.Clone(available)
	slices.SortFunc(sorted, Month.Compare)
	if n <= 0 {
		return nil
	}
	if n >= len(sorted) {
		return sorted
	}
	return sorted[len(sorted)-n:]
}
