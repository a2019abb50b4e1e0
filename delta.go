package fundwatch

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/fundwatch/date"
)

// DefaultEpsilon is the weight difference (in percent of NAV) below which a weight is unchanged.
const DefaultEpsilon = 0.001

// Status classifies how the weight of a security changed between two months.
type Status int

const (
	Unchanged Status = iota
	Increased
	Decreased
	Added
	Removed
)

func (s Status) String() string {
	switch s {
	case Unchanged:
		return "unchanged"
	case Increased:
		return "increased"
	case Decreased:
		return "decreased"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		panic(fmt.Sprintf("unknown status %d", s))
	}
}

// Statuses lists all statuses in reporting order.
var Statuses = []Status{Added, Increased, Unchanged, Decreased, Removed}

// ParseStatus parses a status name as returned by Status.String.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if strings.EqualFold(s, st.String()) {
			return st, nil
		}
	}
	return Unchanged, fmt.Errorf("unknown status %q", s)
}

// ChangeRecord is the change of one security between a start and an end month.
type ChangeRecord struct {
	Security                 *SecurityIdentity
	From, To                 Percent  // weights, 0 when not held
	FromQuantity, ToQuantity Quantity // quantities, 0 when not held
	Status                   Status
}

// Delta returns To - From.
func (c ChangeRecord) Delta() Percent { return c.To - c.From }

// QuantityDelta returns the change in units held, ToQuantity - FromQuantity.
func (c ChangeRecord) QuantityDelta() Quantity { return c.ToQuantity.Sub(c.FromQuantity) }

// DeltaEngine computes the changes of a fund holdings between two months.
type DeltaEngine struct {
	epsilon float64
}

// NewDeltaEngine returns a DeltaEngine that considers weights closer than epsilon unchanged.
func NewDeltaEngine(epsilon float64) (*DeltaEngine, error) {
	if epsilon < 0 {
		return nil, fmt.Errorf("invalid epsilon %v: must not be negative", epsilon)
	}
	return &DeltaEngine{epsilon: epsilon}, nil
}

// Epsilon returns the weight tolerance.
func (e *DeltaEngine) Epsilon() float64 { return e.epsilon }

// Changes returns one ChangeRecord for each identity held in 'from' or in 'to'.
//
// The months need not be consecutive: identities carry the links made through all the
// intermediate months. It fails with an *UnknownPeriodError if either month has no snapshot in res.
//
// Records are sorted by decreasing end weight, then by name.
func (e *DeltaEngine) Changes(res *Resolution, from, to date.Month) ([]ChangeRecord, error) {
	for _, m := range []date.Month{from, to} {
		if _, ok := res.Snapshot(m); !ok {
			return nil, &UnknownPeriodError{Fund: res.fund, Period: m}
		}
	}

	var records []ChangeRecord
	for _, id := range res.identities {
		start, inStart := id.Get(from)
		end, inEnd := id.Get(to)
		if !inStart && !inEnd {
			continue
		}
		c := ChangeRecord{Security: id}
		if inStart {
			c.From, c.FromQuantity = start.Weight, start.Quantity
		}
		if inEnd {
			c.To, c.ToQuantity = end.Weight, end.Quantity
		}
		c.Status = e.classify(c.From, c.To, inStart, inEnd)
		records = append(records, c)
	}
	slices.SortStableFunc(records, func(a, b ChangeRecord) int {
		if c := cmp.Compare(b.To, a.To); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Security.Name(), b.Security.Name()); c != 0 {
			return c
		}
		return cmp.Compare(a.Security.order, b.Security.order)
	})
	return records, nil
}

func (e *DeltaEngine) classify(from, to Percent, inStart, inEnd bool) Status {
	switch {
	case !inStart:
		return Added
	case !inEnd:
		return Removed
	case from.Equal(to, e.epsilon):
		return Unchanged
	case to > from:
		return Increased
	default:
		return Decreased
	}
}

// Trajectory is the weight history of one security over a range of months.
type Trajectory struct {
	Security *SecurityIdentity
	Weights  *date.History[float64] // months without holding are absent
}

// Trajectories returns the weight history, restricted to the months between from and to, of every
// identity held at least once in that range, by order of first appearance.
func (e *DeltaEngine) Trajectories(res *Resolution, from, to date.Month) ([]Trajectory, error) {
	for _, m := range []date.Month{from, to} {
		if _, ok := res.Snapshot(m); !ok {
			return nil, &UnknownPeriodError{Fund: res.fund, Period: m}
		}
	}
	r := date.NewRange(from, to)
	var trajectories []Trajectory
	for _, id := range res.identities {
		w := id.Trajectory().Within(r)
		if w.Len() == 0 {
			continue
		}
		trajectories = append(trajectories, Trajectory{Security: id, Weights: w})
	}
	return trajectories, nil
}

// StatusSummary aggregates the records sharing a status.
type StatusSummary struct {
	Status Status
	Count  int
	Moved  Percent // sum of the weight deltas
}

// Summarize returns one StatusSummary per status, in the order of Statuses.
func Summarize(records []ChangeRecord) []StatusSummary {
	res := make([]StatusSummary, len(Statuses))
	index := make(map[Status]int, len(Statuses))
	for i, s := range Statuses {
		res[i].Status = s
		index[s] = i
	}
	for _, c := range records {
		i := index[c.Status]
		res[i].Count++
		res[i].Moved += c.Delta()
	}
	return res
}

// Significant keeps the added and removed records, and those whose weight moved by at least 'threshold'.
func Significant(records []ChangeRecord, threshold Percent) []ChangeRecord {
	var res []ChangeRecord
	for _, c := range records {
		if c.Status == Added || c.Status == Removed || c.Delta().Abs() >= threshold {
			res = append(res, c)
		}
	}
	return res
}
