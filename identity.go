package fundwatch

import (
	"iter"
	"slices"

	"github.com/etnz/fundwatch/date"
)

// SecurityIdentity is a security tracked across months: the holdings that, month after month,
// designate the same real security.
type SecurityIdentity struct {
	months   []date.Month // chronological
	holdings []*Holding   // holdings[i] was observed in months[i]
	order    int          // creation order in its Resolution
}

// add appends a holding of a later month.
func (s *SecurityIdentity) add(h *Holding) {
	s.months = append(s.months, h.period)
	s.holdings = append(s.holdings, h)
}

// Name returns the canonical name of the security: its name in the most recent month.
func (s *SecurityIdentity) Name() string {
	return s.holdings[len(s.holdings)-1].Name
}

// ID returns the best known identifier of the security: the most recent valid ISIN, else the most
// recent non empty identifier, else "".
func (s *SecurityIdentity) ID() string {
	var fallback string
	for _, h := range slices.Backward(s.holdings) {
		if IsISIN(h.ID) {
			return h.ID
		}
		if fallback == "" {
			fallback = h.ID
		}
	}
	return fallback
}

// Category returns the most recent non empty category.
func (s *SecurityIdentity) Category() string {
	for _, h := range slices.Backward(s.holdings) {
		if h.Category != "" {
			return h.Category
		}
	}
	return ""
}

// Get returns the holding observed in month m, if any.
func (s *SecurityIdentity) Get(m date.Month) (*Holding, bool) {
	i, found := slices.BinarySearchFunc(s.months, m, date.Month.Compare)
	if !found {
		return nil, false
	}
	return s.holdings[i], true
}

// Months returns the months in which the security was held, in chronological order.
func (s *SecurityIdentity) Months() []date.Month { return slices.Clone(s.months) }

// Occurrences iterates over the holdings of the security, in chronological order.
func (s *SecurityIdentity) Occurrences() iter.Seq2[date.Month, *Holding] {
	return func(yield func(date.Month, *Holding) bool) {
		for i, m := range s.months {
			if !yield(m, s.holdings[i]) {
				return
			}
		}
	}
}

// Trajectory returns the weight of the security for every month it was held.
func (s *SecurityIdentity) Trajectory() *date.History[float64] {
	h := new(date.History[float64])
	for i, m := range s.months {
		h.Append(m, float64(s.holdings[i].Weight))
	}
	return h
}

// Resolution is the set of security identities built from a chain of snapshots.
type Resolution struct {
	fund       string
	snapshots  []*Snapshot // chronological
	linkings   []*Linking  // linkings[i] links snapshots[i] to snapshots[i+1]
	identities []*SecurityIdentity
	byHolding  map[*Holding]*SecurityIdentity
}

// Fund returns the fund of the resolved snapshots.
func (r *Resolution) Fund() string { return r.fund }

// Periods returns the months of the resolved snapshots, in chronological order.
func (r *Resolution) Periods() []date.Month {
	res := make([]date.Month, len(r.snapshots))
	for i, s := range r.snapshots {
		res[i] = s.period
	}
	return res
}

// Snapshot returns the snapshot of month m.
func (r *Resolution) Snapshot(m date.Month) (*Snapshot, bool) {
	i, found := slices.BinarySearchFunc(r.snapshots, m, func(s *Snapshot, m date.Month) int { return s.period.Compare(m) })
	if !found {
		return nil, false
	}
	return r.snapshots[i], true
}

// Linkings returns the linkings between consecutive snapshots, in chronological order.
func (r *Resolution) Linkings() []*Linking { return slices.Clone(r.linkings) }

// Identities returns all identities, by order of first appearance.
func (r *Resolution) Identities() []*SecurityIdentity { return slices.Clone(r.identities) }

// IdentityOf returns the identity holding h belongs to.
func (r *Resolution) IdentityOf(h *Holding) (*SecurityIdentity, bool) {
	id, ok := r.byHolding[h]
	return id, ok
}

// Lookup returns the identities whose canonical name or identifier matches query, best matches first.
// An identical identifier or name comes first, then names scoring at least 'threshold' with scorer.
func (r *Resolution) Lookup(query string, scorer Scorer, threshold int) []*SecurityIdentity {
	type scored struct {
		id    *SecurityIdentity
		score int
	}
	var found []scored
	key := foldName(query)
	for _, id := range r.identities {
		switch {
		case id.ID() != "" && foldName(id.ID()) == key, foldName(id.Name()) == key:
			found = append(found, scored{id, 101})
		default:
			if s := scorer.Score(query, id.Name()); s >= threshold {
				found = append(found, scored{id, s})
			}
		}
	}
	slices.SortStableFunc(found, func(a, b scored) int { return b.score - a.score })
	res := make([]*SecurityIdentity, len(found))
	for i, f := range found {
		res[i] = f.id
	}
	return res
}
