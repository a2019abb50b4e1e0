package fundwatch

import (
	"cmp"
	"fmt"
	"slices"
)

// DefaultThreshold is the minimum fuzzy score for two names to designate the same security.
const DefaultThreshold = 85

// MatchMethod tells how two holdings of consecutive snapshots were linked.
type MatchMethod int

const (
	ByID        MatchMethod = iota // same identifier
	ByName                         // same name, ignoring case and spacing
	ByFuzzyName                    // similar names, scored above the threshold
)

func (m MatchMethod) String() string {
	switch m {
	case ByID:
		return "identifier"
	case ByName:
		return "name"
	case ByFuzzyName:
		return "fuzzy name"
	default:
		panic(fmt.Sprintf("unknown match method %d", m))
	}
}

// Link states that two holdings of consecutive snapshots are the same security.
type Link struct {
	From, To *Holding
	Method   MatchMethod
	Score    int // 100 for exact matches
}

// Linking is the result of linking the holdings of an earlier snapshot to a later one.
type Linking struct {
	From, To *Snapshot
	Links    []Link     // in the disclosure order of 'To'
	Removed  []*Holding // holdings of 'From' with no match, in disclosure order
	Added    []*Holding // holdings of 'To' with no match, in disclosure order
}

// Resolver establishes which holdings of different snapshots are the same security.
//
// A Resolver has no state besides its configuration and can be shared.
type Resolver struct {
	threshold int
	scorer    Scorer
}

// NewResolver returns a Resolver accepting fuzzy name matches scoring at least 'threshold'.
// A nil scorer means Ratio.
func NewResolver(threshold int, scorer Scorer) (*Resolver, error) {
	if threshold < 0 || threshold > 100 {
		return nil, &InvalidThresholdError{Threshold: threshold}
	}
	if scorer == nil {
		scorer = Ratio
	}
	return &Resolver{threshold: threshold, scorer: scorer}, nil
}

// Threshold returns the minimum fuzzy score accepted.
func (r *Resolver) Threshold() int { return r.threshold }

// Link links the holdings of snapshot a (earlier) to those of snapshot b (later).
//
// Holdings are linked in three passes, each one only considering holdings left unmatched by the
// previous ones: same identifier, same name, and finally similar names. A holding is linked at most
// once; when an identifier or a name appears several times in a, only its first occurrence is
// considered for the exact passes.
//
// In the fuzzy pass every unmatched pair scoring at least the threshold is a candidate. Candidates are
// accepted by decreasing score, then by order in b, then by order in a, skipping those whose holdings
// are already linked. So when two holdings of b compete for the same holding of a, the best score wins
// and the other one falls back to its next best candidate, if any.
func (r *Resolver) Link(a, b *Snapshot) *Linking {
	const unmatched = -1
	from := make([]int, b.Len()) // index in a of the holding linked to b[j]
	methods := make([]MatchMethod, b.Len())
	scores := make([]int, b.Len())
	used := make([]bool, a.Len())
	for j := range from {
		from[j] = unmatched
	}
	link := func(i, j int, m MatchMethod, score int) {
		from[j], used[i], methods[j], scores[j] = i, true, m, score
	}

	// exact passes: the key of a holding is looked up among the first occurrences in a.
	exact := func(method MatchMethod, key func(*Holding) string) {
		index := make(map[string]int)
		for i, h := range a.holdings {
			if used[i] {
				continue
			}
			if k := key(h); k != "" {
				if _, exists := index[k]; !exists {
					index[k] = i
				}
			}
		}
		for j, h := range b.holdings {
			if from[j] != unmatched {
				continue
			}
			k := key(h)
			if k == "" {
				continue
			}
			if i, ok := index[k]; ok && !used[i] {
				link(i, j, method, 100)
			}
		}
	}
	exact(ByID, func(h *Holding) string { return h.ID })
	exact(ByName, func(h *Holding) string { return foldName(h.Name) })

	// fuzzy pass, restricted to the unmatched holdings of both sides.
	type candidate struct{ i, j, score int }
	var candidates []candidate
	for j, hb := range b.holdings {
		if from[j] != unmatched {
			continue
		}
		for i, ha := range a.holdings {
			if used[i] {
				continue
			}
			if score := r.scorer.Score(ha.Name, hb.Name); score >= r.threshold {
				candidates = append(candidates, candidate{i, j, score})
			}
		}
	}
	slices.SortFunc(candidates, func(x, y candidate) int {
		if c := cmp.Compare(y.score, x.score); c != 0 {
			return c
		}
		if c := cmp.Compare(x.j, y.j); c != 0 {
			return c
		}
		return cmp.Compare(x.i, y.i)
	})
	for _, c := range candidates {
		if used[c.i] || from[c.j] != unmatched {
			continue
		}
		link(c.i, c.j, ByFuzzyName, c.score)
	}

	res := &Linking{From: a, To: b}
	for j, i := range from {
		if i == unmatched {
			res.Added = append(res.Added, b.holdings[j])
			continue
		}
		res.Links = append(res.Links, Link{From: a.holdings[i], To: b.holdings[j], Method: methods[j], Score: scores[j]})
	}
	for i, h := range a.holdings {
		if !used[i] {
			res.Removed = append(res.Removed, h)
		}
	}
	return res
}

// Resolve links a chain of snapshots of the same fund and folds the links into security identities.
//
// Snapshots are sorted chronologically and each one is linked to the next. Holdings linked
// together, directly or transitively, form one SecurityIdentity; a holding without link forms an
// identity on its own. Every holding belongs to exactly one identity.
//
// Snapshots must belong to the same fund and have distinct months.
func (r *Resolver) Resolve(snapshots ...*Snapshot) (*Resolution, error) {
	sorted := slices.Clone(snapshots)
	slices.SortStableFunc(sorted, func(a, b *Snapshot) int { return a.period.Compare(b.period) })
	for i, s := range sorted {
		if i == 0 {
			continue
		}
		if s.fund != sorted[0].fund {
			return nil, fmt.Errorf("cannot resolve snapshots of different funds: %q and %q", sorted[0].fund, s.fund)
		}
		if s.period == sorted[i-1].period {
			return nil, fmt.Errorf("duplicate snapshot for %q in %s", s.fund, s.period)
		}
	}

	res := &Resolution{
		snapshots: sorted,
		byHolding: make(map[*Holding]*SecurityIdentity),
	}
	if len(sorted) > 0 {
		res.fund = sorted[0].fund
	}
	newIdentity := func(h *Holding) {
		id := &SecurityIdentity{order: len(res.identities)}
		id.add(h)
		res.identities = append(res.identities, id)
		res.byHolding[h] = id
	}

	for i, s := range sorted {
		if i == 0 {
			for _, h := range s.holdings {
				newIdentity(h)
			}
			continue
		}
		linking := r.Link(sorted[i-1], s)
		res.linkings = append(res.linkings, linking)

		previous := make(map[*Holding]*Holding, len(linking.Links))
		for _, l := range linking.Links {
			previous[l.To] = l.From
		}
		for _, h := range s.holdings {
			if p, ok := previous[h]; ok {
				id := res.byHolding[p]
				id.add(h)
				res.byHolding[h] = id
				continue
			}
			newIdentity(h)
		}
	}
	return res, nil
}
