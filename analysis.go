package fundwatch

import (
	"fmt"
	"slices"

	"github.com/etnz/fundwatch/date"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Analysis links the snapshots of one fund once, and answers change and history requests on them.
//
// Analyses share nothing: several can run in parallel.
type Analysis struct {
	id         uuid.UUID
	cfg        Config
	engine     *DeltaEngine
	resolution *Resolution
}

// NewAnalysis validates cfg, then resolves the identities of the securities across snapshots.
// It fails with an *InvalidThresholdError before any resolution work if the threshold is out of range.
func NewAnalysis(cfg Config, snapshots ...*Snapshot) (*Analysis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, fmt.Errorf("no monthly portfolio to analyze")
	}
	scorer, err := ScorerByName(cfg.Scorer)
	if err != nil {
		return nil, err
	}
	resolver, err := NewResolver(cfg.Threshold, scorer)
	if err != nil {
		return nil, err
	}
	engine, err := NewDeltaEngine(cfg.Epsilon)
	if err != nil {
		return nil, err
	}

	a := &Analysis{id: uuid.New(), cfg: cfg, engine: engine}
	logger := log.With().Stringer("run", a.id).Logger()

	a.resolution, err = resolver.Resolve(snapshots...)
	if err != nil {
		return nil, err
	}
	for _, l := range a.resolution.linkings {
		counts := make(map[MatchMethod]int)
		for _, link := range l.Links {
			counts[link.Method]++
		}
		logger.Debug().
			Stringer("from", l.From.Period()).
			Stringer("to", l.To.Period()).
			Int("by_id", counts[ByID]).
			Int("by_name", counts[ByName]).
			Int("by_fuzzy_name", counts[ByFuzzyName]).
			Int("added", len(l.Added)).
			Int("removed", len(l.Removed)).
			Msg("linked monthly portfolios")
	}
	logger.Debug().Str("fund", a.resolution.fund).Int("identities", len(a.resolution.identities)).Msg("resolved securities")
	return a, nil
}

// ID returns the unique identifier of this analysis run, as it appears in logs.
func (a *Analysis) ID() uuid.UUID { return a.id }

// Config returns the configuration of the analysis.
func (a *Analysis) Config() Config { return a.cfg }

// Resolution returns the security identities built by the analysis.
func (a *Analysis) Resolution() *Resolution { return a.resolution }

// Fund returns the analyzed fund.
func (a *Analysis) Fund() string { return a.resolution.fund }

// Periods returns the analyzed months, in chronological order.
func (a *Analysis) Periods() []date.Month { return a.resolution.Periods() }

// Changes reports the changes between two months, whatever their order. Records moving less than
// 'significant' are left out, unless they were added or removed; use 0 to keep every record.
func (a *Analysis) Changes(from, to date.Month, significant Percent) (*ChangeReport, error) {
	r := date.NewRange(from, to)
	from, to = r.From, r.To
	records, err := a.engine.Changes(a.resolution, from, to)
	if err != nil {
		return nil, err
	}
	report := &ChangeReport{
		Fund:    a.resolution.fund,
		From:    from,
		To:      to,
		Summary: Summarize(records),
		Total:   len(records),
		Records: records,
	}
	if significant > 0 {
		report.Records = Significant(records, significant)
		report.Significant = significant
	}
	return report, nil
}

// History reports the weight of every security across the months between from and to.
func (a *Analysis) History(from, to date.Month) (*HistoryReport, error) {
	trajectories, err := a.engine.Trajectories(a.resolution, from, to)
	if err != nil {
		return nil, err
	}
	return &HistoryReport{
		Fund:         a.resolution.fund,
		Months:       date.NewRange(from, to).Select(a.resolution.Periods()),
		Trajectories: trajectories,
	}, nil
}

// SecurityHistory reports the weight history of the securities matching query (see Resolution.Lookup).
func (a *Analysis) SecurityHistory(query string) (*HistoryReport, error) {
	scorer, err := ScorerByName(a.cfg.Scorer)
	if err != nil {
		return nil, err
	}
	found := a.resolution.Lookup(query, scorer, a.cfg.Threshold)
	if len(found) == 0 {
		return nil, fmt.Errorf("no security matching %q in %q", query, a.resolution.fund)
	}
	report := &HistoryReport{Fund: a.resolution.fund, Months: a.resolution.Periods()}
	for _, id := range found {
		report.Trajectories = append(report.Trajectories, Trajectory{Security: id, Weights: id.Trajectory()})
	}
	return report, nil
}

// Links reports how holdings were linked between consecutive months from 'from' to 'to'.
func (a *Analysis) Links(from, to date.Month) (*LinkReport, error) {
	for _, m := range []date.Month{from, to} {
		if _, ok := a.resolution.Snapshot(m); !ok {
			return nil, &UnknownPeriodError{Fund: a.resolution.fund, Period: m}
		}
	}
	r := date.NewRange(from, to)
	report := &LinkReport{Fund: a.resolution.fund}
	for _, l := range a.resolution.linkings {
		if r.Contains(l.From.Period()) && r.Contains(l.To.Period()) {
			report.Linkings = append(report.Linkings, l)
		}
	}
	return report, nil
}

// Holdings reports the content of the snapshot of month m.
func (a *Analysis) Holdings(m date.Month, top int) (*HoldingReport, error) {
	s, ok := a.resolution.Snapshot(m)
	if !ok {
		return nil, &UnknownPeriodError{Fund: a.resolution.fund, Period: m}
	}
	return &HoldingReport{
		Fund:        s.fund,
		Month:       m,
		Count:       s.Len(),
		Total:       s.TotalWeight(),
		Top:         s.Top(top),
		Allocation:  s.Allocation(),
		MarketValue: marketValue(s),
	}, nil
}

func marketValue(s *Snapshot) Money {
	var total Money
	for h := range s.Holdings() {
		total = total.Add(h.MarketValue)
	}
	return total
}

// Range returns the months to analyze among 'available': the last n months if n > 0, else the
// months between from and to (zero values meaning the first and last available months).
// It fails with an *UnknownPeriodError if from or to is not available.
func Range(fund string, available []date.Month, from, to date.Month, last int) ([]date.Month, error) {
	sorted := slices.Clone(available)
	slices.SortFunc(sorted, date.Month.Compare)
	if len(sorted) == 0 {
		return nil, fmt.Errorf("no monthly portfolio for %q", fund)
	}
	if last > 0 {
		return date.Last(sorted, last), nil
	}
	if from.IsZero() {
		from = sorted[0]
	}
	if to.IsZero() {
		to = sorted[len(sorted)-1]
	}
	for _, m := range []date.Month{from, to} {
		if !slices.Contains(sorted, m) {
			return nil, &UnknownPeriodError{Fund: fund, Period: m}
		}
	}
	return date.NewRange(from, to).Select(sorted), nil
}
