package fundwatch

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/etnz/fundwatch/date"
	"github.com/rs/zerolog/log"
)

// sourceNameRegex matches "{Fund Name} - Monthly Portfolio {Month} {Year}.{ext}".
var sourceNameRegex = regexp.MustCompile(`(?i)^(.+?)\s+-\s+Monthly Portfolio\s+([A-Za-z]+\s+\d{4})\.(xlsx|xlsm|csv|json)$`)

// ParseSourceName extracts the fund name and the month from a disclosure file name following the
// convention "{Fund Name} - Monthly Portfolio {Month} {Year}.{ext}".
func ParseSourceName(name string) (fund string, month date.Month, ok bool) {
	m := sourceNameRegex.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return "", date.Month{}, false
	}
	month, err := date.Parse(m[2])
	if err != nil {
		return "", date.Month{}, false
	}
	return cleanText(m[1]), month, true
}

// Source is a disclosure file found in the data folder.
type Source struct {
	Fund  string
	Month date.Month
	Path  string
}

// Catalog lists the disclosure files of a data folder, by fund and month.
type Catalog struct {
	dir     string
	sources map[string][]Source // by fund, chronological
}

// ScanDir lists the files of dir that follow the disclosure naming convention.
// Other files are ignored. When two files exist for the same fund and month (e.g. csv and xlsx), the
// first one by name is kept.
func ScanDir(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not scan data folder %q: %w", dir, err)
	}
	c := &Catalog{dir: dir, sources: make(map[string][]Source)}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		fund, month, ok := ParseSourceName(e.Name())
		if !ok {
			log.Debug().Str("file", e.Name()).Msg("ignoring file not named like a monthly portfolio")
			continue
		}
		if slices.ContainsFunc(c.sources[fund], func(s Source) bool { return s.Month == month }) {
			log.Warn().Str("file", e.Name()).Str("fund", fund).Stringer("month", month).Msg("duplicate monthly portfolio ignored")
			continue
		}
		c.sources[fund] = append(c.sources[fund], Source{Fund: fund, Month: month, Path: filepath.Join(dir, e.Name())})
	}
	for _, sources := range c.sources {
		slices.SortFunc(sources, func(a, b Source) int { return a.Month.Compare(b.Month) })
	}
	return c, nil
}

// Dir returns the scanned folder.
func (c *Catalog) Dir() string { return c.dir }

// Funds returns the names of the funds found, sorted.
func (c *Catalog) Funds() []string {
	funds := make([]string, 0, len(c.sources))
	for f := range c.sources {
		funds = append(funds, f)
	}
	slices.Sort(funds)
	return funds
}

// Months returns the months available for a fund, in chronological order.
func (c *Catalog) Months(fund string) []date.Month {
	var months []date.Month
	for _, s := range c.sources[fund] {
		months = append(months, s.Month)
	}
	return months
}

// Sources returns the files of a fund whose month is in 'months', in chronological order.
// It fails with an *UnknownPeriodError for a month without file.
func (c *Catalog) Sources(fund string, months ...date.Month) ([]Source, error) {
	var res []Source
	for _, m := range months {
		i := slices.IndexFunc(c.sources[fund], func(s Source) bool { return s.Month == m })
		if i < 0 {
			return nil, &UnknownPeriodError{Fund: fund, Period: m}
		}
		res = append(res, c.sources[fund][i])
	}
	slices.SortFunc(res, func(a, b Source) int { return a.Month.Compare(b.Month) })
	return slices.CompactFunc(res, func(a, b Source) bool { return a.Month == b.Month }), nil
}

// FundNotFoundError is returned by FindFund when a query designates no fund, or several.
type FundNotFoundError struct {
	Query       string
	Suggestions []string
}

func (e *FundNotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("no fund matching %q", e.Query)
	}
	return fmt.Sprintf("no fund matching %q, did you mean %s?", e.Query, strings.Join(e.Suggestions, ", "))
}

// suggestionCutoff is the minimum score of a fund suggestion.
const suggestionCutoff = 60

// FindFund returns the fund designated by query: the fund with that exact name (ignoring case), else
// the only fund containing query. Otherwise it returns a *FundNotFoundError with up to five
// suggestions, best scores first.
func (c *Catalog) FindFund(query string, scorer Scorer) (string, error) {
	funds := c.Funds()
	key := foldName(query)
	if key == "" {
		return "", &FundNotFoundError{Query: query, Suggestions: funds}
	}
	var containing []string
	for _, f := range funds {
		if foldName(f) == key {
			return f, nil
		}
		if strings.Contains(foldName(f), key) {
			containing = append(containing, f)
		}
	}
	if len(containing) == 1 {
		return containing[0], nil
	}
	if len(containing) > 1 {
		return "", &FundNotFoundError{Query: query, Suggestions: containing}
	}

	type scored struct {
		fund  string
		score int
	}
	var candidates []scored
	for _, f := range funds {
		if s := scorer.Score(query, f); s >= suggestionCutoff {
			candidates = append(candidates, scored{f, s})
		}
	}
	slices.SortStableFunc(candidates, func(a, b scored) int { return cmp.Compare(b.score, a.score) })
	var suggestions []string
	for _, s := range candidates[:min(5, len(candidates))] {
		suggestions = append(suggestions, s.fund)
	}
	return "", &FundNotFoundError{Query: query, Suggestions: suggestions}
}

// Load reads and parses the snapshots of a fund for the given months.
//
// A file failing with a *MalformedInputError or an *EmptyDataError is skipped: the snapshots that could
// be parsed are returned along with the joined errors of the skipped files. Any other error stops the
// loading.
func (c *Catalog) Load(fund string, months []date.Month, cfg Config) ([]*Snapshot, error) {
	sources, err := c.Sources(fund, months...)
	if err != nil {
		return nil, err
	}
	var snapshots []*Snapshot
	var skipped []error
	for _, src := range sources {
		s, err := LoadSnapshot(src, cfg)
		var malformed *MalformedInputError
		var empty *EmptyDataError
		switch {
		case errors.As(err, &malformed), errors.As(err, &empty):
			log.Warn().Err(err).Str("file", src.Path).Msg("skipping monthly portfolio")
			skipped = append(skipped, err)
			continue
		case err != nil:
			return nil, err
		}
		log.Debug().Str("file", src.Path).Int("holdings", s.Len()).Msg("loaded monthly portfolio")
		snapshots = append(snapshots, s)
	}
	return snapshots, errors.Join(skipped...)
}

// LoadSnapshot reads and parses one disclosure file.
func LoadSnapshot(src Source, cfg Config) (*Snapshot, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return nil, fmt.Errorf("could not open monthly portfolio %q: %w", src.Path, err)
	}
	defer f.Close()

	header := cfg.Columns.Name
	if len(header) == 0 {
		header = DefaultColumns().Name
	}
	rows, err := ReadTable(src.Path, f, TableOptions{
		Sheet:    cfg.Sheet,
		JSONRows: cfg.JSONRows,
		Header:   header,
	})
	if err != nil {
		return nil, fmt.Errorf("could not read monthly portfolio %q: %w", src.Path, err)
	}
	return ParseSnapshot(src.Fund, src.Month, rows, cfg.ParseOptions(src.Path))
}
