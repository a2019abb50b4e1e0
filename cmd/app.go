// Package cmd implements the CLI application to follow the monthly portfolios of mutual funds.
package cmd

import (
	"errors"
	"flag"
	"fmt"

	"github.com/etnz/fundwatch"
	"github.com/etnz/fundwatch/date"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&fundsCmd{}, "data")
	c.Register(&holdingsCmd{}, "data")

	c.Register(&changesCmd{}, "analysis")
	c.Register(&historyCmd{}, "analysis")
	c.Register(&linksCmd{}, "analysis")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", fundwatch.DefaultConfigFile, "Path to the yaml configuration file")
	dataDir    = flag.String("data", "data", "Folder holding the monthly portfolio files (overrides data_dir)")
	threshold  = flag.Int("threshold", fundwatch.DefaultThreshold, "Minimum fuzzy score (0-100) to link two security names (overrides threshold)")
	epsilon    = flag.Float64("epsilon", fundwatch.DefaultEpsilon, "Weight difference, in percent of NAV, below which a weight is unchanged (overrides epsilon)")
	scorer     = flag.String("scorer", "ratio", "Name similarity: ratio or token_sort (overrides scorer)")
	// Verbose enables debug logs.
	Verbose = flag.Bool("v", false, "Print debug logs")
)

// loadConfig reads the configuration file, and applies the global flags explicitly set.
func loadConfig() (fundwatch.Config, error) {
	cfg, err := fundwatch.LoadConfig(*configFile)
	if err != nil {
		return cfg, err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data":
			cfg.DataDir = *dataDir
		case "threshold":
			cfg.Threshold = *threshold
		case "epsilon":
			cfg.Epsilon = *epsilon
		case "scorer":
			cfg.Scorer = *scorer
		}
	})
	return cfg, cfg.Validate()
}

// openFund loads the configuration, scans the data folder, and finds the fund designated by query.
func openFund(query string) (fundwatch.Config, *fundwatch.Catalog, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cfg, nil, "", err
	}
	catalog, err := fundwatch.ScanDir(cfg.DataDir)
	if err != nil {
		return cfg, nil, "", err
	}
	if query == "" {
		return cfg, nil, "", fmt.Errorf("missing fund name, available funds are %q", catalog.Funds())
	}
	s, err := fundwatch.ScorerByName(cfg.Scorer)
	if err != nil {
		return cfg, nil, "", err
	}
	fund, err := catalog.FindFund(query, s)
	return cfg, catalog, fund, err
}

// monthFlags are the flags selecting the months to analyze.
type monthFlags struct {
	from, to string
	last     int
}

func (m *monthFlags) SetFlags(f *flag.FlagSet, last int) {
	f.StringVar(&m.from, "from", "", "First month, e.g. \"September 2024\" or 2024-09 (defaults to the first available month)")
	f.StringVar(&m.to, "to", "", "Last month (defaults to the last available month)")
	f.IntVar(&m.last, "last", last, "Number of most recent months to analyze, 0 for all. Ignored if -from or -to is set")
}

// months returns the months to analyze among 'available'.
func (m *monthFlags) months(fund string, available []date.Month) ([]date.Month, error) {
	var from, to date.Month
	var err error
	if m.from != "" {
		if from, err = date.Parse(m.from); err != nil {
			return nil, err
		}
	}
	if m.to != "" {
		if to, err = date.Parse(m.to); err != nil {
			return nil, err
		}
	}
	last := m.last
	if m.from != "" || m.to != "" {
		last = 0
	}
	return fundwatch.Range(fund, available, from, to, last)
}

// bounds returns the first and last months to report: the requested ones, else the first and last
// analyzed months.
func (m *monthFlags) bounds(a *fundwatch.Analysis) (from, to date.Month) {
	periods := a.Periods()
	from, to = periods[0], periods[len(periods)-1]
	if f, err := date.Parse(m.from); err == nil {
		from = f
	}
	if t, err := date.Parse(m.to); err == nil {
		to = t
	}
	return from, to
}

// analyze loads the snapshots of the selected months and resolves their securities.
//
// Files that cannot be parsed are skipped with a warning, as long as some can.
func analyze(query string, selection monthFlags) (*fundwatch.Analysis, error) {
	cfg, catalog, fund, err := openFund(query)
	if err != nil {
		return nil, err
	}
	months, err := selection.months(fund, catalog.Months(fund))
	if err != nil {
		return nil, err
	}
	snapshots, err := catalog.Load(fund, months, cfg)
	if len(snapshots) == 0 {
		return nil, errors.Join(fmt.Errorf("no usable monthly portfolio for %q", fund), err)
	}
	if err != nil {
		log.Warn().Int("skipped", len(months)-len(snapshots)).Msg("some monthly portfolios were skipped")
	}
	return fundwatch.NewAnalysis(cfg, snapshots...)
}
