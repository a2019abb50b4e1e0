package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/etnz/fundwatch"
	"github.com/etnz/fundwatch/renderer"
	"github.com/google/subcommands"
)

// changesCmd holds the flags for the 'changes' subcommand.
type changesCmd struct {
	months      monthFlags
	significant float64
	status      string
	json        bool
}

func (*changesCmd) Name() string { return "changes" }
func (*changesCmd) Synopsis() string {
	return "display the securities added, removed, increased or decreased between two months"
}
func (*changesCmd) Usage() string {
	return `mfw changes [-from <month>] [-to <month>] [-last <n>] [-significant <pct>] [-status <list>] [-json] <fund>

  Compares the holdings of a fund between two months (the last two available by default).
  Securities are matched across months by identifier, then by name, then by similar names, so that
  renamed securities are not reported as removed and added again.
`
}

func (c *changesCmd) SetFlags(f *flag.FlagSet) {
	c.months.SetFlags(f, 2)
	f.Float64Var(&c.significant, "significant", -1, "Hide securities whose weight moved by less than this, in percent of NAV (defaults to the configuration)")
	f.StringVar(&c.status, "status", "", "Comma separated statuses to display: added, increased, unchanged, decreased, removed")
	f.BoolVar(&c.json, "json", false, "Print one JSON object per security instead of markdown")
}

func (c *changesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var statuses []fundwatch.Status
	for _, s := range strings.Split(c.status, ",") {
		if strings.TrimSpace(s) == "" {
			continue
		}
		st, err := fundwatch.ParseStatus(strings.TrimSpace(s))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		statuses = append(statuses, st)
	}

	a, err := analyze(f.Arg(0), c.months)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	significant := c.significant
	if significant < 0 {
		significant = a.Config().Significant
	}

	from, to := c.months.bounds(a)
	report, err := a.Changes(from, to, fundwatch.Percent(significant))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating changes report: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(statuses) > 0 {
		report.Records = slices.DeleteFunc(report.Records, func(r fundwatch.ChangeRecord) bool {
			return !slices.Contains(statuses, r.Status)
		})
	}
	if c.json {
		if err := fundwatch.EncodeChanges(stdout, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.ChangesMarkdown(report))
	return subcommands.ExitSuccess
}
