package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fundwatch/date"
	"github.com/etnz/fundwatch/renderer"
	"github.com/google/subcommands"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	month string
	top   int
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the largest holdings of a fund for a month" }
func (*holdingsCmd) Usage() string {
	return `mfw holdings [-m <month>] [-top <n>] <fund>

  Displays the largest holdings of a fund and its allocation by rating or industry, as disclosed
  for a given month (the latest one by default).
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month of the portfolio, e.g. \"September 2024\" (defaults to the latest)")
	f.IntVar(&c.top, "top", 10, "Number of holdings to display, 0 for all")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	selection := monthFlags{last: 1}
	if c.month != "" {
		if _, err := date.Parse(c.month); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing month: %v\n", err)
			return subcommands.ExitUsageError
		}
		selection = monthFlags{from: c.month, to: c.month}
	}

	a, err := analyze(f.Arg(0), selection)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	_, month := selection.bounds(a)
	report, err := a.Holdings(month, c.top)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating holdings report: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HoldingsMarkdown(report))
	return subcommands.ExitSuccess
}
