package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fundwatch"
	"github.com/etnz/fundwatch/renderer"
	"github.com/google/subcommands"
)

// historyCmd holds the flags for the 'history' subcommand.
type historyCmd struct {
	months   monthFlags
	security string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the weight of securities month after month" }
func (*historyCmd) Usage() string {
	return `mfw history [-from <month>] [-to <month>] [-last <n>] [-s <security>] <fund>

  Displays the weight of every security of a fund for each month, or only of the securities
  matching -s (identifier or name, similar names accepted).
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	c.months.SetFlags(f, 6)
	f.StringVar(&c.security, "s", "", "Identifier or name of the security to follow")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := analyze(f.Arg(0), c.months)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var report *fundwatch.HistoryReport
	if c.security != "" {
		report, err = a.SecurityHistory(c.security)
	} else {
		report, err = a.History(c.months.bounds(a))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating history report: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HistoryMarkdown(report))
	return subcommands.ExitSuccess
}
