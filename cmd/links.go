package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fundwatch/renderer"
	"github.com/google/subcommands"
)

// linksCmd holds the flags for the 'links' subcommand.
type linksCmd struct {
	months monthFlags
}

func (*linksCmd) Name() string     { return "links" }
func (*linksCmd) Synopsis() string { return "display how securities were matched from month to month" }
func (*linksCmd) Usage() string {
	return `mfw links [-from <month>] [-to <month>] [-last <n>] [-threshold <score>] <fund>

  Displays, for each pair of consecutive months, the securities matched by a changed name and
  their similarity score, and the securities without match. Use it to tune -threshold.
`
}

func (c *linksCmd) SetFlags(f *flag.FlagSet) {
	c.months.SetFlags(f, 2)
}

func (c *linksCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := analyze(f.Arg(0), c.months)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	report, err := a.Links(c.months.bounds(a))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating links report: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.LinksMarkdown(report))
	return subcommands.ExitSuccess
}
