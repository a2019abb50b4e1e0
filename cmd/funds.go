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

type fundsCmd struct{}

func (*fundsCmd) Name() string     { return "funds" }
func (*fundsCmd) Synopsis() string { return "list the funds found in the data folder" }
func (*fundsCmd) Usage() string {
	return `mfw funds

  Lists the funds with monthly portfolio files in the data folder, and the months available for
  each. Files must be named "{Fund Name} - Monthly Portfolio {Month} {Year}.{xlsx|csv|json}".
`
}

func (c *fundsCmd) SetFlags(f *flag.FlagSet) {}

func (c *fundsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	catalog, err := fundwatch.ScanDir(cfg.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.FundsMarkdown(catalog))
	return subcommands.ExitSuccess
}
