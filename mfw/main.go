// Command mfw follows the monthly portfolio disclosures of mutual funds.
package main

import (
	"context"
	"flag"
	"os"
	"path"
	"time"

	"github.com/etnz/fundwatch/cmd"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	name := path.Base(os.Args[0])
	cmd.Completion().Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *cmd.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	os.Exit(int(commander.Execute(context.Background())))
}
