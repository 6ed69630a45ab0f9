// Command qoi converts between PNG and the Quite OK Image format.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})

	os.Exit(run(context.Background()))
}

// run builds and executes the root command, translating the exit codes
// attached to each subcommand's error (see exitError in root.go) into the
// process exit code described by the spec's CLI surface: 0 success, 1
// argument error, 2 input read failure, 3 output write failure.
func run(ctx context.Context) int {
	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		if ee, ok := err.(*exitError); ok {
			return ee.code
		}
		return 1
	}
	return 0
}
