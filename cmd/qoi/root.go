package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// exitError carries the process exit code a command should terminate with,
// per the spec's CLI surface: 1 argument error, 2 input read failure, 3
// output write failure. cobra itself only distinguishes "errored" from
// "did not error", so the code travels inside the error value. Argument
// errors (exit 1) never reach this type: cobra's own Args validators reject
// those before RunE runs, falling through to run()'s plain "return 1" for
// any non-exitError failure.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func readError(err error) error  { return &exitError{code: 2, err: err} }
func writeError(err error) error { return &exitError{code: 3, err: err} }

func newRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "qoi",
		Short: "Convert images between PNG and the Quite OK Image format",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newDecodeCommand())
	root.AddCommand(newEncodeCommand())
	return root
}
