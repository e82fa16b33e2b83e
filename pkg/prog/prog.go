// Package prog provides the entry point to sigbind. Each subcommand is a
// cobra command working on declaration files.
package prog

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"src.elv.sh/sigbind/pkg/diag"
	"src.elv.sh/sigbind/pkg/logutil"
	"src.elv.sh/sigbind/pkg/sys"
)

// DBEnv is the environment variable holding the default database path.
const DBEnv = "SIGBIND_DB"

// Flags keeps command-line flags common to all subcommands.
type Flags struct {
	Log, LogLevel string
	DB            string
	Color         string
	// Stored makes subcommands taking a declaration file take the name of a
	// stored one instead.
	Stored bool
}

// Run parses command-line flags and runs the requested subcommand. It
// returns the exit status of the program.
func Run(fds [3]*os.File, args []string) int {
	f := &Flags{}
	root := newRootCmd(fds, f)
	root.SetArgs(args[1:])
	err := root.Execute()
	if err == nil {
		return 0
	}
	var exit exitError
	if errors.As(err, &exit) {
		return exit.exit
	}
	fmt.Fprintln(fds[2], err)
	var bad badUsageError
	if errors.As(err, &bad) {
		fmt.Fprint(fds[2], root.UsageString())
	}
	return 2
}

func newRootCmd(fds [3]*os.File, f *Flags) *cobra.Command {
	root := &cobra.Command{
		Use:           "sigbind",
		Short:         "Inspect, bind and check signature declarations",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(fds, f)
		},
	}
	root.SetIn(fds[0])
	root.SetOut(fds[1])
	root.SetErr(fds[2])
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return BadUsage(err.Error())
	})

	pf := root.PersistentFlags()
	pf.StringVar(&f.Log, "log", "", "a file to write debug log to")
	pf.StringVar(&f.LogLevel, "log-level", "info", "minimum level of log entries")
	pf.StringVar(&f.DB, "db", os.Getenv(DBEnv), "path to the declaration database (default $"+DBEnv+")")
	pf.StringVar(&f.Color, "color", "auto", "when to color diagnostics: auto, always or never")
	pf.BoolVarP(&f.Stored, "stored", "s", false, "take names of stored declarations instead of files")

	root.AddCommand(
		newCheckCmd(f),
		newBindCmd(f),
		newShowCmd(f),
		newStoreCmd(f),
	)
	return root
}

func setup(fds [3]*os.File, f *Flags) error {
	if err := logutil.SetOutputFile(f.Log); err != nil {
		return err
	}
	if err := logutil.SetLevel(f.LogLevel); err != nil {
		return BadUsage("bad --log-level: " + err.Error())
	}
	switch f.Color {
	case "auto":
		diag.SetColor(sys.IsATTY(fds[1]))
	case "always":
		diag.SetColor(true)
	case "never":
		diag.SetColor(false)
	default:
		return BadUsage("bad --color: " + f.Color)
	}
	return nil
}

// BadUsage returns a special error that may be returned by a subcommand. It
// causes Run to print out a message, the usage information and exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by a subcommand. It
// causes Run to exit with the given code without printing any error
// messages. Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }
