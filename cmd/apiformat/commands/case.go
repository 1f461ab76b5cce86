package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/apiformat/casing"
	"github.com/erraggy/apiformat/internal/cliutil"
)

// SetupCaseFlags creates and configures a FlagSet for the case command.
func SetupCaseFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("case", flag.ContinueOnError)

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: apiformat case <style> <value>...\n\n")
		cliutil.Writef(fs.Output(), "Convert values to a naming style, one result per line.\n\n")
		cliutil.Writef(fs.Output(), "Styles:\n")
		for _, s := range casing.Styles() {
			cliutil.Writef(fs.Output(), "  %s\n", s)
		}
		cliutil.Writef(fs.Output(), "\nStyle names are matched ignoring case and separators (snake, kebab-case, SCREAMING_SNAKE).\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  apiformat case snake_case userId HTTPServer\n")
		cliutil.Writef(fs.Output(), "  apiformat case kebab \"user signed up\"\n")
	}

	return fs
}

// HandleCase executes the case command
func HandleCase(args []string) error {
	fs := SetupCaseFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("case command requires a style and at least one value")
	}

	style, ok := casing.ParseStyle(fs.Arg(0))
	if !ok {
		return fmt.Errorf("unknown style %q", fs.Arg(0))
	}
	for _, v := range fs.Args()[1:] {
		cliutil.Writef(os.Stdout, "%s\n", style.Apply(v))
	}
	return nil
}
