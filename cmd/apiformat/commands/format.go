package commands

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"

	"github.com/erraggy/apiformat/document"
	"github.com/erraggy/apiformat/formatter"
	"github.com/erraggy/apiformat/internal/cliutil"
	"github.com/erraggy/apiformat/internal/config"
	"github.com/erraggy/apiformat/internal/fileutil"
	"github.com/erraggy/apiformat/internal/pathutil"
	"github.com/erraggy/apiformat/internal/textdiff"
)

// FormatFlags contains flags for the format command
type FormatFlags struct {
	Output             string
	SortFile           string
	FilterFile         string
	ConfigFile         string
	CasingFile         string
	SortComponentsFile string
	NoSort             bool
	Rename             string
	JSON               bool
	YAML               bool
	Diff               bool
	Quiet              bool
	Verbose            CountFlag
}

// CountFlag is a boolean-style flag that counts its occurrences, so -v -v
// raises verbosity to 2. An explicit number such as --verbose=2 is also
// accepted.
type CountFlag int

// String implements flag.Value.
func (c *CountFlag) String() string {
	if c == nil {
		return "0"
	}
	return strconv.Itoa(int(*c))
}

// Set implements flag.Value.
func (c *CountFlag) Set(s string) error {
	if b, err := strconv.ParseBool(s); err == nil {
		if b {
			*c++
		} else {
			*c = 0
		}
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("invalid verbosity %q", s)
	}
	*c = CountFlag(n)
	return nil
}

// IsBoolFlag lets the flag be given without a value.
func (c *CountFlag) IsBoolFlag() bool { return true }

// flagKeys maps command-line flag names to configuration file keys.
var flagKeys = map[string]string{
	"o":                  config.KeyOutput,
	"output":             config.KeyOutput,
	"s":                  config.KeySortFile,
	"sortFile":           config.KeySortFile,
	"f":                  config.KeyFilterFile,
	"filterFile":         config.KeyFilterFile,
	"casingFile":         config.KeyCasingFile,
	"sortComponentsFile": config.KeySortComponentsFile,
	"no-sort":            config.KeyNoSort,
	"rename":             config.KeyRename,
	"json":               config.KeyJSON,
	"yaml":               config.KeyYAML,
	"v":                  config.KeyVerbose,
	"verbose":            config.KeyVerbose,
}

// SetupFormatFlags creates and configures a FlagSet for the format command.
// Returns the FlagSet and a FormatFlags struct with bound flag variables.
func SetupFormatFlags() (*flag.FlagSet, *FormatFlags) {
	fs := flag.NewFlagSet("format", flag.ContinueOnError)
	flags := &FormatFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.SortFile, "s", "", "sort set file (YAML or JSON) replacing the default key order")
	fs.StringVar(&flags.SortFile, "sortFile", "", "sort set file (YAML or JSON) replacing the default key order")
	fs.StringVar(&flags.FilterFile, "f", "", "filter set file (YAML or JSON)")
	fs.StringVar(&flags.FilterFile, "filterFile", "", "filter set file (YAML or JSON)")
	fs.StringVar(&flags.ConfigFile, "c", "", "configuration file with format options")
	fs.StringVar(&flags.ConfigFile, "configFile", "", "configuration file with format options")
	fs.StringVar(&flags.CasingFile, "casingFile", "", "casing set file (YAML or JSON)")
	fs.StringVar(&flags.SortComponentsFile, "sortComponentsFile", "", "file listing component collections to sort by name")
	fs.BoolVar(&flags.NoSort, "no-sort", false, "don't sort keys")
	fs.StringVar(&flags.Rename, "rename", "", "new value for info.title")
	fs.BoolVar(&flags.JSON, "json", false, "write JSON output")
	fs.BoolVar(&flags.YAML, "yaml", false, "write YAML output")
	fs.BoolVar(&flags.Diff, "diff", false, "print a unified diff of the changes instead of the document")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the document, no diagnostic messages")
	fs.Var(&flags.Verbose, "v", "verbose output; repeat for debug logging")
	fs.Var(&flags.Verbose, "verbose", "verbose output; repeat for debug logging")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: apiformat format [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "Sort, filter and re-case an AsyncAPI document.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nStages:\n")
		cliutil.Writef(fs.Output(), "  filter   when a filter set is given\n")
		cliutil.Writef(fs.Output(), "  sort     unless --no-sort\n")
		cliutil.Writef(fs.Output(), "  case     when a casing set is given\n")
		cliutil.Writef(fs.Output(), "  rename   when --rename is given\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  apiformat format asyncapi.yaml\n")
		cliutil.Writef(fs.Output(), "  apiformat format -o formatted.yaml -f filter.yaml asyncapi.yaml\n")
		cliutil.Writef(fs.Output(), "  apiformat format --casingFile casing.yaml --rename \"Streetlights API\" asyncapi.json\n")
		cliutil.Writef(fs.Output(), "  apiformat format -c apiformat.yaml --diff asyncapi.yaml\n")
		cliutil.Writef(fs.Output(), "  cat asyncapi.yaml | apiformat format -q --json - > asyncapi.json\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Flags given on the command line override the configuration file\n")
		cliutil.Writef(fs.Output(), "  - Output keeps the source format unless --json, --yaml or the output extension says otherwise\n")
		cliutil.Writef(fs.Output(), "  - Output file is written with restrictive permissions (0600)\n")
	}

	return fs, flags
}

// options merges the configuration file with the flags set on the command
// line and loads the rule files.
func (flags *FormatFlags) options(fs *flag.FlagSet) (*config.Options, error) {
	var base *config.Options
	if flags.ConfigFile != "" {
		loaded, err := config.Load(flags.ConfigFile)
		if err != nil {
			return nil, err
		}
		base = loaded
	}

	over := &config.Options{
		Output:             flags.Output,
		SortFile:           flags.SortFile,
		FilterFile:         flags.FilterFile,
		CasingFile:         flags.CasingFile,
		SortComponentsFile: flags.SortComponentsFile,
		NoSort:             flags.NoSort,
		Rename:             flags.Rename,
		JSON:               flags.JSON,
		YAML:               flags.YAML,
		Verbose:            config.Verbosity(flags.Verbose),
	}
	var explicit []string
	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			explicit = append(explicit, key)
		}
	})

	opts := config.Merge(base, over, explicit)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := opts.LoadRules(); err != nil {
		return nil, err
	}
	return opts, nil
}

// HandleFormat executes the format command
func HandleFormat(args []string) error {
	fs, flags := SetupFormatFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("format command requires exactly one file path, URL, or '-' for stdin")
	}

	specPath := fs.Arg(0)

	opts, err := flags.options(fs)
	if err != nil {
		return err
	}

	p := cliutil.NewPrinter(os.Stderr, int(opts.Verbose), flags.Quiet)
	for _, key := range opts.CasingSet.UnknownStyles() {
		p.Warnf("unknown casing style %q for %s; values left unchanged", opts.CasingSet[key], key)
	}
	var logger document.Logger
	if opts.Verbose >= 2 && !flags.Quiet {
		logger = document.NewSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	output := ""
	if opts.Output != "" && !flags.Diff {
		if output, err = pathutil.SanitizeOutputPath(opts.Output); err != nil {
			return err
		}
	}

	loader := document.New()
	loader.Logger = logger
	doc, err := loadSpec(loader, specPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", FormatSpecPath(specPath), err)
	}
	p.Infof("Loaded %s (%s)", FormatSpecPath(specPath), doc.Format)

	fmtOpts := append(opts.FormatterOptions(), formatter.WithDocument(doc))
	if logger != nil {
		fmtOpts = append(fmtOpts, formatter.WithLogger(logger))
	}
	result, err := formatter.FormatWithOptions(fmtOpts...)
	if err != nil {
		return fmt.Errorf("formatting %s: %w", FormatSpecPath(specPath), err)
	}

	format := opts.OutputFormat(result.SourceFormat)
	data, err := result.Marshal(format)
	if err != nil {
		return fmt.Errorf("marshaling formatted document: %w", err)
	}

	reportResult(p, result)

	if flags.Diff {
		before, err := document.Marshal(doc.Root, format)
		if err != nil {
			return fmt.Errorf("marshaling source document: %w", err)
		}
		diff := textdiff.Unified(string(before), string(data), FormatSpecPath(specPath), "formatted", textdiff.DefaultContext)
		if diff == "" {
			p.Successf("No changes")
			return nil
		}
		p.Diff(os.Stdout, diff)
		return nil
	}

	if output != "" {
		if err := os.WriteFile(output, data, fileutil.OwnerReadWrite); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		p.Successf("Formatted %s written to %s", FormatSpecPath(specPath), output)
		return nil
	}

	if _, err = os.Stdout.Write(data); err != nil {
		return fmt.Errorf("writing formatted document to stdout: %w", err)
	}
	return nil
}

// reportResult prints the stage summary to the diagnostics printer.
func reportResult(p *cliutil.Printer, result *formatter.Result) {
	p.Infof("Stages: %s", stageList(result.Stages))
	if result.HasStage(formatter.StageFilter) {
		p.Infof("Filter passes: %d", result.FilterPasses)
		if !result.Converged {
			p.Warnf("unused component removal stopped after %d passes; output may still contain unused components", result.FilterPasses)
		}
	}
	if n := result.UnusedComponents.Count(); n > 0 {
		p.Infof("Removed %d unused component(s):", n)
		collections := make([]string, 0, len(result.UnusedComponents))
		for c := range result.UnusedComponents {
			collections = append(collections, c)
		}
		sort.Strings(collections)
		for _, c := range collections {
			for _, name := range result.UnusedComponents[c] {
				p.Infof("  - components.%s.%s", c, name)
			}
		}
	}
	if n := result.Renames.Count(); n > 0 {
		p.Infof("Renamed %d component(s)", n)
	}
}
