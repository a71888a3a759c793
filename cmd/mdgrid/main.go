// Command mdgrid rewrites Markdown pipe tables as grid tables.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/ryanlewis/mdgrid"
	"github.com/ryanlewis/mdgrid/internal/debug"
	"github.com/ryanlewis/mdgrid/internal/files"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Exit codes
const (
	exitOK      = 0
	exitChanged = 1
	exitError   = 2
)

// stdinPath is the path argument that selects filter mode.
const stdinPath = "-"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type flags struct {
	all         bool
	check       bool
	width       int
	margin      int
	jobs        int
	configPath  string
	showVersion bool
	showHelp    bool
	debugMode   bool
	debugFile   string
	debugPretty bool
}

func newFlagSet(f *flags, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("mdgrid", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {}

	fs.BoolVarP(&f.all, "all", "a", false, "Convert every Markdown file under the current directory")
	fs.BoolVarP(&f.check, "check", "c", false, "Report files that would change without writing them")
	fs.IntVarP(&f.width, "width", "w", mdgrid.DefaultTargetWidth, "Target inner width of each table")
	fs.IntVarP(&f.margin, "margin", "m", mdgrid.DefaultFixedMargin, "Extra width for single-dash columns")
	fs.IntVarP(&f.jobs, "jobs", "j", files.DefaultJobs, "Number of files converted concurrently")
	fs.StringVar(&f.configPath, "config", mdgrid.DefaultConfigFile, "Config file (ignored when absent)")
	fs.BoolVarP(&f.showVersion, "version", "v", false, "Show version information")
	fs.BoolVarP(&f.showHelp, "help", "h", false, "Show help message")
	fs.BoolVar(&f.debugMode, "debug", false, "Enable debug mode (outputs to stderr)")
	fs.StringVar(&f.debugFile, "debug-file", "", "Write debug output to file instead of stderr")
	fs.BoolVar(&f.debugPretty, "debug-pretty", false, "Use pretty format for debug output (default: JSON)")
	return fs
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var f flags
	fs := newFlagSet(&f, stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stdout, fs)
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintln(stderr, "Run 'mdgrid --help' for usage.")
		return exitError
	}

	if f.showHelp {
		printHelp(stdout, fs)
		return exitOK
	}

	if f.showVersion {
		fmt.Fprintf(stdout, "mdgrid version %s (commit: %s, built: %s)\n", version, commit, date)
		return exitOK
	}

	cfg, err := resolveConfig(fs, &f)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	paths := fs.Args()
	if len(paths) == 0 {
		if !f.all {
			fmt.Fprintln(stderr, "Error: no paths provided")
			printHelp(stderr, fs)
			return exitError
		}
		paths = []string{"."}
	}

	// Setup debug if enabled
	pretty := debug.InitFromEnv()
	if f.debugMode || f.debugFile != "" {
		debug.SetEnabled(true)
	}
	var tracer *mdgrid.Tracer
	if debug.Enabled() {
		var output io.Writer = stderr
		if f.debugFile != "" {
			file, err := os.Create(f.debugFile)
			if err != nil {
				fmt.Fprintf(stderr, "Error creating debug file: %v\n", err)
				return exitError
			}
			defer file.Close()
			output = file
		}

		tracer = mdgrid.NewTracer(output, f.debugPretty || pretty)
		defer tracer.Close()
	}

	convert := func(path, content string) (string, bool) {
		res := mdgrid.Convert(content, mdgrid.WithConfig(cfg), mdgrid.WithTracer(tracer, path))
		return res.Content, res.Changed
	}

	if len(paths) == 1 && paths[0] == stdinPath {
		return runFilter(stdin, stdout, stderr, f.check, convert)
	}
	for _, p := range paths {
		if p == stdinPath {
			fmt.Fprintln(stderr, "Error: '-' cannot be combined with other paths")
			return exitError
		}
	}

	targets, err := files.Discover(paths, cfg.Exclude)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	outcomes := files.Process(context.Background(), targets, files.Options{
		Check:   f.check,
		Jobs:    f.jobs,
		Convert: convert,
	})
	return report(outcomes, f.check, stdout, stderr)
}

// resolveConfig layers the config file, the environment and explicit flags
// over the defaults.
func resolveConfig(fs *pflag.FlagSet, f *flags) (mdgrid.Config, error) {
	if err := mdgrid.LoadEnvFile(".env"); err != nil {
		return mdgrid.Config{}, err
	}

	cfg, err := mdgrid.LoadConfig(f.configPath)
	if err != nil {
		return mdgrid.Config{}, err
	}
	cfg = mdgrid.ConfigFromEnv(cfg)

	if fs.Changed("width") {
		if f.width <= 0 {
			return mdgrid.Config{}, fmt.Errorf("--width must be positive, got %d", f.width)
		}
		cfg.TargetWidth = f.width
	}
	if fs.Changed("margin") {
		if f.margin < 0 {
			return mdgrid.Config{}, fmt.Errorf("--margin must not be negative, got %d", f.margin)
		}
		cfg.FixedMargin = f.margin
	}
	if f.jobs <= 0 {
		return mdgrid.Config{}, fmt.Errorf("--jobs must be positive, got %d", f.jobs)
	}
	return cfg, nil
}

// runFilter converts stdin to stdout.
func runFilter(stdin io.Reader, stdout, stderr io.Writer, check bool, convert files.ConvertFunc) int {
	data, err := io.ReadAll(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading stdin: %v\n", err)
		return exitError
	}

	content, changed := convert("<stdin>", string(data))
	if check {
		if changed {
			fmt.Fprintln(stdout, "would reformat: <stdin>")
			return exitChanged
		}
		return exitOK
	}

	if _, err := io.WriteString(stdout, content); err != nil {
		fmt.Fprintf(stderr, "Error writing stdout: %v\n", err)
		return exitError
	}
	return exitOK
}

// report prints one line per changed or failed file and picks the exit code.
func report(outcomes []files.Outcome, check bool, stdout, stderr io.Writer) int {
	failed, changed := false, false
	for _, o := range outcomes {
		if o.Err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", o.Err)
			failed = true
			continue
		}
		if !o.Changed {
			continue
		}
		changed = true
		if check {
			fmt.Fprintf(stdout, "would reformat: %s\n", o.Path)
		} else {
			fmt.Fprintf(stdout, "reformatted: %s\n", o.Path)
		}
	}

	switch {
	case failed:
		return exitError
	case check && changed:
		return exitChanged
	default:
		return exitOK
	}
}

func printHelp(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "mdgrid - convert Markdown pipe tables to grid tables")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  mdgrid [flags] [paths...]")
	fmt.Fprintln(w, "  mdgrid -            read stdin, write stdout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Column widths:")
	fmt.Fprintln(w, "  | - |     fixed: sized to its widest content plus the margin")
	fmt.Fprintln(w, "  | --- |   flexible: shares the remaining width by dash count")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDGRID_TABLE_WIDTH    default for --width")
	fmt.Fprintln(w, "  MDGRID_FIXED_MARGIN   default for --margin")
	fmt.Fprintln(w, "  MDGRID_DEBUG=1        enable debug output")
	fmt.Fprintln(w, "  MDGRID_DEBUG_PRETTY=1 pretty debug output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 ok, 1 --check found changes, 2 error")
}
