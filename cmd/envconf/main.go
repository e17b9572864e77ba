package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/unkn0wn-root/envconf/internal/config"
	"github.com/unkn0wn-root/envconf/internal/errdef"
	"github.com/unkn0wn-root/envconf/internal/filesvc"
	"github.com/unkn0wn-root/envconf/internal/logging"
	"github.com/unkn0wn-root/envconf/internal/prompt"
	"github.com/unkn0wn-root/envconf/internal/prompt/tui"
	"github.com/unkn0wn-root/envconf/internal/reconcile"
	"github.com/unkn0wn-root/envconf/internal/report"
	"github.com/unkn0wn-root/envconf/internal/telemetry"
	"github.com/unkn0wn-root/envconf/internal/theme"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const shutdownTimeout = 5 * time.Second

var usage = heredoc.Doc(`
	Usage: envconf [flags]
	       envconf init [flags] [dir]

	Creates or updates dotenv files from their templates. File sets are
	declared in envconf.toml (or the file named by --config / ENVCONF_CONFIG)
	and processed in declaration order.

	Flags:
`)

type options struct {
	config      string
	check       bool
	dryRun      bool
	only        []string
	verbose     bool
	noColor     bool
	showVersion bool
}

// env carries the process surroundings so run can be driven from tests.
type env struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	getenv func(string) string
	cwd    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	code := run(ctx, os.Args[1:], env{
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
		getenv: os.Getenv,
		cwd:    cwd,
	})
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, e env) int {
	var err error
	if len(args) > 0 && args[0] == "init" {
		err = runInit(args[1:], e)
	} else {
		err = runSync(ctx, args, e)
	}
	if err != nil {
		fmt.Fprintf(e.errOut, "error: %s\n", errdef.Message(err))
		return 1
	}
	return 0
}

func parseFlags(args []string, w io.Writer) (options, error) {
	var o options
	fs := pflag.NewFlagSet("envconf", pflag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() {
		fmt.Fprint(w, usage)
		fs.PrintDefaults()
	}
	fs.StringVarP(&o.config, "config", "c", "", "Path to the config file")
	fs.BoolVar(&o.check, "check", false, "Report drift without prompting or writing; exit 1 when out of sync")
	fs.BoolVar(&o.dryRun, "dry-run", false, "Prompt as usual but print a diff instead of writing")
	fs.StringSliceVar(&o.only, "only", nil, "Limit the run to the named file sets (repeatable)")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&o.showVersion, "version", false, "Show envconf version")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected args: %v", fs.Args())
	}
	if o.check && o.dryRun {
		return o, errors.New("--check and --dry-run cannot be combined")
	}
	return o, nil
}

func runSync(ctx context.Context, args []string, e env) error {
	o, err := parseFlags(args, e.errOut)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if o.showVersion {
		fmt.Fprintf(e.out, "envconf %s\n", version)
		fmt.Fprintf(e.out, "  commit: %s\n", commit)
		fmt.Fprintf(e.out, "  built:  %s\n", date)
		return nil
	}

	log := logging.New(e.errOut, o.verbose).With("run", uuid.NewString())
	defer log.Sync()

	path := config.Path(o.config, e.getenv, e.cwd)
	sets, err := config.Load(path)
	if err != nil {
		return err
	}
	if sets, err = config.Select(sets, o.only); err != nil {
		return err
	}
	log.Debug("config loaded", "path", path, "sets", len(sets))

	tcfg, problems := telemetry.ConfigFromEnv(e.getenv)
	for _, p := range problems {
		log.Warn("tracing setting", "problem", p)
	}
	tcfg.Version = version
	tp, err := telemetry.Setup(ctx, tcfg)
	if err != nil {
		log.Warn("tracing disabled", "error", err)
		tp = telemetry.Noop()
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(sctx); err != nil {
			log.Warn("tracing shutdown", "error", err)
		}
	}()

	plain := o.noColor || e.getenv("NO_COLOR") != ""
	renderer := theme.NewRenderer(e.out, plain)
	printer := report.New(e.out, renderer, e.cwd)

	r := reconcile.New(
		filesvc.OSFS{},
		newPrompter(e, theme.DefaultTheme(renderer)),
		printer,
		reconcile.WithLogger(log),
		reconcile.WithTracer(tp.Tracer()),
		reconcile.WithDryRun(o.dryRun),
		reconcile.WithCheck(o.check),
	)
	results, runErr := r.Run(ctx, sets)
	log.Info("run finished", "sets", len(results), "written", written(results), "ok", runErr == nil)
	if o.check {
		if err := printer.Summary(summaryRows(results)); err != nil {
			return err
		}
	}
	return runErr
}

// newPrompter uses the interactive prompter on a terminal and plain line
// reads otherwise.
func newPrompter(e env, th theme.Theme) prompt.Prompter {
	if f, ok := e.in.(interface{ Fd() uintptr }); ok && term.IsTerminal(int(f.Fd())) {
		return tui.New(e.in, e.out, th)
	}
	return prompt.NewLine(e.in, e.out)
}

func written(results []reconcile.Result) int {
	n := 0
	for _, res := range results {
		if res.Written {
			n++
		}
	}
	return n
}

func summaryRows(results []reconcile.Result) []report.Row {
	rows := make([]report.Row, 0, len(results))
	for _, res := range results {
		rows = append(rows, report.Row{
			Name:    res.Name,
			State:   res.State.String(),
			Output:  res.Output,
			Pending: len(res.Pending),
		})
	}
	return rows
}
