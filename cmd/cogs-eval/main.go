// cogs-eval scores system logical forms against COGS gold data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	cogs "github.com/jamesainslie/go-cogs"
	"github.com/jamesainslie/go-cogs/internal/bench"
	"github.com/jamesainslie/go-cogs/internal/config"
	"github.com/jamesainslie/go-cogs/internal/render"
	"github.com/jamesainslie/go-cogs/internal/report"
	"github.com/jamesainslie/go-cogs/metrics"
	"github.com/jamesainslie/go-cogs/parser"
)

// Set by the build through -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// evalFlags holds the command-line values of one invocation.
type evalFlags struct {
	gold           string
	systems        []string
	openNMT        string
	config         string
	metrics        []string
	averaging      string
	workers        int
	skipMismatched bool
	verbose        bool
	color          string
	diff           bool
	report         string
	gate           string
	rankBy         string
	logLevel       string
}

func newRootCmd() *cobra.Command {
	var fl evalFlags
	cmd := &cobra.Command{
		Use:   "cogs-eval",
		Short: "Score system logical forms against COGS gold data",
		Long: `Score system logical forms against COGS gold data.

Gold and system files are tab-separated with three columns: sentence,
logical form and generalization type. Rows are paired by position and
must describe the same sentence.

Examples:
  cogs-eval --gold test.tsv --system pred.tsv
  cogs-eval --gold test.tsv --system pred.tsv -v --diff
  cogs-eval --opennmt pred.txt --metrics exact_match,term_f1 --averaging micro
  cogs-eval --gold test.tsv --system a.tsv --system b.tsv --rank-by term_f1
  cogs-eval --gold test.tsv --system pred.tsv --report out.json --gate "exact_match >= 0.9"`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEval(cmd, &fl)
		},
	}

	f := cmd.Flags()
	f.StringVar(&fl.gold, "gold", "", "gold data file")
	f.StringArrayVar(&fl.systems, "system", nil, "system output file; repeat to compare systems")
	f.StringVar(&fl.openNMT, "opennmt", "", "OpenNMT output file (source, target, prediction)")
	f.StringVarP(&fl.config, "config", "c", "", "TOML configuration file")
	f.StringSliceVarP(&fl.metrics, "metrics", "m", nil, "comma-separated metric keys (see 'cogs-eval metrics')")
	f.StringVar(&fl.averaging, "averaging", "", "PRF1 averaging: macro or micro")
	f.IntVarP(&fl.workers, "workers", "j", 0, "parallel parsers")
	f.BoolVar(&fl.skipMismatched, "skip-mismatched", false, "skip pairs whose sentences differ instead of failing")
	f.BoolVarP(&fl.verbose, "verbose", "v", false, "print per-sentence scores")
	f.StringVar(&fl.color, "color", "", "color output: auto, always or never")
	f.BoolVar(&fl.diff, "diff", false, "show gold/system diffs in verbose output")
	f.StringVarP(&fl.report, "report", "o", "", "write a report (.json, .yaml or .pb)")
	f.StringVar(&fl.gate, "gate", "", `fail unless this expression holds, e.g. "exact_match >= 0.9"`)
	f.StringVar(&fl.rankBy, "rank-by", "exact_match", "metric key used to rank compared systems")
	f.StringVar(&fl.logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	cmd.MarkFlagsMutuallyExclusive("opennmt", "gold")
	cmd.MarkFlagsMutuallyExclusive("opennmt", "system")
	cmd.AddCommand(newMetricsCmd())
	return cmd
}

func newMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "List the available metric keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, key := range metrics.Keys() {
				m, err := metrics.FromKey(key, metrics.Macro)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-28s %-6s %s\n", key, m.Abbreviation(), m.Name())
			}
			return nil
		},
	}
}

// loadConfig reads the configuration file, if any, and applies the flags
// that were set on the command line.
func loadConfig(cmd *cobra.Command, fl *evalFlags) (config.Config, error) {
	cfg := config.Default()
	if fl.config != "" {
		var err error
		if cfg, err = config.Load(fl.config); err != nil {
			return cfg, err
		}
	}

	f := cmd.Flags()
	if f.Changed("metrics") {
		cfg.Metrics = fl.metrics
	}
	if f.Changed("averaging") {
		cfg.Averaging = fl.averaging
	}
	if f.Changed("workers") {
		cfg.Workers = fl.workers
	}
	if f.Changed("skip-mismatched") {
		cfg.SkipMismatched = fl.skipMismatched
	}
	if f.Changed("verbose") {
		cfg.Output.Verbose = fl.verbose
	}
	if f.Changed("color") {
		cfg.Output.Color = fl.color
	}
	if f.Changed("diff") {
		cfg.Output.Diff = fl.diff
	}
	if f.Changed("report") {
		cfg.Output.Report = fl.report
	}
	if f.Changed("gate") {
		cfg.Output.Gate = fl.gate
	}
	return cfg, cfg.Validate()
}

// errCompareOptions reports single-run options given while comparing
// systems.
var errCompareOptions = errors.New("option not supported when comparing systems")

// checkCompare rejects inputs and outputs that only apply to a single run.
func checkCompare(fl *evalFlags, cfg config.Config) error {
	if fl.gold == "" {
		return errors.New("comparing systems needs --gold")
	}
	for _, o := range []struct {
		name string
		set  bool
	}{
		{"--opennmt", fl.openNMT != ""},
		{"--verbose", cfg.Output.Verbose},
		{"--report", cfg.Output.Report != ""},
		{"--gate", cfg.Output.Gate != ""},
	} {
		if o.set {
			return fmt.Errorf("%w: %s", errCompareOptions, o.name)
		}
	}
	return nil
}

func runEval(cmd *cobra.Command, fl *evalFlags) error {
	logger, err := newLogger(cmd.ErrOrStderr(), fl.logLevel)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, fl)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printer := render.NewPrinter(out, render.UseColor(out, cfg.Output.Color), render.WithDiff(cfg.Output.Diff))

	p := parser.New()

	if len(fl.systems) > 1 {
		if err := checkCompare(fl, cfg); err != nil {
			return err
		}
		rankings, err := bench.Compare(cmd.Context(), p, cfg, fl.gold, fl.systems, fl.rankBy, logger)
		if err != nil {
			return err
		}
		printer.Comparison(fl.rankBy, rankings)
		return nil
	}

	in := bench.Input{Gold: fl.gold, OpenNMT: fl.openNMT}
	if len(fl.systems) == 1 {
		in.System = fl.systems[0]
	}

	var gate *report.Gate
	if cfg.Output.Gate != "" {
		if gate, err = report.CompileGate(cfg.Output.Gate, cfg.Metrics); err != nil {
			return err
		}
	}

	var each func(cogs.Sample)
	if cfg.Output.Verbose {
		avg, err := cfg.AveragingMode()
		if err != nil {
			return err
		}
		ms, err := metrics.FromKeys(cfg.Metrics, avg)
		if err != nil {
			return err
		}
		printer.Header(ms)
		each = printer.Sample
	}

	ev, err := bench.Run(cmd.Context(), p, cfg, in, each, logger)
	if err != nil {
		return err
	}
	if cfg.Output.Verbose {
		fmt.Fprintln(out)
	}
	printer.Summary(in.GoldName(), in.SystemName(), ev.Seen(), ev.Skipped(), ev.Results())

	rep := report.New(in.GoldName(), in.SystemName(), ev.Seen(), ev.Skipped(), ev.Results())
	if cfg.Output.Report != "" {
		if err := rep.WriteFile(cfg.Output.Report); err != nil {
			return err
		}
		logger.Info("report written", "path", cfg.Output.Report, "id", rep.ID)
	}
	if gate != nil {
		return gate.Check(rep)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, report.ErrGateFailed) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
