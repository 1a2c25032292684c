// cogs-lf parses COGS logical forms and shows their structure.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-cogs/internal/config"
	"github.com/jamesainslie/go-cogs/internal/render"
	"github.com/jamesainslie/go-cogs/lf"
	"github.com/jamesainslie/go-cogs/parser"
)

// Set by the build through -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type lfFlags struct {
	tree      bool
	maxTokens int
	color     string
}

func newRootCmd() *cobra.Command {
	var fl lfFlags
	cmd := &cobra.Command{
		Use:   "cogs-lf [formula...]",
		Short: "Parse COGS logical forms and show their structure",
		Long: `Parse COGS logical forms and show their structure.

Each argument is one formula. Without arguments, formulas are read from
standard input, one per line. The exit status is 1 if any formula is
ill-formed.

Examples:
  cogs-lf "* cat ( x _ 1 ) ; run . agent ( x _ 2 , x _ 1 )"
  cogs-lf --tree "cat ( x _ 1 )"
  cut -f2 test.tsv | cogs-lf`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLF(cmd, args, &fl)
		},
	}
	cmd.Flags().BoolVarP(&fl.tree, "tree", "t", false, "print the parse tree")
	cmd.Flags().IntVar(&fl.maxTokens, "max-tokens", 0, "reject formulas longer than this many tokens (0 for no limit)")
	cmd.Flags().StringVar(&fl.color, "color", config.ColorAuto, "color output: auto, always or never")
	return cmd
}

var errIllFormed = errors.New("ill-formed input")

func runLF(cmd *cobra.Command, args []string, fl *lfFlags) error {
	var opts []parser.Option
	if fl.maxTokens > 0 {
		opts = append(opts, parser.WithMaxTokens(fl.maxTokens))
	}
	p := parser.New(opts...)

	out := cmd.OutOrStdout()
	d := describer{w: out, p: p, tree: fl.tree, ok: color.New(color.FgGreen), bad: color.New(color.FgRed)}
	if render.UseColor(out, fl.color) {
		d.ok.EnableColor()
		d.bad.EnableColor()
	} else {
		d.ok.DisableColor()
		d.bad.DisableColor()
	}

	if len(args) == 0 {
		sc := bufio.NewScanner(cmd.InOrStdin())
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				args = append(args, line)
			}
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("reading formulas: %w", err)
		}
	}

	failed := 0
	for i, text := range args {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if !d.describe(text) {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d formulas", errIllFormed, failed, len(args))
	}
	return nil
}

type describer struct {
	w    io.Writer
	p    *parser.Parser
	tree bool
	ok   *color.Color
	bad  *color.Color
}

// describe prints one formula and reports whether it is well-formed.
func (d describer) describe(text string) bool {
	form := lf.Parse(d.p, text)
	fmt.Fprintf(d.w, "Formula:     %s\n", text)
	fmt.Fprintf(d.w, "Tokens:      %d\n", len(form.Tokens()))
	if !form.IsWellFormed() {
		fmt.Fprintf(d.w, "Well-formed: %s\n", d.bad.Sprint("no"))
		fmt.Fprintf(d.w, "Error:       %v\n", form.Err())
		return false
	}
	fmt.Fprintf(d.w, "Well-formed: %s\n", d.ok.Sprint("yes"))

	kind, _ := form.TypeOfFormula()
	fmt.Fprintf(d.w, "Type:        %s\n", kind)
	switch kind {
	case lf.KindName:
		name, _ := form.Name()
		fmt.Fprintf(d.w, "Name:        %s\n", name)
	case lf.KindLambdas:
		lambdas, _ := form.Lambdas()
		fmt.Fprintf(d.w, "Lambdas:     %s\n", strings.Join(lambdas, " "))
	case lf.KindIotas:
		iotas, _ := form.Iotas()
		fmt.Fprintf(d.w, "Iotas (%d):\n", len(iotas))
		for _, it := range iotas {
			fmt.Fprintf(d.w, "  %s\n", it)
		}
	}
	if kind != lf.KindName {
		conjuncts, _ := form.Conjuncts()
		fmt.Fprintf(d.w, "Conjuncts (%d):\n", len(conjuncts))
		for _, c := range conjuncts {
			fmt.Fprintf(d.w, "  %s\n", c)
		}
	}

	if d.tree {
		if root, err := d.p.Parse(text); err == nil {
			fmt.Fprintln(d.w, "Tree:")
			fmt.Fprint(d.w, root.Pretty())
		}
	}
	return true
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
