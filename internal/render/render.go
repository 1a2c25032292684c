// Package render prints evaluation results for people: the per-sentence
// table, gold/system diffs, the overall summary and system comparisons.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/sergi/go-diff/diffmatchpatch"

	cogs "github.com/jamesainslie/go-cogs"
	"github.com/jamesainslie/go-cogs/internal/bench"
	"github.com/jamesainslie/go-cogs/internal/config"
	"github.com/jamesainslie/go-cogs/metrics"
)

// UseColor resolves a color mode for w. In auto mode only terminals get
// color.
func UseColor(w io.Writer, mode string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Printer writes human-readable output to one writer.
type Printer struct {
	w    io.Writer
	diff bool

	exact     *color.Color
	wrong     *color.Color
	illFormed *color.Color
	deleted   *color.Color
	inserted  *color.Color

	bold lipgloss.Style
	dim  lipgloss.Style
	best lipgloss.Style
}

// Option configures a Printer.
type Option func(*Printer)

// WithDiff adds a character diff of gold and system under every
// inexact row of the per-sentence table.
func WithDiff(on bool) Option {
	return func(p *Printer) { p.diff = on }
}

// NewPrinter returns a Printer writing to w, colored when useColor is set.
func NewPrinter(w io.Writer, useColor bool, opts ...Option) *Printer {
	r := lipgloss.NewRenderer(w)
	if useColor {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	p := &Printer{
		w:         w,
		exact:     color.New(color.FgGreen),
		wrong:     color.New(color.FgRed),
		illFormed: color.New(color.FgYellow),
		deleted:   color.New(color.FgRed, color.CrossedOut),
		inserted:  color.New(color.FgGreen, color.Underline),
		bold:      r.NewStyle().Bold(true),
		dim:       r.NewStyle().Foreground(lipgloss.Color("245")),
		best:      r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
	}
	for _, c := range []*color.Color{p.exact, p.wrong, p.illFormed, p.deleted, p.inserted} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Header prints the per-sentence table header: one column per metric
// abbreviation, then the system and gold logical forms.
func (p *Printer) Header(ms []metrics.Metric) {
	cols := make([]string, 0, len(ms)+2)
	for _, m := range ms {
		cols = append(cols, fmt.Sprintf("%-6s", m.Abbreviation()))
	}
	cols = append(cols, "System logical form", "Gold logical form")
	fmt.Fprintln(p.w, strings.Join(cols, "\t"))
}

// Sample prints one per-sentence row. The system form is green when it
// matches exactly, yellow when ill-formed and red otherwise.
func (p *Printer) Sample(s cogs.Sample) {
	cols := make([]string, 0, len(s.Scores)+2)
	for _, v := range s.Scores {
		cols = append(cols, fmt.Sprintf("%6.2f", v))
	}
	sys, gold := s.System.LogicalForm, s.Gold.LogicalForm

	c := p.wrong
	switch {
	case sys == gold:
		c = p.exact
	case !s.System.Form.IsWellFormed():
		c = p.illFormed
	}
	cols = append(cols, c.Sprint(sys), gold)
	fmt.Fprintln(p.w, strings.Join(cols, "\t"))

	if p.diff && sys != gold {
		fmt.Fprintln(p.w, "\t"+p.Diff(gold, sys))
	}
}

// Diff renders the character diff from gold to system. Deletions are
// wrapped in [- -] and insertions in {+ +}.
func (p *Printer) Diff(gold, system string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(gold, system, false))

	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			sb.WriteString(p.deleted.Sprint("[-" + d.Text + "-]"))
		case diffmatchpatch.DiffInsert:
			sb.WriteString(p.inserted.Sprint("{+" + d.Text + "+}"))
		case diffmatchpatch.DiffEqual:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}

// Summary prints the overall results of a run. Ratio metrics are shown as
// percentages, edit distance as a raw mean.
func (p *Printer) Summary(gold, system string, seen, skipped int, results []cogs.Result) {
	fmt.Fprintln(p.w, p.bold.Render("Full corpus evaluation:"))
	fmt.Fprintf(p.w, "Gold file:   %s\n", gold)
	fmt.Fprintf(p.w, "System file: %s\n", system)
	fmt.Fprintf(p.w, "Seen instances: %d\n", seen)
	if skipped > 0 {
		fmt.Fprintf(p.w, "Skipped instances: %d\n", skipped)
	}
	for _, r := range results {
		fmt.Fprintf(p.w, "%-40s : %s\n", r.Name, formatScore(r))
	}
}

func formatScore(r cogs.Result) string {
	if r.Ratio {
		return fmt.Sprintf("%6.2f %%", r.Score*100)
	}
	return fmt.Sprintf("%6.2f", r.Score)
}

// Comparison prints ranked systems as a table, best first, with one
// column per metric.
func (p *Printer) Comparison(key string, rankings []bench.Ranking) {
	if len(rankings) == 0 {
		return
	}
	systemWidth := len("System")
	for _, r := range rankings {
		systemWidth = max(systemWidth, len(r.System))
	}

	cols := []Column{
		{Name: "#", Width: 3, Align: AlignRight},
		{Name: "System", Width: systemWidth},
		{Name: "Seen", Width: 6, Align: AlignRight},
	}
	for _, res := range rankings[0].Results {
		name := res.Abbreviation
		if res.Key == key {
			name += "*"
		}
		cols = append(cols, Column{Name: name, Width: max(7, len(name)), Align: AlignRight})
	}

	t := NewTable(p.bold, p.dim, cols...)
	for i, r := range rankings {
		row := []string{fmt.Sprint(i + 1), r.System, fmt.Sprint(r.Seen)}
		for _, res := range r.Results {
			v := fmt.Sprintf("%.2f", res.Score)
			if res.Ratio {
				v = fmt.Sprintf("%.2f", res.Score*100)
			}
			if i == 0 && res.Key == key {
				v = p.best.Render(v)
			}
			row = append(row, v)
		}
		t.AddRow(row...)
	}
	fmt.Fprint(p.w, t.Render())
	fmt.Fprintln(p.w, p.dim.Render("* ranking metric; ratio metrics in percent"))
}
