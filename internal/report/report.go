/*
Package report renders analyses as text for terminals, with the precision
of the original worksheets: weights with 3 decimals, probabilities,
entropies and gains with 4.
*/
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/ckacy01/entropia"
	"github.com/ckacy01/entropia/feature"
	"github.com/fatih/color"
)

// RootMarker flags the root attribute on the ranking.
const RootMarker = "<- root"

// Options holds the configuration of a Printer.
type Options struct {
	// Color enables ANSI colors on headings and the root attribute.
	Color bool
	// Breakdown enables the per-value table of every attribute.
	Breakdown bool
}

/*
Printer writes analyses as text reports on an io.Writer.
*/
type Printer struct {
	w       io.Writer
	opts    Options
	heading *color.Color
	root    *color.Color
	muted   *color.Color
}

// NewPrinter returns a Printer writing on w.
func NewPrinter(w io.Writer, opts Options) *Printer {
	p := &Printer{
		w:       w,
		opts:    opts,
		heading: color.New(color.FgCyan, color.Bold),
		root:    color.New(color.FgGreen, color.Bold),
		muted:   color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.heading, p.root, p.muted} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

/*
Print writes the report of the analysis: class distribution, total entropy,
the breakdown of every attribute if enabled, the ranking and the root.
*/
func (p *Printer) Print(a *entropia.Analysis) error {
	ew := &errWriter{w: p.w}
	ew.printf("%s\n", p.heading.Sprintf("Class distribution of %s (%d instances)", a.Class.Name(), a.Instances))
	rows := make([][]string, 0, len(a.Distribution))
	for _, cs := range a.Distribution {
		rows = append(rows, []string{feature.ValueString(cs.Value), strconv.Itoa(cs.Count), Decimal4(cs.Probability)})
	}
	ew.printf("%s\n", render([]string{"Value", "Count", "Probability"}, rows))
	ew.printf("Total entropy H(S) = %s\n\n", Decimal4(a.TotalEntropy))
	if p.opts.Breakdown {
		for _, gr := range a.Gains {
			p.printGain(ew, gr)
		}
	}
	ew.printf("%s\n", p.heading.Sprint("Information gain ranking"))
	rows = make([][]string, 0, len(a.Selection.Ranking))
	for i, gr := range a.Selection.Ranking {
		marker := ""
		if gr == a.Selection.Root {
			marker = RootMarker
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), gr.Attribute.Name(), Decimal4(gr.EffectiveGain()), marker})
	}
	ew.printf("%s\n", render([]string{"#", "Attribute", "Gain", ""}, rows))
	ew.printf("Root attribute: %s (gain %s)\n", p.root.Sprint(a.Selection.Root.Attribute.Name()), Decimal4(a.Selection.MaxGain))
	return ew.err
}

func (p *Printer) printGain(ew *errWriter, gr *entropia.GainResult) {
	ew.printf("%s\n", p.heading.Sprintf("Attribute %s", gr.Attribute.Name()))
	rows := make([][]string, 0, len(gr.Breakdown))
	for _, b := range gr.Breakdown {
		rows = append(rows, []string{
			feature.ValueString(b.Value),
			strconv.Itoa(b.Count),
			Decimal3(b.Weight),
			Decimal4(b.SubsetEntropy),
			Decimal4(b.Contribution),
		})
	}
	ew.printf("%s\n", render([]string{"Value", "Count", "Weight", "Entropy", "Contribution"}, rows))
	ew.printf("Weighted entropy = %s\n", Decimal4(gr.WeightedEntropy))
	ew.printf("Gain = %s - %s = %s\n", Decimal4(gr.TotalEntropy), Decimal4(gr.WeightedEntropy), Decimal4(gr.Gain))
	if gr.Gain != gr.EffectiveGain() {
		ew.printf("%s\n", p.muted.Sprintf("Negative gain %g from rounding ranked as 0", gr.Gain))
	}
	ew.printf("\n")
}

// JSON writes the Summary of the analysis as indented JSON.
func JSON(w io.Writer, a *entropia.Analysis) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewSummary(a))
}

// Decimal3 formats a number with 3 decimals.
func Decimal3(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// Decimal4 formats a number with 4 decimals.
func Decimal4(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func render(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		String()
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
