// Package report renders a sim.Result as the plain-text run report.
package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/qnetsim/qnetsim/sim"
)

// Options controls optional report sections.
type Options struct {
	Tag        language.Tag // locale for integer digit grouping (default English)
	ShowTrace  bool         // append the trace summary when the result carries one
	EmptyState bool         // include states with zero accumulated time
}

// DefaultOptions prints every state with English digit grouping.
func DefaultOptions() Options {
	return Options{Tag: language.English, EmptyState: true}
}

// Write renders res to w.
func Write(w io.Writer, res *sim.Result, opts Options) error {
	var sb strings.Builder
	p := message.NewPrinter(opts.Tag)

	fmt.Fprintf(&sb, "=== Queue Network Simulation (seed %d) ===\n", res.Seed)
	fmt.Fprintf(&sb, "Total simulated time : %.2f\n", res.TotalTime)
	sb.WriteString(p.Sprintf("Events dispatched    : %d\n", res.Events))
	sb.WriteString(p.Sprintf("Random draws used    : %d\n", res.DrawsUsed))
	if res.UnroutedExits > 0 || res.StrandedExits > 0 {
		sb.WriteString(p.Sprintf("Unrouted exits       : %d\n", res.UnroutedExits))
		sb.WriteString(p.Sprintf("Stranded exits       : %d\n", res.StrandedExits))
	}
	sb.WriteString("\n")

	for _, st := range res.Stations {
		writeStation(&sb, p, st, opts)
	}

	if opts.ShowTrace && res.Trace != nil {
		writeTraceSummary(&sb, p, res)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeStation(sb *strings.Builder, p *message.Printer, st sim.StationResult, opts Options) {
	fmt.Fprintf(sb, "===== Station %s (G/G/%d/%d) =====\n", st.Name, st.Servers, st.Capacity)
	sb.WriteString(p.Sprintf("Units lost           : %d\n", st.LossCount))
	sb.WriteString(p.Sprintf("Units admitted       : %d\n", st.Admitted))
	sb.WriteString(p.Sprintf("Units completed      : %d\n", st.Completed))
	sb.WriteString("--- Time per state ---\n")
	probs := st.Probabilities()
	for i, tis := range st.TimeInState {
		if tis == 0 && !opts.EmptyState {
			continue
		}
		fmt.Fprintf(sb, "State %d: %.2f (%.4f)\n", i, tis, probs[i])
	}
	sb.WriteString("--- Derived ---\n")
	p0 := st.EmptyProbability()
	fmt.Fprintf(sb, "Mean population (L)  : %.4f\n", st.MeanPopulation())
	fmt.Fprintf(sb, "P(empty)             : %.4f (%.2f%%)\n", p0, p0*100)
	if len(st.TimeInState) > 1 {
		fmt.Fprintf(sb, "Time with one unit   : %.2f\n", st.TimeInState[1])
	}
	sb.WriteString("\n")
}
