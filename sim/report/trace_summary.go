package report

import (
	"sort"
	"strings"

	"golang.org/x/text/message"

	"github.com/qnetsim/qnetsim/sim"
	"github.com/qnetsim/qnetsim/sim/trace"
)

func writeTraceSummary(sb *strings.Builder, p *message.Printer, res *sim.Result) {
	summary := trace.Summarize(res.Trace)
	sb.WriteString("=== Trace Summary ===\n")
	sb.WriteString(p.Sprintf("Admission attempts   : %d (admitted %d, lost %d)\n",
		summary.TotalAdmissions, summary.AdmittedCount, summary.LostCount))
	sb.WriteString(p.Sprintf("Routing decisions    : %d\n", summary.TotalRoutings))

	reasons := make([]string, 0, len(summary.ReasonCounts))
	for r := range summary.ReasonCounts {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		sb.WriteString(p.Sprintf("  %-10s : %d\n", r, summary.ReasonCounts[r]))
	}
	for _, st := range res.Stations {
		if n, ok := summary.TargetDistribution[int(st.ID)]; ok {
			sb.WriteString(p.Sprintf("  routed to %s : %d\n", st.Name, n))
		}
	}
	sb.WriteString("\n")
}
