package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalAdmissions    int
	AdmittedCount      int
	LostCount          int
	TotalRoutings      int
	ReasonCounts       map[string]int // routing reason → count
	TargetDistribution map[int]int    // target station → count of units routed there
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ReasonCounts:       make(map[string]int),
		TargetDistribution: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalAdmissions = len(st.Admissions)
	for _, a := range st.Admissions {
		if a.Admitted {
			summary.AdmittedCount++
		} else {
			summary.LostCount++
		}
	}

	summary.TotalRoutings = len(st.Routings)
	for _, r := range st.Routings {
		summary.ReasonCounts[r.Reason]++
		if r.Target >= 0 {
			summary.TargetDistribution[r.Target]++
		}
	}
	return summary
}
