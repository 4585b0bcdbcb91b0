package trace

import "testing"

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalAdmissions != 0 || summary.TotalRoutings != 0 {
		t.Errorf("expected zero totals, got %+v", summary)
	}
	if summary.ReasonCounts == nil || summary.TargetDistribution == nil {
		t.Error("expected non-nil maps")
	}
}

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace()

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero
	if summary.TotalAdmissions != 0 {
		t.Errorf("expected 0 admissions, got %d", summary.TotalAdmissions)
	}
	if summary.AdmittedCount != 0 || summary.LostCount != 0 {
		t.Error("expected 0 admitted and lost")
	}
	if len(summary.TargetDistribution) != 0 {
		t.Error("expected empty target distribution")
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with mixed admission and routing records
	st := NewSimulationTrace()
	st.RecordAdmission(AdmissionRecord{Time: 1, Station: 0, Admitted: true})
	st.RecordAdmission(AdmissionRecord{Time: 2, Station: 0, Admitted: false})
	st.RecordAdmission(AdmissionRecord{Time: 3, Station: 1, Admitted: true})
	st.RecordRouting(RoutingRecord{Time: 4, Origin: 0, Target: 1, Reason: "routed"})
	st.RecordRouting(RoutingRecord{Time: 5, Origin: 0, Target: 1, Reason: "routed"})
	st.RecordRouting(RoutingRecord{Time: 6, Origin: 1, Target: -1, Reason: "exit"})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts match
	if summary.TotalAdmissions != 3 {
		t.Errorf("expected 3 admissions, got %d", summary.TotalAdmissions)
	}
	if summary.AdmittedCount != 2 {
		t.Errorf("expected 2 admitted, got %d", summary.AdmittedCount)
	}
	if summary.LostCount != 1 {
		t.Errorf("expected 1 lost, got %d", summary.LostCount)
	}
	if summary.TotalRoutings != 3 {
		t.Errorf("expected 3 routings, got %d", summary.TotalRoutings)
	}
	if summary.ReasonCounts["routed"] != 2 || summary.ReasonCounts["exit"] != 1 {
		t.Errorf("unexpected reason counts %v", summary.ReasonCounts)
	}
	if summary.TargetDistribution[1] != 2 {
		t.Errorf("expected 2 units routed to station 1, got %d", summary.TargetDistribution[1])
	}
	if _, ok := summary.TargetDistribution[-1]; ok {
		t.Error("exit must not appear in target distribution")
	}
}
