package evaluation

import "testing"

func TestPenaltyMonotone(t *testing.T) {
	table := DefaultPenaltyTable()
	prev := 101
	for hints := 0; hints <= 10; hints++ {
		got := table.Apply(90, hints, 30)
		if got > prev {
			t.Errorf("score increased with more hints: hints=%d score=%d prev=%d", hints, got, prev)
		}
		if got < 0 {
			t.Errorf("score below floor: hints=%d score=%d", hints, got)
		}
		prev = got
	}
}

func TestPenaltyReferenceScenario(t *testing.T) {
	// Base 90 with 2 hints under the default table (-5 each) → 80.
	got := DefaultPenaltyTable().Apply(90, 2, 30)
	if got != 80 {
		t.Errorf("Apply(90, 2) = %d, want 80", got)
	}
}

func TestDefaultPenaltyEscalates(t *testing.T) {
	table := DefaultPenaltyTable()
	// 5, 5, then 10 per hint: cumulative 5, 10, 20, 30.
	wants := []int{5, 10, 20, 30}
	for hints, want := range wants {
		if got := table.Total(hints+1, 0); got != want {
			t.Errorf("Total(%d) = %d, want %d", hints+1, got, want)
		}
	}
}

func TestPenaltyCap(t *testing.T) {
	table := PenaltyTable{10, 10, 10, 10, 10}
	if got := table.Total(5, 30); got != 30 {
		t.Errorf("Total(5) = %d, want cap 30", got)
	}
	if got := table.Apply(20, 5, 30); got != 0 {
		t.Errorf("Apply(20, 5) = %d, want floor 0", got)
	}
}

func TestPenaltyBeyondTableRepeatsLast(t *testing.T) {
	table := PenaltyTable{5, 10}
	// 5 + 10 + 10 + 10 = 35, uncapped.
	if got := table.Total(4, 0); got != 35 {
		t.Errorf("Total(4) = %d, want 35", got)
	}
}

func TestGradeBuckets(t *testing.T) {
	tests := []struct {
		score int
		want  Grade
	}{
		{100, GradeExcellent},
		{90, GradeExcellent},
		{89, GradeGood},
		{75, GradeGood},
		{74, GradeFair},
		{60, GradeFair},
		{59, GradePoor},
		{40, GradePoor},
		{39, GradeWrong},
		{0, GradeWrong},
	}
	for _, tt := range tests {
		if got := GradeFor(tt.score); got != tt.want {
			t.Errorf("GradeFor(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
