package evaluation

// PenaltyTable maps hint usage to score deductions. Entry i is the
// deduction for the (i+1)-th hint; hints beyond the table repeat the
// last entry. Deductions accumulate, so the total penalty is monotone
// in the number of hints used.
type PenaltyTable []int

// DefaultPenaltyTable deducts 5 points for each of the first two hints and
// 10 thereafter, capped at 30 by MaxPenalty in the orchestrator config.
func DefaultPenaltyTable() PenaltyTable {
	return PenaltyTable{5, 5, 10, 10}
}

// Total returns the cumulative deduction for the given hint count,
// bounded by maxPenalty (0 means unbounded).
func (t PenaltyTable) Total(hintsUsed, maxPenalty int) int {
	if hintsUsed <= 0 || len(t) == 0 {
		return 0
	}
	total := 0
	for i := 0; i < hintsUsed; i++ {
		idx := i
		if idx >= len(t) {
			idx = len(t) - 1
		}
		if t[idx] > 0 {
			total += t[idx]
		}
	}
	if maxPenalty > 0 && total > maxPenalty {
		total = maxPenalty
	}
	return total
}

// Apply deducts the hint penalty from a base score. The floor is 0:
// a penalty never drives the final score negative.
func (t PenaltyTable) Apply(baseScore, hintsUsed, maxPenalty int) int {
	return ClampScore(baseScore - t.Total(hintsUsed, maxPenalty))
}
