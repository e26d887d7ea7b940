package evaluation

// Grade is the qualitative bucket shown to the learner alongside the score.
type Grade string

const (
	GradeExcellent Grade = "excellent"
	GradeGood      Grade = "good"
	GradeFair      Grade = "fair"
	GradePoor      Grade = "poor"
	GradeWrong     Grade = "wrong"
)

// GradeFor maps a 0–100 score to its grade bucket.
func GradeFor(score int) Grade {
	switch {
	case score >= 90:
		return GradeExcellent
	case score >= 75:
		return GradeGood
	case score >= 60:
		return GradeFair
	case score >= 40:
		return GradePoor
	default:
		return GradeWrong
	}
}
