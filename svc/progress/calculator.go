package progress

import "math"

// Summary is the rollup of one lesson for one user.
type Summary struct {
	CompletionRate int `json:"completionRate"` // 0..100
	GrowthStage    int `json:"growthStage"`    // 0..5
}

// Bands holds the completion-rate thresholds for growth stages 1 through 5,
// in ascending order. A rate below Bands[0] is stage 0. The cut points are a
// product decision, injected as configuration rather than hardcoded.
type Bands [5]int

// DefaultBands maps any started lesson to stage 1, then steps at each
// quarter, with stage 5 reserved for full completion.
var DefaultBands = Bands{1, 25, 50, 75, 100}

// Calculate derives the lesson summary from article counts. Pure function:
// a lesson with no articles yields {0, 0} rather than dividing by zero. The
// stage is a monotonic step function of the completion rate.
func Calculate(total, completed int, bands Bands) Summary {
	if total <= 0 {
		return Summary{}
	}

	rate := int(math.Round(100 * float64(completed) / float64(total)))
	rate = min(max(rate, 0), 100)

	stage := 0
	for i, threshold := range bands {
		if rate >= threshold {
			stage = i + 1
		}
	}

	return Summary{CompletionRate: rate, GrowthStage: stage}
}
