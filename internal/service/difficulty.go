package service

import "sqldojo/internal/domain"

// difficultyWindow is how many of the most recent answer outcomes feed the
// next difficulty decision.
const difficultyWindow = 5

const (
	raiseThreshold = 0.8
	lowerThreshold = 0.4
)

// nextDifficulty computes the target difficulty for the next problem from
// the current level and the rolling correctness history (newest last).
// With fewer than a full window of outcomes the level holds steady; a high
// correct rate over the window raises it one step, a low rate lowers it.
func nextDifficulty(current int, history []bool) int {
	if current < domain.MinDifficulty {
		current = domain.MinDifficulty
	}
	if current > domain.MaxDifficulty {
		current = domain.MaxDifficulty
	}
	if len(history) < difficultyWindow {
		return current
	}

	window := history[len(history)-difficultyWindow:]
	correct := 0
	for _, ok := range window {
		if ok {
			correct++
		}
	}
	rate := float64(correct) / float64(len(window))

	switch {
	case rate > raiseThreshold && current < domain.MaxDifficulty:
		return current + 1
	case rate < lowerThreshold && current > domain.MinDifficulty:
		return current - 1
	default:
		return current
	}
}
