package grading

import (
	"math"
	"unicode/utf8"
)

// --- Strategies ---

// practiceStrategy is all or nothing.
type practiceStrategy struct{}

func (practiceStrategy) Score(_ ParsedAnswer, c Comparison, _ string) Score {
	if c.AllCorrect {
		return Score{Percentage: 100, Correct: true}
	}
	return Score{}
}

// testStrategy awards one point each for the start word, the end word and
// every target letter matched at its position, minus a penalty per letter
// beyond the target length.
type testStrategy struct{ overrunPenalty float64 }

func (s testStrategy) Score(p ParsedAnswer, c Comparison, targetUpper string) Score {
	target := letters(targetUpper)
	res := Score{MaxPoints: float64(2 + len(target))}
	if !p.ValidFormat {
		return res
	}

	points := 0.0
	if c.StartCorrect {
		points++
	}
	// Positions come from the concatenation, so fused tokens still earn
	// per-letter credit.
	given := letters(p.ConcatenatedLetters)
	for i, want := range target {
		if i < len(given) && given[i] == want {
			points++
		}
	}
	if c.EndCorrect {
		points++
	}
	if extra := utf8.RuneCountInString(p.ConcatenatedLetters) - len(target); extra > 0 {
		points -= s.overrunPenalty * float64(extra)
	}

	// Clamp the percentage, not the points.
	pct := math.Max(0, points/res.MaxPoints*100)
	res.PointsEarned = points
	res.Percentage = roundTenth(pct)
	res.Correct = res.Percentage > 0
	return res
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
