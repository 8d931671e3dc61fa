package stats

import (
	"math"
	"sort"
	"strings"

	"github.com/mind-engage/spellquest/internal/grading"
)

// Aggregate groups attempts by trimmed word text and difficulty. The
// hardest words come first: lowest success rate, then most misses, then
// most attempts.
func Aggregate(attempts []Attempt) Summary {
	type key struct{ text, difficulty string }
	idx := map[key]int{}
	var out []WordStat

	var testSum float64
	var testCount int

	for _, a := range attempts {
		text := strings.TrimSpace(a.WordText)
		k := key{text, a.Difficulty}
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, WordStat{WordText: text, Difficulty: a.Difficulty})
		}
		s := &out[i]
		s.TotalAttempts++
		if a.IsCorrect {
			s.CorrectAttempts++
		}
		if a.Mode == grading.ModeTest {
			s.TestScoreSum += a.Score
			s.TestModeAttempts++
			testSum += a.Score
			testCount++
		}
	}

	for i := range out {
		s := &out[i]
		s.IncorrectAttempts = s.TotalAttempts - s.CorrectAttempts
		s.SuccessRate = round1(float64(s.CorrectAttempts) / float64(s.TotalAttempts) * 100)
		if s.TestModeAttempts > 0 {
			s.AverageTestScore = round1(s.TestScoreSum / float64(s.TestModeAttempts))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.SuccessRate != b.SuccessRate {
			return a.SuccessRate < b.SuccessRate
		}
		if a.IncorrectAttempts != b.IncorrectAttempts {
			return a.IncorrectAttempts > b.IncorrectAttempts
		}
		return a.TotalAttempts > b.TotalAttempts
	})

	sum := Summary{WordStats: out}
	if sum.WordStats == nil {
		sum.WordStats = []WordStat{}
	}
	if testCount > 0 {
		avg := round1(testSum / float64(testCount))
		sum.OverallAverageTestScore = &avg
	}
	return sum
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }
