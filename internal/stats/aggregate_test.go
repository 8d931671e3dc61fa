package stats

import (
	"testing"

	"github.com/mind-engage/spellquest/internal/grading"
)

func att(text, diff string, mode grading.Mode, correct bool, score float64) Attempt {
	return Attempt{WordText: text, Difficulty: diff, Mode: mode, IsCorrect: correct, Score: score}
}

func TestAggregate(t *testing.T) {
	in := []Attempt{
		att("cat", "easy", grading.ModePractice, true, 100),
		att(" cat ", "easy", grading.ModeTest, false, 0),
		att("cat", "easy", grading.ModeTest, true, 80),
		att("dog", "easy", grading.ModePractice, true, 100),
		att("cat", "hard", grading.ModePractice, false, 0),
		att("tree", "medium", grading.ModeTest, true, 66.7),
	}
	sum := Aggregate(in)

	if len(sum.WordStats) != 4 {
		t.Fatalf("want 4 groups, got %+v", sum.WordStats)
	}
	order := []string{"cat/hard", "cat/easy", "dog/easy", "tree/medium"}
	for i, s := range sum.WordStats {
		if got := s.WordText + "/" + s.Difficulty; got != order[i] {
			t.Errorf("position %d: %s, want %s", i, got, order[i])
		}
	}

	cat := sum.WordStats[1]
	if cat.TotalAttempts != 3 || cat.CorrectAttempts != 2 || cat.IncorrectAttempts != 1 {
		t.Errorf("cat counts: %+v", cat)
	}
	if cat.SuccessRate != 66.7 || cat.AverageTestScore != 40 || cat.TestModeAttempts != 2 {
		t.Errorf("cat rates: %+v", cat)
	}
	if sum.WordStats[2].AverageTestScore != 0 {
		t.Errorf("no test attempts should average 0: %+v", sum.WordStats[2])
	}

	if sum.OverallAverageTestScore == nil || *sum.OverallAverageTestScore != 48.9 {
		t.Fatalf("overall average: %v", sum.OverallAverageTestScore)
	}
}

func TestAggregateTieBreaks(t *testing.T) {
	in := []Attempt{
		att("a", "easy", grading.ModePractice, false, 0),
		att("b", "easy", grading.ModePractice, false, 0),
		att("b", "easy", grading.ModePractice, false, 0),
		att("c", "easy", grading.ModePractice, false, 0),
		att("c", "easy", grading.ModePractice, false, 0),
		att("c", "easy", grading.ModePractice, true, 100),
		att("d", "easy", grading.ModePractice, false, 0),
		att("d", "easy", grading.ModePractice, true, 100),
		att("d", "easy", grading.ModePractice, false, 0),
	}
	sum := Aggregate(in)
	// b and a share 0% so more misses first; c and d share 33.3% and 2
	// misses so insertion order holds.
	want := []string{"b", "a", "c", "d"}
	for i, s := range sum.WordStats {
		if s.WordText != want[i] {
			t.Fatalf("order %v", sum.WordStats)
		}
	}
}

func TestAggregateEmpty(t *testing.T) {
	sum := Aggregate(nil)
	if sum.WordStats == nil || len(sum.WordStats) != 0 || sum.OverallAverageTestScore != nil {
		t.Fatalf("got %+v", sum)
	}
}
