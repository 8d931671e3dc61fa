package stats

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mind-engage/spellquest/internal/grading"
)

// NewAttemptID builds an ID that sorts by completion time and then by
// position within the game.
func NewAttemptID(completedAt int64, index int) string {
	return fmt.Sprintf("attempt-%d-%04d-%s", completedAt, index, uuid.NewString()[:8])
}

// Attempt is one graded answer as kept for the tutor's statistics.
type Attempt struct {
	ID           string       `json:"id"`
	SessionID    string       `json:"session_id,omitempty"`
	WordID       string       `json:"word_id"`
	WordText     string       `json:"word_text"`
	Difficulty   string       `json:"difficulty"`
	Mode         grading.Mode `json:"mode"`
	RawAnswer    string       `json:"raw_answer"`
	ValidFormat  bool         `json:"valid_format"`
	IsCorrect    bool         `json:"is_correct"`
	Score        float64      `json:"score"`
	ErrorType    string       `json:"error_type,omitempty"`
	StartToken   string       `json:"start_token,omitempty"`
	LetterTokens []string     `json:"letter_tokens,omitempty"`
	EndToken     string       `json:"end_token,omitempty"`
	AttemptedAt  int64        `json:"attempted_at"` // unix millis
}

type WordStat struct {
	WordText          string  `json:"word_text"`
	Difficulty        string  `json:"difficulty"`
	TotalAttempts     int     `json:"total_attempts"`
	CorrectAttempts   int     `json:"correct_attempts"`
	IncorrectAttempts int     `json:"incorrect_attempts"`
	SuccessRate       float64 `json:"success_rate"`
	TestModeAttempts  int     `json:"test_mode_attempts"`
	TestScoreSum      float64 `json:"-"`
	AverageTestScore  float64 `json:"average_test_score"`
}

type Summary struct {
	WordStats []WordStat `json:"word_stats"`
	// nil when no test-mode attempt exists
	OverallAverageTestScore *float64 `json:"overall_average_test_score"`
}
