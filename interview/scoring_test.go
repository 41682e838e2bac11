package interview_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hirelane/interview-server/interview"
	"github.com/hirelane/interview-server/session"
)

func TestUpdateDifficulty(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		score     int
		threshold int
		want      string
	}{
		{"exceptional easy jumps to hard", session.DifficultyEasy, 90, 60, session.DifficultyHard},
		{"strong score moves up one", session.DifficultyEasy, 72, 60, session.DifficultyMedium},
		{"strong medium moves to hard", session.DifficultyMedium, 75, 60, session.DifficultyHard},
		{"hard has no level above", session.DifficultyHard, 100, 60, session.DifficultyHard},
		{"clear miss moves down", session.DifficultyMedium, 50, 60, session.DifficultyEasy},
		{"easy has no level below", session.DifficultyEasy, 10, 60, session.DifficultyEasy},
		{"borderline pass stays put", session.DifficultyMedium, 65, 60, session.DifficultyMedium},
		{"borderline miss stays put", session.DifficultyMedium, 56, 60, session.DifficultyMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, interview.UpdateDifficulty(tt.current, tt.score, tt.threshold))
		})
	}
}

func TestCalculateFinalScoreWeighted(t *testing.T) {
	now := time.Now()
	results := []session.Result{
		{Difficulty: session.DifficultyEasy, Score: 80, PassingThreshold: 60, Timestamp: now},
		{Difficulty: session.DifficultyMedium, Score: 70, PassingThreshold: 60, Timestamp: now},
		{Difficulty: session.DifficultyHard, Score: 50, PassingThreshold: 60, Timestamp: now},
	}

	final := interview.CalculateFinalScore(results, 3)

	// (80*1.0 + 70*1.5 + 50*2.0) / (1.0 + 1.5 + 2.0)
	require.InDelta(t, 63.3, final.FinalScore, 0.001)
	require.InDelta(t, 66.7, final.PassRate, 0.001)
	require.Equal(t, "Good", final.OverallStatus)
	require.Equal(t, 3, final.QuestionsAnswered)
	require.Equal(t, 2, final.QuestionsPassed)
}

// Unanswered questions dilute the weighted score so an abandoned interview
// cannot outscore a finished one.
func TestCalculateFinalScoreUnansweredPenalty(t *testing.T) {
	results := []session.Result{
		{Difficulty: session.DifficultyEasy, Score: 100, PassingThreshold: 60},
	}

	partial := interview.CalculateFinalScore(results, 5)
	complete := interview.CalculateFinalScore(results, 1)

	require.Less(t, partial.FinalScore, complete.FinalScore)
	// 100*1.0 / (1.0 + 4*1.5)
	require.InDelta(t, 14.3, partial.FinalScore, 0.001)
	require.InDelta(t, 20.0, partial.PassRate, 0.001)
	require.Equal(t, "Needs Improvement", partial.OverallStatus)
}

func TestCalculateFinalScoreNoResults(t *testing.T) {
	final := interview.CalculateFinalScore(nil, 0)
	require.Equal(t, "No answers evaluated", final.OverallStatus)
	require.Equal(t, 0.0, final.FinalScore)
}

func TestOverallStatusBands(t *testing.T) {
	makeResults := func(scores ...int) []session.Result {
		results := make([]session.Result, len(scores))
		for i, score := range scores {
			results[i] = session.Result{Difficulty: session.DifficultyMedium, Score: score, PassingThreshold: 60}
		}
		return results
	}

	excellent := interview.CalculateFinalScore(makeResults(90, 90, 90, 90, 90), 5)
	require.Equal(t, "Excellent", excellent.OverallStatus)

	fair := interview.CalculateFinalScore(makeResults(90, 90, 10, 10, 10), 5)
	require.Equal(t, "Fair", fair.OverallStatus)
}
