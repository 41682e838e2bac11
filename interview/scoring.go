package interview

import (
	"math"

	"github.com/hirelane/interview-server/session"
)

var difficultyLevels = []string{session.DifficultyEasy, session.DifficultyMedium, session.DifficultyHard}

var difficultyWeights = map[string]float64{
	session.DifficultyEasy:   1.0,
	session.DifficultyMedium: 1.5,
	session.DifficultyHard:   2.0,
}

// UpdateDifficulty moves the difficulty level based on how the last score
// compared to the question's passing threshold. Progression is deliberately
// lenient: only clear over- or under-performance moves the level.
func UpdateDifficulty(current string, score, passingThreshold int) string {
	idx := 0
	for i, level := range difficultyLevels {
		if level == current {
			idx = i
			break
		}
	}

	switch {
	case score >= passingThreshold+25 && idx == 0:
		// Exceptional performance on an easy question jumps straight to hard
		return session.DifficultyHard
	case score >= passingThreshold+10 && idx < len(difficultyLevels)-1:
		return difficultyLevels[idx+1]
	case score < passingThreshold-5 && idx > 0:
		return difficultyLevels[idx-1]
	default:
		return current
	}
}

// CalculateFinalScore computes the weighted final score over whatever results
// exist. Unanswered questions count as zero-score medium-weight entries so an
// abandoned interview cannot outscore a finished one.
func CalculateFinalScore(results []session.Result, expectedTotalQuestions int) session.FinalResults {
	var totalWeightedScore, totalWeight float64
	var passedQuestions int

	for _, result := range results {
		weight, ok := difficultyWeights[result.Difficulty]
		if !ok {
			weight = 1.0
		}
		totalWeightedScore += float64(result.Score) * weight
		totalWeight += weight
		if result.Score >= result.PassingThreshold {
			passedQuestions++
		}
	}

	if unanswered := expectedTotalQuestions - len(results); unanswered > 0 {
		totalWeight += difficultyWeights[session.DifficultyMedium] * float64(unanswered)
	}

	if totalWeight == 0 {
		return session.FinalResults{
			OverallStatus:  "No answers evaluated",
			TotalQuestions: expectedTotalQuestions,
		}
	}

	finalScore := roundOne(totalWeightedScore / totalWeight)
	passRate := 0.0
	if expectedTotalQuestions > 0 {
		passRate = roundOne(float64(passedQuestions) / float64(expectedTotalQuestions) * 100)
	}

	return session.FinalResults{
		FinalScore:        finalScore,
		PassRate:          passRate,
		OverallStatus:     overallStatus(passRate),
		QuestionsAnswered: len(results),
		QuestionsPassed:   passedQuestions,
		TotalQuestions:    expectedTotalQuestions,
	}
}

func overallStatus(passRate float64) string {
	switch {
	case passRate >= 80:
		return "Excellent"
	case passRate >= 60:
		return "Good"
	case passRate >= 40:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

func roundOne(v float64) float64 {
	return math.Round(v*10) / 10
}
