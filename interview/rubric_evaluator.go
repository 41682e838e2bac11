package interview

import (
	"context"
	"strings"
)

// RubricEvaluator is a deterministic local scorer used when no external
// evaluation backend is configured. It grades answer substance only: length,
// vocabulary overlap with the question and the presence of reasoning markers.
type RubricEvaluator struct{}

var _ Evaluator = RubricEvaluator{}

func NewRubricEvaluator() RubricEvaluator {
	return RubricEvaluator{}
}

var reasoningMarkers = []string{"because", "trade-off", "tradeoff", "however", "for example", "instead", "depends"}

func (RubricEvaluator) Evaluate(_ context.Context, question, answer, _ string) (Evaluation, error) {
	words := strings.Fields(answer)

	var score int
	switch {
	case len(words) == 0:
		return Evaluation{Score: 0, Feedback: "No answer was provided."}, nil
	case len(words) < 10:
		score = 30
	case len(words) < 30:
		score = 55
	default:
		score = 70
	}

	score += overlapBonus(question, answer)

	lowered := strings.ToLower(answer)
	for _, marker := range reasoningMarkers {
		if strings.Contains(lowered, marker) {
			score += 5
			break
		}
	}

	if score > 100 {
		score = 100
	}

	return Evaluation{Score: score, Feedback: feedbackFor(score)}, nil
}

// overlapBonus rewards answers that engage with the question's own
// vocabulary, up to 20 points. Short connective words are ignored.
func overlapBonus(question, answer string) int {
	answerWords := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(answer)) {
		answerWords[strings.Trim(word, ".,?!:;")] = struct{}{}
	}

	bonus := 0
	for _, word := range strings.Fields(strings.ToLower(question)) {
		word = strings.Trim(word, ".,?!:;")
		if len(word) < 5 {
			continue
		}
		if _, ok := answerWords[word]; ok {
			bonus += 5
			if bonus >= 20 {
				break
			}
		}
	}
	return bonus
}

func feedbackFor(score int) string {
	switch {
	case score >= 80:
		return "Strong answer with clear reasoning and relevant detail."
	case score >= 60:
		return "Solid answer; more depth and concrete examples would strengthen it."
	case score >= 40:
		return "The answer touches the topic but stays at the surface."
	default:
		return "The answer does not engage with the question in enough depth."
	}
}
