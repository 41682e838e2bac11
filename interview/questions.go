package interview

import (
	"strings"

	"github.com/hirelane/interview-server/session"
)

// minQuestionLength filters out truncated or corrupt generator output.
const minQuestionLength = 10

// chooseNextQuestion picks the first unanswered valid question at the
// requested difficulty, falling back to any unanswered valid question when
// the requested level is exhausted. Returns nil when the pool is spent.
// The returned pointer aliases the pool entry so answer bookkeeping sticks.
func chooseNextQuestion(pool []session.Question, difficulty string) *session.Question {
	for i := range pool {
		if pool[i].Difficulty == difficulty && usable(&pool[i]) {
			return &pool[i]
		}
	}
	for i := range pool {
		if usable(&pool[i]) {
			return &pool[i]
		}
	}
	return nil
}

func usable(q *session.Question) bool {
	if q.Answered {
		return false
	}
	text := strings.TrimSpace(q.Text)
	// Generator occasionally emits markdown-mangled questions; skip them
	return len(text) >= minQuestionLength && !strings.Contains(text, "**")
}
