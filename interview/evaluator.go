package interview

import "context"

// Evaluation is whatever the scoring collaborator returned for one answer.
// The session record stores it verbatim; this core does not validate it.
type Evaluation struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Evaluator scores a candidate answer against the question asked. The real
// implementation calls a language-model endpoint and is out of scope here.
type Evaluator interface {
	Evaluate(ctx context.Context, question, answer, difficulty string) (Evaluation, error)
}
