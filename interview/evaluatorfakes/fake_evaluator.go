package fakeevaluator

import (
	"context"
	"sync"

	"github.com/hirelane/interview-server/interview"
)

var _ interview.Evaluator = (*FakeEvaluator)(nil)

// FakeEvaluator returns queued scores, or a fixed default, in place of the
// language-model scoring collaborator.
type FakeEvaluator struct {
	lock         sync.Mutex
	queuedScores []int
	DefaultScore int
	Err          error
	calls        int
}

func NewFakeEvaluator() *FakeEvaluator {
	return &FakeEvaluator{DefaultScore: 70}
}

// QueueScores sets the scores returned by the next calls, in order.
func (e *FakeEvaluator) QueueScores(scores ...int) {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.queuedScores = append(e.queuedScores, scores...)
}

func (e *FakeEvaluator) Evaluate(_ context.Context, question, answer, difficulty string) (interview.Evaluation, error) {
	e.lock.Lock()
	defer e.lock.Unlock()

	if e.Err != nil {
		return interview.Evaluation{}, e.Err
	}

	e.calls++
	score := e.DefaultScore
	if len(e.queuedScores) > 0 {
		score = e.queuedScores[0]
		e.queuedScores = e.queuedScores[1:]
	}
	return interview.Evaluation{Score: score, Feedback: "evaluated " + difficulty + " answer"}, nil
}

// Calls returns how many evaluations succeeded.
func (e *FakeEvaluator) Calls() int {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.calls
}
