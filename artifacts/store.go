// Package artifacts holds the per-session files the lifecycle manager owns
// the cleanup of: pre-provisioned question sets keyed by link id, and the
// report written when an interview finishes.
package artifacts

import (
	"time"

	"github.com/hirelane/interview-server/session"
)

// Report is the persisted outcome of a finished interview. Partial results
// are reported as-is when a session expired mid-flight.
type Report struct {
	SessionID         string               `json:"session_id"`
	CandidateName     string               `json:"candidate_name"`
	CandidateEmail    string               `json:"candidate_email"`
	Position          string               `json:"position"`
	StartTime         time.Time            `json:"start_time"`
	EndTime           time.Time            `json:"end_time"`
	EndReason         string               `json:"end_reason"`
	TotalQuestions    int                  `json:"total_questions"`
	QuestionsAnswered int                  `json:"questions_answered"`
	Results           []session.Result     `json:"results"`
	Final             session.FinalResults `json:"final_results"`
}

// Store is the artifact collaborator. Question generation itself is out of
// scope; this store only loads what a generator provisioned and deletes it
// during teardown.
type Store interface {
	// QuestionSet loads the question pool provisioned for a link.
	QuestionSet(linkID string) ([]session.Question, error)

	// DefaultQuestionSet loads the generic pool used by ad-hoc interviews.
	DefaultQuestionSet() ([]session.Question, error)

	// Exists reports whether a question-set artifact exists for the link.
	Exists(linkID string) bool

	// Delete removes the question-set artifact for the link. Deleting an
	// absent artifact is a no-op.
	Delete(linkID string) error

	// WriteReport persists the final report and returns its location.
	WriteReport(report Report) (string, error)
}
