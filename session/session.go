// Package session holds the session record, its in-memory store and the pure
// timer functions. A Record is the single source of truth for one in-progress
// interview; everything else in the system is a client of it.
package session

import "time"

// Status is the lifecycle state of a session record. Transitions are
// monotonic: active -> completed or active -> expired, never back.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusExpired   Status = "expired"
)

// Difficulty levels for interview questions.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question is one entry of a session's question pool. Answer/Score/Feedback
// are filled in once the question has been used.
type Question struct {
	Text             string `json:"question"`
	Difficulty       string `json:"difficulty"`
	PassingThreshold int    `json:"passing_threshold"`
	Answer           string `json:"ans,omitempty"`
	Score            int    `json:"score,omitempty"`
	Feedback         string `json:"feedback,omitempty"`
	Answered         bool   `json:"answered,omitempty"`
}

// Result is one per-question outcome. The results list is append-only while
// the record is active and frozen afterwards.
type Result struct {
	QuestionID       int       `json:"question_id"`
	Question         string    `json:"question"`
	Answer           string    `json:"answer"`
	Difficulty       string    `json:"difficulty"`
	Score            int       `json:"score"`
	Feedback         string    `json:"feedback"`
	PassingThreshold int       `json:"passing_threshold"`
	Timestamp        time.Time `json:"timestamp"`
}

// FinalResults is the aggregate outcome of a finished (completed or expired)
// interview. Partial results count; there is no separate "did not finish"
// state.
type FinalResults struct {
	FinalScore        float64 `json:"final_score"`
	PassRate          float64 `json:"pass_rate"`
	OverallStatus     string  `json:"overall_status"`
	QuestionsAnswered int     `json:"questions_answered"`
	QuestionsPassed   int     `json:"questions_passed"`
	TotalQuestions    int     `json:"total_questions"`
}

// Record is the mutable state of one interview session. All mutation must
// happen under the owning service's per-session lock.
type Record struct {
	SessionID         string // immutable, created once
	CreatedAt         time.Time
	Fingerprint       string // browser that owns this session, set at creation
	CandidateName     string
	CandidateEmail    string
	Position          string
	LinkID            string // pre-provisioned link id; empty for ad-hoc sessions
	Status            Status
	TimerStart        time.Time // budget starts here, never reset
	TimeLimit         time.Duration
	CurrentQuestion   *Question
	CurrentIndex      int // 1-based index of the question currently asked
	TotalQuestions    int
	QuestionPool      []Question
	CurrentDifficulty string
	Results           []Result
	Final             *FinalResults
	EndedAt           time.Time
	EndReason         string
}

// Linked reports whether the session was spawned from a pre-provisioned
// interview link.
func (r *Record) Linked() bool {
	return r.LinkID != ""
}

// Progressed reports whether the candidate has answered at least one question.
// Zero-progress records are treated as aborted immediate retries, not state
// worth resuming.
func (r *Record) Progressed() bool {
	return len(r.Results) > 0
}

// Finalized reports whether the record has reached a terminal status.
func (r *Record) Finalized() bool {
	return r.Status != StatusActive
}
