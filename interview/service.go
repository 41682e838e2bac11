// Package interview is the session lifecycle manager: it decides whether a
// start request is a fresh interview or a legitimate resumption, enforces the
// one-browser-per-session and fixed-time-budget invariants, and owns the
// single teardown path every trigger funnels through.
package interview

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/hirelane/interview-server/artifacts"
	"github.com/hirelane/interview-server/identity"
	"github.com/hirelane/interview-server/internal/config"
	apperrors "github.com/hirelane/interview-server/internal/errors"
	"github.com/hirelane/interview-server/linklock"
	"github.com/hirelane/interview-server/session"
)

// Session end reasons recorded on finalization.
const (
	endReasonCompleted   = "completed"
	endReasonTimeExpired = "time_expired"
	endReasonMaxAge      = "max_age"
)

// Repos holds all store dependencies of the lifecycle manager. Each is a
// single shared resource; only its documented operations are used.
type Repos struct {
	Store     session.Store     // in-memory session records
	Identity  identity.Repo     // durable user identifier -> session id map
	Locks     linklock.Registry // link id -> owning fingerprint
	Artifacts artifacts.Store   // per-session question sets and reports
}

// Service drives every in-progress proctored interview. All record mutation,
// from the request path and the sweeper alike, is serialized per session id
// through one keyed mutex.
type Service struct {
	repos        Repos
	evaluator    Evaluator
	sessionLocks *keyedMutex
	nowTime      func() time.Time // injectable for testing

	timeLimit           time.Duration
	maxSessionAge       time.Duration
	questionsPerSession int
}

// Option modifies the Service instance.
type Option func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// New initializes the lifecycle manager with its required dependencies.
func New(repos Repos, evaluator Evaluator, cfg config.InterviewConfig, options ...Option) (*Service, error) {
	if repos.Store == nil {
		return nil, errors.New("[interview.New] Store is required")
	}
	if repos.Identity == nil {
		return nil, errors.New("[interview.New] Identity repo is required")
	}
	if repos.Locks == nil {
		return nil, errors.New("[interview.New] Locks registry is required")
	}
	if repos.Artifacts == nil {
		return nil, errors.New("[interview.New] Artifacts store is required")
	}
	if evaluator == nil {
		return nil, errors.New("[interview.New] evaluator is required")
	}

	service := &Service{
		repos:               repos,
		evaluator:           evaluator,
		sessionLocks:        newKeyedMutex(),
		nowTime:             time.Now,
		timeLimit:           cfg.GetInterviewTimeLimit(),
		maxSessionAge:       cfg.GetMaxSessionAge(),
		questionsPerSession: cfg.GetQuestionsPerInterview(),
	}

	for _, opt := range options {
		opt(service)
	}

	return service, nil
}

// StartRequest carries everything needed to start or resume an interview.
type StartRequest struct {
	CandidateName  string
	CandidateEmail string
	Position       string
	LinkID         string // set for link-scoped interviews
	Fingerprint    string
}

// StartResult reports whether the session was started fresh or resumed.
type StartResult struct {
	SessionID        string
	Status           string // "started" or "resumed"
	Question         string
	QuestionNumber   int
	TotalQuestions   int
	RemainingMinutes float64
}

const (
	StartStatusStarted = "started"
	StartStatusResumed = "resumed"
)

// StartSession resolves the caller's persistent identity, then either
// reattaches it to its still-active session or creates a fresh record.
// The budget timer starts exactly once, at record creation.
func (s *Service) StartSession(ctx context.Context, req StartRequest) (*StartResult, error) {
	if req.CandidateEmail == "" {
		return nil, errors.New("[StartSession] candidate email is required")
	}

	var userIdentifier string
	if req.LinkID != "" {
		userIdentifier = identity.LinkedIdentifier(req.LinkID, req.CandidateEmail)
	} else {
		userIdentifier = identity.AdHocIdentifier(req.CandidateEmail, req.Fingerprint)
	}

	// A failed durable write is a hard failure: proceeding with a
	// non-persisted id would silently break future resumption.
	sessionID, err := s.repos.Identity.Resolve(ctx, userIdentifier)
	if err != nil {
		return nil, err
	}

	unlock := s.sessionLocks.Lock(sessionID)
	defer unlock()

	claimCreated := false
	if req.LinkID != "" {
		// The registry rejects a foreign fingerprint before the resumption
		// decision is ever consulted. created comes from the claim itself;
		// a separate existence probe could misattribute a claim another
		// request established concurrently.
		owned, created := s.repos.Locks.TryClaim(req.LinkID, req.Fingerprint)
		if !owned {
			return nil, apperrors.ErrBrowserMismatch
		}
		claimCreated = created
	}

	now := s.nowTime()

	if record, ok := s.repos.Store.Get(sessionID); ok && s.canResume(record, req) {
		log.Info().Str("session_id", sessionID).Int("question", record.CurrentIndex).
			Msg("resuming interview session")
		return &StartResult{
			SessionID:        sessionID,
			Status:           StartStatusResumed,
			Question:         record.CurrentQuestion.Text,
			QuestionNumber:   record.CurrentIndex,
			TotalQuestions:   record.TotalQuestions,
			RemainingMinutes: session.RemainingMinutes(record.TimerStart, record.TimeLimit, now),
		}, nil
	}

	result, err := s.startFresh(sessionID, req, now)
	if err != nil && claimCreated {
		// Roll back a claim this request just created: no session record
		// references the link yet, so the lock-before-teardown window
		// Release normally guards against cannot exist.
		s.repos.Locks.Release(req.LinkID)
	}
	return result, err
}

// canResume applies the resumption rules: the record must still be active,
// owned by the same fingerprint, match the request's link or candidate, and
// have real progress. A zero-progress record is an aborted immediate retry,
// not state worth preserving.
func (s *Service) canResume(record *session.Record, req StartRequest) bool {
	if record.Status != session.StatusActive || record.CurrentQuestion == nil {
		return false
	}
	if record.Fingerprint != req.Fingerprint {
		return false
	}
	if !record.Progressed() {
		return false
	}
	if req.LinkID != "" {
		return record.LinkID == req.LinkID
	}
	return !record.Linked() && record.CandidateEmail == req.CandidateEmail
}

func (s *Service) startFresh(sessionID string, req StartRequest, now time.Time) (*StartResult, error) {
	var pool []session.Question
	var err error
	if req.LinkID != "" {
		pool, err = s.repos.Artifacts.QuestionSet(req.LinkID)
	} else {
		pool, err = s.repos.Artifacts.DefaultQuestionSet()
	}
	if err != nil {
		return nil, err
	}

	totalQuestions := s.questionsPerSession
	if len(pool) < totalQuestions {
		totalQuestions = len(pool)
	}

	record := &session.Record{
		SessionID:         sessionID,
		CreatedAt:         now,
		Fingerprint:       req.Fingerprint,
		CandidateName:     req.CandidateName,
		CandidateEmail:    req.CandidateEmail,
		Position:          req.Position,
		LinkID:            req.LinkID,
		Status:            session.StatusActive,
		TimerStart:        now,
		TimeLimit:         s.timeLimit,
		TotalQuestions:    totalQuestions,
		QuestionPool:      pool,
		CurrentDifficulty: session.DifficultyEasy,
	}

	first := chooseNextQuestion(record.QuestionPool, session.DifficultyEasy)
	if first == nil {
		return nil, errors.Wrap(apperrors.ErrQuestionSetNotFound, "no usable questions in pool")
	}
	record.CurrentQuestion = first
	record.CurrentIndex = 1

	// Replaces any stale record under the same id
	s.repos.Store.Put(sessionID, record)

	log.Info().Str("session_id", sessionID).Str("fingerprint", req.Fingerprint).
		Bool("linked", record.Linked()).Msg("started interview session")

	return &StartResult{
		SessionID:        sessionID,
		Status:           StartStatusStarted,
		Question:         first.Text,
		QuestionNumber:   1,
		TotalQuestions:   totalQuestions,
		RemainingMinutes: s.timeLimit.Minutes(),
	}, nil
}

// SubmitRequest carries one answer. QuestionID names the question index the
// answer targets so a concurrent duplicate can be detected.
type SubmitRequest struct {
	SessionID   string
	Fingerprint string
	QuestionID  int
	AnswerText  string
}

// SubmitResult is the outcome of processing one answer.
type SubmitResult struct {
	Status           string // "question_processed" or "interview_complete"
	Evaluation       Evaluation
	NextQuestion     string
	QuestionNumber   int
	TotalQuestions   int
	RemainingMinutes float64
	Final            *session.FinalResults
}

const (
	SubmitStatusProcessed = "question_processed"
	SubmitStatusComplete  = "interview_complete"
)

// SubmitAnswer evaluates one answer and advances the session. An answer
// arriving after the budget is exhausted finalizes the record as expired,
// with whatever partial results exist, before being rejected.
func (s *Service) SubmitAnswer(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	unlock := s.sessionLocks.Lock(req.SessionID)
	defer unlock()

	record, ok := s.repos.Store.Get(req.SessionID)
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	if record.Fingerprint != req.Fingerprint {
		return nil, apperrors.ErrBrowserMismatch
	}

	now := s.nowTime()
	switch record.Status {
	case session.StatusExpired:
		return nil, apperrors.ErrSessionExpired
	case session.StatusCompleted:
		return nil, apperrors.ErrSessionCompleted
	}

	if session.Expired(record.TimerStart, record.TimeLimit, now) {
		s.finalize(record, now, session.StatusExpired, endReasonTimeExpired)
		return nil, apperrors.ErrSessionExpired
	}

	if record.CurrentQuestion == nil {
		return nil, apperrors.ErrNoActiveQuestion
	}
	if req.QuestionID != record.CurrentIndex {
		// Lost a duplicate-submit race; the winning answer already advanced
		// the session.
		return nil, apperrors.ErrStaleQuestion
	}

	evaluation, err := s.evaluator.Evaluate(ctx, record.CurrentQuestion.Text, req.AnswerText, record.CurrentDifficulty)
	if err != nil {
		return nil, errors.Wrap(err, "[SubmitAnswer] evaluate")
	}

	question := record.CurrentQuestion
	record.Results = append(record.Results, session.Result{
		QuestionID:       record.CurrentIndex,
		Question:         question.Text,
		Answer:           req.AnswerText,
		Difficulty:       record.CurrentDifficulty,
		Score:            evaluation.Score,
		Feedback:         evaluation.Feedback,
		PassingThreshold: question.PassingThreshold,
		Timestamp:        now,
	})
	question.Answered = true
	question.Answer = req.AnswerText
	question.Score = evaluation.Score
	question.Feedback = evaluation.Feedback

	record.CurrentDifficulty = UpdateDifficulty(record.CurrentDifficulty, evaluation.Score, question.PassingThreshold)

	next := chooseNextQuestion(record.QuestionPool, record.CurrentDifficulty)
	if len(record.Results) >= record.TotalQuestions || next == nil {
		s.finalize(record, now, session.StatusCompleted, endReasonCompleted)
		return &SubmitResult{
			Status:         SubmitStatusComplete,
			Evaluation:     evaluation,
			QuestionNumber: record.CurrentIndex,
			TotalQuestions: record.TotalQuestions,
			Final:          record.Final,
		}, nil
	}

	record.CurrentQuestion = next
	record.CurrentIndex++

	return &SubmitResult{
		Status:           SubmitStatusProcessed,
		Evaluation:       evaluation,
		NextQuestion:     next.Text,
		QuestionNumber:   record.CurrentIndex,
		TotalQuestions:   record.TotalQuestions,
		RemainingMinutes: session.RemainingMinutes(record.TimerStart, record.TimeLimit, now),
	}, nil
}

// StatusResult is a read-only snapshot of a session.
type StatusResult struct {
	SessionID        string
	Status           session.Status
	QuestionNumber   int
	TotalQuestions   int
	ResultsCount     int
	AverageScore     float64
	RemainingMinutes float64
	Final            *session.FinalResults
}

// GetStatus reports the session's state. An active record found past its
// budget is finalized as expired first, so callers never observe an active
// session with zero time remaining.
func (s *Service) GetStatus(_ context.Context, sessionID, fp string) (*StatusResult, error) {
	unlock := s.sessionLocks.Lock(sessionID)
	defer unlock()

	record, ok := s.repos.Store.Get(sessionID)
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	if record.Fingerprint != fp {
		return nil, apperrors.ErrBrowserMismatch
	}

	now := s.nowTime()
	if record.Status == session.StatusActive && session.Expired(record.TimerStart, record.TimeLimit, now) {
		s.finalize(record, now, session.StatusExpired, endReasonTimeExpired)
	}

	var averageScore float64
	if len(record.Results) > 0 {
		total := 0
		for _, result := range record.Results {
			total += result.Score
		}
		averageScore = roundOne(float64(total) / float64(len(record.Results)))
	}

	return &StatusResult{
		SessionID:        sessionID,
		Status:           record.Status,
		QuestionNumber:   record.CurrentIndex,
		TotalQuestions:   record.TotalQuestions,
		ResultsCount:     len(record.Results),
		AverageScore:     averageScore,
		RemainingMinutes: session.RemainingMinutes(record.TimerStart, record.TimeLimit, now),
	}, nil
}

// EndResult is returned by EndSession after full teardown.
type EndResult struct {
	SessionID string
	Final     session.FinalResults
}

// EndSession finalizes the interview with whatever results exist and runs
// full Resource Teardown.
func (s *Service) EndSession(_ context.Context, sessionID, fp string) (*EndResult, error) {
	unlock := s.sessionLocks.Lock(sessionID)
	defer unlock()

	record, ok := s.repos.Store.Get(sessionID)
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	if record.Fingerprint != fp {
		return nil, apperrors.ErrBrowserMismatch
	}

	now := s.nowTime()
	if record.Status == session.StatusActive {
		status := session.StatusCompleted
		reason := endReasonCompleted
		if session.Expired(record.TimerStart, record.TimeLimit, now) {
			status = session.StatusExpired
			reason = endReasonTimeExpired
		}
		s.finalize(record, now, status, reason)
	}

	if record.Final == nil {
		computed := CalculateFinalScore(record.Results, record.TotalQuestions)
		record.Final = &computed
	}
	final := *record.Final
	s.teardownLocked(sessionID)

	return &EndResult{SessionID: sessionID, Final: final}, nil
}

// Teardown removes the session's store entry, releases its link lock and
// deletes its artifacts. Idempotent: safe to invoke from the request path,
// the frequent sweep and the max-age sweep, in any order, any number of
// times.
func (s *Service) Teardown(_ context.Context, sessionID string) {
	unlock := s.sessionLocks.Lock(sessionID)
	defer unlock()

	s.teardownLocked(sessionID)
}

// teardownLocked must be called with the session's keyed mutex held.
func (s *Service) teardownLocked(sessionID string) {
	record, ok := s.repos.Store.Get(sessionID)
	s.repos.Store.Remove(sessionID)
	if !ok {
		return
	}

	if record.Linked() {
		// Lock release rides teardown so there is never a window where the
		// lock is gone but the session still exists.
		s.repos.Locks.Release(record.LinkID)
		if err := s.repos.Artifacts.Delete(record.LinkID); err != nil {
			log.Warn().Err(err).Str("link_id", record.LinkID).Msg("artifact delete failed during teardown")
		}
	}

	log.Info().Str("session_id", sessionID).Msg("session torn down")
}

// finalize transitions an active record to a terminal status, computes final
// results over the existing partial results, writes the report and deletes
// the question-set artifact. The store entry is retained for status queries
// until teardown removes it. Must be called with the session lock held.
func (s *Service) finalize(record *session.Record, now time.Time, status session.Status, reason string) {
	if record.Status != session.StatusActive {
		return
	}

	record.Status = status
	record.EndedAt = now
	record.EndReason = reason
	final := CalculateFinalScore(record.Results, record.TotalQuestions)
	record.Final = &final

	location, err := s.repos.Artifacts.WriteReport(artifacts.Report{
		SessionID:         record.SessionID,
		CandidateName:     record.CandidateName,
		CandidateEmail:    record.CandidateEmail,
		Position:          record.Position,
		StartTime:         record.TimerStart,
		EndTime:           now,
		EndReason:         reason,
		TotalQuestions:    record.TotalQuestions,
		QuestionsAnswered: len(record.Results),
		Results:           record.Results,
		Final:             final,
	})
	if err != nil {
		log.Error().Err(err).Str("session_id", record.SessionID).Msg("report write failed")
	} else {
		log.Info().Str("session_id", record.SessionID).Str("report", location).
			Str("reason", reason).Msg("session finalized")
	}

	// Question sets are single-use; drop them as soon as the session is done
	if record.Linked() {
		if err := s.repos.Artifacts.Delete(record.LinkID); err != nil {
			log.Warn().Err(err).Str("link_id", record.LinkID).Msg("artifact delete failed on finalize")
		}
	}
}
