package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hirelane/interview-server/fingerprint"
	apperrors "github.com/hirelane/interview-server/internal/errors"
	"github.com/hirelane/interview-server/interview"
	"github.com/hirelane/interview-server/session"
)

const contentTypeJSON = "application/json; charset=utf-8"

type startInterviewRequest struct {
	CandidateName  string `json:"candidate_name"`
	CandidateEmail string `json:"candidate_email"`
	Position       string `json:"position"`
	LinkID         string `json:"link_id,omitempty"`
}

type startInterviewResponse struct {
	SessionID        string  `json:"session_id"`
	Status           string  `json:"status"`
	Question         string  `json:"question"`
	QuestionNumber   int     `json:"question_number"`
	TotalQuestions   int     `json:"total_questions"`
	RemainingMinutes float64 `json:"remaining_minutes"`
}

// StartInterviewHandler starts a fresh interview or resumes the caller's
// still-active one. The browser fingerprint is derived server-side from
// request metadata, never trusted from the body.
func (s *Server) StartInterviewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req startInterviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, "invalid_request", "failed to parse request body", http.StatusBadRequest)
			return
		}
		if req.CandidateEmail == "" {
			writeJSONError(w, "invalid_request", "candidate_email is required", http.StatusBadRequest)
			return
		}

		result, err := s.interviews.StartSession(r.Context(), interview.StartRequest{
			CandidateName:  req.CandidateName,
			CandidateEmail: req.CandidateEmail,
			Position:       req.Position,
			LinkID:         req.LinkID,
			Fingerprint:    fingerprint.FromRequest(r),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, startInterviewResponse{
			SessionID:        result.SessionID,
			Status:           result.Status,
			Question:         result.Question,
			QuestionNumber:   result.QuestionNumber,
			TotalQuestions:   result.TotalQuestions,
			RemainingMinutes: result.RemainingMinutes,
		})
	}
}

type submitAnswerRequest struct {
	SessionID  string `json:"session_id"`
	QuestionID int    `json:"question_id"`
	Answer     string `json:"answer"`
}

type submitAnswerResponse struct {
	Status           string                `json:"status"`
	Score            int                   `json:"score"`
	Feedback         string                `json:"feedback"`
	NextQuestion     string                `json:"next_question,omitempty"`
	QuestionNumber   int                   `json:"question_number"`
	TotalQuestions   int                   `json:"total_questions"`
	RemainingMinutes float64               `json:"remaining_minutes"`
	FinalResults     *session.FinalResults `json:"final_results,omitempty"`
}

func (s *Server) SubmitAnswerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitAnswerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, "invalid_request", "failed to parse request body", http.StatusBadRequest)
			return
		}
		if req.SessionID == "" {
			writeJSONError(w, "invalid_request", "session_id is required", http.StatusBadRequest)
			return
		}

		result, err := s.interviews.SubmitAnswer(r.Context(), interview.SubmitRequest{
			SessionID:   req.SessionID,
			Fingerprint: fingerprint.FromRequest(r),
			QuestionID:  req.QuestionID,
			AnswerText:  req.Answer,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, submitAnswerResponse{
			Status:           result.Status,
			Score:            result.Evaluation.Score,
			Feedback:         result.Evaluation.Feedback,
			NextQuestion:     result.NextQuestion,
			QuestionNumber:   result.QuestionNumber,
			TotalQuestions:   result.TotalQuestions,
			RemainingMinutes: result.RemainingMinutes,
			FinalResults:     result.Final,
		})
	}
}

type interviewStatusResponse struct {
	SessionID        string         `json:"session_id"`
	Status           session.Status `json:"status"`
	QuestionNumber   int            `json:"question_number"`
	TotalQuestions   int            `json:"total_questions"`
	ResultsCount     int            `json:"results_count"`
	AverageScore     float64        `json:"average_score"`
	RemainingMinutes float64        `json:"remaining_minutes"`
}

func (s *Server) InterviewStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.PathValue("session_id")
		if sessionID == "" {
			writeJSONError(w, "invalid_request", "session_id is required", http.StatusBadRequest)
			return
		}

		status, err := s.interviews.GetStatus(r.Context(), sessionID, fingerprint.FromRequest(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, interviewStatusResponse{
			SessionID:        status.SessionID,
			Status:           status.Status,
			QuestionNumber:   status.QuestionNumber,
			TotalQuestions:   status.TotalQuestions,
			ResultsCount:     status.ResultsCount,
			AverageScore:     status.AverageScore,
			RemainingMinutes: status.RemainingMinutes,
		})
	}
}

type endInterviewRequest struct {
	SessionID string `json:"session_id"`
}

type endInterviewResponse struct {
	SessionID    string               `json:"session_id"`
	Status       string               `json:"status"`
	FinalResults session.FinalResults `json:"final_results"`
}

func (s *Server) EndInterviewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req endInterviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, "invalid_request", "failed to parse request body", http.StatusBadRequest)
			return
		}
		if req.SessionID == "" {
			writeJSONError(w, "invalid_request", "session_id is required", http.StatusBadRequest)
			return
		}

		result, err := s.interviews.EndSession(r.Context(), req.SessionID, fingerprint.FromRequest(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, endInterviewResponse{
			SessionID:    result.SessionID,
			Status:       "ended",
			FinalResults: result.Final,
		})
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":    "healthy",
			"service":   s.config.GetAppName(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// DebugFingerprintHandler reports the identity token the server derives for
// the calling browser. Useful when diagnosing unexpected mismatch rejections.
func (s *Server) DebugFingerprintHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"fingerprint": fingerprint.FromRequest(r),
			"user_agent":  r.Header.Get("User-Agent"),
		})
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// writeJSONError writes an API error response
func writeJSONError(w http.ResponseWriter, errorCode, description string, statusCode int) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             errorCode,
		"error_description": description,
	})
}

// writeServiceError maps lifecycle errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrSessionNotFound):
		writeJSONError(w, "session_not_found", err.Error(), http.StatusNotFound)
	case apperrors.Is(err, apperrors.ErrBrowserMismatch):
		writeJSONError(w, "browser_mismatch", "this interview is already in progress in another browser", http.StatusForbidden)
	case apperrors.Is(err, apperrors.ErrSessionExpired):
		writeJSONError(w, "session_expired", "the interview time limit has been reached", http.StatusGone)
	case apperrors.Is(err, apperrors.ErrSessionCompleted):
		writeJSONError(w, "session_completed", "the interview has already been completed", http.StatusGone)
	case apperrors.Is(err, apperrors.ErrStaleQuestion):
		writeJSONError(w, "stale_question", "this question has already been answered", http.StatusConflict)
	case apperrors.Is(err, apperrors.ErrNoActiveQuestion):
		writeJSONError(w, "no_active_question", err.Error(), http.StatusConflict)
	case apperrors.Is(err, apperrors.ErrQuestionSetNotFound):
		writeJSONError(w, "question_set_not_found", err.Error(), http.StatusNotFound)
	case apperrors.Is(err, apperrors.ErrIdentityMapWrite):
		writeJSONError(w, "identity_storage_unavailable", "could not persist session identity", http.StatusServiceUnavailable)
	default:
		log.Error().Err(err).Msg("interview request failed")
		writeJSONError(w, "internal_error", "internal server error", http.StatusInternalServerError)
	}
}
