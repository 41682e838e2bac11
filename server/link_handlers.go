package server

import (
	"encoding/json"
	"net/http"
	"time"

	apperrors "github.com/hirelane/interview-server/internal/errors"
)

type generateLinkRequest struct {
	LinkID        string `json:"link_id"`
	InterviewDate string `json:"interview_date"` // YYYY-MM-DD
}

type generateLinkResponse struct {
	LinkID  string `json:"link_id"`
	Token   string `json:"token"`
	ValidOn string `json:"valid_on"`
}

// GenerateLinkHandler issues a signed access token binding a link id to the
// calendar day the interview is scheduled for.
func (s *Server) GenerateLinkHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateLinkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, "invalid_request", "failed to parse request body", http.StatusBadRequest)
			return
		}
		if req.LinkID == "" {
			writeJSONError(w, "invalid_request", "link_id is required", http.StatusBadRequest)
			return
		}

		interviewDate := time.Now()
		if req.InterviewDate != "" {
			parsed, err := time.Parse("2006-01-02", req.InterviewDate)
			if err != nil {
				writeJSONError(w, "invalid_request", "interview_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			interviewDate = parsed
		}

		token, err := s.links.Issue(req.LinkID, interviewDate)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, generateLinkResponse{
			LinkID:  req.LinkID,
			Token:   token,
			ValidOn: interviewDate.Format("2006-01-02"),
		})
	}
}

type validateLinkRequest struct {
	Token string `json:"token"`
}

type validateLinkResponse struct {
	LinkID string `json:"link_id"`
	Valid  bool   `json:"valid"`
}

func (s *Server) ValidateLinkHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req validateLinkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, "invalid_request", "failed to parse request body", http.StatusBadRequest)
			return
		}
		if req.Token == "" {
			writeJSONError(w, "invalid_request", "token is required", http.StatusBadRequest)
			return
		}

		linkID, err := s.links.Validate(req.Token)
		if err != nil {
			switch {
			case apperrors.Is(err, apperrors.ErrLinkNotYetActive):
				writeJSONError(w, "link_not_yet_active", "this interview link is not active yet", http.StatusForbidden)
			case apperrors.Is(err, apperrors.ErrLinkWindowClosed):
				writeJSONError(w, "link_window_closed", "this interview link is no longer valid", http.StatusGone)
			default:
				writeJSONError(w, "invalid_link_token", "the interview link could not be verified", http.StatusUnauthorized)
			}
			return
		}

		writeJSON(w, http.StatusOK, validateLinkResponse{LinkID: linkID, Valid: true})
	}
}
