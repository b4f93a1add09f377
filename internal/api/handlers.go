package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pioneers-ai-hackaton/workly-ai/internal/ai"
	"github.com/pioneers-ai-hackaton/workly-ai/internal/conversation"
	"github.com/pioneers-ai-hackaton/workly-ai/internal/logger"

	"github.com/go-chi/chi/v5"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// User-visible error messages, one per failure category. Raw backend errors
// are logged but never returned to the browser.
const (
	msgRateLimited   = "Rate limit exceeded. Please try again in a moment."
	msgQuotaExceeded = "Service limit reached. Please contact support."
	msgBusy          = "A reply is still being generated. Please wait for it to finish."
	msgNotReady      = "The conversation is not finished yet."
	msgUnknown       = "Failed to get response from AI. Please try again."
	msgNotFound      = "Unknown or expired session."
	msgBadRequest    = "Message must not be empty."
)

type sessionResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	Step      int    `json:"step"`
}

type messageRequest struct {
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
	Step    int    `json:"step"`
	Ready   bool   `json:"ready"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) createSession(w http.ResponseWriter, _ *http.Request) {
	session := conversation.NewSession(s.generator, s.log)
	s.sessions.Set(session.ID(), session, cache.DefaultExpiration)

	s.log.Info("session created", zap.String(logger.FieldSession, session.ID()))

	writeJSON(w, http.StatusCreated, sessionResponse{
		SessionID: session.ID(),
		Message:   conversation.Greeting,
		Step:      int(session.Phase()),
	})
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgBadRequest})
		return
	}

	result, err := session.Exchange(r.Context(), req.Message)
	if err != nil {
		s.writeCategorizedError(w, session.ID(), err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: result.Message,
		Step:    int(result.Phase),
		Ready:   result.Complete,
	})
}

func (s *Server) generateCV(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	if !session.Complete() {
		writeJSON(w, http.StatusConflict, errorResponse{Error: msgNotReady})
		return
	}

	cv, err := s.cvs.Generate(r.Context(), session.UserContent())
	if err != nil {
		s.writeCategorizedError(w, session.ID(), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"cv": cv})
}

func (s *Server) generateMatches(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	if !session.Complete() {
		writeJSON(w, http.StatusConflict, errorResponse{Error: msgNotReady})
		return
	}

	companies, err := s.matches.Generate(r.Context(), session.UserContent())
	if err != nil {
		s.writeCategorizedError(w, session.ID(), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"companies": companies})
}

// lookupSession resolves the session ID from the URL and refreshes its TTL.
func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (*conversation.Session, bool) {
	id := chi.URLParam(r, "sessionID")

	entry, found := s.sessions.Get(id)
	if !found {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: msgNotFound})
		return nil, false
	}

	session, ok := entry.(*conversation.Session)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: msgNotFound})
		return nil, false
	}

	s.sessions.Set(id, session, cache.DefaultExpiration)
	return session, true
}

// writeCategorizedError maps an error onto one HTTP status and user-visible
// message per category. The raw error goes to the log only.
func (s *Server) writeCategorizedError(w http.ResponseWriter, sessionID string, err error) {
	s.log.Warn("request failed",
		zap.String(logger.FieldSession, sessionID),
		zap.Error(err),
	)

	switch {
	case errors.Is(err, conversation.ErrEmptyMessage):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgBadRequest})
	case errors.Is(err, conversation.ErrBusy):
		writeJSON(w, http.StatusConflict, errorResponse{Error: msgBusy})
	case errors.Is(err, ai.ErrRateLimited):
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: msgRateLimited})
	case errors.Is(err, ai.ErrQuotaExceeded):
		writeJSON(w, http.StatusPaymentRequired, errorResponse{Error: msgQuotaExceeded})
	case errors.Is(err, ai.ErrConfiguration):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgUnknown})
	default:
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: msgUnknown})
	}
}
