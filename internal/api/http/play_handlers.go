package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/spellquest/internal/content"
	"github.com/mind-engage/spellquest/internal/grading"
	"github.com/mind-engage/spellquest/internal/observe"
	"github.com/mind-engage/spellquest/internal/session"
	"github.com/mind-engage/spellquest/internal/words"
)

const maxWordsPerGame = 50

type startSessionReq struct {
	Mode       string `json:"mode"`
	Difficulty string `json:"difficulty"`
	Words      int    `json:"words,omitempty"`
}

// POST /play/sessions
func StartSessionHandler(m *session.Manager, defaultWords int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req startSessionReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		mode, err := grading.ParseMode(req.Mode)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		d, err := words.ParseDifficulty(req.Difficulty)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		n := req.Words
		if n <= 0 {
			n = defaultWords
		}
		n = min(n, maxWordsPerGame)

		s, err := m.Start(r.Context(), mode, d, n)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, sessionView(s))
	}
}

// GET /play/sessions/{id}
func GetSessionHandler(m *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := m.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, sessionView(s))
	}
}

// POST /play/sessions/{id}/answers  { "answer": "CAT, C, A, T, CAT" }
func SubmitAnswerHandler(m *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Answer string `json:"answer"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		res, err := m.Submit(r.Context(), chi.URLParam(r, "id"), req.Answer)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"attempt":  res.Attempt,
			"hint":     res.Hint,
			"advanced": res.Advanced,
			"session":  sessionView(res.Session),
		})
	}
}

// POST /play/sessions/{id}/skip | /previous | /finish
// do is one of the Manager's Skip, Previous or Finish methods.
func SessionActionHandler(do func(ctx context.Context, id string) (*session.Session, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := do(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, sessionView(s))
	}
}

type sessionResp struct {
	*session.Session
	Current *words.Word      `json:"current_word"`
	Summary *session.Summary `json:"summary,omitempty"`
}

func sessionView(s *session.Session) sessionResp {
	out := sessionResp{Session: s, Current: s.Current()}
	if s.Finished {
		sum := s.Summary()
		out.Summary = &sum
	}
	return out
}

// GET /play/words/{id}/content?lang=es[&text=word]
// Words outside the tutor list (generated or mock) are looked up by text.
func WordContentHandler(store words.Store, svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		word, err := store.Get(r.Context(), id)
		if errors.Is(err, words.ErrNotFound) {
			text := strings.TrimSpace(r.URL.Query().Get("text"))
			if text == "" {
				writeError(w, r, err)
				return
			}
			word, err = words.Word{ID: id, Text: text}, nil
		}
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, svc.Bundle(r.Context(), word, r.URL.Query().Get("lang")))
	}
}

type evaluateReq struct {
	Answer string `json:"answer"`
	Target string `json:"target"`
	Mode   string `json:"mode"`
}

// POST /evaluate: grades one answer without a session.
func EvaluateHandler(ev grading.Evaluator, metrics *observe.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req evaluateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Target) == "" {
			http.Error(w, "target required", http.StatusBadRequest)
			return
		}
		mode, err := grading.ParseMode(req.Mode)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		res := ev.Evaluate(req.Answer, req.Target, mode)
		metrics.RecordEvaluation(r.Context(), string(res.Mode), string(res.ErrorType), res.Score)

		out := map[string]any{
			"result":   res,
			"feedback": grading.BuildDisplayFeedback(res),
		}
		if mode == grading.ModePractice {
			out["hint"] = grading.Hint(res)
		}
		writeJSON(w, http.StatusOK, out)
	}
}
