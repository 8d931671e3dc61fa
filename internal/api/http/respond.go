package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mind-engage/spellquest/internal/session"
	"github.com/mind-engage/spellquest/internal/storage"
	"github.com/mind-engage/spellquest/internal/words"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to status codes. Unknown errors are logged
// and reported as 500 without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, words.ErrNotFound), errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrNoWords):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, words.ErrInvalid), errors.Is(err, storage.ErrNotImage), errors.Is(err, storage.ErrBadKey):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, session.ErrFinished), errors.Is(err, session.ErrNotPractice):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}
