package http

import (
	"net/http"

	"github.com/mind-engage/spellquest/internal/stats"
)

// GET /stats
func StatsSummaryHandler(store stats.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, stats.Aggregate(list))
	}
}

// GET /stats/attempts?limit=100&offset=0 (newest first)
func ListAttemptsHandler(store stats.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		limit := parseIntDefault(r.URL.Query().Get("limit"), 100)
		offset := parseIntDefault(r.URL.Query().Get("offset"), 0)

		out := make([]stats.Attempt, 0, min(limit, len(list)))
		for i := len(list) - 1 - offset; i >= 0 && len(out) < limit; i-- {
			out = append(out, list[i])
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// DELETE /stats
func ClearStatsHandler(store stats.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Clear(r.Context()); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
