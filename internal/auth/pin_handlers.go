package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	authmw "github.com/mind-engage/spellquest/internal/auth/middleware"
	"github.com/mind-engage/spellquest/internal/rbac"
)

// POST /auth/pin  { "pin": "0000" }
func PinLoginHandler(a *authmw.AuthService, pins *PinService) http.HandlerFunc {
	type out struct {
		AccessToken string   `json:"access_token"`
		Role        string   `json:"role"`
		Permissions []string `json:"permissions"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Pin string `json:"pin"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := pins.Verify(r.Context(), req.Pin); err != nil {
			if errors.Is(err, ErrPinIncorrect) {
				http.Error(w, "incorrect pin", http.StatusUnauthorized)
				return
			}
			http.Error(w, "verify pin", http.StatusInternalServerError)
			return
		}
		tok, err := a.IssueJWT("tutor", rbac.RoleTutor)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out{AccessToken: tok, Role: rbac.RoleTutor, Permissions: rbac.Granted(rbac.RoleTutor)})
	}
}

// POST /auth/pin/change  { "current_pin": "...", "new_pin": "...", "confirm_pin": "..." }
func ChangePinHandler(pins *PinService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Current string `json:"current_pin"`
			New     string `json:"new_pin"`
			Confirm string `json:"confirm_pin"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		err := pins.Change(r.Context(), req.Current, req.New, req.Confirm)
		switch {
		case err == nil:
			p, _ := authmw.PrincipalFromContext(r.Context())
			slog.Info("tutor pin changed", "subject", p.Subject)
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, ErrPinMismatch), errors.Is(err, ErrPinFormat):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrPinIncorrect):
			http.Error(w, err.Error(), http.StatusForbidden)
		default:
			http.Error(w, "change pin", http.StatusInternalServerError)
		}
	}
}
