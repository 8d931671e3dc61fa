package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mind-engage/spellquest/internal/content"
)

type contentReq struct {
	Word     string `json:"word"`
	Sentence string `json:"sentence"`
	Lang     string `json:"lang"`
}

func decodeContentReq(w http.ResponseWriter, r *http.Request) (contentReq, bool) {
	var req contentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return req, false
	}
	req.Word = strings.TrimSpace(req.Word)
	req.Sentence = strings.TrimSpace(req.Sentence)
	return req, true
}

// POST /content/image { "word": "cat" }
func GenerateImageHandler(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeContentReq(w, r)
		if !ok {
			return
		}
		if req.Word == "" {
			http.Error(w, "word required", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"image_url": svc.Image(r.Context(), req.Word)})
	}
}

// POST /content/translate { "word": "cat" } or { "sentence": "...", "lang": "fr" }
func TranslateHandler(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeContentReq(w, r)
		if !ok {
			return
		}
		switch {
		case req.Sentence != "":
			writeJSON(w, http.StatusOK, map[string]string{"translation": svc.TranslateSentence(r.Context(), req.Sentence, req.Lang)})
		case req.Word != "":
			writeJSON(w, http.StatusOK, map[string]string{"translation": svc.Translate(r.Context(), req.Word, req.Lang)})
		default:
			http.Error(w, "word or sentence required", http.StatusBadRequest)
		}
	}
}

// POST /content/sentence { "word": "cat", "lang": "es" }
func GenerateSentenceHandler(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeContentReq(w, r)
		if !ok {
			return
		}
		if req.Word == "" {
			http.Error(w, "word required", http.StatusBadRequest)
			return
		}
		s := svc.Sentence(r.Context(), req.Word)
		writeJSON(w, http.StatusOK, map[string]string{
			"sentence":    s,
			"translation": svc.TranslateSentence(r.Context(), s, req.Lang),
		})
	}
}
