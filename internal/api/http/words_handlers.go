package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/spellquest/internal/storage"
	"github.com/mind-engage/spellquest/internal/words"
)

// GET /words?difficulty=easy&active=true
func ListWordsHandler(store words.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		q := r.URL.Query()
		diff := strings.ToLower(strings.TrimSpace(q.Get("difficulty")))
		active := strings.TrimSpace(q.Get("active"))

		out := make([]words.Word, 0, len(list))
		for _, wd := range list {
			if diff != "" && string(wd.Difficulty) != diff {
				continue
			}
			if active == "true" && !wd.IsActive || active == "false" && wd.IsActive {
				continue
			}
			out = append(out, wd)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// POST /words
func CreateWordHandler(store words.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req words.NewWord
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		wd, err := store.Add(r.Context(), req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, wd)
	}
}

// GET /words/{id}
func GetWordHandler(store words.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wd, err := store.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, wd)
	}
}

// PATCH /words/{id}
func UpdateWordHandler(store words.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req words.Update
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		wd, err := store.Update(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, wd)
	}
}

// DELETE /words/{id}
func DeleteWordHandler(store words.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// POST /words/{id}/image
// multipart (file=...) or JSON { "data_uri": "data:image/png;base64,..." }
func UploadWordImageHandler(store words.Store, bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := store.Get(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}

		var url string
		var err error
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
			f, _, ferr := r.FormFile("file")
			if ferr != nil {
				http.Error(w, "file required", http.StatusBadRequest)
				return
			}
			defer f.Close()
			url, err = storage.SaveWordImage(bs, id, f)
		} else {
			var req struct {
				DataURI string `json:"data_uri"`
			}
			if derr := json.NewDecoder(r.Body).Decode(&req); derr != nil {
				http.Error(w, "bad json", http.StatusBadRequest)
				return
			}
			data, derr := storage.DecodeDataURI(req.DataURI)
			if derr != nil {
				writeError(w, r, derr)
				return
			}
			url, err = storage.SaveWordImage(bs, id, bytes.NewReader(data))
		}
		if err != nil {
			writeError(w, r, err)
			return
		}

		wd, err := store.Update(r.Context(), id, words.Update{CustomImageURL: &url})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, wd)
	}
}

// POST /words/import (multipart: file=words.csv|words.xlsx)
func ImportWordsHandler(store words.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		var res words.ImportResult
		switch strings.ToLower(filepath.Ext(hdr.Filename)) {
		case ".xlsx":
			res, err = words.ImportXLSX(r.Context(), store, f)
		case ".csv", "":
			res, err = words.ImportCSV(r.Context(), store, f)
		default:
			http.Error(w, "unsupported file type", http.StatusBadRequest)
			return
		}
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}
