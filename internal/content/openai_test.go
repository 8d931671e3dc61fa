package content

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fakeOpenAI answers chat completions with reply(prompt) and image
// generations with a fixed URL.
func fakeOpenAI(t *testing.T, reply func(prompt string) string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/chat/completions"):
			var req struct {
				Messages []struct {
					Content string `json:"content"`
				} `json:"messages"`
			}
			if err := json.Unmarshal(body, &req); err != nil || len(req.Messages) == 0 {
				http.Error(w, "bad request", http.StatusBadRequest)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":      "chatcmpl-1",
				"object":  "chat.completion",
				"created": 1,
				"model":   "gpt-4o-mini",
				"choices": []map[string]any{{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]any{"role": "assistant", "content": reply(req.Messages[0].Content)},
				}},
			})
		case strings.HasSuffix(r.URL.Path, "/images/generations"):
			_ = json.NewEncoder(w).Encode(map[string]any{
				"created": 1,
				"data":    []map[string]any{{"url": "https://img.example/cat.png"}},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIProvider(t *testing.T) {
	srv := fakeOpenAI(t, func(prompt string) string {
		switch {
		case strings.Contains(prompt, "spelling word generator"):
			return "```json\n[\"Apple\", \"Table\"]\n```"
		case strings.Contains(prompt, "into Spanish"):
			return "\"Gato\""
		case strings.Contains(prompt, "sentence using"):
			return "The cat naps."
		}
		return ""
	})
	p, err := NewOpenAI("sk-test", "", WithBaseURL(srv.URL+"/v1"))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	ws, err := p.GenerateWords(ctx, "easy", 2)
	if err != nil || len(ws) != 2 || ws[0] != "Apple" {
		t.Fatalf("words: %v %v", ws, err)
	}
	tr, err := p.TranslateWord(ctx, "cat", "es")
	if err != nil || tr != "Gato" {
		t.Fatalf("translate: %q %v", tr, err)
	}
	s, err := p.GenerateSentence(ctx, "cat")
	if err != nil || s != "The cat naps." {
		t.Fatalf("sentence: %q %v", s, err)
	}
	img, err := p.GenerateImage(ctx, "cat")
	if err != nil || img != "https://img.example/cat.png" {
		t.Fatalf("image: %q %v", img, err)
	}
	// an empty completion is an error, not an empty translation
	if _, err := p.TranslateSentence(ctx, "hola", "xx"); err == nil {
		t.Fatal("expected error for empty completion")
	}
}

func TestNewOpenAIRequiresKey(t *testing.T) {
	if _, err := NewOpenAI("", "gpt-4o-mini"); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseWordList(t *testing.T) {
	got, err := parseWordList(`Here you go: ["one","two"]`)
	if err != nil || len(got) != 2 {
		t.Fatalf("%v %v", got, err)
	}
	if _, err := parseWordList("no list"); err == nil {
		t.Fatal("expected error")
	}
}
