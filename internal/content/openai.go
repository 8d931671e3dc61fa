package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"
)

const (
	DefaultModel      = "gpt-4o-mini"
	DefaultImageModel = "dall-e-3"
)

// OpenAI implements Provider with chat completions and image generation.
type OpenAI struct {
	client     oai.Client
	model      string
	imageModel string
}

type openaiConfig struct {
	baseURL    string
	imageModel string
	timeout    time.Duration
}

type OpenAIOption func(*openaiConfig)

func WithBaseURL(url string) OpenAIOption {
	return func(c *openaiConfig) { c.baseURL = url }
}

func WithImageModel(model string) OpenAIOption {
	return func(c *openaiConfig) { c.imageModel = model }
}

func WithTimeout(d time.Duration) OpenAIOption {
	return func(c *openaiConfig) { c.timeout = d }
}

func NewOpenAI(apiKey, model string, opts ...OpenAIOption) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: apiKey must not be empty")
	}
	if model == "" {
		model = DefaultModel
	}
	cfg := &openaiConfig{imageModel: DefaultImageModel, timeout: 60 * time.Second}
	for _, o := range opts {
		o(cfg)
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}
	if cfg.timeout > 0 {
		reqOpts = append(reqOpts, option.WithHTTPClient(&http.Client{Timeout: cfg.timeout}))
	}
	return &OpenAI{client: oai.NewClient(reqOpts...), model: model, imageModel: cfg.imageModel}, nil
}

func (p *OpenAI) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, oai.ChatCompletionNewParams{
		Model:       shared.ChatModel(p.model),
		Messages:    []oai.ChatCompletionMessageParamUnion{oai.UserMessage(prompt)},
		Temperature: param.NewOpt(0.7),
	})
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty choices in response")
	}
	out := strings.Trim(strings.TrimSpace(resp.Choices[0].Message.Content), `"`)
	if out == "" {
		return "", fmt.Errorf("openai: empty completion")
	}
	return out, nil
}

func (p *OpenAI) GenerateWords(ctx context.Context, difficulty string, n int) ([]string, error) {
	prompt := fmt.Sprintf("You are a spelling word generator. Generate a list of %d spelling words with a difficulty level of %s. "+
		"Return the words as a JSON array of strings and nothing else.", n, difficulty)
	raw, err := p.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseWordList(raw)
}

// parseWordList accepts a JSON array, optionally wrapped in a code fence.
func parseWordList(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	start, end := strings.Index(raw, "["), strings.LastIndex(raw, "]")
	if start < 0 || end < start {
		return nil, fmt.Errorf("openai: no word list in %q", raw)
	}
	var out []string
	if err := json.Unmarshal([]byte(raw[start:end+1]), &out); err != nil {
		return nil, fmt.Errorf("openai: decode word list: %w", err)
	}
	return out, nil
}

func (p *OpenAI) GenerateImage(ctx context.Context, word string) (string, error) {
	resp, err := p.client.Images.Generate(ctx, oai.ImageGenerateParams{
		Prompt: fmt.Sprintf(`A child-friendly, simple, clear, photorealistic image representing only the word: %q. No text, letters, or complex scenes.`, word),
		Model:  oai.ImageModel(p.imageModel),
		N:      param.NewOpt(int64(1)),
	})
	if err != nil {
		return "", fmt.Errorf("openai: image: %w", err)
	}
	if len(resp.Data) == 0 {
		return "", fmt.Errorf("openai: no image returned")
	}
	img := resp.Data[0]
	switch {
	case img.URL != "":
		return img.URL, nil
	case img.B64JSON != "":
		return "data:image/png;base64," + img.B64JSON, nil
	default:
		return "", fmt.Errorf("openai: empty image data")
	}
}

func (p *OpenAI) TranslateWord(ctx context.Context, word, lang string) (string, error) {
	return p.complete(ctx, fmt.Sprintf(`Translate the following word into %s: %q. Respond with only the translated word, nothing else. `+
		`If the word is already in the target language or untranslatable as a single word, return the original word.`, languageName(lang), word))
}

func (p *OpenAI) GenerateSentence(ctx context.Context, word string) (string, error) {
	return p.complete(ctx, fmt.Sprintf(`Create one simple and short English sentence using the word %q. `+
		`The sentence should be easy to understand for a child learning to spell. Provide only the sentence itself, with no introductory phrases or extra text.`, word))
}

func (p *OpenAI) TranslateSentence(ctx context.Context, sentence, lang string) (string, error) {
	return p.complete(ctx, fmt.Sprintf(`Translate the following sentence into %s: %q. Respond with only the translated sentence, nothing else.`,
		languageName(lang), sentence))
}

var languages = map[string]string{
	"es": "Spanish", "fr": "French", "de": "German", "it": "Italian", "pt": "Portuguese",
}

func languageName(code string) string {
	if n, ok := languages[strings.ToLower(code)]; ok {
		return n
	}
	return code
}
