package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// DefaultModels is the fallback chain tried in order, fastest first.
var DefaultModels = []string{
	"gemini-2.5-flash",
	"gemini-flash-latest",
	"gemini-2.0-flash",
	"gemini-2.5-pro",
	"gemini-pro-latest",
	"gemini-exp-1206",
}

const systemPrompt = `You are a helpful AI assistant for an online marketplace.
You help customers with:
- Product inquiries and recommendations
- Order status and tracking
- General marketplace questions
- Account and payment questions

Be friendly, concise, and helpful. If you don't know something specific about a user's account or order,
direct them to contact support or check their account dashboard.

IMPORTANT: Answer as the AI assistant.`

const (
	maxOutputTokens = 500
	temperature     = 0.7
)

// GeminiProvider speaks the generativelanguage generateContent surface for
// a single model name.
type GeminiProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewGeminiProvider creates a provider for one model. A nil client falls
// back to http.DefaultClient; attempt timeouts come from the gateway's
// context, not the client.
func NewGeminiProvider(client *http.Client, baseURL, apiKey, model string) *GeminiProvider {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &GeminiProvider{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
	}
}

// NewGeminiProviders builds the fallback chain, one provider per model.
func NewGeminiProviders(apiKey string, models []string) []Provider {
	if len(models) == 0 {
		models = DefaultModels
	}
	providers := make([]Provider, 0, len(models))
	for _, m := range models {
		providers = append(providers, NewGeminiProvider(nil, "", apiKey, m))
	}
	return providers
}

func (p *GeminiProvider) Model() string {
	return p.model
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type generationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
}

type generateRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (p *GeminiProvider) Generate(ctx context.Context, history []Message, message string) (string, error) {
	payload := generateRequest{
		Contents: buildContents(history, message),
		GenerationConfig: generationConfig{
			MaxOutputTokens: maxOutputTokens,
			Temperature:     temperature,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, p.model, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var out generateResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model %s", p.model)
	}

	var text strings.Builder
	for _, part := range out.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return text.String(), nil
}

// buildContents converts the conversation into the strict user/model
// alternation the API requires. Out-of-turn messages are folded into the
// previous turn rather than dropped, and the system prompt is injected into
// the first user turn.
func buildContents(history []Message, message string) []geminiContent {
	var contents []geminiContent
	expect := "user"

	for _, m := range history {
		role := "user"
		if m.Role == "assistant" || m.Role == "model" {
			role = "model"
		}

		if role == expect {
			contents = append(contents, geminiContent{
				Role:  role,
				Parts: []geminiPart{{Text: m.Content}},
			})
			if expect == "user" {
				expect = "model"
			} else {
				expect = "user"
			}
		} else if len(contents) > 0 {
			last := &contents[len(contents)-1]
			last.Parts[0].Text += "\n\n(Additional context: " + m.Content + ")"
		}
	}

	if len(contents) > 0 {
		contents[0].Parts[0].Text = systemPrompt + "\n\nUser: " + contents[0].Parts[0].Text
	} else {
		message = systemPrompt + "\n\nUser: " + message
	}

	// A sanitized history ending on a user turn cannot be followed by
	// another user turn; merge the new message into it instead.
	if len(contents) > 0 && contents[len(contents)-1].Role == "user" {
		last := &contents[len(contents)-1]
		last.Parts[0].Text += "\n\n" + message
		return contents
	}

	return append(contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: message}},
	})
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
