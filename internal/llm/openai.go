// README: OpenAI chat-completions gateway over raw HTTP.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"wayfarer/internal/conversation"
)

const openAIEndpoint = "https://api.openai.com/v1/chat/completions"

// openAIHTTPClient is shared by all requests; the 30s timeout guards against
// stalled connections while context cancellation is still honoured via
// NewRequestWithContext.
var openAIHTTPClient = &http.Client{Timeout: 30 * time.Second}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponseFormat struct {
	Type string `json:"type"`
}

type openAIRequest struct {
	Model          string                `json:"model"`
	Messages       []openAIMessage       `json:"messages"`
	Temperature    float32               `json:"temperature,omitempty"`
	MaxTokens      int                   `json:"max_tokens,omitempty"`
	ResponseFormat *openAIResponseFormat `json:"response_format,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// OpenAIProvider implements Provider against the OpenAI chat completions API.
type OpenAIProvider struct {
	apiKey string
	client *http.Client
}

// NewOpenAIProvider returns a provider using the shared HTTP client.
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{apiKey: apiKey, client: openAIHTTPClient}
}

// Complete issues exactly one HTTP call and classifies its outcome by status
// code. Timestamps never leave the process: only role and content are sent.
func (p *OpenAIProvider) Complete(ctx context.Context, system string, msgs []conversation.Message, opts Options) (*Result, error) {
	wire := make([]openAIMessage, 0, len(msgs)+1)
	wire = append(wire, openAIMessage{Role: "system", Content: system})
	for _, m := range msgs {
		wire = append(wire, openAIMessage{Role: string(m.Role), Content: m.Content})
	}

	reqPayload := openAIRequest{
		Model:       opts.Model,
		Messages:    wire,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	if opts.WantJSON {
		reqPayload.ResponseFormat = &openAIResponseFormat{Type: "json_object"}
	}

	reqBody, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIEndpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai: %w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai: %w: read response: %v", ErrNetwork, err)
	}

	if err := classifyStatus(resp.StatusCode, body); err != nil {
		return nil, err
	}

	var cr openAIResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, fmt.Errorf("openai: %w: unmarshal response: %v", ErrUpstream, err)
	}
	if cr.Error != nil {
		return nil, fmt.Errorf("openai: %w: %s", ErrUpstream, cr.Error.Message)
	}
	if len(cr.Choices) == 0 || cr.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("openai: %w", ErrEmptyResponse)
	}

	return &Result{
		Text: cr.Choices[0].Message.Content,
		Usage: TokenUsage{
			Prompt:     cr.Usage.PromptTokens,
			Completion: cr.Usage.CompletionTokens,
			Total:      cr.Usage.TotalTokens,
		},
	}, nil
}

// classifyStatus maps an HTTP status to the gateway's error taxonomy.
func classifyStatus(status int, body []byte) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusUnauthorized:
		return fmt.Errorf("openai: %w (status 401)", ErrAuth)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("openai: %w (status 429)", ErrRateLimited)
	case status >= 500:
		return fmt.Errorf("openai: %w (status %d)", ErrUpstream, status)
	case status >= 400:
		return fmt.Errorf("openai: %w (status %d): %s", ErrBadRequest, status, truncateBody(body))
	default:
		return fmt.Errorf("openai: %w (unexpected status %d)", ErrUpstream, status)
	}
}

func truncateBody(body []byte) string {
	const max = 256
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
